package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-advisor/internal/bot/handlers"
	"github.com/vladimiradmaev/health-advisor/internal/bot/state"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
	wg      sync.WaitGroup
}

func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, deps, stateManager),
	}, nil
}

// Start polls for updates until ctx is cancelled. Each update is handled in
// its own goroutine so a slow analysis does not hold up other chats.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.Stop()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				if err := b.handler.Handle(ctx, update); err != nil {
					logger.Error("Error handling update", "update_id", update.UpdateID, "error", err)
				}
			}()
		}
	}
}

// Stop stops polling and waits for in-flight updates.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	b.wg.Wait()
}
