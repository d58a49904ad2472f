package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-advisor/internal/bot/menus"
	"github.com/vladimiradmaev/health-advisor/internal/bot/state"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          menus.Sender
	stateManager state.StateManager
	runner       *analysisRunner
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api menus.Sender, stateManager state.StateManager, runner *analysisRunner) *CommandHandler {
	return &CommandHandler{
		api:          api,
		stateManager: stateManager,
		runner:       runner,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	logger.Debug("Handling command", "command", message.Command(), "user_id", userID)

	switch message.Command() {
	case "start":
		h.runner.cancel(userID)
		h.stateManager.Clear(ctx, userID)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "help":
		return menus.SendHelp(h.api, message.Chat.ID)
	case "cancel":
		h.runner.cancel(userID)
		h.stateManager.Clear(ctx, userID)
		if _, err := h.api.Send(tgbotapi.NewMessage(message.Chat.ID, "Cancelled.")); err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, message.Chat.ID)
	default:
		_, err := h.api.Send(tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help to see the available commands."))
		return err
	}
}
