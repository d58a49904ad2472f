package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-advisor/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-advisor/internal/bot/menus"
	"github.com/vladimiradmaev/health-advisor/internal/bot/state"
	"github.com/vladimiradmaev/health-advisor/internal/domain"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
)

// CallbackHandler handles inline keyboard presses
type CallbackHandler struct {
	api          menus.Sender
	stateManager state.StateManager
	runner       *analysisRunner
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api menus.Sender, stateManager state.StateManager, runner *analysisRunner) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		stateManager: stateManager,
		runner:       runner,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}
	if query.Message == nil || query.From == nil {
		return nil
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.NewAnalysis:
		h.runner.cancel(userID)
		h.stateManager.Clear(ctx, userID)
		h.stateManager.SetUserState(ctx, userID, state.WaitingForWeight)
		return menus.SendQuestion(h.api, chatID, domain.FieldWeight)
	case keyboards.Analyze:
		return h.runner.run(ctx, userID, chatID)
	case keyboards.Cancel:
		h.runner.cancel(userID)
		h.stateManager.Clear(ctx, userID)
		if _, err := h.api.Send(tgbotapi.NewMessage(chatID, "Cancelled.")); err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.Help:
		return menus.SendHelp(h.api, chatID)
	case keyboards.MainMenu:
		h.stateManager.Clear(ctx, userID)
		return menus.SendMainMenu(h.api, chatID)
	}
	return nil
}
