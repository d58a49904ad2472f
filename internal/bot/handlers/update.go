package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-advisor/internal/bot/menus"
	"github.com/vladimiradmaev/health-advisor/internal/bot/state"
)

const photoNotSupported = "Photo analysis is not available yet. Please type the name of the food item instead."

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             menus.Sender
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	runner := newAnalysisRunner(api, deps.Advisor, stateManager)
	return &UpdateHandler{
		api:             api,
		callbackHandler: NewCallbackHandler(api, stateManager, runner),
		commandHandler:  NewCommandHandler(api, stateManager, runner),
		textHandler:     NewTextHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	message := update.Message
	if message == nil || message.From == nil {
		return nil
	}

	switch {
	case message.IsCommand():
		return h.commandHandler.Handle(ctx, message)
	case len(message.Photo) > 0:
		_, err := h.api.Send(tgbotapi.NewMessage(message.Chat.ID, photoNotSupported))
		return err
	case message.Text != "":
		return h.textHandler.Handle(ctx, message)
	}
	return nil
}
