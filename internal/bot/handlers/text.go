package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-advisor/internal/bot/menus"
	"github.com/vladimiradmaev/health-advisor/internal/bot/state"
	"github.com/vladimiradmaev/health-advisor/internal/domain"
)

// formStep is one question of the chat form.
type formStep struct {
	field domain.Field
	next  string
}

var formSteps = map[string]formStep{
	state.WaitingForWeight: {field: domain.FieldWeight, next: state.WaitingForHeight},
	state.WaitingForHeight: {field: domain.FieldHeight, next: state.WaitingForAge},
	state.WaitingForAge:    {field: domain.FieldAge, next: state.WaitingForFood},
	state.WaitingForFood:   {field: domain.FieldFoodName, next: state.ReadyToAnalyze},
	// a new food name replaces the previous one
	state.ReadyToAnalyze: {field: domain.FieldFoodName, next: state.ReadyToAnalyze},
}

var nextField = map[string]domain.Field{
	state.WaitingForHeight: domain.FieldHeight,
	state.WaitingForAge:    domain.FieldAge,
	state.WaitingForFood:   domain.FieldFoodName,
}

// TextHandler handles text messages
type TextHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message as the answer to the pending form question
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID

	step, ok := formSteps[h.stateManager.GetUserState(ctx, userID)]
	if !ok {
		_, err := h.api.Send(tgbotapi.NewMessage(chatID, "Please use the menu to start a new analysis."))
		return err
	}

	reply, err := h.deps.Advisor.ValidateField(step.field, message.Text)
	if _, sendErr := h.api.Send(tgbotapi.NewMessage(chatID, reply)); sendErr != nil {
		return sendErr
	}
	if err != nil {
		// the question stays open until a valid answer arrives
		return nil
	}

	h.stateManager.SetInput(ctx, userID, step.field, message.Text)
	h.stateManager.SetUserState(ctx, userID, step.next)

	if field, ok := nextField[step.next]; ok {
		return menus.SendQuestion(h.api, chatID, field)
	}
	return menus.SendSummary(h.api, chatID, h.stateManager.GetInputs(ctx, userID))
}
