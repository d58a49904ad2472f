package handlers

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-advisor/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-advisor/internal/bot/menus"
	"github.com/vladimiradmaev/health-advisor/internal/bot/state"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
	"github.com/vladimiradmaev/health-advisor/internal/services"
)

const (
	surface = "telegram"

	// maxMessageLength is Telegram's limit for a single text message
	maxMessageLength = 4096
)

// analysisRunner runs analysis cycles for chat users. A new Analyze press from
// the same user cancels the call still in flight.
type analysisRunner struct {
	api          menus.Sender
	advisor      *services.AdvisorService
	stateManager state.StateManager

	mu       sync.Mutex
	inflight map[int64]*inflightCall
}

type inflightCall struct {
	cancel context.CancelFunc
}

func newAnalysisRunner(api menus.Sender, advisor *services.AdvisorService, stateManager state.StateManager) *analysisRunner {
	return &analysisRunner{
		api:          api,
		advisor:      advisor,
		stateManager: stateManager,
		inflight:     make(map[int64]*inflightCall),
	}
}

func (r *analysisRunner) begin(ctx context.Context, userID int64) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	call := &inflightCall{cancel: cancel}

	r.mu.Lock()
	if prev, ok := r.inflight[userID]; ok {
		prev.cancel()
	}
	r.inflight[userID] = call
	r.mu.Unlock()

	return ctx, func() {
		cancel()
		r.mu.Lock()
		if r.inflight[userID] == call {
			delete(r.inflight, userID)
		}
		r.mu.Unlock()
	}
}

func (r *analysisRunner) cancel(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if call, ok := r.inflight[userID]; ok {
		call.cancel()
		delete(r.inflight, userID)
	}
}

func (r *analysisRunner) run(ctx context.Context, userID, chatID int64) error {
	if r.stateManager.GetUserState(ctx, userID) != state.ReadyToAnalyze {
		_, err := r.api.Send(tgbotapi.NewMessage(chatID, "Please complete the form before analyzing. Press \"🍎 New analysis\" to start."))
		return err
	}

	in := r.stateManager.GetInputs(ctx, userID)

	if _, err := r.api.Send(tgbotapi.NewMessage(chatID, "Analyzing...")); err != nil {
		return err
	}

	callCtx, done := r.begin(ctx, userID)
	cycle := r.advisor.Run(callCtx, surface, in)
	done()

	if cycle.State != services.StateResultDisplayed {
		if errors.Is(cycle.Err, context.Canceled) {
			logger.Info("Analysis superseded", "cycle_id", cycle.ID, "user_id", userID)
			return nil
		}
		_, err := r.api.Send(tgbotapi.NewMessage(chatID, cycle.Message()))
		return err
	}

	r.stateManager.Clear(ctx, userID)

	if _, err := r.api.Send(tgbotapi.NewMessage(chatID, "🍎 Health Recommendation")); err != nil {
		return err
	}
	chunks := splitMessage(cycle.Text(), maxMessageLength)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if i == len(chunks)-1 {
			msg.ReplyMarkup = keyboards.AfterResultKeyboard()
		}
		if _, err := r.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into pieces of at most limit runes. Joining the
// pieces gives back text exactly.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		end, count := 0, 0
		for end < len(text) && count < limit {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
			count++
		}
		chunks = append(chunks, text[:end])
		text = text[end:]
	}
	return chunks
}
