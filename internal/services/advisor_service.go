package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladimiradmaev/health-advisor/internal/domain"
	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
	"github.com/vladimiradmaev/health-advisor/internal/metrics"
	"github.com/vladimiradmaev/health-advisor/internal/validation"
)

// State is a step of one analysis cycle.
type State string

const (
	StateAwaitingInputs    State = "AwaitingInputs"
	StateInputsValidated   State = "InputsValidated"
	StateAnalysisRequested State = "AnalysisRequested"
	StateResultDisplayed   State = "ResultDisplayed"
	StateHalted            State = "Halted"
)

var allowedTransitions = map[State][]State{
	StateAwaitingInputs:    {StateInputsValidated, StateHalted},
	StateInputsValidated:   {StateAnalysisRequested},
	StateAnalysisRequested: {StateResultDisplayed, StateHalted},
}

// ErrInvalidTransition is returned when a cycle is driven out of order.
var ErrInvalidTransition = errors.New("invalid cycle transition")

// Cycle tracks one pass from inputs to a displayed result or a halt.
type Cycle struct {
	ID        string
	Surface   string
	State     State
	Inputs    domain.Inputs
	Request   *domain.AnalysisRequest
	Result    *domain.AnalysisResult
	Err       error
	History   []State
	StartedAt time.Time
}

func newCycle(surface string, in domain.Inputs) *Cycle {
	return &Cycle{
		ID:        uuid.NewString(),
		Surface:   surface,
		State:     StateAwaitingInputs,
		Inputs:    in,
		History:   []State{StateAwaitingInputs},
		StartedAt: time.Now(),
	}
}

func (c *Cycle) transition(to State) error {
	for _, next := range allowedTransitions[c.State] {
		if next == to {
			c.State = to
			c.History = append(c.History, to)
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.State, to)
}

// Terminal reports whether the cycle has finished.
func (c *Cycle) Terminal() bool {
	return c.State == StateResultDisplayed || c.State == StateHalted
}

// Text is the model output to render; empty unless the result is displayed.
func (c *Cycle) Text() string {
	if c.State != StateResultDisplayed || c.Result == nil {
		return ""
	}
	return c.Result.Text
}

// Message is the short failure reason shown to the user when halted.
func (c *Cycle) Message() string {
	if c.State != StateHalted {
		return ""
	}
	return apperrors.UserMessage(c.Err)
}

// FieldErrors lists rejected inputs when the cycle halted on validation.
func (c *Cycle) FieldErrors() apperrors.FieldErrors {
	fields, _ := apperrors.FieldErrorsOf(c.Err)
	return fields
}

// halt moves c to Halted and returns any rejected fields.
func (c *Cycle) halt(err error) apperrors.FieldErrors {
	c.Err = err
	_ = c.transition(StateHalted)
	return c.FieldErrors()
}

// AdvisorService drives analysis cycles: validate, build the prompt, call the model.
type AdvisorService struct {
	analyzer   domain.Analyzer
	errHandler *apperrors.Handler
}

func NewAdvisorService(analyzer domain.Analyzer) *AdvisorService {
	return &AdvisorService{
		analyzer:   analyzer,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
	}
}

// ValidateField checks a single input and returns the message to show for it.
func (s *AdvisorService) ValidateField(field domain.Field, raw string) (string, error) {
	if fe := validation.CheckField(field, raw); fe != nil {
		metrics.Inc(metrics.ValidationFailures, prometheus.Labels{"field": fe.Field})
		return fe.Message, apperrors.NewValidationError(apperrors.FieldErrors{*fe})
	}
	return validation.SuccessMessage(field, raw), nil
}

// Begin starts a cycle and validates every input. The returned cycle is either
// InputsValidated or Halted.
func (s *AdvisorService) Begin(surface string, in domain.Inputs) *Cycle {
	c := newCycle(surface, in)

	req, err := validation.CheckAll(in)
	if err != nil {
		for _, fe := range c.halt(err) {
			metrics.Inc(metrics.ValidationFailures, prometheus.Labels{"field": fe.Field})
		}
		s.finish(context.Background(), c)
		return c
	}

	c.Request = &req
	_ = c.transition(StateInputsValidated)
	return c
}

// Analyze builds the prompt for a validated cycle and makes one model call.
// It returns an error only when c is not ready for analysis; model failures
// halt the cycle and are reported through c.Err.
func (s *AdvisorService) Analyze(ctx context.Context, c *Cycle) error {
	if c.State != StateInputsValidated || c.Request == nil {
		return fmt.Errorf("%w: cycle %s is %s", ErrInvalidTransition, c.ID, c.State)
	}
	if err := c.transition(StateAnalysisRequested); err != nil {
		return err
	}

	prompt := BuildPrompt(c.Request.Profile, c.Request.Food)

	start := time.Now()
	result, err := s.analyzer.Analyze(ctx, prompt)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		kind, ok := apperrors.AnalysisKindOf(err)
		if !ok {
			kind = apperrors.KindUnknown
			err = apperrors.NewAnalysisError(kind, err)
		}
		metrics.Inc(metrics.AnalysisFailures, prometheus.Labels{"kind": string(kind)})
		metrics.Observe(metrics.AnalysisLatency, prometheus.Labels{"outcome": "failure"}, elapsed)
		c.halt(err)
		s.finish(ctx, c)
		return nil
	}

	metrics.Observe(metrics.AnalysisLatency, prometheus.Labels{"outcome": "success"}, elapsed)
	c.Result = result
	_ = c.transition(StateResultDisplayed)
	s.finish(ctx, c)
	return nil
}

// Run performs a whole cycle: validation then, if it passes, analysis.
func (s *AdvisorService) Run(ctx context.Context, surface string, in domain.Inputs) *Cycle {
	c := s.Begin(surface, in)
	if !c.Terminal() {
		if err := s.Analyze(ctx, c); err != nil {
			s.errHandler.Handle(ctx, apperrors.NewInternalError(err))
		}
	}
	return c
}

func (s *AdvisorService) finish(ctx context.Context, c *Cycle) {
	metrics.Inc(metrics.AnalysisCycles, prometheus.Labels{"surface": c.Surface, "state": string(c.State)})

	log := logger.WithFields("cycle_id", c.ID, "surface", c.Surface, "state", c.State, "duration", time.Since(c.StartedAt))
	if c.Err != nil {
		s.errHandler.Handle(ctx, c.Err)
		log.Info("Analysis cycle halted")
		return
	}
	log.Info("Analysis cycle completed", "chars", len(c.Text()))
}
