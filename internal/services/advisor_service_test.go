package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vladimiradmaev/health-advisor/internal/domain"
	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
)

type fakeAnalyzer struct {
	calls   int
	prompts []string
	text    string
	err     error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, prompt string) (*domain.AnalysisResult, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AnalysisResult{Text: f.text}, nil
}

func validInputs() domain.Inputs {
	return domain.Inputs{Weight: "70", Height: "5.5", Age: "30", FoodName: "banana"}
}

func TestRunValidInputsBuildsPrompt(t *testing.T) {
	analyzer := &fakeAnalyzer{text: "ok"}
	svc := NewAdvisorService(analyzer)

	c := svc.Run(context.Background(), "test", validInputs())
	if c.State != StateResultDisplayed {
		t.Fatalf("state = %s, err = %v", c.State, c.Err)
	}
	if analyzer.calls != 1 {
		t.Fatalf("analyzer calls = %d", analyzer.calls)
	}
	for _, want := range []string{"70 kg", "5.5 ft", "30 years", "banana"} {
		if !strings.Contains(analyzer.prompts[0], want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	wantHistory := []State{StateAwaitingInputs, StateInputsValidated, StateAnalysisRequested, StateResultDisplayed}
	if !reflect.DeepEqual(c.History, wantHistory) {
		t.Errorf("history = %v, want %v", c.History, wantHistory)
	}
	if c.ID == "" {
		t.Error("cycle id not set")
	}
}

func TestRunHaltsBeforeAnalysisOnInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Inputs)
		field  domain.Field
	}{
		{"weight out of range", func(in *domain.Inputs) { in.Weight = "500" }, domain.FieldWeight},
		{"height out of range", func(in *domain.Inputs) { in.Height = "2.5" }, domain.FieldHeight},
		{"age out of range", func(in *domain.Inputs) { in.Age = "151" }, domain.FieldAge},
		{"empty food name", func(in *domain.Inputs) { in.FoodName = "" }, domain.FieldFoodName},
		{"blank food name", func(in *domain.Inputs) { in.FoodName = "   " }, domain.FieldFoodName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{text: "never"}
			svc := NewAdvisorService(analyzer)

			in := validInputs()
			tt.mutate(&in)
			c := svc.Run(context.Background(), "test", in)

			if c.State != StateHalted {
				t.Fatalf("state = %s, want Halted", c.State)
			}
			if analyzer.calls != 0 {
				t.Errorf("analyzer invoked %d times after failed validation", analyzer.calls)
			}
			if !c.FieldErrors().Has(string(tt.field)) {
				t.Errorf("field errors %v missing %s", c.FieldErrors(), tt.field)
			}
			if c.Message() == "" {
				t.Error("halted cycle must carry a user message")
			}
			if c.Text() != "" {
				t.Error("halted cycle must not render text")
			}
			if c.Request != nil {
				t.Error("halted cycle must not carry a request")
			}
		})
	}
}

func TestRunAnalysisTimeoutHalts(t *testing.T) {
	analyzer := &fakeAnalyzer{err: apperrors.NewAnalysisError(apperrors.KindTimeout, context.DeadlineExceeded)}
	svc := NewAdvisorService(analyzer)

	c := svc.Run(context.Background(), "test", validInputs())
	if c.State != StateHalted {
		t.Fatalf("state = %s, want Halted", c.State)
	}
	if kind, _ := apperrors.AnalysisKindOf(c.Err); kind != apperrors.KindTimeout {
		t.Errorf("kind = %s", kind)
	}
	if c.Text() != "" {
		t.Errorf("no text should be rendered, got %q", c.Text())
	}
	if !strings.Contains(c.Message(), "too long") {
		t.Errorf("message = %q", c.Message())
	}
	wantHistory := []State{StateAwaitingInputs, StateInputsValidated, StateAnalysisRequested, StateHalted}
	if !reflect.DeepEqual(c.History, wantHistory) {
		t.Errorf("history = %v", c.History)
	}
}

func TestRunUnclassifiedAnalyzerErrorBecomesUnknown(t *testing.T) {
	svc := NewAdvisorService(&fakeAnalyzer{err: errors.New("boom")})

	c := svc.Run(context.Background(), "test", validInputs())
	if kind, ok := apperrors.AnalysisKindOf(c.Err); !ok || kind != apperrors.KindUnknown {
		t.Errorf("expected UNKNOWN analysis error, got %v", c.Err)
	}
	if strings.Contains(c.Message(), "boom") {
		t.Errorf("message leaked internal detail: %q", c.Message())
	}
}

func TestRunSuccessRendersTextUnchanged(t *testing.T) {
	svc := NewAdvisorService(&fakeAnalyzer{text: "T"})

	c := svc.Run(context.Background(), "test", validInputs())
	if c.State != StateResultDisplayed {
		t.Fatalf("state = %s", c.State)
	}
	if c.Text() != "T" {
		t.Errorf("text = %q, want %q", c.Text(), "T")
	}
	if c.Message() != "" {
		t.Errorf("message = %q, want empty", c.Message())
	}
}

func TestAnalyzeRejectsOutOfOrderCycles(t *testing.T) {
	analyzer := &fakeAnalyzer{text: "T"}
	svc := NewAdvisorService(analyzer)

	halted := svc.Begin("test", domain.Inputs{})
	if err := svc.Analyze(context.Background(), halted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for halted cycle, got %v", err)
	}

	done := svc.Run(context.Background(), "test", validInputs())
	if err := svc.Analyze(context.Background(), done); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for finished cycle, got %v", err)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, want 1", analyzer.calls)
	}
}

func TestBeginLeavesValidCycleOpen(t *testing.T) {
	svc := NewAdvisorService(&fakeAnalyzer{text: "T"})

	open := svc.Begin("test", validInputs())
	if open.Terminal() || open.State != StateInputsValidated {
		t.Errorf("valid cycle: state = %s, terminal = %v", open.State, open.Terminal())
	}
	if err := svc.Analyze(context.Background(), open); err != nil {
		t.Fatal(err)
	}
	if !open.Terminal() {
		t.Errorf("analyzed cycle not terminal: %s", open.State)
	}

	halted := svc.Begin("test", domain.Inputs{})
	if !halted.Terminal() {
		t.Errorf("halted cycle not terminal: %s", halted.State)
	}
}

func TestCyclesAreIndependent(t *testing.T) {
	svc := NewAdvisorService(&fakeAnalyzer{text: "T"})

	first := svc.Run(context.Background(), "test", domain.Inputs{Weight: "500"})
	second := svc.Run(context.Background(), "test", validInputs())

	if first.ID == second.ID {
		t.Error("cycles must have distinct ids")
	}
	if first.State != StateHalted || second.State != StateResultDisplayed {
		t.Errorf("states = %s, %s", first.State, second.State)
	}
}

func TestValidateField(t *testing.T) {
	svc := NewAdvisorService(&fakeAnalyzer{})

	msg, err := svc.ValidateField(domain.FieldWeight, "70")
	if err != nil || msg != "Weight is valid." {
		t.Errorf("ValidateField(weight, 70) = %q, %v", msg, err)
	}

	msg, err = svc.ValidateField(domain.FieldAge, "0")
	if err == nil || msg != "Age is out of range. Please adjust." {
		t.Errorf("ValidateField(age, 0) = %q, %v", msg, err)
	}
	if fields, ok := apperrors.FieldErrorsOf(err); !ok || !fields.Has("age") {
		t.Errorf("expected age field error, got %v", err)
	}
}
