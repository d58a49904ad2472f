package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"

	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
)

type fakeGenerator struct {
	calls   int
	prompts []string
	resp    *genai.GenerateContentResponse
	err     error
	block   bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	for _, p := range parts {
		if t, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(t))
		}
	}
	if f.block {
		<-ctx.Done()
		return nil, fmt.Errorf("rpc error: %w", ctx.Err())
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestGeminiAnalyzerReturnsTextVerbatim(t *testing.T) {
	raw := "  **Calories:** 105 kcal\n\n| Nutrient | Amount |\n<b>not html</b>  "
	gen := &fakeGenerator{resp: textResponse(raw)}
	a := newGeminiAnalyzer(gen, "test-model", time.Second)

	res, err := a.Analyze(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Text != raw {
		t.Errorf("text was modified:\n%q\n%q", res.Text, raw)
	}
	if gen.calls != 1 || gen.prompts[0] != "prompt" {
		t.Errorf("calls = %d, prompts = %v", gen.calls, gen.prompts)
	}
}

func TestGeminiAnalyzerJoinsTextParts(t *testing.T) {
	a := newGeminiAnalyzer(&fakeGenerator{resp: textResponse("first ", "second")}, "m", 0)

	res, err := a.Analyze(context.Background(), "p")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Text != "first second" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestGeminiAnalyzerEmptyResponse(t *testing.T) {
	responses := map[string]*genai.GenerateContentResponse{
		"nil":           nil,
		"no candidates": {},
		"no content":    {Candidates: []*genai.Candidate{{}}},
		"no text parts": {Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}}}},
	}

	for name, resp := range responses {
		t.Run(name, func(t *testing.T) {
			a := newGeminiAnalyzer(&fakeGenerator{resp: resp}, "m", 0)
			_, err := a.Analyze(context.Background(), "p")
			if kind, ok := apperrors.AnalysisKindOf(err); !ok || kind != apperrors.KindUnknown {
				t.Errorf("expected UNKNOWN analysis error, got %v", err)
			}
		})
	}
}

func TestGeminiAnalyzerTimeout(t *testing.T) {
	gen := &fakeGenerator{block: true}
	a := newGeminiAnalyzer(gen, "m", 20*time.Millisecond)

	_, err := a.Analyze(context.Background(), "p")
	kind, ok := apperrors.AnalysisKindOf(err)
	if !ok || kind != apperrors.KindTimeout {
		t.Fatalf("expected TIMEOUT, got %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", gen.calls)
	}
}

func TestGeminiAnalyzerDoesNotRetry(t *testing.T) {
	gen := &fakeGenerator{err: &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "overloaded"}}
	a := newGeminiAnalyzer(gen, "m", time.Second)

	_, err := a.Analyze(context.Background(), "p")
	if kind, _ := apperrors.AnalysisKindOf(err); kind != apperrors.KindUnavailable {
		t.Errorf("kind = %s, want UNAVAILABLE", kind)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", gen.calls)
	}
}

type timeoutNetErr struct{ timeout bool }

func (e timeoutNetErr) Error() string   { return "net failure" }
func (e timeoutNetErr) Timeout() bool   { return e.timeout }
func (e timeoutNetErr) Temporary() bool { return false }

func TestClassifyAnalysisError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.AnalysisKind
	}{
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), apperrors.KindTimeout},
		{"401", &googleapi.Error{Code: http.StatusUnauthorized}, apperrors.KindUnauthenticated},
		{"403", &googleapi.Error{Code: http.StatusForbidden}, apperrors.KindUnauthenticated},
		{"bad key", &googleapi.Error{Code: http.StatusBadRequest, Details: []interface{}{map[string]interface{}{"reason": "API_KEY_INVALID"}}}, apperrors.KindUnauthenticated},
		{"429", &googleapi.Error{Code: http.StatusTooManyRequests}, apperrors.KindUnavailable},
		{"503", &googleapi.Error{Code: http.StatusServiceUnavailable}, apperrors.KindUnavailable},
		{"504", &googleapi.Error{Code: http.StatusGatewayTimeout}, apperrors.KindTimeout},
		{"400", &googleapi.Error{Code: http.StatusBadRequest}, apperrors.KindUnknown},
		{"net timeout", fmt.Errorf("post: %w", timeoutNetErr{timeout: true}), apperrors.KindTimeout},
		{"net refused", fmt.Errorf("post: %w", timeoutNetErr{}), apperrors.KindUnavailable},
		{"blocked", errors.New("blocked: prompt: BlockReasonSafety"), apperrors.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyAnalysisError(tt.err); got != tt.want {
				t.Errorf("classifyAnalysisError(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}
