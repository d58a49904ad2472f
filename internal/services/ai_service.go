package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"github.com/vladimiradmaev/health-advisor/internal/config"
	"github.com/vladimiradmaev/health-advisor/internal/domain"
	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
)

// contentGenerator is the part of *genai.GenerativeModel the analyzer uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyzer sends prompts to a Gemini model. It makes exactly one call per
// Analyze and never retries.
type GeminiAnalyzer struct {
	client  *genai.Client
	model   contentGenerator
	name    string
	timeout time.Duration
}

func NewGeminiAnalyzer(ctx context.Context, cfg config.GeminiConfig) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	a := newGeminiAnalyzer(client.GenerativeModel(cfg.Model), cfg.Model, cfg.Timeout)
	a.client = client
	return a, nil
}

func newGeminiAnalyzer(model contentGenerator, name string, timeout time.Duration) *GeminiAnalyzer {
	return &GeminiAnalyzer{
		model:   model,
		name:    name,
		timeout: timeout,
	}
}

// Analyze returns the model's text for prompt without altering it.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, prompt string) (*domain.AnalysisResult, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		kind := classifyAnalysisError(err)
		logger.Warn("Gemini request failed",
			"model", a.name,
			"analysis_kind", kind,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, apperrors.NewAnalysisError(kind, err)
	}

	text, ok := responseText(resp)
	if !ok {
		return nil, apperrors.NewAnalysisError(apperrors.KindUnknown, errors.New("no text content in Gemini response"))
	}

	logger.Debug("Gemini request completed", "model", a.name, "duration", time.Since(start), "chars", len(text))
	return &domain.AnalysisResult{Text: text}, nil
}

// Close releases the underlying client.
func (a *GeminiAnalyzer) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", false
	}

	var (
		b     strings.Builder
		found bool
	)
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
			found = true
		}
	}
	return b.String(), found
}

func classifyAnalysisError(err error) apperrors.AnalysisKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.KindTimeout
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Reason() == "API_KEY_INVALID" {
			return apperrors.KindUnauthenticated
		}
		if code := apiErr.HTTPCode(); code > 0 {
			return kindFromHTTPStatus(code)
		}
		if st := apiErr.GRPCStatus(); st != nil {
			return kindFromGRPCCode(st.Code())
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		for _, item := range gErr.Details {
			if strings.Contains(fmt.Sprint(item), "API_KEY_INVALID") {
				return apperrors.KindUnauthenticated
			}
		}
		return kindFromHTTPStatus(gErr.Code)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return apperrors.KindTimeout
		}
		return apperrors.KindUnavailable
	}

	return apperrors.KindUnknown
}

func kindFromHTTPStatus(code int) apperrors.AnalysisKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.KindUnauthenticated
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return apperrors.KindTimeout
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return apperrors.KindUnavailable
	}
	return apperrors.KindUnknown
}

func kindFromGRPCCode(code codes.Code) apperrors.AnalysisKind {
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		return apperrors.KindUnauthenticated
	case codes.DeadlineExceeded:
		return apperrors.KindTimeout
	case codes.Unavailable, codes.ResourceExhausted, codes.Internal:
		return apperrors.KindUnavailable
	}
	return apperrors.KindUnknown
}
