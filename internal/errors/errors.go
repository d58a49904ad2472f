package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeExternal      ErrorType = "external_api"
	ErrorTypeTimeout       ErrorType = "timeout"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInternal      ErrorType = "internal"
)

// AnalysisKind classifies a failed call to the generative model.
type AnalysisKind string

const (
	KindUnauthenticated AnalysisKind = "UNAUTHENTICATED"
	KindUnavailable     AnalysisKind = "UNAVAILABLE"
	KindTimeout         AnalysisKind = "TIMEOUT"
	KindUnknown         AnalysisKind = "UNKNOWN"
)

const (
	CodeValidation        = "VALIDATION"
	CodeMissingCredential = "MISSING_CREDENTIAL"
	CodeInvalidConfig     = "INVALID_CONFIG"
	CodeInternal          = "INTERNAL"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

func caller(skip int) string {
	_, file, line, _ := runtime.Caller(skip + 1)
	return fmt.Sprintf("%s:%d", file, line)
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  caller(1),
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   caller(1),
		Context:  make(map[string]interface{}),
	}
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the collected set of rejected fields for one interaction.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fe {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (fe FieldErrors) Has(field string) bool {
	for _, f := range fe {
		if f.Field == field {
			return true
		}
	}
	return false
}

// NewValidationError wraps rejected fields into a validation AppError.
func NewValidationError(fields FieldErrors) *AppError {
	e := &AppError{
		Type:     ErrorTypeValidation,
		Code:     CodeValidation,
		Message:  "one or more inputs are invalid",
		Internal: fields,
		Source:   caller(1),
		Context:  make(map[string]interface{}),
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return e.WithContext("fields", strings.Join(names, ","))
}

// FieldErrorsOf extracts the rejected fields from a validation error.
func FieldErrorsOf(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// NewAnalysisError wraps a failed model call. Timeouts get their own error type
// so the handler can tell them apart in logs.
func NewAnalysisError(kind AnalysisKind, err error) *AppError {
	errorType := ErrorTypeExternal
	if kind == KindTimeout {
		errorType = ErrorTypeTimeout
	}
	return &AppError{
		Type:     errorType,
		Code:     string(kind),
		Message:  "analysis request failed",
		Internal: err,
		Source:   caller(1),
		Context:  map[string]interface{}{"analysis_kind": string(kind)},
	}
}

// AnalysisKindOf returns the kind of an analysis error.
func AnalysisKindOf(err error) (AnalysisKind, bool) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "", false
	}
	if appErr.Type != ErrorTypeExternal && appErr.Type != ErrorTypeTimeout {
		return "", false
	}
	switch kind := AnalysisKind(appErr.Code); kind {
	case KindUnauthenticated, KindUnavailable, KindTimeout, KindUnknown:
		return kind, true
	}
	return "", false
}

// NewConfigurationError reports a startup configuration problem.
func NewConfigurationError(code, message string) *AppError {
	e := New(ErrorTypeConfiguration, code, message)
	e.Source = caller(1)
	return e
}

func NewInternalError(err error) *AppError {
	e := Wrap(err, ErrorTypeInternal, CodeInternal, "Internal server error")
	e.Source = caller(1)
	return e
}

// UserMessage renders err as a short message that is safe to show an end user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	if fields, ok := FieldErrorsOf(err); ok {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, f.Message)
		}
		return strings.Join(msgs, " ")
	}

	if kind, ok := AnalysisKindOf(err); ok {
		switch kind {
		case KindUnauthenticated:
			return "The analysis service rejected our credentials. Please contact the operator."
		case KindUnavailable:
			return "The analysis service is unavailable right now. Please try again later."
		case KindTimeout:
			return "The analysis took too long and was stopped. Please try again."
		default:
			return "The analysis could not be completed. Please try again."
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Type == ErrorTypeConfiguration {
		return "The service is not configured. Please contact the operator."
	}
	return "Something went wrong. Please try again."
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation:
		h.logger.InfoContext(ctx, "Validation error", err.LogFields()...)
	case ErrorTypeExternal, ErrorTypeTimeout:
		h.logger.WarnContext(ctx, "Analysis error", err.LogFields()...)
	case ErrorTypeConfiguration, ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}
