package domain

import "context"

// Analyzer sends a prompt to the generative model and returns its text.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (*AnalysisResult, error)
}
