// Package ai defines the contracts for the external language capabilities
// the assistant relies on.
//
// Two shapes are deliberately kept apart: closed-label classification and
// open-ended generation. Handlers that parse generated output into structured
// data must treat parse failure as a recoverable condition, never as a reason
// to crash message processing.
package ai

import "context"

// Example is one labeled example handed to the classifier to steer it.
type Example struct {
	Text  string
	Label string
}

// Classifier assigns one of the candidate labels to a query.
type Classifier interface {
	Classify(ctx context.Context, query string, examples []Example, labels []string) (string, error)
}

// GenerateRequest is a single text generation call.
type GenerateRequest struct {
	Prompt           string
	Stop             []string
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// Generator produces a free-text continuation for a prompt.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
