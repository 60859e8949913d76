package domain

import "context"

// GenerationRequest is one prompt sent to the text-generation provider.
type GenerationRequest struct {
	Model       string
	Prompt      string
	Temperature *float32
	MaxTokens   int
}

// Generator is the text-generation provider. A call runs to completion or
// failure; it is never retried by the caller.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
