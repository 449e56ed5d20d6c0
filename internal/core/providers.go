package core

import "context"

// ChatOptions carries the sampling knobs for a single completion call.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

type AIProvider interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (Message, error)
}
