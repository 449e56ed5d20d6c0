package chat

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/companion/internal/core"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// promptTokens estimates the token footprint of an assembled context. Used for
// debug logging only; returns 0 when the encoding cannot be loaded.
func promptTokens(messages []core.Message) int {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})
	if tk == nil {
		return 0
	}

	total := 0
	for _, m := range messages {
		total += len(tk.Encode(m.Content, nil, nil))
	}
	return total
}
