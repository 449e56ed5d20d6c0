package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sandevgo/companion/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHistory(n int) []core.StoredMessage {
	history := make([]core.StoredMessage, 0, n)
	for i := 0; i < n; i++ {
		history = append(history, core.StoredMessage{
			ID:      int64(i + 1),
			UserID:  "u1",
			Content: fmt.Sprintf("msg-%d", i+1),
			IsUser:  i%2 == 0,
		})
	}
	return history
}

func TestAssembleWindow(t *testing.T) {
	tests := []struct {
		name        string
		historyLen  int
		wantHistory int
	}{
		{name: "empty history", historyLen: 0, wantHistory: 0},
		{name: "short history", historyLen: 7, wantHistory: 7},
		{name: "exactly at window", historyLen: 15, wantHistory: 15},
		{name: "over window", historyLen: 40, wantHistory: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := makeHistory(tt.historyLen)
			messages := Assemble("hello", history, "desc", "", nil)

			require.Len(t, messages, 1+tt.wantHistory+1)
			assert.Equal(t, core.RoleSystem, messages[0].Role)
			assert.Equal(t, core.Message{Role: core.RoleUser, Content: "hello"}, messages[len(messages)-1])

			if tt.wantHistory > 0 {
				// Only the trailing entries survive, oldest first.
				first := messages[1]
				assert.Equal(t, fmt.Sprintf("msg-%d", tt.historyLen-tt.wantHistory+1), first.Content)
				last := messages[len(messages)-2]
				assert.Equal(t, fmt.Sprintf("msg-%d", tt.historyLen), last.Content)
			}
		})
	}
}

func TestAssembleRoles(t *testing.T) {
	history := []core.StoredMessage{
		{ID: 1, Content: "hi", IsUser: true},
		{ID: 2, Content: "hey you", IsUser: false},
	}
	messages := Assemble("how are you", history, "desc", "", nil)

	require.Len(t, messages, 4)
	assert.Equal(t, core.RoleUser, messages[1].Role)
	assert.Equal(t, core.RoleAssistant, messages[2].Role)
	assert.Equal(t, core.RoleUser, messages[3].Role)
}

func TestSystemPromptNoFacts(t *testing.T) {
	prompt := systemPrompt("gentle and warm", "", nil)

	assert.Contains(t, prompt, core.BrandName)
	assert.Contains(t, prompt, "Personality: gentle and warm")
	// With no facts the digest section is absent, not an empty header.
	assert.NotContains(t, prompt, factDigestHeader)
	assert.NotContains(t, prompt, "User name:")
}

func TestSystemPromptUserName(t *testing.T) {
	prompt := systemPrompt("desc", "Alex", nil)
	assert.Contains(t, prompt, "User name: Alex")
}

func TestFactDigestGrouping(t *testing.T) {
	facts := []core.UserFact{
		{Category: core.FactInterests, Key: "hobby", Value: "hiking"},
		{Category: core.FactLocation, Key: "city", Value: "Denver"},
		{Category: core.FactInterests, Key: "music", Value: "jazz"},
	}

	digest := factDigest(facts)
	lines := strings.Split(digest, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "location: city: Denver", lines[0])
	assert.Equal(t, "interests: hobby: hiking, music: jazz", lines[1])

	prompt := systemPrompt("desc", "", facts)
	assert.Contains(t, prompt, factDigestHeader)
	// Each fact appears exactly once.
	assert.Equal(t, 1, strings.Count(prompt, "city: Denver"))
	assert.Equal(t, 1, strings.Count(prompt, "hobby: hiking"))
}

func TestFactDigestEmpty(t *testing.T) {
	assert.Equal(t, "", factDigest(nil))
	assert.Equal(t, "", factDigest([]core.UserFact{}))
}
