package chat

import (
	"fmt"
	"strings"

	"github.com/sandevgo/companion/internal/core"
)

const (
	// historyWindow is part of the observable behavior: older messages are
	// silently dropped from context while remaining in the store.
	historyWindow = 15

	temperature    = 0.8
	maxReplyTokens = 300
)

const factDigestHeader = "What you know about this user:"

const preambleFormat = `You are %s, a supportive AI companion. Stay in character, keep responses concise but warm, and adapt to the chosen personality style:

- Personality: %s`

const preambleRules = `Avoid explicit or unsafe content. Keep tone consistent with the selected personality. Use light emojis only when appropriate.
Remember details from your previous conversations to make the interaction feel natural and continuous.`

// Assemble builds the ordered instruction list for one turn: a single system
// message, the trailing historyWindow entries oldest first, then the new user
// message.
func Assemble(newMessage string, history []core.StoredMessage, personality, userName string, facts []core.UserFact) []core.Message {
	messages := make([]core.Message, 0, historyWindow+2)
	messages = append(messages, core.Message{
		Role:    core.RoleSystem,
		Content: systemPrompt(personality, userName, facts),
	})

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	for _, m := range recent {
		role := core.RoleAssistant
		if m.IsUser {
			role = core.RoleUser
		}
		messages = append(messages, core.Message{Role: role, Content: m.Content})
	}

	return append(messages, core.Message{Role: core.RoleUser, Content: newMessage})
}

func systemPrompt(personality, userName string, facts []core.UserFact) string {
	var b strings.Builder
	fmt.Fprintf(&b, preambleFormat, core.BrandName, personality)
	if userName != "" {
		fmt.Fprintf(&b, "\n- User name: %s", userName)
	}
	b.WriteString("\n\n")
	b.WriteString(preambleRules)

	if digest := factDigest(facts); digest != "" {
		b.WriteString("\n\n")
		b.WriteString(factDigestHeader)
		b.WriteString("\n")
		b.WriteString(digest)
	}

	return b.String()
}

// factDigest renders one line per category: "category: key: value, key: value".
// Empty fact sets produce no digest at all, not an empty header.
func factDigest(facts []core.UserFact) string {
	if len(facts) == 0 {
		return ""
	}

	byCategory := make(map[core.FactCategory][]core.UserFact, len(core.FactCategories))
	for _, f := range facts {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	var lines []string
	for _, cat := range core.FactCategories {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		pairs := make([]string, 0, len(group))
		for _, f := range group {
			pairs = append(pairs, fmt.Sprintf("%s: %s", f.Key, f.Value))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", cat, strings.Join(pairs, ", ")))
	}

	return strings.Join(lines, "\n")
}
