package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/pkg/log"
)

const (
	// factConfidence is assigned to every extracted fact; the extractor does
	// not grade individual triples.
	factConfidence = 0.8

	extractionTemperature = 0.2
	extractionMaxTokens   = 300
)

// Extractor mines a single user message for structured personal facts and
// upserts them into the fact store. It is a best-effort enhancement: malformed
// model output stores nothing and surfaces no error.
type Extractor struct {
	ai   core.AIProvider
	repo core.FactsRepository
}

func NewExtractor(ai core.AIProvider, repo core.FactsRepository) *Extractor {
	return &Extractor{ai: ai, repo: repo}
}

// ExtractAndStore runs one extraction pass. Model-output problems are a
// silent no-op; only transport and store failures come back as errors.
func (e *Extractor) ExtractAndStore(ctx context.Context, userID, message string) ([]core.UserFact, error) {
	logger := log.FromCtx(ctx)

	const systemPrompt = "You are a fact extraction system. Output only valid JSON."
	resp, err := e.ai.Chat(ctx, []core.Message{
		{Role: core.RoleSystem, Content: systemPrompt},
		{Role: core.RoleUser, Content: buildExtractionPrompt(message)},
	}, core.ChatOptions{Temperature: extractionTemperature, MaxTokens: extractionMaxTokens})
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	triples, ok := parseExtractionResponse(resp.Content)
	if !ok {
		logger.Debug().Str("content", resp.Content).Msg("discarding malformed extraction output")
		return nil, nil
	}

	stored := make([]core.UserFact, 0, len(triples))
	for _, t := range triples {
		fact, ok := t.toFact(userID)
		if !ok {
			continue
		}
		if err := e.repo.Upsert(ctx, fact); err != nil {
			return stored, fmt.Errorf("upsert fact %q: %w", fact.Key, err)
		}
		logger.Info().Str("category", string(fact.Category)).Str("key", fact.Key).Msg("fact extracted")
		stored = append(stored, fact)
	}

	return stored, nil
}

type extractedTriple struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// toFact validates one triple. Partial or off-enum entries are skipped
// individually rather than aborting the batch.
func (t extractedTriple) toFact(userID string) (core.UserFact, bool) {
	category := core.FactCategory(strings.ToLower(strings.TrimSpace(t.Category)))
	key := strings.TrimSpace(t.Key)
	value := strings.TrimSpace(t.Value)

	if !category.Valid() || key == "" || value == "" {
		return core.UserFact{}, false
	}

	return core.UserFact{
		UserID:     userID,
		Category:   category,
		Key:        key,
		Value:      value,
		Confidence: factConfidence,
	}, true
}

func buildExtractionPrompt(message string) string {
	return fmt.Sprintf(
		`Extract personal facts the user states about themselves. Output format: JSON array of objects {category, key, value}. Categories: [location, interests, preferences, personal]. Rules: 1. Ignore greetings and small talk. 2. Use short lowercase keys (e.g. city, hobby). 3. Output the JSON array only, no prose. Output [] when there is nothing to extract. Message: %s`,
		message,
	)
}

func parseExtractionResponse(content string) ([]extractedTriple, bool) {
	jsonStr := extractJSONArray(content)
	if jsonStr == "" {
		return nil, false
	}

	var triples []extractedTriple
	if err := json.Unmarshal([]byte(jsonStr), &triples); err != nil {
		return nil, false
	}

	return triples, true
}

// extractJSONArray tolerates prose around the array in the model output.
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(content[start:], "]")
	if end == -1 {
		return ""
	}

	return content[start : start+end+1]
}
