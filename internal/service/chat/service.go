package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/pkg/log"
)

// PersonalityResolver maps a user's personality selection to the description
// injected into the system instructions. It must never fail.
type PersonalityResolver interface {
	Resolve(ctx context.Context, userID, selection string) string
}

// FactExtractor mines a user message for personal facts after the reply has
// been computed.
type FactExtractor interface {
	ExtractAndStore(ctx context.Context, userID, message string) ([]core.UserFact, error)
}

type Service struct {
	ai        core.AIProvider
	messages  core.MessagesRepository
	facts     core.FactsRepository
	resolver  PersonalityResolver
	extractor FactExtractor
}

func NewService(
	ai core.AIProvider,
	messages core.MessagesRepository,
	facts core.FactsRepository,
	resolver PersonalityResolver,
	extractor FactExtractor,
) *Service {
	return &Service{
		ai:        ai,
		messages:  messages,
		facts:     facts,
		resolver:  resolver,
		extractor: extractor,
	}
}

type TurnRequest struct {
	UserID      string
	Message     string
	Personality string
	UserName    string
}

// Turn handles one stateless chat exchange: persist the user message, build
// the bounded context, call the model, persist the reply and kick off fact
// extraction. The returned string is the assistant reply verbatim.
func (s *Service) Turn(ctx context.Context, req TurnRequest) (string, error) {
	logger := log.FromCtx(ctx)

	if strings.TrimSpace(req.Message) == "" {
		return "", core.ErrMessageRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return "", core.ErrUserRequired
	}

	history, err := s.messages.Recent(ctx, req.UserID, historyWindow)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	if err := s.messages.Append(ctx, req.UserID, req.Message, true); err != nil {
		return "", fmt.Errorf("save user message: %w", err)
	}

	personality := s.resolver.Resolve(ctx, req.UserID, req.Personality)

	facts, err := s.facts.ByUser(ctx, req.UserID)
	if err != nil {
		// Facts are an enhancement; a broken fact store must not block the turn.
		logger.Error().Err(err).Msg("failed to load user facts")
		facts = nil
	}

	messages := Assemble(req.Message, history, personality, req.UserName, facts)
	if dbg := logger.Debug(); dbg.Enabled() {
		dbg.Int("messages", len(messages)).
			Int("prompt_tokens", promptTokens(messages)).
			Msg("assembled chat context")
	}

	reply, err := s.ai.Chat(ctx, messages, core.ChatOptions{
		Temperature: temperature,
		MaxTokens:   maxReplyTokens,
	})
	if err != nil {
		return "", fmt.Errorf("ai chat error: %w", err)
	}

	if err := s.messages.Append(ctx, req.UserID, reply.Content, false); err != nil {
		logger.Error().Err(err).Msg("failed to save assistant message")
	}

	s.extractAsync(ctx, req.UserID, req.Message)

	return reply.Content, nil
}

// extractAsync fires the fact-extraction pass without tying it to the
// request's response path. Cancellation of the originating request must not
// cancel a pass already in flight, hence context.WithoutCancel.
func (s *Service) extractAsync(ctx context.Context, userID, message string) {
	if s.extractor == nil {
		return
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		logger := log.FromCtx(bg)
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).Msg("fact extraction panicked")
			}
		}()

		if _, err := s.extractor.ExtractAndStore(bg, userID, message); err != nil {
			logger.Error().Err(err).Msg("fact extraction failed")
		}
	}()
}
