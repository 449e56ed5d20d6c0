package core

import "context"

type MessagesRepository interface {
	Append(ctx context.Context, userID, content string, isUser bool) error
	// Recent returns up to limit trailing messages for the user, oldest first.
	Recent(ctx context.Context, userID string, limit int) ([]StoredMessage, error)
}

type FactsRepository interface {
	// Upsert inserts the fact or overwrites the value of an existing fact with
	// the same (UserID, Category, Key). Last write wins.
	Upsert(ctx context.Context, fact UserFact) error
	ByUser(ctx context.Context, userID string) ([]UserFact, error)
}

type PersonasRepository interface {
	// Create stores a new custom descriptor. Returns ErrPersonaLimit when the
	// user already holds MaxPersonas descriptors; the store is left unchanged.
	Create(ctx context.Context, p Persona) error
	ByUser(ctx context.Context, userID string) ([]Persona, error)
	// FindByName returns ErrPersonaNotFound when no descriptor matches.
	FindByName(ctx context.Context, userID, name string) (Persona, error)
}

type LeadsRepository interface {
	Insert(ctx context.Context, lead Lead) (Lead, error)
}
