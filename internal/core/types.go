package core

import "time"

const (
	AppName       = "companion"
	BrandName     = "GF.Chat"
	RepositoryURL = "https://github.com/sandevgo/companion"
	Version       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is the wire shape of a single chat-completion instruction.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StoredMessage is one persisted conversation entry. Rows are append-only
// and ordered by creation time.
type StoredMessage struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"is_user"`
	CreatedAt time.Time `json:"created_at"`
}

type FactCategory string

const (
	FactLocation    FactCategory = "location"
	FactInterests   FactCategory = "interests"
	FactPreferences FactCategory = "preferences"
	FactPersonal    FactCategory = "personal"
)

// FactCategories is the closed set of categories the extractor may produce,
// in the order they are rendered into the fact digest.
var FactCategories = []FactCategory{FactLocation, FactInterests, FactPreferences, FactPersonal}

func (c FactCategory) Valid() bool {
	switch c {
	case FactLocation, FactInterests, FactPreferences, FactPersonal:
		return true
	}
	return false
}

// UserFact is a single learned fact, uniquely keyed by (UserID, Category, Key).
// Re-extraction of the same key overwrites the value.
type UserFact struct {
	UserID     string       `json:"user_id"`
	Category   FactCategory `json:"category"`
	Key        string       `json:"key"`
	Value      string       `json:"value"`
	Confidence float64      `json:"confidence"`
}

// Persona is a stored custom personality descriptor. A user holds at most
// MaxPersonas of these at a time.
type Persona struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

const MaxPersonas = 5

// Lead is one captured signup row from the matchmaker funnel.
type Lead struct {
	ID             int64     `json:"id"`
	Token          string    `json:"token"`
	PreferredStyle string    `json:"preferred_style"`
	ConnectionType string    `json:"connection_type"`
	Topics         string    `json:"topics"`
	Tone           string    `json:"tone"`
	MatchName      string    `json:"match_name"`
	Language       string    `json:"language"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}
