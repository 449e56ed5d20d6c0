package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/pkg/log"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) Append(ctx context.Context, userID, content string, isUser bool) error {
	query := `INSERT INTO messages (user_id, content, is_user) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, content, isUser); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *MessagesRepo) Recent(ctx context.Context, userID string, limit int) ([]core.StoredMessage, error) {
	// Fetch the LAST 'limit' messages by ordering DESC
	query := `SELECT id, user_id, content, is_user, created_at FROM messages WHERE user_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.StoredMessage
	for rows.Next() {
		var msg core.StoredMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Content, &msg.IsUser, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returned messages newest first; reverse back to chronological
	// order for the model context.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Msg("loaded history messages")
	return messages, nil
}
