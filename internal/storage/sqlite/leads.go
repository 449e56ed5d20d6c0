package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/companion/internal/core"
)

// leadSource tags every captured row so downstream tooling can tell this
// funnel apart from other intake paths.
const leadSource = "chatgpt_matchmaker"

type LeadsRepo struct {
	db *sql.DB
}

func NewLeadsRepo(db *sql.DB) *LeadsRepo {
	return &LeadsRepo{db: db}
}

// Insert stores the lead with the fixed source label and the server timestamp
// and returns the row as persisted.
func (r *LeadsRepo) Insert(ctx context.Context, lead core.Lead) (core.Lead, error) {
	query := `
		INSERT INTO leads (token, preferred_style, connection_type, topics, tone, match_name, language, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		lead.Token, lead.PreferredStyle, lead.ConnectionType, lead.Topics,
		lead.Tone, lead.MatchName, lead.Language, leadSource,
	)
	if err != nil {
		return core.Lead{}, fmt.Errorf("failed to insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Lead{}, err
	}

	var saved core.Lead
	row := r.db.QueryRowContext(ctx,
		`SELECT id, token, preferred_style, connection_type, topics, tone, match_name, language, source, created_at FROM leads WHERE id = ?`,
		id,
	)
	if err := scanLead(row, &saved); err != nil {
		return core.Lead{}, fmt.Errorf("failed to read back lead: %w", err)
	}
	return saved, nil
}

func scanLead(row *sql.Row, lead *core.Lead) error {
	return row.Scan(
		&lead.ID, &lead.Token, &lead.PreferredStyle, &lead.ConnectionType,
		&lead.Topics, &lead.Tone, &lead.MatchName, &lead.Language,
		&lead.Source, &lead.CreatedAt,
	)
}
