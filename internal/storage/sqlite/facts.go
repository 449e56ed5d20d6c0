package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/companion/internal/core"
)

type FactsRepo struct {
	db *sql.DB
}

func NewFactsRepo(db *sql.DB) *FactsRepo {
	return &FactsRepo{db: db}
}

// Upsert is last-write-wins on (user_id, fact_category, fact_key); no history
// of prior values is kept.
func (r *FactsRepo) Upsert(ctx context.Context, fact core.UserFact) error {
	query := `
		INSERT INTO user_facts (user_id, fact_category, fact_key, fact_value, confidence)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, fact_category, fact_key)
		DO UPDATE SET fact_value = excluded.fact_value, confidence = excluded.confidence, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, fact.UserID, string(fact.Category), fact.Key, fact.Value, fact.Confidence)
	if err != nil {
		return fmt.Errorf("failed to upsert fact: %w", err)
	}
	return nil
}

func (r *FactsRepo) ByUser(ctx context.Context, userID string) ([]core.UserFact, error) {
	query := `SELECT user_id, fact_category, fact_key, fact_value, confidence FROM user_facts WHERE user_id = ? ORDER BY fact_category, fact_key`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer rows.Close()

	var facts []core.UserFact
	for rows.Next() {
		var f core.UserFact
		var category string
		if err := rows.Scan(&f.UserID, &category, &f.Key, &f.Value, &f.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		f.Category = core.FactCategory(category)
		facts = append(facts, f)
	}

	return facts, rows.Err()
}
