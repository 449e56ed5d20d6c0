package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/companion/internal/core"
)

type PersonasRepo struct {
	db *sql.DB
}

func NewPersonasRepo(db *sql.DB) *PersonasRepo {
	return &PersonasRepo{db: db}
}

// Create enforces the per-user slot limit inside one transaction so a burst of
// saves cannot push a user past core.MaxPersonas.
func (r *PersonasRepo) Create(ctx context.Context, p core.Persona) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM personas WHERE user_id = ?`, p.UserID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count personas: %w", err)
	}
	if count >= core.MaxPersonas {
		return core.ErrPersonaLimit
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO personas (id, user_id, name, description) VALUES (?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert persona: %w", err)
	}

	return tx.Commit()
}

func (r *PersonasRepo) ByUser(ctx context.Context, userID string) ([]core.Persona, error) {
	query := `SELECT id, user_id, name, description, created_at FROM personas WHERE user_id = ? ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query personas: %w", err)
	}
	defer rows.Close()

	var personas []core.Persona
	for rows.Next() {
		var p core.Persona
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}

	return personas, rows.Err()
}

func (r *PersonasRepo) FindByName(ctx context.Context, userID, name string) (core.Persona, error) {
	query := `SELECT id, user_id, name, description, created_at FROM personas WHERE user_id = ? AND name = ?`

	var p core.Persona
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Persona{}, core.ErrPersonaNotFound
	}
	if err != nil {
		return core.Persona{}, fmt.Errorf("failed to find persona: %w", err)
	}
	return p, nil
}
