package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, month, target, updated_at
func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal
	if err := s.Scan(&g.ID, &g.Month, &g.Target, &g.UpdatedAt); err != nil {
		return nil, err
	}

	return &g, nil
}

const selectGoalColumns = `id, month, target, updated_at`

// UpsertGoal keeps one row per month; the id of an existing month is kept.
func (s *Store) UpsertGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (month, target, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (month) DO UPDATE
		SET target = EXCLUDED.target, updated_at = NOW()
		RETURNING id, updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, g.Month, g.Target).Scan(&g.ID, &g.UpdatedAt); err != nil {
		return fmt.Errorf("upserting goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoalByMonth(ctx context.Context, month string) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE month = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, month))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals ORDER BY month DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var out []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		out = append(out, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return out, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
