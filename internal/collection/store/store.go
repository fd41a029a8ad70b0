package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/autentke/autentke/internal/collection"
)

const pgForeignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, pieces, freight, extras, created_at
func scanCollection(s scanner) (*collection.Collection, error) {
	var c collection.Collection
	if err := s.Scan(&c.ID, &c.Name, &c.Pieces, &c.Freight, &c.Extras, &c.CreatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectCollectionColumns = `id, name, pieces, freight, extras, created_at`

func (s *Store) CreateCollection(ctx context.Context, c *collection.Collection) error {
	query := `
		INSERT INTO collections (name, pieces, freight, extras, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Pieces, c.Freight, c.Extras).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

func (s *Store) GetCollection(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	query := `SELECT ` + selectCollectionColumns + ` FROM collections WHERE id = $1`

	c, err := scanCollection(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, collection.ErrNotFound
		}

		return nil, fmt.Errorf("getting collection: %w", err)
	}

	return c, nil
}

func (s *Store) ListCollections(ctx context.Context) ([]*collection.Collection, error) {
	query := `SELECT ` + selectCollectionColumns + ` FROM collections ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var out []*collection.Collection

	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateCollection(ctx context.Context, c *collection.Collection) error {
	query := `
		UPDATE collections
		SET name = $1, pieces = $2, freight = $3, extras = $4
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Pieces, c.Freight, c.Extras, c.ID)
	if err != nil {
		return fmt.Errorf("updating collection: %w", err)
	}

	return requireRow(res, collection.ErrNotFound)
}

func (s *Store) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return collection.ErrHasProducts
		}

		return fmt.Errorf("deleting collection: %w", err)
	}

	return requireRow(res, collection.ErrNotFound)
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
