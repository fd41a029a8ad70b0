package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// scanProduct reads a product row.
// Expected column order: id, collection_id, name, photo, base_cost, markup, sale_price, archived,
// sold, buyer, buyer_contact, payment_method, channel, campaign, discount, sold_at, created_at, updated_at
func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	var (
		photo                                      sql.NullString
		salePrice                                  sql.NullInt64
		sold                                       bool
		buyer, contact, payment, channel, campaign sql.NullString
		discount                                   decimal.NullDecimal
		soldAt                                     sql.NullTime
	)

	if err := s.Scan(
		&p.ID, &p.CollectionID, &p.Name, &photo, &p.BaseCost, &p.Markup, &salePrice, &p.Archived,
		&sold, &buyer, &contact, &payment, &channel, &campaign, &discount, &soldAt,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Photo = photo.String

	if salePrice.Valid {
		p.SalePrice = &salePrice.Int64
	}

	if sold {
		p.Sale = &product.Sale{
			Buyer:         buyer.String,
			BuyerContact:  contact.String,
			PaymentMethod: payment.String,
			Channel:       channel.String,
			Campaign:      campaign.String,
			Discount:      discount.Decimal,
			SoldAt:        soldAt.Time,
		}
	}

	return &p, nil
}

const selectProductColumns = `
	id, collection_id, name, photo, base_cost, markup, sale_price, archived,
	sold, buyer, buyer_contact, payment_method, channel, campaign, discount, sold_at,
	created_at, updated_at
`

func listProducts(ctx context.Context, q queryer, query string, args ...any) ([]*product.Product, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var ps []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return ps, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const insertProduct = `
	INSERT INTO products (collection_id, name, photo, base_cost, markup, sale_price, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	RETURNING id, created_at
`

// CreateProducts inserts all products in one transaction.
func (s *Store) CreateProducts(ctx context.Context, ps []*product.Product) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, p := range ps {
		err := dbTx.QueryRowContext(ctx, insertProduct,
			p.CollectionID,
			p.Name,
			p.Photo,
			p.BaseCost,
			p.Markup,
			p.SalePrice,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating product: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Sold != nil {
		query += fmt.Sprintf(" AND sold = $%d", argIdx)

		args = append(args, *filter.Sold)
		argIdx++
	}

	if filter.Archived != nil {
		query += fmt.Sprintf(" AND archived = $%d", argIdx)

		args = append(args, *filter.Archived)
		argIdx++
	}

	if filter.CollectionID != nil {
		query += fmt.Sprintf(" AND collection_id = $%d", argIdx)

		args = append(args, *filter.CollectionID)
		argIdx++
	}

	if filter.NewestSaleFirst {
		query += " ORDER BY sold_at DESC NULLS LAST, created_at DESC"
	} else {
		query += " ORDER BY created_at DESC, name ASC"
	}

	return listProducts(ctx, s.db, query, args...)
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET name = $1, photo = $2, base_cost = $3, markup = $4, sale_price = $5, discount = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	var discount decimal.NullDecimal
	if p.Sold() {
		discount = decimal.NewNullDecimal(p.Sale.Discount)
	}

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.Photo,
		p.BaseCost,
		p.Markup,
		p.SalePrice,
		discount,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product.ErrNotFound
		}

		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

// MarkSold writes the sale fields together with the sold flag. Only an unsold
// row is updated, so of two concurrent sales the second one fails.
func (s *Store) MarkSold(ctx context.Context, p *product.Product) error {
	if p.Sale == nil {
		return fmt.Errorf("marking product %s sold: missing sale", p.ID)
	}

	query := `
		UPDATE products
		SET sold = TRUE, sale_price = $1, buyer = $2, buyer_contact = $3, payment_method = $4,
			channel = $5, campaign = $6, discount = $7, sold_at = $8, updated_at = NOW()
		WHERE id = $9 AND sold = FALSE
	`

	res, err := s.db.ExecContext(ctx, query,
		p.SalePrice,
		p.Sale.Buyer,
		nullString(p.Sale.BuyerContact),
		nullString(p.Sale.PaymentMethod),
		nullString(p.Sale.Channel),
		nullString(p.Sale.Campaign),
		p.Sale.Discount,
		p.Sale.SoldAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("marking product sold: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
		return fmt.Errorf("checking product: %w", err)
	}

	if !exists {
		return product.ErrNotFound
	}

	return product.ErrAlreadySold
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return product.ErrNotFound
	}

	return nil
}

func (s *Store) ArchiveSold(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET archived = TRUE, updated_at = NOW()
		WHERE sold = TRUE AND archived = FALSE
	`)
	if err != nil {
		return 0, fmt.Errorf("archiving sold products: %w", err)
	}

	return res.RowsAffected()
}

type batchTx struct {
	tx *sql.Tx
}

func (s *Store) BeginBatch(ctx context.Context) (product.BatchTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch tx: %w", err)
	}

	return &batchTx{tx: dbTx}, nil
}

func (b *batchTx) Commit() error   { return b.tx.Commit() }
func (b *batchTx) Rollback() error { return b.tx.Rollback() }

// ListUnsoldInCollection locks the rows it returns until the batch ends.
func (b *batchTx) ListUnsoldInCollection(ctx context.Context, collectionID uuid.UUID) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE collection_id = $1 AND sold = FALSE
		ORDER BY created_at ASC
		FOR UPDATE`

	return listProducts(ctx, b.tx, query, collectionID)
}

func (b *batchTx) UpdatePricing(ctx context.Context, id uuid.UUID, markup decimal.Decimal, salePrice int64) error {
	query := `
		UPDATE products
		SET markup = $1, sale_price = $2, updated_at = NOW()
		WHERE id = $3 AND sold = FALSE
	`

	if _, err := b.tx.ExecContext(ctx, query, markup, salePrice, id); err != nil {
		return fmt.Errorf("updating pricing: %w", err)
	}

	return nil
}
