package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/product"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type ProductCreator interface {
	CreateMany(ctx context.Context, items []product.CreateParams) ([]*product.Product, error)
}

type Service struct {
	parser   Parser
	products ProductCreator
}

func NewService(parser Parser, products ProductCreator) *Service {
	return &Service{parser: parser, products: products}
}

type Result struct {
	Lines    int `json:"lines"`
	Products int `json:"products"`
}

// Import parses the whole list and then creates every listed product in one
// transaction: either the full list goes in or the collection is left
// untouched.
func (s *Service) Import(ctx context.Context, collectionID uuid.UUID, r io.Reader) (*Result, error) {
	lines, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	items := make([]product.CreateParams, len(lines))
	for i, l := range lines {
		items[i] = product.CreateParams{
			CollectionID: collectionID,
			Name:         l.Name,
			BaseCost:     l.Cost,
			Quantity:     l.Quantity,
		}
	}

	created, err := s.products.CreateMany(ctx, items)
	if err != nil {
		var itemErr *product.ItemError
		if errors.As(err, &itemErr) {
			return nil, fmt.Errorf("row %d: %w", lines[itemErr.Index].Row, itemErr.Err)
		}

		return nil, fmt.Errorf("importing packing list: %w", err)
	}

	res := &Result{Lines: len(lines), Products: len(created)}

	slog.InfoContext(ctx, "packing list imported",
		"collection_id", collectionID,
		"lines", res.Lines,
		"products", res.Products)

	return res, nil
}
