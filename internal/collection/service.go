package collection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/textnorm"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=collection
type Repository interface {
	CreateCollection(ctx context.Context, c *Collection) error
	GetCollection(ctx context.Context, id uuid.UUID) (*Collection, error)
	ListCollections(ctx context.Context) ([]*Collection, error)
	UpdateCollection(ctx context.Context, c *Collection) error
	DeleteCollection(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name    string
	Pieces  int
	Freight int64
	Extras  int64
}

func (p Params) validate() error {
	if p.Name == "" {
		return apperr.Invalid("collection name is required")
	}

	if p.Pieces < 0 {
		return apperr.Invalid("piece count cannot be negative")
	}

	if p.Freight < 0 || p.Extras < 0 {
		return apperr.Invalid("freight and extras cannot be negative")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Collection, error) {
	params.Name = textnorm.ProductName(params.Name)
	if err := params.validate(); err != nil {
		return nil, err
	}

	c := &Collection{
		Name:    params.Name,
		Pieces:  params.Pieces,
		Freight: params.Freight,
		Extras:  params.Extras,
	}
	if err := s.repo.CreateCollection(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Collection, error) {
	return s.repo.GetCollection(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Collection, error) {
	return s.repo.ListCollections(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Collection, error) {
	params.Name = textnorm.ProductName(params.Name)
	if err := params.validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = params.Name
	c.Pieces = params.Pieces
	c.Freight = params.Freight
	c.Extras = params.Extras

	if err := s.repo.UpdateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("updating collection %s: %w", id, err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCollection(ctx, id)
}
