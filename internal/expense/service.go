package expense

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/textnorm"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type ListFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
}

type CreateParams struct {
	Description string
	Amount      int64
	Category    string
	// SpentAt defaults to now.
	SpentAt time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	params.Description = textnorm.Label(params.Description)
	params.Category = textnorm.Label(params.Category)

	if params.Description == "" {
		return nil, apperr.Invalid("expense description is required")
	}

	if params.Amount < 0 {
		return nil, apperr.Invalid("expense amount cannot be negative")
	}

	if params.Category == "" {
		params.Category = CategoryOperational
	}

	if params.SpentAt.IsZero() {
		params.SpentAt = s.now()
	}

	e := &Expense{
		Description: params.Description,
		Amount:      params.Amount,
		Category:    params.Category,
		SpentAt:     params.SpentAt,
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperr.Invalid("end date is before start date")
	}

	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}
