package goal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	UpsertGoal(ctx context.Context, g *Goal) error
	GetGoalByMonth(ctx context.Context, month string) (*Goal, error)
	ListGoals(ctx context.Context) ([]*Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Set stores the target for month, replacing any previous one. An empty month
// means the current one.
func (s *Service) Set(ctx context.Context, month string, target int64) (*Goal, error) {
	month, err := s.normalizeMonth(month)
	if err != nil {
		return nil, err
	}

	if target < 0 {
		return nil, apperr.Invalid("goal target cannot be negative")
	}

	g := &Goal{Month: month, Target: target}
	if err := s.repo.UpsertGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) GetByMonth(ctx context.Context, month string) (*Goal, error) {
	month, err := s.normalizeMonth(month)
	if err != nil {
		return nil, err
	}

	return s.repo.GetGoalByMonth(ctx, month)
}

// Current returns the goal of the running month.
func (s *Service) Current(ctx context.Context) (*Goal, error) {
	return s.repo.GetGoalByMonth(ctx, MonthKey(s.now()))
}

func (s *Service) List(ctx context.Context) ([]*Goal, error) {
	return s.repo.ListGoals(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, id)
}

func (s *Service) normalizeMonth(month string) (string, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return MonthKey(s.now()), nil
	}

	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", apperr.InvalidWrap(err, "invalid month %q, expected YYYY-MM", month)
	}

	return MonthKey(t), nil
}
