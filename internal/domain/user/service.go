package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studylog/studylog/internal/stats"
	"github.com/studylog/studylog/internal/storage"
)

// RecordStore is the slice of the record store the user service uses.
type RecordStore interface {
	Add(ctx context.Context, collection string, fields map[string]any) (storage.Record, error)
	GetByID(ctx context.Context, collection, id string) (storage.Record, error)
	Find(ctx context.Context, collection string, match storage.Predicate) ([]storage.Record, error)
	Update(ctx context.Context, collection, id string, partial map[string]any) (storage.Record, error)
	Delete(ctx context.Context, collection, id string) error
}

// Service handles user operations.
type Service struct {
	store  RecordStore
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(store RecordStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateRequest defines user creation inputs.
type CreateRequest struct {
	Name  string
	Email string
}

// Create validates and stores a new user with no goals set.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	rec, err := s.store.Add(ctx, Collection, map[string]any{
		"name":               req.Name,
		"email":              req.Email,
		"dailyGoalMinutes":   0,
		"weeklyGoalMinutes":  0,
		"monthlyGoalMinutes": 0,
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	u := fromRecord(rec)
	return &u, nil
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	rec, err := s.store.GetByID(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u := fromRecord(rec)
	return &u, nil
}

// List returns all users in creation order.
func (s *Service) List(ctx context.Context) ([]User, error) {
	records, err := s.store.Find(ctx, Collection, nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]User, 0, len(records))
	for _, rec := range records {
		users = append(users, fromRecord(rec))
	}
	return users, nil
}

// SetGoals replaces the user's goal targets. Negative targets are invalid;
// zero clears a goal.
func (s *Service) SetGoals(ctx context.Context, id string, targets stats.GoalTargets) (*User, error) {
	if targets.DailyMinutes < 0 || targets.WeeklyMinutes < 0 || targets.MonthlyMinutes < 0 {
		return nil, fmt.Errorf("%w: goal targets must not be negative", ErrInvalidInput)
	}

	rec, err := s.store.Update(ctx, Collection, id, map[string]any{
		"dailyGoalMinutes":   targets.DailyMinutes,
		"weeklyGoalMinutes":  targets.WeeklyMinutes,
		"monthlyGoalMinutes": targets.MonthlyMinutes,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("setting goals: %w", err)
	}
	u := fromRecord(rec)
	return &u, nil
}

// Targets returns the user's goal targets for goal evaluation.
func (s *Service) Targets(ctx context.Context, id string) (stats.GoalTargets, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return stats.GoalTargets{}, err
	}
	return stats.GoalTargets{
		DailyMinutes:   u.DailyGoalMinutes,
		WeeklyMinutes:  u.WeeklyGoalMinutes,
		MonthlyMinutes: u.MonthlyGoalMinutes,
	}, nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
