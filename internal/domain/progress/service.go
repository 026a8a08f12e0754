package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studylog/studylog/internal/stats"
	"github.com/studylog/studylog/internal/storage"
)

// Service handles progress entries and exposes the derived statistics.
type Service struct {
	store      RecordStore
	tasks      TaskDirectory
	goals      GoalSource
	aggregator *stats.Aggregator
	logger     *slog.Logger
}

// NewService creates a new progress service. tasks and goals may be nil
// when task references or goal evaluation are not used.
func NewService(store RecordStore, tasks TaskDirectory, goals GoalSource, aggregator *stats.Aggregator, logger *slog.Logger) *Service {
	if aggregator == nil {
		aggregator = stats.New()
	}
	return &Service{
		store:      store,
		tasks:      tasks,
		goals:      goals,
		aggregator: aggregator,
		logger:     logger,
	}
}

// LogRequest defines inputs for logging one study session.
type LogRequest struct {
	UserID       string
	TaskID       string
	CompletedAt  time.Time // zero means now
	Minutes      int
	Satisfaction int // 0 = unrated, otherwise 1-5
	Difficulty   Difficulty
	ProgressType string
	Notes        string
	Tags         []string
}

// Log validates and stores one study session.
func (s *Service) Log(ctx context.Context, req LogRequest) (*Entry, error) {
	if req.Minutes < 0 || req.Minutes > MaxSessionMinutes {
		return nil, fmt.Errorf("%w: minutes must be between 0 and %d", ErrInvalidInput, MaxSessionMinutes)
	}
	if req.Satisfaction < 0 || req.Satisfaction > 5 {
		return nil, fmt.Errorf("%w: satisfaction must be between 1 and 5", ErrInvalidInput)
	}
	if req.Difficulty != "" && !req.Difficulty.valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, req.Difficulty)
	}
	if req.TaskID != "" && s.tasks != nil {
		ok, err := s.tasks.Exists(ctx, req.TaskID)
		if err != nil {
			return nil, fmt.Errorf("checking task reference: %w", err)
		}
		if !ok {
			return nil, ErrUnknownTask
		}
	}

	completedAt := req.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	rec, err := s.store.Add(ctx, Collection, map[string]any{
		"userId":       req.UserID,
		"taskId":       req.TaskID,
		"completedAt":  completedAt.Format(time.RFC3339Nano),
		"minutes":      req.Minutes,
		"satisfaction": req.Satisfaction,
		"difficulty":   string(req.Difficulty),
		"progressType": req.ProgressType,
		"notes":        req.Notes,
		"tags":         req.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("logging progress: %w", err)
	}
	entry := fromRecord(rec)
	return &entry, nil
}

// Get returns a progress entry by ID.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	rec, err := s.store.GetByID(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting progress entry: %w", err)
	}
	entry := fromRecord(rec)
	return &entry, nil
}

// List returns the user's progress entries in the order they were logged.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	records, err := s.store.Find(ctx, Collection, func(rec storage.Record) bool {
		return userID == "" || rec.String("userId") == userID
	})
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, fromRecord(rec))
	}
	return entries, nil
}

// Delete removes a progress entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting progress entry: %w", err)
	}
	return nil
}

// DeleteForTask removes every entry referencing the task and reports how
// many were removed. Used when a task is deleted.
func (s *Service) DeleteForTask(ctx context.Context, taskID string) (int, error) {
	n, err := s.store.DeleteMany(ctx, Collection, func(rec storage.Record) bool {
		return rec.String("taskId") == taskID
	})
	if err != nil {
		return 0, fmt.Errorf("deleting progress for task %s: %w", taskID, err)
	}
	return n, nil
}

// Summary computes the full statistics surface for one user.
func (s *Service) Summary(ctx context.Context, userID string) (*stats.Summary, error) {
	activities, err := s.activities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Summarize(activities), nil
}

// Heatmap computes the activity heatmap for the window of days ending today.
func (s *Service) Heatmap(ctx context.Context, userID string, days int) ([]stats.HeatmapEntry, error) {
	activities, err := s.activities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Heatmap(activities, days), nil
}

// Goals evaluates the user's goal targets against the current day, week
// and month.
func (s *Service) Goals(ctx context.Context, userID string) (stats.GoalReport, error) {
	if s.goals == nil {
		return stats.GoalReport{}, nil
	}
	targets, err := s.goals.Targets(ctx, userID)
	if err != nil {
		return stats.GoalReport{}, fmt.Errorf("loading goal targets: %w", err)
	}
	activities, err := s.activities(ctx, userID)
	if err != nil {
		return stats.GoalReport{}, err
	}
	return s.aggregator.GoalProgress(activities, targets), nil
}

func (s *Service) activities(ctx context.Context, userID string) ([]stats.Activity, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	activities := make([]stats.Activity, 0, len(entries))
	for _, entry := range entries {
		activities = append(activities, entry.activity())
	}
	return activities, nil
}
