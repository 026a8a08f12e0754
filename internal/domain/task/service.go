package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/studylog/studylog/internal/storage"
)

// Service handles task operations over one injected store.
type Service struct {
	store  RecordStore
	logger *slog.Logger
}

// NewService creates a new task service.
func NewService(store RecordStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateRequest defines task creation inputs.
type CreateRequest struct {
	UserID           string
	Title            string
	Description      string
	Subject          string
	Priority         Priority
	DueDate          *time.Time
	EstimatedMinutes int
	Tags             []string
}

// UpdateRequest defines a partial task update; nil fields are untouched.
type UpdateRequest struct {
	Title            *string
	Description      *string
	Subject          *string
	Status           *Status
	Priority         *Priority
	DueDate          *time.Time
	EstimatedMinutes *int
	Tags             []string
}

// Create validates and stores a new task in todo state.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}
	if req.EstimatedMinutes < 0 {
		return nil, fmt.Errorf("%w: negative estimate", ErrInvalidInput)
	}

	fields := map[string]any{
		"userId":           req.UserID,
		"title":            req.Title,
		"description":      req.Description,
		"subject":          req.Subject,
		"status":           string(StatusTodo),
		"priority":         string(priority),
		"estimatedMinutes": req.EstimatedMinutes,
		"tags":             req.Tags,
	}
	if req.DueDate != nil {
		fields["dueDate"] = req.DueDate.Format(time.RFC3339Nano)
	}

	rec, err := s.store.Add(ctx, Collection, fields)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	t := fromRecord(rec)
	return &t, nil
}

// Get returns a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	rec, err := s.store.GetByID(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	t := fromRecord(rec)
	return &t, nil
}

// List returns the user's tasks in creation order. An empty userID lists
// every task.
func (s *Service) List(ctx context.Context, userID string) ([]Task, error) {
	records, err := s.store.Find(ctx, Collection, func(rec storage.Record) bool {
		return userID == "" || rec.String("userId") == userID
	})
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	tasks := make([]Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, fromRecord(rec))
	}
	return tasks, nil
}

// Update applies a partial update to an existing task.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Task, error) {
	partial := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		partial["title"] = *req.Title
	}
	if req.Description != nil {
		partial["description"] = *req.Description
	}
	if req.Subject != nil {
		partial["subject"] = *req.Subject
	}
	if req.Status != nil {
		if !req.Status.valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		partial["status"] = string(*req.Status)
	}
	if req.Priority != nil {
		if !req.Priority.valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *req.Priority)
		}
		partial["priority"] = string(*req.Priority)
	}
	if req.DueDate != nil {
		partial["dueDate"] = req.DueDate.Format(time.RFC3339Nano)
	}
	if req.EstimatedMinutes != nil {
		if *req.EstimatedMinutes < 0 {
			return nil, fmt.Errorf("%w: negative estimate", ErrInvalidInput)
		}
		partial["estimatedMinutes"] = *req.EstimatedMinutes
	}
	if req.Tags != nil {
		partial["tags"] = req.Tags
	}

	rec, err := s.store.Update(ctx, Collection, id, partial)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}
	t := fromRecord(rec)
	return &t, nil
}

// Complete marks a task done.
func (s *Service) Complete(ctx context.Context, id string) (*Task, error) {
	done := StatusDone
	return s.Update(ctx, id, UpdateRequest{Status: &done})
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// Search matches term against title, description and subject,
// case-insensitively, restricted to the user's tasks when userID is set.
func (s *Service) Search(ctx context.Context, userID, term string) ([]Task, error) {
	records, err := s.store.Search(ctx, Collection, term, "title", "description", "subject")
	if err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}
	tasks := make([]Task, 0, len(records))
	for _, rec := range records {
		if userID != "" && rec.String("userId") != userID {
			continue
		}
		tasks = append(tasks, fromRecord(rec))
	}
	return tasks, nil
}

// Exists reports whether a task id refers to a stored task. Other domains
// use this to validate cross-collection references before persisting them.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.store.GetByID(ctx, Collection, id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking task: %w", err)
	}
	return true, nil
}
