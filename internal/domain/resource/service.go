package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studylog/studylog/internal/storage"
)

// Service handles learning-resource operations.
type Service struct {
	store  RecordStore
	tasks  TaskDirectory
	logger *slog.Logger
}

// NewService creates a new resource service. tasks may be nil when task
// references are not used.
func NewService(store RecordStore, tasks TaskDirectory, logger *slog.Logger) *Service {
	return &Service{store: store, tasks: tasks, logger: logger}
}

// CreateRequest defines resource creation inputs.
type CreateRequest struct {
	UserID string
	Title  string
	URL    string
	Kind   Kind
	Notes  string
	TaskID string
}

// UpdateRequest defines a partial resource update; nil fields are untouched.
type UpdateRequest struct {
	Title     *string
	URL       *string
	Kind      *Kind
	Notes     *string
	Completed *bool
}

// Create validates and stores a new resource.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Resource, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	kind := req.Kind
	if kind == "" {
		kind = KindOther
	}
	if !kind.valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
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

	rec, err := s.store.Add(ctx, Collection, map[string]any{
		"userId":    req.UserID,
		"title":     req.Title,
		"url":       req.URL,
		"kind":      string(kind),
		"notes":     req.Notes,
		"taskId":    req.TaskID,
		"completed": false,
	})
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	res := fromRecord(rec)
	return &res, nil
}

// Get returns a resource by ID.
func (s *Service) Get(ctx context.Context, id string) (*Resource, error) {
	rec, err := s.store.GetByID(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	res := fromRecord(rec)
	return &res, nil
}

// List returns the user's resources in creation order.
func (s *Service) List(ctx context.Context, userID string) ([]Resource, error) {
	records, err := s.store.Find(ctx, Collection, func(rec storage.Record) bool {
		return userID == "" || rec.String("userId") == userID
	})
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	resources := make([]Resource, 0, len(records))
	for _, rec := range records {
		resources = append(resources, fromRecord(rec))
	}
	return resources, nil
}

// Update applies a partial update to an existing resource.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error) {
	partial := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		partial["title"] = *req.Title
	}
	if req.URL != nil {
		partial["url"] = *req.URL
	}
	if req.Kind != nil {
		if !req.Kind.valid() {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, *req.Kind)
		}
		partial["kind"] = string(*req.Kind)
	}
	if req.Notes != nil {
		partial["notes"] = *req.Notes
	}
	if req.Completed != nil {
		partial["completed"] = *req.Completed
	}

	rec, err := s.store.Update(ctx, Collection, id, partial)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("updating resource: %w", err)
	}
	res := fromRecord(rec)
	return &res, nil
}

// Delete removes a resource.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("deleting resource: %w", err)
	}
	return nil
}

// Search matches term against title, notes and url, case-insensitively.
func (s *Service) Search(ctx context.Context, userID, term string) ([]Resource, error) {
	records, err := s.store.Search(ctx, Collection, term, "title", "notes", "url")
	if err != nil {
		return nil, fmt.Errorf("searching resources: %w", err)
	}
	resources := make([]Resource, 0, len(records))
	for _, rec := range records {
		if userID != "" && rec.String("userId") != userID {
			continue
		}
		resources = append(resources, fromRecord(rec))
	}
	return resources, nil
}
