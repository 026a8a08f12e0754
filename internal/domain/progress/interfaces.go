package progress

import (
	"context"

	"github.com/studylog/studylog/internal/stats"
	"github.com/studylog/studylog/internal/storage"
)

// RecordStore is the slice of the record store the progress service uses.
type RecordStore interface {
	Add(ctx context.Context, collection string, fields map[string]any) (storage.Record, error)
	GetByID(ctx context.Context, collection, id string) (storage.Record, error)
	Find(ctx context.Context, collection string, match storage.Predicate) ([]storage.Record, error)
	Delete(ctx context.Context, collection, id string) error
	DeleteMany(ctx context.Context, collection string, match storage.Predicate) (int, error)
}

// TaskDirectory validates task references before they are persisted.
type TaskDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// GoalSource provides a user's goal targets.
type GoalSource interface {
	Targets(ctx context.Context, userID string) (stats.GoalTargets, error)
}
