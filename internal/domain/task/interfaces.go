package task

import (
	"context"

	"github.com/studylog/studylog/internal/storage"
)

// RecordStore is the slice of the record store the task service uses.
type RecordStore interface {
	Add(ctx context.Context, collection string, fields map[string]any) (storage.Record, error)
	GetByID(ctx context.Context, collection, id string) (storage.Record, error)
	Find(ctx context.Context, collection string, match storage.Predicate) ([]storage.Record, error)
	Update(ctx context.Context, collection, id string, partial map[string]any) (storage.Record, error)
	Delete(ctx context.Context, collection, id string) error
	Search(ctx context.Context, collection, term string, fields ...string) ([]storage.Record, error)
}
