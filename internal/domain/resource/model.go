package resource

import (
	"time"

	"github.com/studylog/studylog/internal/storage"
)

// Collection is the store collection resources live in.
const Collection = "resources"

// Kind classifies a learning resource.
type Kind string

const (
	KindArticle Kind = "article"
	KindVideo   Kind = "video"
	KindBook    Kind = "book"
	KindCourse  Kind = "course"
	KindOther   Kind = "other"
)

func (k Kind) valid() bool {
	switch k {
	case KindArticle, KindVideo, KindBook, KindCourse, KindOther:
		return true
	}
	return false
}

// Resource is a learning material, optionally attached to a task.
type Resource struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Kind      Kind      `json:"kind"`
	Notes     string    `json:"notes,omitempty"`
	TaskID    string    `json:"task_id,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func fromRecord(rec storage.Record) Resource {
	return Resource{
		ID:        rec.ID(),
		UserID:    rec.String("userId"),
		Title:     rec.String("title"),
		URL:       rec.String("url"),
		Kind:      Kind(rec.String("kind")),
		Notes:     rec.String("notes"),
		TaskID:    rec.String("taskId"),
		Completed: rec.Bool("completed"),
		CreatedAt: rec.CreatedAt(),
		UpdatedAt: rec.UpdatedAt(),
	}
}
