package task

import (
	"time"

	"github.com/studylog/studylog/internal/storage"
)

// Collection is the store collection tasks live in.
const Collection = "tasks"

// Status represents the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority represents task priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of study work.
type Task struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Subject          string     `json:"subject,omitempty"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
}

func fromRecord(rec storage.Record) Task {
	t := Task{
		ID:               rec.ID(),
		UserID:           rec.String("userId"),
		Title:            rec.String("title"),
		Description:      rec.String("description"),
		Subject:          rec.String("subject"),
		Status:           Status(rec.String("status")),
		Priority:         Priority(rec.String("priority")),
		EstimatedMinutes: rec.Int("estimatedMinutes"),
		Tags:             rec.Strings("tags"),
		CreatedAt:        rec.CreatedAt(),
		UpdatedAt:        rec.UpdatedAt(),
	}
	if due := rec.Time("dueDate"); !due.IsZero() {
		t.DueDate = &due
	}
	return t
}
