package progress

import (
	"time"

	"github.com/studylog/studylog/internal/stats"
	"github.com/studylog/studylog/internal/storage"
)

// Collection is the store collection progress entries live in.
const Collection = "progress"

// MaxSessionMinutes bounds a single entry's duration to one day.
const MaxSessionMinutes = 1440

// Difficulty rates how hard a session felt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Entry is one logged study session.
type Entry struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	TaskID       string     `json:"task_id,omitempty"`
	CompletedAt  time.Time  `json:"completed_at"`
	Minutes      int        `json:"minutes"`
	Satisfaction int        `json:"satisfaction,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	ProgressType string     `json:"progress_type,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at,omitempty"`
}

func fromRecord(rec storage.Record) Entry {
	return Entry{
		ID:           rec.ID(),
		UserID:       rec.String("userId"),
		TaskID:       rec.String("taskId"),
		CompletedAt:  rec.Time("completedAt"),
		Minutes:      rec.Int("minutes"),
		Satisfaction: rec.Int("satisfaction"),
		Difficulty:   Difficulty(rec.String("difficulty")),
		ProgressType: rec.String("progressType"),
		Notes:        rec.String("notes"),
		Tags:         rec.Strings("tags"),
		CreatedAt:    rec.CreatedAt(),
		UpdatedAt:    rec.UpdatedAt(),
	}
}

func (e Entry) activity() stats.Activity {
	return stats.Activity{
		TaskID:       e.TaskID,
		CompletedAt:  e.CompletedAt,
		Minutes:      e.Minutes,
		Satisfaction: e.Satisfaction,
		Difficulty:   string(e.Difficulty),
		ProgressType: e.ProgressType,
		Tags:         e.Tags,
	}
}
