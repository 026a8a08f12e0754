package user

import (
	"time"

	"github.com/studylog/studylog/internal/storage"
)

// Collection is the store collection users live in.
const Collection = "users"

// User is a tracked subject with optional goal targets in minutes.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email,omitempty"`
	DailyGoalMinutes   int       `json:"daily_goal_minutes,omitempty"`
	WeeklyGoalMinutes  int       `json:"weekly_goal_minutes,omitempty"`
	MonthlyGoalMinutes int       `json:"monthly_goal_minutes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

func fromRecord(rec storage.Record) User {
	return User{
		ID:                 rec.ID(),
		Name:               rec.String("name"),
		Email:              rec.String("email"),
		DailyGoalMinutes:   rec.Int("dailyGoalMinutes"),
		WeeklyGoalMinutes:  rec.Int("weeklyGoalMinutes"),
		MonthlyGoalMinutes: rec.Int("monthlyGoalMinutes"),
		CreatedAt:          rec.CreatedAt(),
		UpdatedAt:          rec.UpdatedAt(),
	}
}
