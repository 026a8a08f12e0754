package stats

import "time"

// Activity is the slice of a progress record the aggregator consumes: a
// completion timestamp, a duration in minutes, and optional qualitative
// fields. Range validation (minutes, satisfaction) belongs to the domain
// layer that produces these.
type Activity struct {
	TaskID       string
	CompletedAt  time.Time
	Minutes      int
	Satisfaction int // 1-5, 0 when unrated
	Difficulty   string
	ProgressType string
	Tags         []string
}

// DayBucket aggregates one calendar day.
type DayBucket struct {
	Date              string  `json:"date"`
	TimeSpent         int     `json:"timeSpent"`
	Sessions          int     `json:"sessions"`
	SatisfactionSum   int     `json:"satisfactionSum"`
	SatisfactionCount int     `json:"satisfactionCount"`
	AvgSatisfaction   float64 `json:"avgSatisfaction"`
}

// WeekBucket aggregates one simplified week (see SimplifiedWeek).
type WeekBucket struct {
	Week              string  `json:"week"`
	TimeSpent         int     `json:"timeSpent"`
	Sessions          int     `json:"sessions"`
	SatisfactionSum   int     `json:"satisfactionSum"`
	SatisfactionCount int     `json:"satisfactionCount"`
	AvgSatisfaction   float64 `json:"avgSatisfaction"`
}

// MonthBucket aggregates one calendar month.
type MonthBucket struct {
	Month             string  `json:"month"`
	TimeSpent         int     `json:"timeSpent"`
	Sessions          int     `json:"sessions"`
	SatisfactionSum   int     `json:"satisfactionSum"`
	SatisfactionCount int     `json:"satisfactionCount"`
	AvgSatisfaction   float64 `json:"avgSatisfaction"`
}

// Summary is the full statistics surface consumers read. All maps are
// non-nil even for empty input, so callers never special-case "no data".
type Summary struct {
	TotalRecords        int                     `json:"totalRecords"`
	TotalTimeSpent      int                     `json:"totalTimeSpent"`
	AverageTimeSpent    float64                 `json:"averageTimeSpent"`
	AverageSatisfaction float64                 `json:"averageSatisfaction"`
	ByDifficulty        map[string]int          `json:"byDifficulty"`
	BySatisfaction      map[int]int             `json:"bySatisfaction"`
	ByProgressType      map[string]int          `json:"byProgressType"`
	DailyStats          map[string]*DayBucket   `json:"dailyStats"`
	WeeklyStats         map[string]*WeekBucket  `json:"weeklyStats"`
	MonthlyStats        map[string]*MonthBucket `json:"monthlyStats"`
	TasksWorkedOn       int                     `json:"tasksWorkedOn"`
	MostProductiveDay   string                  `json:"mostProductiveDay"`
	LongestSession      int                     `json:"longestSession"`
	TotalSessions       int                     `json:"totalSessions"`
}

// HeatmapEntry is one calendar day in a heatmap window.
type HeatmapEntry struct {
	Date      string `json:"date"`
	TimeSpent int    `json:"timeSpent"`
	Level     int    `json:"level"`
}

// GoalTargets holds duration targets in minutes; zero means no goal set for
// that horizon.
type GoalTargets struct {
	DailyMinutes   int
	WeeklyMinutes  int
	MonthlyMinutes int
}

// GoalProgress compares accumulated duration in the current period against
// its target.
type GoalProgress struct {
	Target     int  `json:"target"`
	Actual     int  `json:"actual"`
	Percentage int  `json:"percentage"`
	Completed  bool `json:"completed"`
}

// GoalReport covers the three goal horizons, each evaluated only for the
// period containing now.
type GoalReport struct {
	Daily   GoalProgress `json:"daily"`
	Weekly  GoalProgress `json:"weekly"`
	Monthly GoalProgress `json:"monthly"`
}
