package stats

import (
	"sort"
	"time"
)

const (
	dayFormat   = "2006-01-02"
	monthFormat = "2006-01"
)

// Aggregator derives multi-resolution statistics from the activity records
// of one subject. All calendar bucketing goes through the aggregator's
// single location, and "now" comes from its injected clock; both are fixed
// at construction so every output uses one consistent time reference.
type Aggregator struct {
	loc *time.Location
	now func() time.Time
}

// New returns an aggregator using local time and the wall clock.
func New() *Aggregator {
	return NewWithClock(time.Local, time.Now)
}

// NewWithClock pins the location and clock, for deterministic tests.
func NewWithClock(loc *time.Location, now func() time.Time) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Aggregator{loc: loc, now: now}
}

// Summarize computes the full statistics surface over activities. Weekly
// and monthly buckets are rolled up from the day buckets, so their duration
// sums always equal the sum of their constituent days. Empty input yields a
// fully populated zero-valued summary.
func (a *Aggregator) Summarize(activities []Activity) *Summary {
	sum := &Summary{
		ByDifficulty:   make(map[string]int),
		BySatisfaction: make(map[int]int),
		ByProgressType: make(map[string]int),
		DailyStats:     make(map[string]*DayBucket),
		WeeklyStats:    make(map[string]*WeekBucket),
		MonthlyStats:   make(map[string]*MonthBucket),
	}
	sum.TotalRecords = len(activities)
	sum.TotalSessions = len(activities)

	satisfactionSum := 0
	satisfactionCount := 0
	tasks := make(map[string]struct{})

	for _, act := range activities {
		sum.TotalTimeSpent += act.Minutes
		if act.Minutes > sum.LongestSession {
			sum.LongestSession = act.Minutes
		}
		if act.TaskID != "" {
			tasks[act.TaskID] = struct{}{}
		}
		if act.Difficulty != "" {
			sum.ByDifficulty[act.Difficulty]++
		}
		if act.ProgressType != "" {
			sum.ByProgressType[act.ProgressType]++
		}
		if act.Satisfaction > 0 {
			sum.BySatisfaction[act.Satisfaction]++
			satisfactionSum += act.Satisfaction
			satisfactionCount++
		}

		day := a.dayKey(act.CompletedAt)
		bucket := sum.DailyStats[day]
		if bucket == nil {
			bucket = &DayBucket{Date: day}
			sum.DailyStats[day] = bucket
		}
		bucket.TimeSpent += act.Minutes
		bucket.Sessions++ // one session per record, zero-duration included
		if act.Satisfaction > 0 {
			bucket.SatisfactionSum += act.Satisfaction
			bucket.SatisfactionCount++
		}
	}

	sum.TasksWorkedOn = len(tasks)
	if len(activities) > 0 {
		sum.AverageTimeSpent = float64(sum.TotalTimeSpent) / float64(len(activities))
	}
	if satisfactionCount > 0 {
		sum.AverageSatisfaction = float64(satisfactionSum) / float64(satisfactionCount)
	}

	// Scan day buckets in date order: the most-productive comparison below
	// is strictly-greater, so ties resolve to the earliest date no matter
	// how the map iterates.
	days := make([]string, 0, len(sum.DailyStats))
	for day := range sum.DailyStats {
		days = append(days, day)
	}
	sort.Strings(days)

	bestMinutes := -1
	for _, day := range days {
		bucket := sum.DailyStats[day]
		if bucket.SatisfactionCount > 0 {
			bucket.AvgSatisfaction = float64(bucket.SatisfactionSum) / float64(bucket.SatisfactionCount)
		}
		if bucket.TimeSpent > bestMinutes {
			bestMinutes = bucket.TimeSpent
			sum.MostProductiveDay = day
		}

		date, err := time.ParseInLocation(dayFormat, day, a.loc)
		if err != nil {
			continue
		}

		wk := weekKey(date)
		week := sum.WeeklyStats[wk]
		if week == nil {
			week = &WeekBucket{Week: wk}
			sum.WeeklyStats[wk] = week
		}
		week.TimeSpent += bucket.TimeSpent
		week.Sessions += bucket.Sessions
		week.SatisfactionSum += bucket.SatisfactionSum
		week.SatisfactionCount += bucket.SatisfactionCount

		mk := date.Format(monthFormat)
		month := sum.MonthlyStats[mk]
		if month == nil {
			month = &MonthBucket{Month: mk}
			sum.MonthlyStats[mk] = month
		}
		month.TimeSpent += bucket.TimeSpent
		month.Sessions += bucket.Sessions
		month.SatisfactionSum += bucket.SatisfactionSum
		month.SatisfactionCount += bucket.SatisfactionCount
	}

	for _, week := range sum.WeeklyStats {
		if week.SatisfactionCount > 0 {
			week.AvgSatisfaction = float64(week.SatisfactionSum) / float64(week.SatisfactionCount)
		}
	}
	for _, month := range sum.MonthlyStats {
		if month.SatisfactionCount > 0 {
			month.AvgSatisfaction = float64(month.SatisfactionSum) / float64(month.SatisfactionCount)
		}
	}

	return sum
}

func (a *Aggregator) dayKey(t time.Time) string {
	return t.In(a.loc).Format(dayFormat)
}
