package stats_test

import (
	"testing"
	"time"

	"github.com/studylog/studylog/internal/stats"
	"github.com/stretchr/testify/require"
)

func fixedAggregator(now time.Time) *stats.Aggregator {
	return stats.NewWithClock(time.UTC, func() time.Time { return now })
}

func TestSummarize_Empty(t *testing.T) {
	agg := fixedAggregator(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	sum := agg.Summarize(nil)

	require.Zero(t, sum.TotalRecords)
	require.Zero(t, sum.TotalTimeSpent)
	require.Zero(t, sum.AverageTimeSpent)
	require.Zero(t, sum.AverageSatisfaction)
	require.Zero(t, sum.TasksWorkedOn)
	require.Zero(t, sum.LongestSession)
	require.Zero(t, sum.TotalSessions)
	require.Empty(t, sum.MostProductiveDay)
	require.NotNil(t, sum.ByDifficulty)
	require.NotNil(t, sum.BySatisfaction)
	require.NotNil(t, sum.ByProgressType)
	require.NotNil(t, sum.DailyStats)
	require.NotNil(t, sum.WeeklyStats)
	require.NotNil(t, sum.MonthlyStats)
	require.Empty(t, sum.DailyStats)
}

func TestSummarize_Buckets(t *testing.T) {
	agg := fixedAggregator(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	activities := []stats.Activity{
		{
			TaskID:       "t1",
			CompletedAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			Minutes:      30,
			Satisfaction: 4,
			Difficulty:   "medium",
			ProgressType: "reading",
		},
		{
			TaskID:       "t2",
			CompletedAt:  time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC),
			Minutes:      45,
			Satisfaction: 5,
			Difficulty:   "hard",
			ProgressType: "practice",
		},
		{
			// Zero-duration unrated session still counts as a session.
			TaskID:      "t1",
			CompletedAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		},
	}

	sum := agg.Summarize(activities)

	require.Equal(t, 3, sum.TotalRecords)
	require.Equal(t, 3, sum.TotalSessions)
	require.Equal(t, 75, sum.TotalTimeSpent)
	require.Equal(t, 45, sum.LongestSession)
	require.Equal(t, 2, sum.TasksWorkedOn)
	require.InDelta(t, 25.0, sum.AverageTimeSpent, 1e-9)
	require.InDelta(t, 4.5, sum.AverageSatisfaction, 1e-9)
	require.Equal(t, map[string]int{"medium": 1, "hard": 1}, sum.ByDifficulty)
	require.Equal(t, map[int]int{4: 1, 5: 1}, sum.BySatisfaction)
	require.Equal(t, map[string]int{"reading": 1, "practice": 1}, sum.ByProgressType)

	require.Len(t, sum.DailyStats, 2)
	march2 := sum.DailyStats["2026-03-02"]
	require.NotNil(t, march2)
	require.Equal(t, 75, march2.TimeSpent)
	require.Equal(t, 2, march2.Sessions)
	require.Equal(t, 9, march2.SatisfactionSum)
	require.Equal(t, 2, march2.SatisfactionCount)
	require.InDelta(t, 4.5, march2.AvgSatisfaction, 1e-9)

	march3 := sum.DailyStats["2026-03-03"]
	require.NotNil(t, march3)
	require.Zero(t, march3.TimeSpent)
	require.Equal(t, 1, march3.Sessions)
	require.Zero(t, march3.AvgSatisfaction)

	require.Equal(t, "2026-03-02", sum.MostProductiveDay)

	// Both days fall in simplified week 9 of 2026.
	require.Len(t, sum.WeeklyStats, 1)
	week := sum.WeeklyStats["2026-W09"]
	require.NotNil(t, week)
	require.Equal(t, 75, week.TimeSpent)
	require.Equal(t, 3, week.Sessions)
	require.InDelta(t, 4.5, week.AvgSatisfaction, 1e-9)

	require.Len(t, sum.MonthlyStats, 1)
	month := sum.MonthlyStats["2026-03"]
	require.NotNil(t, month)
	require.Equal(t, 75, month.TimeSpent)
	require.Equal(t, 3, month.Sessions)
}

func TestSummarize_MostProductiveDayTieBreaksEarliest(t *testing.T) {
	agg := fixedAggregator(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	// The later day comes first in the input; the earlier one must still win.
	activities := []stats.Activity{
		{CompletedAt: time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC), Minutes: 60},
		{CompletedAt: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), Minutes: 60},
		{CompletedAt: time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC), Minutes: 10},
	}

	for i := 0; i < 20; i++ {
		sum := agg.Summarize(activities)
		require.Equal(t, "2026-03-05", sum.MostProductiveDay)
	}
}

func TestSummarize_RollupConservation(t *testing.T) {
	agg := fixedAggregator(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	// Activities scattered across weeks and months.
	activities := []stats.Activity{
		{CompletedAt: time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC), Minutes: 25, Satisfaction: 3},
		{CompletedAt: time.Date(2026, 1, 9, 9, 0, 0, 0, time.UTC), Minutes: 40, Satisfaction: 4},
		{CompletedAt: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC), Minutes: 90, Satisfaction: 5},
		{CompletedAt: time.Date(2026, 2, 14, 21, 0, 0, 0, time.UTC), Minutes: 15},
		{CompletedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Minutes: 5, Satisfaction: 2},
	}

	sum := agg.Summarize(activities)

	var daily, weekly, monthly, dailySessions, weeklySessions int
	for _, b := range sum.DailyStats {
		daily += b.TimeSpent
		dailySessions += b.Sessions
	}
	for _, b := range sum.WeeklyStats {
		weekly += b.TimeSpent
		weeklySessions += b.Sessions
	}
	for _, b := range sum.MonthlyStats {
		monthly += b.TimeSpent
	}

	require.Equal(t, sum.TotalTimeSpent, daily)
	require.Equal(t, daily, weekly)
	require.Equal(t, daily, monthly)
	require.Equal(t, sum.TotalSessions, dailySessions)
	require.Equal(t, dailySessions, weeklySessions)
}

func TestSummarize_BucketsByAggregatorLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	agg := stats.NewWithClock(berlin, func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, berlin)
	})

	// 23:30 UTC on March 2nd is already March 3rd in Berlin.
	sum := agg.Summarize([]stats.Activity{
		{CompletedAt: time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC), Minutes: 30},
	})

	require.Contains(t, sum.DailyStats, "2026-03-03")
	require.NotContains(t, sum.DailyStats, "2026-03-02")
}
