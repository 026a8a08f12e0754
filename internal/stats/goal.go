package stats

import "math"

// GoalProgress evaluates targets against the accumulated duration of the
// current day, the current simplified week and the current month. Only the
// periods containing now are considered; historical periods never count. A
// horizon with no target (zero) yields a zeroed entry.
func (a *Aggregator) GoalProgress(activities []Activity, targets GoalTargets) GoalReport {
	now := a.now().In(a.loc)
	todayKey := now.Format(dayFormat)
	thisWeek := weekKey(now)
	thisMonth := now.Format(monthFormat)

	var day, week, month int
	for _, act := range activities {
		t := act.CompletedAt.In(a.loc)
		if t.Format(dayFormat) == todayKey {
			day += act.Minutes
		}
		if weekKey(t) == thisWeek {
			week += act.Minutes
		}
		if t.Format(monthFormat) == thisMonth {
			month += act.Minutes
		}
	}

	return GoalReport{
		Daily:   evaluateGoal(targets.DailyMinutes, day),
		Weekly:  evaluateGoal(targets.WeeklyMinutes, week),
		Monthly: evaluateGoal(targets.MonthlyMinutes, month),
	}
}

func evaluateGoal(target, actual int) GoalProgress {
	if target <= 0 {
		return GoalProgress{}
	}
	return GoalProgress{
		Target:     target,
		Actual:     actual,
		Percentage: int(math.Round(float64(actual) / float64(target) * 100)),
		Completed:  actual >= target,
	}
}
