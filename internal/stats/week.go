package stats

import (
	"fmt"
	"time"
)

// SimplifiedWeek returns the week index used throughout the aggregator:
// floor((dayOfYear-1)/7) + 1. This is deliberately not ISO-8601
// week-of-year: weeks are counted from January 1st of each year, so the
// numbering resets at the year boundary regardless of weekday and the last
// week of a year can be short. Callers comparing weeks across years must
// include the year, as weekKey does.
func SimplifiedWeek(t time.Time) int {
	return (t.YearDay()-1)/7 + 1
}

func weekKey(t time.Time) string {
	return fmt.Sprintf("%04d-W%02d", t.Year(), SimplifiedWeek(t))
}
