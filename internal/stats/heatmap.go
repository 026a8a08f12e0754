package stats

// HeatLevel maps a day's summed minutes to a discrete 0-4 intensity.
func HeatLevel(minutes int) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes < 30:
		return 1
	case minutes < 60:
		return 2
	case minutes < 120:
		return 3
	default:
		return 4
	}
}

// Heatmap produces exactly days entries, one per calendar day, for the
// window ending today. Days without activity are zero-filled, so the output
// is always contiguous.
func (a *Aggregator) Heatmap(activities []Activity, days int) []HeatmapEntry {
	if days <= 0 {
		return []HeatmapEntry{}
	}

	perDay := make(map[string]int)
	for _, act := range activities {
		perDay[a.dayKey(act.CompletedAt)] += act.Minutes
	}

	start := a.now().In(a.loc).AddDate(0, 0, -(days - 1))
	entries := make([]HeatmapEntry, 0, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format(dayFormat)
		minutes := perDay[key]
		entries = append(entries, HeatmapEntry{
			Date:      key,
			TimeSpent: minutes,
			Level:     HeatLevel(minutes),
		})
	}
	return entries
}
