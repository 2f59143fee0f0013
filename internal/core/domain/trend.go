package domain

// Trend compares the most recent habit entry with the one logged before it.
// Change holds percentage changes per metric.
type Trend struct {
	Latest   *HabitEntry `json:"latest,omitempty"`
	Previous *HabitEntry `json:"previous,omitempty"`
	Change   Metrics     `json:"change"`
}

// PercentageChange returns the relative change from previous to current in
// percent. A zero baseline is reported as 100.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return (current - previous) / previous * 100
}

// NewTrend builds a Trend from entries in list order (oldest first). With fewer
// than two entries every change is zero.
func NewTrend(entries []HabitEntry) Trend {
	var t Trend
	if len(entries) == 0 {
		return t
	}
	latest := entries[len(entries)-1]
	t.Latest = &latest
	if len(entries) < 2 {
		return t
	}
	previous := entries[len(entries)-2]
	t.Previous = &previous
	t.Change = Metrics{
		Sleep:    PercentageChange(latest.Sleep, previous.Sleep),
		Calories: PercentageChange(latest.Calories, previous.Calories),
		Exercise: PercentageChange(latest.Exercise, previous.Exercise),
		Water:    PercentageChange(latest.Water, previous.Water),
	}
	return t
}
