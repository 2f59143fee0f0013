package domain

import "time"

// HabitEntry is one day's worth of logged health metrics for a user.
type HabitEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Sleep     float64   `json:"sleep"`    // hours
	Calories  float64   `json:"calories"` // kcal
	Exercise  float64   `json:"exercise"` // minutes
	Water     float64   `json:"water"`    // glasses
	CreatedAt time.Time `json:"created_at"`
}

// Metrics holds the four tracked values without identity or date.
type Metrics struct {
	Sleep    float64 `json:"sleep"`
	Calories float64 `json:"calories"`
	Exercise float64 `json:"exercise"`
	Water    float64 `json:"water"`
}
