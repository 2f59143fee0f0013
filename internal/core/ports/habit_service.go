package ports

import (
	"context"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
)

// HabitInput carries the user-supplied fields of a habit entry. The owner
// always comes from the session token, never from the request body.
type HabitInput struct {
	Date     string
	Sleep    float64
	Calories float64
	Exercise float64
	Water    float64
}

// HabitService defines use-case operations for habit entries.
type HabitService interface {
	AddEntry(ctx context.Context, userID string, input HabitInput) (*domain.HabitEntry, error)
	ListEntries(ctx context.Context, userID string) ([]domain.HabitEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, input HabitInput) (*domain.HabitEntry, error)
	Trends(ctx context.Context, userID string) (*domain.Trend, error)
}
