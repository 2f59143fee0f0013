package ports

import (
	"context"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
)

// HabitRepository defines persistence operations for habit entries.
// Every read and write is scoped to a single user id.
type HabitRepository interface {
	Create(ctx context.Context, entry *domain.HabitEntry) (*domain.HabitEntry, error)
	// ListByUser returns the user's entries in insertion order.
	ListByUser(ctx context.Context, userID string) ([]domain.HabitEntry, error)
	// Update replaces the entry matching both ID and UserID. It returns
	// domain.ErrHabitNotFound when nothing matched.
	Update(ctx context.Context, entry *domain.HabitEntry) (*domain.HabitEntry, error)
}
