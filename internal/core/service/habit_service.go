package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
	"github.com/healthhabits/habit-tracker/internal/core/ports"
)

type HabitService struct {
	repo   ports.HabitRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewHabitService(repo ports.HabitRepository, logger zerolog.Logger) *HabitService {
	return &HabitService{repo: repo, logger: logger, now: time.Now}
}

// AddEntry persists a new habit entry owned by userID.
func (s *HabitService) AddEntry(ctx context.Context, userID string, input ports.HabitInput) (*domain.HabitEntry, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	entry := &domain.HabitEntry{
		UserID:    userID,
		Date:      input.Date,
		Sleep:     input.Sleep,
		Calories:  input.Calories,
		Exercise:  input.Exercise,
		Water:     input.Water,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create habit entry")
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("habit_id", created.ID).Msg("habit entry created")
	return created, nil
}

// ListEntries returns every entry owned by userID in insertion order.
func (s *HabitService) ListEntries(ctx context.Context, userID string) ([]domain.HabitEntry, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	if entries == nil {
		entries = []domain.HabitEntry{}
	}
	return entries, nil
}

// UpdateEntry replaces the metrics of an existing entry owned by userID.
// Entries belonging to other users are reported as not found.
func (s *HabitService) UpdateEntry(ctx context.Context, userID, entryID string, input ports.HabitInput) (*domain.HabitEntry, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if entryID == "" {
		return nil, domain.ErrHabitNotFound
	}

	updated, err := s.repo.Update(ctx, &domain.HabitEntry{
		ID:       entryID,
		UserID:   userID,
		Date:     input.Date,
		Sleep:    input.Sleep,
		Calories: input.Calories,
		Exercise: input.Exercise,
		Water:    input.Water,
	})
	if err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("habit_id", entryID).Msg("habit entry updated")
	return updated, nil
}

// Trends compares the user's two most recent entries.
func (s *HabitService) Trends(ctx context.Context, userID string) (*domain.Trend, error) {
	entries, err := s.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	trend := domain.NewTrend(entries)
	return &trend, nil
}
