package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
	"github.com/healthhabits/habit-tracker/internal/core/ports"
)

// TipService turns free-text prompts and habit histories into health tips.
type TipService struct {
	completion ports.CompletionClient
	habits     ports.HabitRepository
	cache      ports.SuggestionCache // optional
	logger     zerolog.Logger
}

// NewTipService returns a TipService. cache may be nil.
func NewTipService(
	completion ports.CompletionClient,
	habits ports.HabitRepository,
	cache ports.SuggestionCache,
	logger zerolog.Logger,
) *TipService {
	return &TipService{
		completion: completion,
		habits:     habits,
		cache:      cache,
		logger:     logger,
	}
}

// GetHealthTips forwards the literal prompt to the completion service. The
// returned text is not trimmed.
func (s *TipService) GetHealthTips(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}

	tips, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("health tips: %w", err)
	}
	return tips, nil
}

// GetPersonalSuggestions builds a prompt from the user's full history and
// completes it. Results are served from the cache when one is configured.
func (s *TipService) GetPersonalSuggestions(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthorized
	}

	entries, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("personal suggestions: %w", err)
	}
	prompt := SuggestionPrompt(entries)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID, prompt)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("suggestion cache read failed, generating anyway")
		case ok:
			s.logger.Debug().Str("user_id", userID).Msg("suggestion cache hit")
			return cached, nil
		}
	}

	suggestions, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("personal suggestions: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, prompt, suggestions); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to cache suggestions")
		}
	}

	s.logger.Info().Str("user_id", userID).Int("entries", len(entries)).Msg("personal suggestions generated")
	return suggestions, nil
}
