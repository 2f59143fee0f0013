package ports

import "context"

// CompletionClient submits a prompt to a hosted text-completion model and
// returns the first completion's text unmodified.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SuggestionCache stores generated suggestions per user and prompt.
// A miss is reported as ("", false, nil).
type SuggestionCache interface {
	Get(ctx context.Context, userID, prompt string) (string, bool, error)
	Set(ctx context.Context, userID, prompt, suggestions string) error
}

// TipService generates health tips from free text or from a user's history.
type TipService interface {
	GetHealthTips(ctx context.Context, prompt string) (string, error)
	GetPersonalSuggestions(ctx context.Context, userID string) (string, error)
}
