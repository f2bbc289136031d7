package ports

import (
	"context"
	"time"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

// QueryResolver is the inbound contract for classifying a submitted query.
type QueryResolver interface {
	Resolve(ctx context.Context, query string) (domain.QueryResolution, error)
}

// SuggestionFetcher is the inbound contract for autocomplete candidates.
// Implementations never fail; service errors yield an empty list.
type SuggestionFetcher interface {
	Fetch(ctx context.Context, input string) []domain.Suggestion
}

// SuggestionGrouper partitions a flat suggestion list for display.
type SuggestionGrouper interface {
	Group(items []domain.Suggestion) []domain.SuggestionGroup
}

// Navigator turns a resolution or a selected suggestion into navigation.
type Navigator interface {
	DispatchResolution(ctx context.Context, host Host, query string, res domain.QueryResolution) domain.Navigation
	DispatchSuggestion(ctx context.Context, host Host, item domain.Suggestion) (domain.Navigation, error)
}

// SearchEventReader is the read model over stored analytics events.
type SearchEventReader interface {
	CountByAction(ctx context.Context, since time.Time) ([]domain.ActionCount, error)
}
