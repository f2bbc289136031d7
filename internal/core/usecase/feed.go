package usecase

import (
	"context"
	"sync"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
)

// SuggestionFeed owns the displayed suggestion list. Every refresh takes a
// new request token; a response is applied only while its token is the
// latest one issued, so slow responses never overwrite newer lists.
type SuggestionFeed struct {
	fetcher ports.SuggestionFetcher

	mu     sync.Mutex
	latest uint64
	items  []domain.Suggestion
	stale  uint64
}

func NewSuggestionFeed(fetcher ports.SuggestionFetcher) *SuggestionFeed {
	return &SuggestionFeed{fetcher: fetcher}
}

// Refresh fetches suggestions for input and reports whether the result was
// applied.
func (f *SuggestionFeed) Refresh(ctx context.Context, input string) bool {
	token := f.issue()
	items := f.fetcher.Fetch(ctx, input)
	return f.apply(token, items)
}

// Clear empties the list and invalidates in-flight refreshes.
func (f *SuggestionFeed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest++
	f.items = nil
}

func (f *SuggestionFeed) Items() []domain.Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Suggestion(nil), f.items...)
}

// Stale is the number of discarded out-of-order responses.
func (f *SuggestionFeed) Stale() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stale
}

func (f *SuggestionFeed) issue() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest++
	return f.latest
}

func (f *SuggestionFeed) apply(token uint64, items []domain.Suggestion) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.latest {
		f.stale++
		return false
	}
	f.items = items
	return true
}
