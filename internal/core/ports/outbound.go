package ports

import (
	"context"
	"time"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

// NameService resolves query strings and lists completion candidates.
type NameService interface {
	Name(ctx context.Context, query string, limit int) (domain.NameResult, error)
}

// EventTracker records analytics events.
type EventTracker interface {
	Track(ctx context.Context, event domain.SearchEvent) error
}

// EventQueue carries analytics events from the API to the worker.
type EventQueue interface {
	PublishSearchEvent(ctx context.Context, event domain.SearchEvent) error
	SubscribeSearchEvents(ctx context.Context, handler func(context.Context, domain.SearchEvent) error) error
}

// SearchEventRepository persists analytics events.
type SearchEventRepository interface {
	Record(ctx context.Context, event domain.SearchEvent) error
	CountByAction(ctx context.Context, since time.Time) ([]domain.ActionCount, error)
}

// Host is the navigation surface of the shell embedding the search box.
type Host interface {
	OpenCitation(ref string)
	OpenTopic(slug string)
	// OpenURL reports whether the shell handled the URL in-app.
	OpenURL(url string) bool
	OpenSearch(query string)
	// Redirect performs a full page navigation.
	Redirect(url string)
	// InAppShell reports whether full-text search can open in-app.
	InAppShell() bool
	ClearInput()
	// AfterNavigate is the optional post-navigation hook.
	AfterNavigate()
}

// Keyboard toggles the on-screen keyboard initiator.
type Keyboard interface {
	Show()
	Hide()
	// IsOpen reports whether the keyboard panel itself is open.
	IsOpen() bool
}

// Localizer translates interface strings.
type Localizer interface {
	Translate(s string) string
}
