package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
)

var (
	errSearchSuggestion      = errors.New("search suggestion must be submitted as a query")
	errSuggestionWithoutPage = errors.New("suggestion has no page")
)

// Dispatcher performs navigation for resolved queries and selected
// suggestions, emitting one analytics event per decision.
type Dispatcher struct {
	tracker ports.EventTracker
	now     func() time.Time
}

func NewDispatcher(tracker ports.EventTracker) *Dispatcher {
	return &Dispatcher{
		tracker: tracker,
		now:     time.Now,
	}
}

func (d *Dispatcher) DispatchResolution(ctx context.Context, host ports.Host, query string, res domain.QueryResolution) domain.Navigation {
	switch res.Kind {
	case domain.ResolutionRef:
		action := domain.ActionCitationNavigation
		if res.IsBook {
			action = domain.ActionBookNavigation
		}
		ref := res.ID.String()
		event := d.track(ctx, action, ref)
		host.ClearInput()
		host.OpenCitation(ref)
		host.AfterNavigate()
		return domain.Navigation{Action: domain.NavigateCitation, Target: ref, Event: event}

	case domain.ResolutionTopic:
		slug := res.ID.String()
		event := d.track(ctx, domain.ActionTopicNavigation, query)
		host.ClearInput()
		host.OpenTopic(slug)
		host.AfterNavigate()
		return domain.Navigation{Action: domain.NavigateTopic, Target: slug, Event: event}

	case domain.ResolutionPerson, domain.ResolutionCollection, domain.ResolutionTocCategory:
		return d.openObject(ctx, host, string(res.Kind), res.ID, domain.ResolutionURL(res.Kind, res.ID))

	case domain.ResolutionSearch:
		return d.search(ctx, host, res.ID.String())
	}
	return d.search(ctx, host, query)
}

// DispatchSuggestion navigates straight to a selected suggestion. The page
// is rebuilt from the item's kind and key. Term items have no page and
// search for their label. The search item is rejected: it stands for the
// input text, which goes through the resolver.
func (d *Dispatcher) DispatchSuggestion(ctx context.Context, host ports.Host, item domain.Suggestion) (domain.Navigation, error) {
	switch item.Kind {
	case domain.KindSearch:
		return domain.Navigation{}, domain.WrapError(domain.ErrInvalidInput, "dispatch suggestion", errSearchSuggestion)
	case domain.KindTermCategory:
		return d.search(ctx, host, item.Label), nil
	}
	url := domain.ObjectURL(item.Kind, item.Key)
	if item.Key.IsZero() || url == "" {
		return domain.Navigation{}, domain.WrapError(domain.ErrInvalidInput, "dispatch suggestion", errSuggestionWithoutPage)
	}
	return d.openObject(ctx, host, string(item.Kind), item.Key, url), nil
}

func (d *Dispatcher) openObject(ctx context.Context, host ports.Host, typeName string, key domain.Key, url string) domain.Navigation {
	event := d.track(ctx, domain.ObjectNavigationAction(typeName), key.String())
	host.ClearInput()
	nav := domain.Navigation{Action: domain.NavigateURL, Target: url, Event: event}
	if !host.OpenURL(url) {
		host.Redirect(url)
		nav.Action = domain.NavigateRedirect
	}
	host.AfterNavigate()
	return nav
}

func (d *Dispatcher) search(ctx context.Context, host ports.Host, query string) domain.Navigation {
	event := d.track(ctx, domain.ActionSearch, query)
	query = strings.TrimSpace(query)
	nav := domain.Navigation{Event: event}
	if host.InAppShell() {
		host.OpenSearch(query)
		nav.Action = domain.NavigateSearch
		nav.Target = query
	} else {
		url := domain.SearchURL(query)
		host.Redirect(url)
		nav.Action = domain.NavigateRedirect
		nav.Target = url
	}
	host.AfterNavigate()
	return nav
}

func (d *Dispatcher) track(ctx context.Context, action, label string) domain.SearchEvent {
	event := domain.NewSearchEvent(action, label, d.now())
	if d.tracker == nil {
		return event
	}
	if err := d.tracker.Track(ctx, event); err != nil {
		slog.Warn("search_event_track_failed", "action", action, "label", label, "error", err)
	}
	return event
}
