package httpadapter

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/kirillkom/library-searchbox/internal/config"
	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/usecase"
	"github.com/kirillkom/library-searchbox/internal/observability/metrics"
)

type nameServiceFake struct {
	results map[string]domain.NameResult
	err     error
}

func (f nameServiceFake) Name(_ context.Context, query string, _ int) (domain.NameResult, error) {
	if f.err != nil {
		return domain.NameResult{}, f.err
	}
	return f.results[query], nil
}

type trackerFake struct {
	mu     sync.Mutex
	events []domain.SearchEvent
}

func (f *trackerFake) Track(_ context.Context, event domain.SearchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type eventsReaderFake struct {
	since  time.Time
	counts []domain.ActionCount
	err    error
}

func (f *eventsReaderFake) CountByAction(_ context.Context, since time.Time) ([]domain.ActionCount, error) {
	f.since = since
	return f.counts, f.err
}

type testDeps struct {
	names   nameServiceFake
	tracker *trackerFake
	events  *eventsReaderFake
	metrics *metrics.HTTPServerMetrics
}

func newTestHandlerWith(cfg config.Config, deps testDeps) http.Handler {
	if deps.tracker == nil {
		deps.tracker = &trackerFake{}
	}
	routerDeps := Dependencies{
		Resolver:  usecase.NewResolveUseCase(deps.names),
		Fetcher:   usecase.NewSuggestUseCase(deps.names, nil, usecase.SuggestOptions{MinChars: cfg.SuggestMinChars}),
		Grouper:   usecase.NewGrouper(true),
		Navigator: usecase.NewDispatcher(deps.tracker),
		Metrics:   deps.metrics,
	}
	if deps.events != nil {
		routerDeps.Events = deps.events
	}
	router, err := NewRouter(cfg, routerDeps)
	if err != nil {
		panic(err)
	}
	return router.Handler()
}

func newTestHandler(cfg config.Config) http.Handler {
	return newTestHandlerWith(cfg, testDeps{names: libraryNames()})
}

func libraryNames() nameServiceFake {
	return nameServiceFake{results: map[string]domain.NameResult{
		"genesis 1": {
			Completions: []string{"Genesis 1"},
		},
		"Genesis 1": {
			IsRef: true,
			Ref:   "Genesis 1",
		},
		"moses": {
			Completions: []string{"Moses"},
			CompletionObjects: []domain.CompletionObject{
				{Title: "Moses", Type: "PersonTopic", Key: domain.ScalarKey("moses")},
				{Title: "Moses ben Maimon", Type: "AuthorTopic", Key: domain.ScalarKey("rambam")},
				{Title: "Mishneh Torah", Type: "TocCategory", Key: domain.PathKey("Halakhah", "Mishneh Torah")},
			},
		},
		"Mishnah": {
			Type: "TocCategory",
			Key:  domain.PathKey("Mishnah"),
		},
	}}
}
