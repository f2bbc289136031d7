package usecase

import (
	"context"
	"sync"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

type nameServiceFake struct {
	mu      sync.Mutex
	results map[string]domain.NameResult
	err     error
	calls   []string
}

func (f *nameServiceFake) Name(_ context.Context, query string, _ int) (domain.NameResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	if f.err != nil {
		return domain.NameResult{}, f.err
	}
	return f.results[query], nil
}

func (f *nameServiceFake) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type trackerFake struct {
	events []domain.SearchEvent
	err    error
}

func (f *trackerFake) Track(_ context.Context, event domain.SearchEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type hostFake struct {
	inApp   bool
	handled bool
	calls   []string
}

func (h *hostFake) OpenCitation(ref string)  { h.calls = append(h.calls, "citation:"+ref) }
func (h *hostFake) OpenTopic(slug string)    { h.calls = append(h.calls, "topic:"+slug) }
func (h *hostFake) OpenSearch(query string)  { h.calls = append(h.calls, "search:"+query) }
func (h *hostFake) Redirect(url string)      { h.calls = append(h.calls, "redirect:"+url) }
func (h *hostFake) InAppShell() bool         { return h.inApp }
func (h *hostFake) ClearInput()              { h.calls = append(h.calls, "clear") }
func (h *hostFake) AfterNavigate()           { h.calls = append(h.calls, "after") }
func (h *hostFake) OpenURL(url string) bool {
	h.calls = append(h.calls, "url:"+url)
	return h.handled
}

type keyboardFake struct {
	open    bool
	visible bool
	shows   int
	hides   int
}

func (k *keyboardFake) Show() {
	k.shows++
	k.visible = true
}

func (k *keyboardFake) Hide() {
	k.hides++
	k.visible = false
}

func (k *keyboardFake) IsOpen() bool { return k.open }

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
