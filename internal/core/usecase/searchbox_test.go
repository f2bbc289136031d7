package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

func newTestSearchBox(names *nameServiceFake, tracker *trackerFake, host *hostFake, opts SearchBoxOptions) *SearchBox {
	return NewSearchBox(
		NewResolveUseCase(names),
		NewSuggestUseCase(names, nil, SuggestOptions{}),
		NewGrouper(true),
		NewDispatcher(tracker),
		host,
		opts,
	)
}

func collectionNames() *nameServiceFake {
	return &nameServiceFake{results: map[string]domain.NameResult{
		"col": {CompletionObjects: []domain.CompletionObject{
			{Title: "Collection One", Type: "Collection", Key: domain.ScalarKey("c1")},
		}},
	}}
}

func TestSearchBoxEnterOpensHighlightedSuggestion(t *testing.T) {
	tracker := &trackerFake{}
	host := &hostFake{}
	box := newTestSearchBox(collectionNames(), tracker, host, SearchBoxOptions{})

	box.SetInput(context.Background(), "col")
	if len(box.Suggestions()) != 2 {
		t.Fatalf("expected override plus collection, got %+v", box.Suggestions())
	}
	box.HighlightNext()
	box.HighlightNext()
	if box.Highlighted() != 1 {
		t.Fatalf("expected cursor on collection, got %d", box.Highlighted())
	}

	nav, ok := box.Enter(context.Background())
	if !ok {
		t.Fatalf("expected navigation")
	}
	if nav.Target != "/collections/c1" || nav.Action != domain.NavigateRedirect {
		t.Fatalf("unexpected navigation: %+v", nav)
	}
	if len(tracker.events) != 1 {
		t.Fatalf("expected one event, got %+v", tracker.events)
	}
	ev := tracker.events[0]
	if ev.Category != "Search" || ev.Action != "Search Box Navigation - Collection" || ev.Label != "c1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if box.Input() != "" || len(box.Suggestions()) != 0 || box.Highlighted() != -1 {
		t.Fatalf("expected cleared search box, got input=%q suggestions=%d", box.Input(), len(box.Suggestions()))
	}
}

func TestSearchBoxEnterOnSearchItemSubmitsInput(t *testing.T) {
	names := collectionNames()
	names.results["col"] = domain.NameResult{
		Type:              "Collection",
		Key:               domain.ScalarKey("c1"),
		CompletionObjects: names.results["col"].CompletionObjects,
	}
	host := &hostFake{handled: true}
	box := newTestSearchBox(names, &trackerFake{}, host, SearchBoxOptions{})

	box.SetInput(context.Background(), "col")
	box.HighlightNext()
	nav, ok := box.Enter(context.Background())
	if !ok || nav.Action != domain.NavigateURL || nav.Target != "/collections/c1" {
		t.Fatalf("unexpected navigation: %+v ok=%v", nav, ok)
	}
}

func TestSearchBoxSubmitFailureIsNoOp(t *testing.T) {
	tracker := &trackerFake{}
	host := &hostFake{}
	names := &nameServiceFake{err: errors.New("rejected")}
	box := newTestSearchBox(names, tracker, host, SearchBoxOptions{})

	box.SetInput(context.Background(), "zzz")
	nav, ok := box.Enter(context.Background())
	if ok {
		t.Fatalf("expected no navigation, got %+v", nav)
	}
	if len(tracker.events) != 0 {
		t.Fatalf("expected no events, got %+v", tracker.events)
	}
	if len(host.calls) != 0 {
		t.Fatalf("expected no host calls, got %v", host.calls)
	}
	if box.Input() != "zzz" {
		t.Fatalf("expected input kept, got %q", box.Input())
	}
}

func TestSearchBoxEnterWithEmptyInputDoesNothing(t *testing.T) {
	names := &nameServiceFake{}
	box := newTestSearchBox(names, &trackerFake{}, &hostFake{}, SearchBoxOptions{})
	if _, ok := box.Enter(context.Background()); ok {
		t.Fatalf("expected no navigation")
	}
	if names.callCount() != 0 {
		t.Fatalf("expected no name calls, got %v", names.calls)
	}
}

func TestSearchBoxHighlightWraps(t *testing.T) {
	box := newTestSearchBox(collectionNames(), &trackerFake{}, &hostFake{}, SearchBoxOptions{})
	box.HighlightNext()
	if box.Highlighted() != -1 {
		t.Fatalf("expected no cursor without suggestions")
	}

	box.SetInput(context.Background(), "col")
	box.HighlightPrev()
	if box.Highlighted() != 1 {
		t.Fatalf("expected cursor on last item, got %d", box.Highlighted())
	}
	box.HighlightNext()
	if box.Highlighted() != 0 {
		t.Fatalf("expected cursor to wrap to first item, got %d", box.Highlighted())
	}
}

func TestSearchBoxTruncatesInput(t *testing.T) {
	box := newTestSearchBox(&nameServiceFake{}, &trackerFake{}, &hostFake{}, SearchBoxOptions{MaxInputLength: 5})
	box.SetInput(context.Background(), strings.Repeat("א", 10))
	if got := []rune(box.Input()); len(got) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(got))
	}
}

func TestSearchBoxKeyboardFollowsFocus(t *testing.T) {
	kb := &keyboardFake{}
	box := newTestSearchBox(&nameServiceFake{}, &trackerFake{}, &hostFake{}, SearchBoxOptions{
		Keyboard:         kb,
		EnglishInterface: true,
	})
	if kb.hides != 1 {
		t.Fatalf("expected keyboard initiator hidden on start, got %d hides", kb.hides)
	}

	if _, ok := box.ClickSearchButton(context.Background()); ok {
		t.Fatalf("expected no navigation for empty input")
	}
	if !box.Focused() || !kb.visible {
		t.Fatalf("expected focus and visible keyboard after button click")
	}

	box.Blur(true)
	if !box.Focused() {
		t.Fatalf("expected focus kept when blurring within the search box")
	}

	kb.open = true
	box.Blur(false)
	if !box.Focused() || !kb.visible {
		t.Fatalf("expected focus kept while keyboard panel is open")
	}

	kb.open = false
	box.Blur(false)
	if box.Focused() || kb.visible {
		t.Fatalf("expected blur to hide keyboard")
	}
}

func TestSearchBoxKeyboardDisabledOutsideEnglish(t *testing.T) {
	kb := &keyboardFake{}
	box := newTestSearchBox(&nameServiceFake{}, &trackerFake{}, &hostFake{}, SearchBoxOptions{Keyboard: kb})
	box.Focus()
	if kb.shows != 0 || kb.hides != 0 {
		t.Fatalf("expected keyboard untouched, got shows=%d hides=%d", kb.shows, kb.hides)
	}
}

func TestSearchBoxCursorFollowsGroupedOrder(t *testing.T) {
	names := &nameServiceFake{results: map[string]domain.NameResult{
		"gen": {CompletionObjects: []domain.CompletionObject{
			{Title: "Genesis", Type: "ref", Key: domain.ScalarKey("Genesis")},
			{Title: "Generations", Type: "Topic", Key: domain.ScalarKey("generations")},
			{Title: "Genesis Rabbah", Type: "ref", Key: domain.ScalarKey("Genesis Rabbah")},
		}},
	}}
	host := &hostFake{}
	box := newTestSearchBox(names, &trackerFake{}, host, SearchBoxOptions{})

	box.SetInput(context.Background(), "gen")
	box.HighlightNext()
	box.HighlightNext()
	box.HighlightNext()

	nav, ok := box.Enter(context.Background())
	if !ok || nav.Target != "/Genesis_Rabbah" {
		t.Fatalf("expected the second ref below the first, got %+v ok=%v", nav, ok)
	}
}
