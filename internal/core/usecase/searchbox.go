package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
)

const defaultMaxInputLength = 75

type SearchBoxOptions struct {
	Keyboard ports.Keyboard
	// EnglishInterface enables the virtual keyboard initiator.
	EnglishInterface bool
	HideKeyboard     bool
	MaxInputLength   int
}

// SearchBox is the state of one search input: text, suggestion list,
// highlighted cursor and focus.
type SearchBox struct {
	resolver  ports.QueryResolver
	navigator ports.Navigator
	grouper   ports.SuggestionGrouper
	feed      *SuggestionFeed
	host      ports.Host

	keyboard     ports.Keyboard
	showKeyboard bool
	maxLen       int

	mu          sync.Mutex
	input       string
	highlighted int
	focused     bool
}

func NewSearchBox(
	resolver ports.QueryResolver,
	fetcher ports.SuggestionFetcher,
	grouper ports.SuggestionGrouper,
	navigator ports.Navigator,
	host ports.Host,
	opts SearchBoxOptions,
) *SearchBox {
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = defaultMaxInputLength
	}
	b := &SearchBox{
		resolver:     resolver,
		navigator:    navigator,
		grouper:      grouper,
		feed:         NewSuggestionFeed(fetcher),
		keyboard:     opts.Keyboard,
		showKeyboard: opts.EnglishInterface && !opts.HideKeyboard,
		maxLen:       opts.MaxInputLength,
		highlighted:  -1,
	}
	b.host = boxHost{Host: host, box: b}
	b.toggleKeyboard(false)
	return b
}

// SetInput replaces the input text and refreshes the suggestion list.
func (b *SearchBox) SetInput(ctx context.Context, text string) {
	if runes := []rune(text); len(runes) > b.maxLen {
		text = string(runes[:b.maxLen])
	}
	b.mu.Lock()
	b.input = text
	b.highlighted = -1
	b.mu.Unlock()

	b.feed.Refresh(ctx, text)
}

func (b *SearchBox) Input() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.input
}

func (b *SearchBox) Suggestions() []domain.Suggestion {
	return b.feed.Items()
}

func (b *SearchBox) Groups() []domain.SuggestionGroup {
	return b.grouper.Group(b.feed.Items())
}

// Highlighted is the cursor position in display order, counted across
// Groups, or -1.
func (b *SearchBox) Highlighted() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.highlighted
}

func (b *SearchBox) Focused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.focused
}

// HighlightNext moves the cursor down, wrapping to the first item.
func (b *SearchBox) HighlightNext() {
	n := len(b.displayed())
	b.mu.Lock()
	defer b.mu.Unlock()
	if n == 0 {
		b.highlighted = -1
		return
	}
	b.highlighted = (b.highlighted + 1) % n
}

// HighlightPrev moves the cursor up, wrapping to the last item.
func (b *SearchBox) HighlightPrev() {
	n := len(b.displayed())
	b.mu.Lock()
	defer b.mu.Unlock()
	if n == 0 {
		b.highlighted = -1
		return
	}
	if b.highlighted <= 0 {
		b.highlighted = n - 1
		return
	}
	b.highlighted--
}

// Enter handles the Enter key. A highlighted non-search suggestion is opened
// directly, otherwise the input text is submitted.
func (b *SearchBox) Enter(ctx context.Context) (domain.Navigation, bool) {
	items := b.displayed()
	b.mu.Lock()
	highlighted, input := b.highlighted, b.input
	b.mu.Unlock()

	if highlighted > -1 && highlighted < len(items) && items[highlighted].Kind != domain.KindSearch {
		nav, err := b.navigator.DispatchSuggestion(ctx, b.host, items[highlighted])
		if err != nil {
			slog.Warn("suggestion_dispatch_failed", "value", items[highlighted].Value, "error", err)
			return domain.Navigation{}, false
		}
		return nav, true
	}
	if input == "" {
		return domain.Navigation{}, false
	}
	return b.Submit(ctx, input)
}

// Submit resolves query and navigates. A failed resolution is logged and
// nothing happens.
func (b *SearchBox) Submit(ctx context.Context, query string) (domain.Navigation, bool) {
	res, err := b.resolver.Resolve(ctx, query)
	if err != nil {
		slog.Warn("search_submit_failed", "query", query, "error", err)
		return domain.Navigation{}, false
	}
	return b.navigator.DispatchResolution(ctx, b.host, query, res), true
}

func (b *SearchBox) ClickSearchButton(ctx context.Context) (domain.Navigation, bool) {
	if input := b.Input(); input != "" {
		return b.Submit(ctx, input)
	}
	b.Focus()
	return domain.Navigation{}, false
}

func (b *SearchBox) Focus() {
	b.mu.Lock()
	b.focused = true
	b.mu.Unlock()
	b.toggleKeyboard(true)
}

// Blur drops focus unless it moved to another element of the search box or
// the keyboard panel is open.
func (b *SearchBox) Blur(withinSearchBox bool) {
	if withinSearchBox || (b.keyboard != nil && b.keyboard.IsOpen()) {
		return
	}
	b.mu.Lock()
	b.focused = false
	b.mu.Unlock()
	b.toggleKeyboard(false)
}

// displayed flattens the groups in the order they are shown.
func (b *SearchBox) displayed() []domain.Suggestion {
	var items []domain.Suggestion
	for _, group := range b.Groups() {
		items = append(items, group.Items...)
	}
	return items
}

func (b *SearchBox) clear() {
	b.mu.Lock()
	b.input = ""
	b.highlighted = -1
	b.mu.Unlock()
	b.feed.Clear()
}

func (b *SearchBox) toggleKeyboard(show bool) {
	if b.keyboard == nil || !b.showKeyboard || b.keyboard.IsOpen() {
		return
	}
	if show {
		b.keyboard.Show()
		return
	}
	b.keyboard.Hide()
}

// boxHost clears the box state before forwarding ClearInput to the shell.
type boxHost struct {
	ports.Host
	box *SearchBox
}

func (h boxHost) ClearInput() {
	h.box.clear()
	h.Host.ClearInput()
}
