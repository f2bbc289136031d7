package usecase

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
)

const (
	defaultMinChars     = 3
	defaultSuggestLimit = 10
)

type SuggestOptions struct {
	MinChars int
	Limit    int
}

type SuggestUseCase struct {
	names     ports.NameService
	localizer ports.Localizer
	minChars  int
	limit     int
}

func NewSuggestUseCase(names ports.NameService, localizer ports.Localizer, opts SuggestOptions) *SuggestUseCase {
	if opts.MinChars <= 0 {
		opts.MinChars = defaultMinChars
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultSuggestLimit
	}
	if localizer == nil {
		localizer = IdentityLocalizer{}
	}
	return &SuggestUseCase{
		names:     names,
		localizer: localizer,
		minChars:  opts.MinChars,
		limit:     opts.Limit,
	}
}

func (uc *SuggestUseCase) MinChars() int {
	return uc.minChars
}

// Fetch returns the dropdown entries for input. Inputs shorter than the
// minimum length never reach the name service.
func (uc *SuggestUseCase) Fetch(ctx context.Context, input string) []domain.Suggestion {
	if utf8.RuneCountInString(input) < uc.minChars {
		return nil
	}

	res, err := uc.names.Name(ctx, input, uc.limit)
	if err != nil {
		slog.Warn("suggest_fetch_failed", "input", input, "error", err)
		return nil
	}
	return uc.annotate(input, res.CompletionObjects)
}

func (uc *SuggestUseCase) annotate(input string, objects []domain.CompletionObject) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(objects)+1)
	for _, obj := range objects {
		kind, ok := domain.ParseKind(obj.Type)
		if !ok {
			slog.Warn("suggest_unknown_kind", "title", obj.Title, "type", obj.Type)
			continue
		}
		out = append(out, domain.NewSuggestion(obj, kind))
	}
	if len(out) == 0 {
		return nil
	}

	label := uc.localizer.Translate("Search for") + `: "` + input + `"`
	return append([]domain.Suggestion{domain.NewSearchOverride(label)}, out...)
}

// IdentityLocalizer returns interface strings untranslated.
type IdentityLocalizer struct{}

func (IdentityLocalizer) Translate(s string) string { return s }
