package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
)

// maxCorrections bounds the case/gershayim re-resolution chain.
const maxCorrections = 8

type ResolveUseCase struct {
	names ports.NameService
}

func NewResolveUseCase(names ports.NameService) *ResolveUseCase {
	return &ResolveUseCase{names: names}
}

// Resolve classifies query, re-resolving case and gershayim corrections
// proposed by the name service. Service errors are returned unchanged in
// kind; callers decide whether to navigate.
func (uc *ResolveUseCase) Resolve(ctx context.Context, query string) (domain.QueryResolution, error) {
	if strings.TrimSpace(query) == "" {
		return domain.QueryResolution{}, domain.WrapError(domain.ErrInvalidInput, "resolve query", errors.New("query is empty"))
	}

	current := query
	seen := map[string]struct{}{query: {}}
	for corrections := 0; ; corrections++ {
		res, err := uc.names.Name(ctx, current, 0)
		if err != nil {
			return domain.QueryResolution{}, fmt.Errorf("resolve %q: %w", current, err)
		}
		if corrections >= maxCorrections {
			slog.Warn("resolve_correction_limit", "query", query, "current", current)
			return res.Classify(current), nil
		}

		next := res.RepairCaseVariant(current)
		if next == current {
			next = res.RepairGershayimVariant(current)
		}
		if next == current {
			return res.Classify(current), nil
		}
		if _, ok := seen[next]; ok {
			slog.Warn("resolve_correction_cycle", "query", query, "current", current, "next", next)
			return res.Classify(current), nil
		}
		seen[next] = struct{}{}
		current = next
	}
}
