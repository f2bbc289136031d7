package analytics

import (
	"context"
	"log/slog"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

// LogTracker writes search events to a structured logger.
type LogTracker struct {
	logger *slog.Logger
}

func NewLogTracker(logger *slog.Logger) *LogTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTracker{logger: logger}
}

func (t *LogTracker) Track(ctx context.Context, event domain.SearchEvent) error {
	t.logger.InfoContext(ctx, "search_event",
		"event_id", event.ID,
		"category", event.Category,
		"action", event.Action,
		"label", event.Label,
	)
	return nil
}
