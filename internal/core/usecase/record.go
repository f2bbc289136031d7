package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
)

// RecordEventUseCase stores analytics events delivered by the queue.
type RecordEventUseCase struct {
	repo ports.SearchEventRepository
}

func NewRecordEventUseCase(repo ports.SearchEventRepository) *RecordEventUseCase {
	return &RecordEventUseCase{repo: repo}
}

func (uc *RecordEventUseCase) Record(ctx context.Context, event domain.SearchEvent) error {
	if strings.TrimSpace(event.ID) == "" || strings.TrimSpace(event.Action) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "record search event", errors.New("event id and action are required"))
	}
	if event.Category == "" {
		event.Category = domain.EventCategory
	}
	if err := uc.repo.Record(ctx, event); err != nil {
		return fmt.Errorf("record search event id=%s: %w", event.ID, err)
	}
	return nil
}

// QueueTracker publishes analytics events to the event queue.
type QueueTracker struct {
	queue ports.EventQueue
}

func NewQueueTracker(queue ports.EventQueue) *QueueTracker {
	return &QueueTracker{queue: queue}
}

func (t *QueueTracker) Track(ctx context.Context, event domain.SearchEvent) error {
	if err := t.queue.PublishSearchEvent(ctx, event); err != nil {
		return fmt.Errorf("publish search event: %w", err)
	}
	return nil
}
