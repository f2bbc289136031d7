package domain

import (
	"time"

	"github.com/google/uuid"
)

const EventCategory = "Search"

const (
	ActionBookNavigation     = "Search Box Navigation - Book"
	ActionCitationNavigation = "Search Box Navigation - Citation"
	ActionTopicNavigation    = "Search Box Navigation - Topic"
	ActionSearch             = "Search Box Search"
)

// ObjectNavigationAction is the action name for navigating to an object
// page of the given type.
func ObjectNavigationAction(typeName string) string {
	return "Search Box Navigation - " + typeName
}

// SearchEvent is one analytics record produced by a navigation decision.
type SearchEvent struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Action     string    `json:"action"`
	Label      string    `json:"label"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewSearchEvent(action, label string, now time.Time) SearchEvent {
	return SearchEvent{
		ID:         uuid.NewString(),
		Category:   EventCategory,
		Action:     action,
		Label:      label,
		OccurredAt: now.UTC(),
	}
}

// ActionCount aggregates stored events per action.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}
