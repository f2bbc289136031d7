package domain

type NavigationAction string

const (
	NavigateCitation NavigationAction = "open_citation"
	NavigateTopic    NavigationAction = "open_topic"
	NavigateURL      NavigationAction = "open_url"
	NavigateRedirect NavigationAction = "redirect"
	NavigateSearch   NavigationAction = "open_search"
)

// Navigation records what a dispatch did.
type Navigation struct {
	Action NavigationAction `json:"action"`
	Target string           `json:"target"`
	Event  SearchEvent      `json:"event"`
}
