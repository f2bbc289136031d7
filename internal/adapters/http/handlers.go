package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

const defaultAnalyticsWindow = 24 * time.Hour

type suggestionsResponse struct {
	Query       string                   `json:"query"`
	Suggestions []domain.Suggestion      `json:"suggestions"`
	Groups      []domain.SuggestionGroup `json:"groups"`
}

type resolveResponse struct {
	domain.QueryResolution
	URL string `json:"url"`
}

type navigateRequest struct {
	Query      string             `json:"query"`
	Suggestion *domain.Suggestion `json:"suggestion"`
	InApp      bool               `json:"in_app"`
}

type actionCountsResponse struct {
	Since   time.Time            `json:"since"`
	Actions []domain.ActionCount `json:"actions"`
}

func (rt *Router) suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	query := r.URL.Query().Get("q")
	items := rt.fetcher.Fetch(r.Context(), query)
	if items == nil {
		items = []domain.Suggestion{}
	}
	groups := rt.grouper.Group(items)
	if groups == nil {
		groups = []domain.SuggestionGroup{}
	}

	if rt.metrics != nil {
		rt.metrics.RecordSuggest(rt.suggestOutcome(query, len(items)), len(items))
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Query: query, Suggestions: items, Groups: groups})
}

func (rt *Router) suggestOutcome(query string, items int) string {
	switch {
	case utf8.RuneCountInString(query) < rt.minChars():
		return "short"
	case items == 0:
		return "empty"
	default:
		return "results"
	}
}

func (rt *Router) minChars() int {
	if f, ok := rt.fetcher.(interface{ MinChars() int }); ok {
		return f.MinChars()
	}
	return rt.cfg.SuggestMinChars
}

func (rt *Router) resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	res, err := rt.resolver.Resolve(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		rt.recordResolution("error")
		writeError(w, err)
		return
	}
	rt.recordResolution(string(res.Kind))
	writeJSON(w, http.StatusOK, resolveResponse{
		QueryResolution: res,
		URL:             domain.ResolutionURL(res.Kind, res.ID),
	})
}

func (rt *Router) navigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req navigateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	host := newShellHost(req.InApp)
	var nav domain.Navigation
	switch {
	case req.Suggestion != nil && req.Suggestion.Kind != domain.KindSearch:
		if _, ok := domain.ParseKind(string(req.Suggestion.Kind)); !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown suggestion type"})
			return
		}
		var err error
		nav, err = rt.navigator.DispatchSuggestion(r.Context(), host, *req.Suggestion)
		if err != nil {
			writeError(w, err)
			return
		}
	case strings.TrimSpace(req.Query) != "":
		res, err := rt.resolver.Resolve(r.Context(), req.Query)
		if err != nil {
			slog.Warn("search_submit_failed",
				"request_id", requestIDFromContext(r.Context()),
				"query", req.Query,
				"error", err,
			)
			rt.recordResolution("error")
			writeError(w, err)
			return
		}
		rt.recordResolution(string(res.Kind))
		nav = rt.navigator.DispatchResolution(r.Context(), host, req.Query, res)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query or suggestion is required"})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordNavigation(string(nav.Action))
	}
	writeJSON(w, http.StatusOK, nav)
}

func (rt *Router) actionCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.events == nil {
		writeError(w, domain.WrapError(domain.ErrUnavailable, "count search events", errAnalyticsDisabled))
		return
	}

	since, err := parseSince(r.URL.Query().Get("since"), time.Now().UTC())
	if err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "parse since", err))
		return
	}

	counts, err := rt.events.CountByAction(r.Context(), since)
	if err != nil {
		writeError(w, err)
		return
	}
	if counts == nil {
		counts = []domain.ActionCount{}
	}
	writeJSON(w, http.StatusOK, actionCountsResponse{Since: since, Actions: counts})
}

func (rt *Router) recordResolution(kind string) {
	if rt.metrics != nil {
		rt.metrics.RecordResolution(kind)
	}
}

// parseSince accepts an RFC 3339 timestamp or a lookback duration such as
// "6h". Empty means the last day.
func parseSince(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Add(-defaultAnalyticsWindow), nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC(), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return time.Time{}, errInvalidSince
	}
	return now.Add(-d), nil
}
