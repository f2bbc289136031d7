package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kirillkom/library-searchbox/internal/config"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
	"github.com/kirillkom/library-searchbox/internal/observability/metrics"
)

type Dependencies struct {
	Resolver  ports.QueryResolver
	Fetcher   ports.SuggestionFetcher
	Grouper   ports.SuggestionGrouper
	Navigator ports.Navigator
	// Events is optional; without it the analytics endpoint reports 503.
	Events  ports.SearchEventReader
	Metrics *metrics.HTTPServerMetrics
}

type Router struct {
	cfg       config.Config
	resolver  ports.QueryResolver
	fetcher   ports.SuggestionFetcher
	grouper   ports.SuggestionGrouper
	navigator ports.Navigator
	events    ports.SearchEventReader
	metrics   *metrics.HTTPServerMetrics
	contract  []byte
}

func NewRouter(cfg config.Config, deps Dependencies) (*Router, error) {
	contract, err := loadContract()
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(contract)
	if err != nil {
		return nil, fmt.Errorf("encode api contract: %w", err)
	}
	return &Router{
		cfg:       cfg,
		resolver:  deps.Resolver,
		fetcher:   deps.Fetcher,
		grouper:   deps.Grouper,
		navigator: deps.Navigator,
		events:    deps.Events,
		metrics:   deps.Metrics,
		contract:  encoded,
	}, nil
}

func (rt *Router) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/v1/suggestions", rt.suggestions)
	api.HandleFunc("/v1/resolve", rt.resolve)
	api.HandleFunc("/v1/navigate", rt.navigate)
	api.HandleFunc("/v1/analytics/actions", rt.actionCounts)

	var guarded http.Handler = api
	guarded = backpressureMiddleware(guarded, rt.cfg.APIMaxInFlight, rt.cfg.APIBackpressureWait, rt.recordRejected)
	guarded = rateLimitMiddleware(guarded, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.recordRejected)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/openapi.json", rt.openAPI)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.Handle("/v1/", guarded)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) openAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rt.contract)
}

func (rt *Router) recordRejected(reason string) {
	if rt.metrics != nil {
		rt.metrics.RecordRejected(reason)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
