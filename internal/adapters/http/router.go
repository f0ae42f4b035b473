package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/kartikrao/legal-issue-search/internal/config"
	"github.com/kartikrao/legal-issue-search/internal/core/domain"
	"github.com/kartikrao/legal-issue-search/internal/core/ports"
	"github.com/kartikrao/legal-issue-search/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg       config.Config
	search    ports.IssueSearchService
	records   ports.RecordHydrator
	publisher ports.JudgmentPublisher
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	search ports.IssueSearchService,
	records ports.RecordHydrator,
	publisher ports.JudgmentPublisher,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:       cfg,
		search:    search,
		records:   records,
		publisher: publisher,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/search/issues", rt.searchIssues)
	mux.HandleFunc("/v1/records/", rt.recordFullText)
	mux.HandleFunc("/v1/ingest/judgments", rt.ingestJudgment)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWait)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchIssuesRequest struct {
	Query              string `json:"query"`
	Limit              int    `json:"limit"`
	IncludeLegislation *bool  `json:"include_legislation"`
	IncludeJudgments   *bool  `json:"include_judgments"`
	IncludeExternal    *bool  `json:"include_external"`
	CourtFilter        string `json:"court_filter"`
	DateFrom           string `json:"date_from"`
	DateTo             string `json:"date_to"`
	IssueType          string `json:"issue_type"`
}

func (rt *Router) searchIssues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req searchIssuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	opts := domain.DefaultSearchOptions()
	if req.Limit > 0 {
		opts.Limit = req.Limit
	} else if rt.cfg.SearchDefaultLimit > 0 {
		opts.Limit = rt.cfg.SearchDefaultLimit
	}
	if req.IncludeLegislation != nil {
		opts.IncludeLegislation = *req.IncludeLegislation
	}
	if req.IncludeJudgments != nil {
		opts.IncludeJudgments = *req.IncludeJudgments
	}
	if req.IncludeExternal != nil {
		opts.IncludeExternal = *req.IncludeExternal
	}
	opts.CourtFilter = req.CourtFilter
	opts.DateFrom = req.DateFrom
	opts.DateTo = req.DateTo
	opts.IssueType = req.IssueType

	start := time.Now()
	envelope, err := rt.search.SearchByIssue(r.Context(), req.Query, opts)
	if err != nil {
		rt.recordSearchOutcome(err, time.Since(start))
		writeError(w, err)
		return
	}
	rt.recordSearchEnvelope(envelope, time.Since(start))

	writeJSON(w, http.StatusOK, envelope)
}

func (rt *Router) recordFullText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/records/")
	id, ok := strings.CutSuffix(rest, "/full-text")
	if !ok || id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "record id is required"})
		return
	}

	record, err := rt.records.FullRecordText(r.Context(), id, r.URL.Query().Get("source"))
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordHydration(serviceName, hydrationOutcome(err))
		}
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordHydration(serviceName, "ok")
	}
	writeJSON(w, http.StatusOK, record)
}

// ingestJudgment queues a scraped judgment for the ingestion workers.
// The record is accepted, not processed: full validation and PDF
// extraction happen on the consumer side.
func (rt *Router) ingestJudgment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var scraped domain.ScrapedJudgment
	if err := json.NewDecoder(r.Body).Decode(&scraped); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(scraped.CaseTitle) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "case_title is required"})
		return
	}

	if err := rt.publisher.PublishScrapedJudgment(r.Context(), scraped); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (rt *Router) recordSearchOutcome(err error, elapsed time.Duration) {
	if rt.metrics == nil {
		return
	}
	outcome := "error"
	if domain.IsKind(err, domain.ErrInvalidQuery) {
		outcome = "invalid_query"
	}
	rt.metrics.RecordSearch(serviceName, outcome, elapsed)
}

func (rt *Router) recordSearchEnvelope(envelope *domain.ResultEnvelope, elapsed time.Duration) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordSearch(serviceName, "ok", elapsed)
	rt.metrics.RecordSearchResults(
		serviceName,
		len(envelope.CategorizedResults.Legislation),
		len(envelope.CategorizedResults.Judgments),
		len(envelope.CategorizedResults.ExternalResults),
	)
	for _, source := range envelope.SearchMetadata.DegradedSources {
		rt.metrics.RecordSourceDegraded(serviceName, source)
	}
	rt.metrics.RecordOverview(serviceName, envelope.CategorizedResults.IssueAnalysis.MatchedTopic != "")
}

func hydrationOutcome(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrRecordNotFound):
		return "not_found"
	case domain.IsKind(err, domain.ErrTemporary):
		return "temporary"
	default:
		return "error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
