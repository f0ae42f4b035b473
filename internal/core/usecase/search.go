package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
	"github.com/kartikrao/legal-issue-search/internal/core/ports"
)

const defaultSourceTimeout = 5 * time.Second

// SearchIssueUseCase orchestrates an issue-based search: it fans out to
// the three sources concurrently, waits for all of them (or their
// timeouts), and assembles the envelope. A failed source contributes
// zero results and a degradation note; only an invalid query or caller
// cancellation aborts the whole call.
type SearchIssueUseCase struct {
	legislation ports.LegislationStore
	judgments   ports.JudgmentStore
	external    ports.ExternalIndex
	catalog     ports.TopicCatalog

	sourceTimeout time.Duration
}

func NewSearchIssueUseCase(
	legislation ports.LegislationStore,
	judgments ports.JudgmentStore,
	external ports.ExternalIndex,
	catalog ports.TopicCatalog,
	sourceTimeout time.Duration,
) *SearchIssueUseCase {
	if sourceTimeout <= 0 {
		sourceTimeout = defaultSourceTimeout
	}
	return &SearchIssueUseCase{
		legislation:   legislation,
		judgments:     judgments,
		external:      external,
		catalog:       catalog,
		sourceTimeout: sourceTimeout,
	}
}

func (uc *SearchIssueUseCase) SearchByIssue(ctx context.Context, query string, opts domain.SearchOptions) (*domain.ResultEnvelope, error) {
	started := time.Now()

	q := strings.TrimSpace(query)
	if q == "" {
		return nil, domain.WrapError(domain.ErrInvalidQuery, "search by issue", errors.New("query is empty or whitespace"))
	}
	opts = opts.Normalized()

	var (
		legislation []domain.LegislationRecord
		judgments   []domain.JudgmentRecord
		external    []domain.ExternalHit

		legErr, judErr, extErr error
	)

	var g errgroup.Group
	if opts.IncludeLegislation {
		g.Go(func() error {
			var err error
			legislation, err = uc.fetchLegislation(ctx, q, opts.Limit)
			return uc.absorbSourceError(ctx, "legislation", err, &legErr)
		})
	}
	if opts.IncludeJudgments {
		g.Go(func() error {
			var err error
			judgments, err = uc.fetchJudgments(ctx, q, opts)
			return uc.absorbSourceError(ctx, "judgments", err, &judErr)
		})
	}
	if opts.IncludeExternal {
		g.Go(func() error {
			var err error
			external, err = uc.fetchExternal(ctx, q, opts.Limit)
			return uc.absorbSourceError(ctx, "external_index", err, &extErr)
		})
	}
	if err := g.Wait(); err != nil {
		// Only caller cancellation reaches here; no partial envelope.
		return nil, err
	}

	// Empty categories serialize as [] rather than null.
	if legislation == nil {
		legislation = []domain.LegislationRecord{}
	}
	if judgments == nil {
		judgments = []domain.JudgmentRecord{}
	}
	if external == nil {
		external = []domain.ExternalHit{}
	}

	var degraded []string
	if legErr != nil {
		degraded = append(degraded, "legislation")
	}
	if judErr != nil {
		degraded = append(degraded, "judgments")
	}
	if extErr != nil {
		degraded = append(degraded, "external_index")
	}

	tmpl, matched := uc.catalog.MatchOverview(q)
	var overview domain.IssueOverview
	var matchedTopic string
	if matched {
		overview = buildCannedOverview(tmpl, judgments)
		matchedTopic = tmpl.Topic
	} else {
		overview = buildGenericOverview(q, legislation, judgments)
	}

	envelope := &domain.ResultEnvelope{
		Query:        q,
		Timestamp:    time.Now().UTC(),
		TotalResults: len(legislation) + len(judgments) + len(external),
		CategorizedResults: domain.CategorizedResults{
			Legislation:     legislation,
			Judgments:       judgments,
			ExternalResults: external,
			IssueAnalysis: domain.IssueAnalysis{
				NormalizedQuery: strings.ToLower(q),
				Terms:           tokenizeQuery(q),
				MatchedTopic:    matchedTopic,
			},
		},
		CourtsCoverage: domain.BuildCourtsCoverage(judgments, external),
		RelatedIssues:  deriveRelatedIssues(q, uc.catalog.RelatedTopics(q), judgments),
		IssueOverview:  overview,
		SearchMetadata: domain.SearchMetadata{
			FiltersApplied: domain.FiltersApplied{
				CourtFilter: opts.CourtFilter,
				DateFrom:    opts.DateFrom,
				DateTo:      opts.DateTo,
				IssueType:   opts.IssueType,
			},
			DegradedSources: degraded,
			DurationMs:      float64(time.Since(started).Microseconds()) / 1000.0,
		},
	}
	return envelope, nil
}

// absorbSourceError converts a source failure into a degradation note,
// unless the caller's context is gone, in which case cancellation
// propagates and aborts the search.
func (uc *SearchIssueUseCase) absorbSourceError(ctx context.Context, source string, err error, slot *error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	*slot = err
	slog.Warn("search_source_degraded", "source", source, "error", err)
	return nil
}

func (uc *SearchIssueUseCase) fetchLegislation(ctx context.Context, term string, limit int) ([]domain.LegislationRecord, error) {
	sctx, cancel := context.WithTimeout(ctx, uc.sourceTimeout)
	defer cancel()

	recs, err := uc.legislation.SearchByKeyword(sctx, term)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceFailed, "query legislation", err)
	}
	for i := range recs {
		recs[i].MatchScore = scoreLegislation(term, recs[i])
	}
	sortLegislation(term, recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (uc *SearchIssueUseCase) fetchJudgments(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.JudgmentRecord, error) {
	sctx, cancel := context.WithTimeout(ctx, uc.sourceTimeout)
	defer cancel()

	recs, err := uc.judgments.SearchByKeyword(sctx, term)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceFailed, "query judgments", err)
	}

	filtered := recs[:0]
	for _, rec := range recs {
		if opts.CourtFilter != "" && !containsFold(rec.Court, strings.ToLower(opts.CourtFilter)) {
			continue
		}
		if !withinDateBounds(rec.Date, opts.DateFrom, opts.DateTo) {
			continue
		}
		rec.MatchScore = scoreJudgment(term, rec)
		filtered = append(filtered, rec)
	}

	sortJudgments(filtered)
	if len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}
	return filtered, nil
}

func (uc *SearchIssueUseCase) fetchExternal(ctx context.Context, term string, limit int) ([]domain.ExternalHit, error) {
	sctx, cancel := context.WithTimeout(ctx, uc.sourceTimeout)
	defer cancel()

	hits, err := uc.external.Search(sctx, term, limit)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceFailed, "query external index", err)
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// withinDateBounds keeps a record when its date parses and falls inside
// the inclusive [from, to] window. A record with a missing or
// unparseable date is excluded only when a bound was actually given.
func withinDateBounds(date, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	d, ok := parseISODate(date)
	if !ok {
		return false
	}
	if from != "" {
		if f, ok := parseISODate(from); ok && d.Before(f) {
			return false
		}
	}
	if to != "" {
		if t, ok := parseISODate(to); ok && d.After(t) {
			return false
		}
	}
	return true
}

func parseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func tokenizeQuery(s string) []string {
	tokens := make([]string, 0, 8)
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
