package ports

import (
	"context"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

// IssueSearchService is the inbound contract for issue-based search.
type IssueSearchService interface {
	SearchByIssue(ctx context.Context, query string, opts domain.SearchOptions) (*domain.ResultEnvelope, error)
}

// RecordHydrator is the inbound contract for hydrating one result into
// its full text on demand.
type RecordHydrator interface {
	FullRecordText(ctx context.Context, id, source string) (*domain.FullRecordText, error)
}

// JudgmentIngestor is the inbound contract for the asynchronous
// scraped-judgment ingestion pipeline.
type JudgmentIngestor interface {
	IngestScraped(ctx context.Context, scraped domain.ScrapedJudgment) (*domain.JudgmentRecord, error)
}
