package ports

import (
	"context"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

// LegislationStore reads the legislation record family. SearchByKeyword
// performs case-insensitive substring matching across act name, section
// title, section text, description, tags and keywords; an empty or
// whitespace-only term yields an empty list, never an error.
type LegislationStore interface {
	SearchByKeyword(ctx context.Context, term string) ([]domain.LegislationRecord, error)
}

// JudgmentStore reads the judgment record family. SearchByKeyword
// matches case title, summary, issues and tags the same way.
type JudgmentStore interface {
	SearchByKeyword(ctx context.Context, term string) ([]domain.JudgmentRecord, error)
	GetByID(ctx context.Context, id string) (*domain.JudgmentRecord, error)
}

// JudgmentWriter persists judgments arriving from the scraping pipeline.
// The search core never writes; only the ingestion worker and the seeder
// hold this capability.
type JudgmentWriter interface {
	Upsert(ctx context.Context, rec *domain.JudgmentRecord) error
}

// JudgmentPublisher hands a scraped judgment to the ingestion pipeline
// without waiting for it to be processed.
type JudgmentPublisher interface {
	PublishScrapedJudgment(ctx context.Context, scraped domain.ScrapedJudgment) error
}

// ExternalIndex proxies a third-party legal database. Implementations
// must bound every call with a timeout; the orchestrator treats any
// error as a zero-result contribution.
type ExternalIndex interface {
	Search(ctx context.Context, term string, limit int) ([]domain.ExternalHit, error)
}

// TopicCatalog exposes the curated legal-content tables: canned topic
// overviews, the related-issue adjacency map, and fallback full texts
// for a fixed set of well-known judgment ids.
type TopicCatalog interface {
	MatchOverview(query string) (domain.OverviewTemplate, bool)
	RelatedTopics(query string) []string
	FallbackFullText(id string) (*domain.FullRecordText, bool)
}

// TextExtractor pulls plain text out of a downloaded judgment PDF.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}
