package domain

import "time"

// SearchOptions is the options bag accepted by SearchByIssue. Use
// DefaultSearchOptions as the base so the include flags start enabled.
type SearchOptions struct {
	Limit              int
	IncludeLegislation bool
	IncludeJudgments   bool
	IncludeExternal    bool
	CourtFilter        string
	DateFrom           string
	DateTo             string
	IssueType          string
}

const DefaultResultLimit = 50

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:              DefaultResultLimit,
		IncludeLegislation: true,
		IncludeJudgments:   true,
		IncludeExternal:    true,
	}
}

// Normalized returns a copy with an applied default limit.
func (o SearchOptions) Normalized() SearchOptions {
	out := o
	if out.Limit <= 0 {
		out.Limit = DefaultResultLimit
	}
	return out
}

type CategorizedResults struct {
	Legislation     []LegislationRecord `json:"legislation"`
	Judgments       []JudgmentRecord    `json:"judgments"`
	ExternalResults []ExternalHit       `json:"external_results"`
	IssueAnalysis   IssueAnalysis       `json:"issue_analysis"`
}

// IssueAnalysis is a compact interpretation of the query itself:
// the normalized form, its tokens, and the catalog topic it matched
// (empty when the generic overview fallback was used).
type IssueAnalysis struct {
	NormalizedQuery string   `json:"normalized_query"`
	Terms           []string `json:"terms"`
	MatchedTopic    string   `json:"matched_topic,omitempty"`
}

type LandmarkCase struct {
	Title string `json:"title"`
	Court string `json:"court"`
	Date  string `json:"date"`
}

type IssueOverview struct {
	Title                string         `json:"title"`
	Summary              string         `json:"summary"`
	KeyPoints            []string       `json:"key_points"`
	ImportantLegislation []string       `json:"important_legislation"`
	LandmarkCases        []LandmarkCase `json:"landmark_cases"`
}

type FiltersApplied struct {
	CourtFilter string `json:"court_filter,omitempty"`
	DateFrom    string `json:"date_from,omitempty"`
	DateTo      string `json:"date_to,omitempty"`
	IssueType   string `json:"issue_type,omitempty"`
}

// SearchMetadata carries the applied filters and which sources degraded
// to zero results because their backing resource failed or timed out.
// An empty category list with no degradation note means "no matches".
type SearchMetadata struct {
	FiltersApplied  FiltersApplied `json:"filters_applied"`
	DegradedSources []string       `json:"degraded_sources,omitempty"`
	DurationMs      float64        `json:"duration_ms"`
}

// ResultEnvelope is the orchestrator's point-in-time output; it is
// computed per call and never stored.
type ResultEnvelope struct {
	Query              string             `json:"query"`
	Timestamp          time.Time          `json:"timestamp"`
	TotalResults       int                `json:"total_results"`
	CategorizedResults CategorizedResults `json:"categorized_results"`
	CourtsCoverage     CourtsCoverage     `json:"courts_coverage"`
	RelatedIssues      []string           `json:"related_issues"`
	IssueOverview      IssueOverview      `json:"issue_overview"`
	SearchMetadata     SearchMetadata     `json:"search_metadata"`
}

// OverviewTemplate is one canned topic entry from the catalog file.
// LandmarkCases are intentionally absent: they are re-populated live
// from the judgments actually retrieved for the current query.
type OverviewTemplate struct {
	Topic                string
	Keywords             []string
	Title                string
	Summary              string
	KeyPoints            []string
	ImportantLegislation []string
	TopicTags            []string
}
