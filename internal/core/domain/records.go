package domain

// LegislationRecord is a statutory provision (act/section) kept as a
// searchable reference entity. Relevance is the curated intrinsic weight
// in [1,5]; MatchScore is computed per query and never persisted.
type LegislationRecord struct {
	ID           string   `json:"id"`
	ActName      string   `json:"act_name"`
	SectionTitle string   `json:"section_title"`
	SectionText  string   `json:"section_text"`
	Description  string   `json:"description,omitempty"`
	Relevance    int      `json:"relevance"`
	Tags         []string `json:"tags,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	MatchScore   int      `json:"match_score,omitempty"`
}

// JudgmentRecord is one court decision. Score is a query-independent
// prior used as a tie-break; MatchScore is computed per query.
type JudgmentRecord struct {
	ID         string   `json:"id"`
	CaseTitle  string   `json:"case_title"`
	Court      string   `json:"court"`
	Date       string   `json:"date"`
	Citation   string   `json:"citation,omitempty"`
	Summary    string   `json:"summary"`
	Text       string   `json:"text,omitempty"`
	Issues     []string `json:"issues,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Judges     []string `json:"judges,omitempty"`
	SourceURL  string   `json:"source_url,omitempty"`
	Score      int      `json:"score"`
	MatchScore int      `json:"match_score,omitempty"`
}

// ExternalHit mirrors a judgment but comes from a third-party legal
// database. Its relevance lives on a 0..1 float scale that is NOT
// comparable to the 1..5 integer scale of local records, so external
// hits are never merged into the other categories' ordering.
type ExternalHit struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Court     string  `json:"court,omitempty"`
	Date      string  `json:"date,omitempty"`
	Citation  string  `json:"citation,omitempty"`
	Snippet   string  `json:"snippet,omitempty"`
	SourceURL string  `json:"source_url,omitempty"`
	Relevance float64 `json:"relevance"`
}

// ScrapedJudgment is the wire shape the scraper publishes for every
// freshly scraped decision. Text may be empty when only a PDF was
// downloaded; the worker extracts it before upserting.
type ScrapedJudgment struct {
	ID        string   `json:"id,omitempty"`
	CaseTitle string   `json:"case_title"`
	Court     string   `json:"court"`
	Date      string   `json:"date"`
	Citation  string   `json:"citation,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Text      string   `json:"text,omitempty"`
	Issues    []string `json:"issues,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Judges    []string `json:"judges,omitempty"`
	Score     int      `json:"score,omitempty"`
	PDFPath   string   `json:"pdf_path,omitempty"`
	SourceURL string   `json:"source_url,omitempty"`
}

// FullRecordText is the hydrated full-text view of a single judgment,
// served on demand by id.
type FullRecordText struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Court     string   `json:"court"`
	Date      string   `json:"date"`
	Citation  string   `json:"citation,omitempty"`
	FullText  string   `json:"full_text"`
	Judges    []string `json:"judges,omitempty"`
	SourceURL string   `json:"source_url,omitempty"`
}
