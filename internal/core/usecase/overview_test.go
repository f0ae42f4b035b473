package usecase

import (
	"testing"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

func TestBuildCannedOverviewRepopulatesLandmarks(t *testing.T) {
	tmpl := domain.OverviewTemplate{
		Topic:     "anticipatory bail",
		Title:     "Anticipatory Bail in India",
		Summary:   "Pre-arrest bail under Section 438 CrPC.",
		KeyPoints: []string{"Granted by Sessions Court or High Court."},
		TopicTags: []string{"bail"},
	}
	judgments := []domain.JudgmentRecord{
		{CaseTitle: "Sibbia", Court: "Supreme Court of India", Date: "1980-04-09", Tags: []string{"bail"}},
		{CaseTitle: "Unrelated", Court: "Delhi High Court", Date: "2001-01-01", Tags: []string{"property"}},
		{CaseTitle: "Mhetre", Court: "Supreme Court of India", Date: "2010-12-02", Issues: []string{"bail"}},
		{CaseTitle: "Sushila", Court: "Supreme Court of India", Date: "2020-01-29", Tags: []string{"bail"}},
		{CaseTitle: "Arnesh", Court: "Supreme Court of India", Date: "2014-07-02", Tags: []string{"bail"}},
	}

	overview := buildCannedOverview(tmpl, judgments)

	if overview.Title != tmpl.Title || overview.Summary != tmpl.Summary {
		t.Fatalf("canned prose must be used verbatim: %+v", overview)
	}
	if len(overview.LandmarkCases) != maxLandmarkCases {
		t.Fatalf("expected %d landmark cases, got %d", maxLandmarkCases, len(overview.LandmarkCases))
	}
	want := []string{"Sibbia", "Mhetre", "Sushila"}
	for i, title := range want {
		if overview.LandmarkCases[i].Title != title {
			t.Fatalf("landmark %d: expected %s, got %s", i, title, overview.LandmarkCases[i].Title)
		}
	}
}

func TestBuildGenericOverview(t *testing.T) {
	legislation := []domain.LegislationRecord{
		{ActName: "Code of Criminal Procedure, 1973", SectionTitle: "Section 438"},
		{ActName: "Code of Criminal Procedure, 1973", SectionTitle: "Section 437"},
		{ActName: "Constitution of India", SectionTitle: "Article 21"},
		{ActName: "Evidence Act", SectionTitle: "Section 3"},
	}
	judgments := []domain.JudgmentRecord{
		{CaseTitle: "Case A", Court: "Supreme Court of India", Date: "2020-01-01"},
	}

	overview := buildGenericOverview("some novel issue", legislation, judgments)

	if overview.Title != "Overview: some novel issue" {
		t.Fatalf("unexpected generic title %q", overview.Title)
	}
	if len(overview.ImportantLegislation) != 3 {
		t.Fatalf("expected top 3 legislation entries, got %d", len(overview.ImportantLegislation))
	}
	if overview.ImportantLegislation[0] != "Code of Criminal Procedure, 1973: Section 438" {
		t.Fatalf("unexpected legislation line %q", overview.ImportantLegislation[0])
	}
	if len(overview.LandmarkCases) != 1 || overview.LandmarkCases[0].Title != "Case A" {
		t.Fatalf("unexpected landmark cases %+v", overview.LandmarkCases)
	}
}

func TestBuildGenericOverviewEmptyResults(t *testing.T) {
	overview := buildGenericOverview("nothing found", nil, nil)
	if overview.ImportantLegislation == nil || overview.LandmarkCases == nil {
		t.Fatalf("empty result fields must be empty slices, not nil")
	}
	if len(overview.KeyPoints) == 0 {
		t.Fatalf("generic overview must carry navigation key points")
	}
}
