package usecase

import (
	"fmt"
	"strings"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

const maxLandmarkCases = 3

// buildCannedOverview renders a matched catalog template. The template's
// prose is used verbatim, but landmark cases are re-populated from the
// judgments actually retrieved for this query, so the field never claims
// a case the search did not surface.
func buildCannedOverview(tmpl domain.OverviewTemplate, judgments []domain.JudgmentRecord) domain.IssueOverview {
	return domain.IssueOverview{
		Title:                tmpl.Title,
		Summary:              tmpl.Summary,
		KeyPoints:            tmpl.KeyPoints,
		ImportantLegislation: tmpl.ImportantLegislation,
		LandmarkCases:        landmarkCasesFor(tmpl.TopicTags, judgments),
	}
}

// buildGenericOverview is the fallback when no catalog topic matches:
// fixed navigation prose plus the top hits from the live result set.
func buildGenericOverview(query string, legislation []domain.LegislationRecord, judgments []domain.JudgmentRecord) domain.IssueOverview {
	overview := domain.IssueOverview{
		Title:   "Overview: " + query,
		Summary: "No curated overview exists for this topic yet; the sections and judgments below were selected by keyword relevance.",
		KeyPoints: []string{
			"Review the statutory provisions for the controlling legal text.",
			"Read the judgment summaries to see how courts have applied it.",
			"Refine the query with an act name or section number for narrower results.",
		},
		ImportantLegislation: []string{},
		LandmarkCases:        []domain.LandmarkCase{},
	}

	for i, rec := range legislation {
		if i >= maxLandmarkCases {
			break
		}
		overview.ImportantLegislation = append(overview.ImportantLegislation,
			fmt.Sprintf("%s: %s", rec.ActName, rec.SectionTitle))
	}
	for i, j := range judgments {
		if i >= maxLandmarkCases {
			break
		}
		overview.LandmarkCases = append(overview.LandmarkCases, domain.LandmarkCase{
			Title: j.CaseTitle,
			Court: j.Court,
			Date:  j.Date,
		})
	}
	return overview
}

// landmarkCasesFor selects judgments whose issues or tags overlap the
// template's topic tags, in result order, capped at maxLandmarkCases.
func landmarkCasesFor(topicTags []string, judgments []domain.JudgmentRecord) []domain.LandmarkCase {
	out := make([]domain.LandmarkCase, 0, maxLandmarkCases)
	for _, j := range judgments {
		if len(out) >= maxLandmarkCases {
			break
		}
		if !overlapsFold(topicTags, j.Issues) && !overlapsFold(topicTags, j.Tags) {
			continue
		}
		out = append(out, domain.LandmarkCase{
			Title: j.CaseTitle,
			Court: j.Court,
			Date:  j.Date,
		})
	}
	return out
}

func overlapsFold(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[strings.ToLower(v)] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}
