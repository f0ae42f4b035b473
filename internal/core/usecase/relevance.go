package usecase

import (
	"sort"
	"strings"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

const maxMatchScore = 5

// scoreLegislation computes the query-dependent match score for a
// legislation record: 3 for a hit in the act name or section title,
// +2 for a tag hit, +2 for a keyword hit, capped at 5.
func scoreLegislation(query string, rec domain.LegislationRecord) int {
	q := strings.ToLower(query)
	score := 0
	if containsFold(rec.ActName, q) || containsFold(rec.SectionTitle, q) {
		score += 3
	}
	if anyContainsFold(rec.Tags, q) {
		score += 2
	}
	if anyContainsFold(rec.Keywords, q) {
		score += 2
	}
	if score > maxMatchScore {
		score = maxMatchScore
	}
	return score
}

// scoreJudgment computes the query-dependent match score for a judgment:
// 3 for the case title, +2 for the summary, +3 for an issue tag, +2 for
// a plain tag, capped at 5.
func scoreJudgment(query string, rec domain.JudgmentRecord) int {
	q := strings.ToLower(query)
	score := 0
	if containsFold(rec.CaseTitle, q) {
		score += 3
	}
	if containsFold(rec.Summary, q) {
		score += 2
	}
	if anyContainsFold(rec.Issues, q) {
		score += 3
	}
	if anyContainsFold(rec.Tags, q) {
		score += 2
	}
	if score > maxMatchScore {
		score = maxMatchScore
	}
	return score
}

// sortLegislation orders a legislation candidate list: records whose act
// name or section title contains the query rank above tag/keyword-only
// matches, then by intrinsic relevance descending, then by computed
// match score descending, then by id for stability.
func sortLegislation(query string, recs []domain.LegislationRecord) {
	q := strings.ToLower(query)
	nameHit := func(r domain.LegislationRecord) bool {
		return containsFold(r.ActName, q) || containsFold(r.SectionTitle, q)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		hi, hj := nameHit(recs[i]), nameHit(recs[j])
		if hi != hj {
			return hi
		}
		if recs[i].Relevance != recs[j].Relevance {
			return recs[i].Relevance > recs[j].Relevance
		}
		if recs[i].MatchScore != recs[j].MatchScore {
			return recs[i].MatchScore > recs[j].MatchScore
		}
		return recs[i].ID < recs[j].ID
	})
}

// sortJudgments orders judgments by computed match score descending,
// then base score (the query-independent prior) descending, then id
// ascending. The id tail keeps ordering deterministic when both scores
// tie.
func sortJudgments(recs []domain.JudgmentRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].MatchScore != recs[j].MatchScore {
			return recs[i].MatchScore > recs[j].MatchScore
		}
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ID < recs[j].ID
	})
}

func containsFold(haystack, lowerNeedle string) bool {
	if haystack == "" || lowerNeedle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func anyContainsFold(values []string, lowerNeedle string) bool {
	for _, v := range values {
		if containsFold(v, lowerNeedle) {
			return true
		}
	}
	return false
}
