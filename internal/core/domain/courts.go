package domain

import "strings"

// CourtTier is the jurisdictional classification bucket for a court name.
type CourtTier string

const (
	TierSupremeCourt  CourtTier = "supreme_court"
	TierHighCourt     CourtTier = "high_court"
	TierDistrictCourt CourtTier = "district_court"
	TierTribunal      CourtTier = "tribunal"
	TierOther         CourtTier = "other"
	TierUnknown       CourtTier = "unknown"
)

// ClassifyCourt maps a free-text court name to a tier. Court names are
// uncontrolled external input, so the function is total: any string,
// including empty, yields a tier. Rules are evaluated in priority order
// and the first match wins.
func ClassifyCourt(name string) CourtTier {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "":
		return TierUnknown
	case strings.Contains(n, "supreme court"):
		return TierSupremeCourt
	case strings.Contains(n, "high court"):
		return TierHighCourt
	case strings.Contains(n, "district court"), strings.Contains(n, "sessions court"):
		return TierDistrictCourt
	case strings.Contains(n, "tribunal"), strings.Contains(n, "commission"), strings.Contains(n, "authority"):
		return TierTribunal
	default:
		return TierOther
	}
}

// CourtsCoverage is the per-response aggregate over every court seen in
// the merged judgment and external-hit lists.
type CourtsCoverage struct {
	SupremeCourt   int      `json:"supreme_court"`
	HighCourts     int      `json:"high_courts"`
	DistrictCourts int      `json:"district_courts"`
	Tribunals      int      `json:"tribunals"`
	Other          int      `json:"other"`
	CourtNames     []string `json:"court_names"`
	TotalCourts    int      `json:"total_courts"`
}

// BuildCourtsCoverage tallies tier counts and collects the deduplicated
// court-name list in insertion order. Dedup is case-sensitive string
// identity: the source data is expected to arrive normalized, and two
// differently-cased spellings are treated as distinct courts.
func BuildCourtsCoverage(judgments []JudgmentRecord, hits []ExternalHit) CourtsCoverage {
	var cov CourtsCoverage
	seen := make(map[string]struct{})

	record := func(name string) {
		switch ClassifyCourt(name) {
		case TierSupremeCourt:
			cov.SupremeCourt++
		case TierHighCourt:
			cov.HighCourts++
		case TierDistrictCourt:
			cov.DistrictCourts++
		case TierTribunal:
			cov.Tribunals++
		case TierOther:
			cov.Other++
		case TierUnknown:
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		cov.CourtNames = append(cov.CourtNames, name)
	}

	for _, j := range judgments {
		record(j.Court)
	}
	for _, h := range hits {
		record(h.Court)
	}

	cov.TotalCourts = len(cov.CourtNames)
	return cov
}
