package usecase

import (
	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

const maxRelatedIssues = 10

// deriveRelatedIssues unions the static adjacency topics for the query
// with every issue tag found on the matched judgments. Entries identical
// to the query itself are dropped, duplicates are removed by exact
// string identity, insertion order is preserved, and the list is capped.
func deriveRelatedIssues(query string, adjacent []string, judgments []domain.JudgmentRecord) []string {
	out := make([]string, 0, maxRelatedIssues)
	seen := make(map[string]struct{})

	add := func(issue string) {
		if issue == "" || issue == query {
			return
		}
		if _, ok := seen[issue]; ok {
			return
		}
		if len(out) >= maxRelatedIssues {
			return
		}
		seen[issue] = struct{}{}
		out = append(out, issue)
	}

	for _, topic := range adjacent {
		add(topic)
	}
	for _, j := range judgments {
		for _, issue := range j.Issues {
			add(issue)
		}
	}
	return out
}
