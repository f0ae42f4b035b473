package catalog

import "testing"

const testCatalog = `
topics:
  - topic: anticipatory bail
    keywords: ["anticipatory bail", "pre-arrest bail"]
    title: "Anticipatory Bail in India"
    summary: "Pre-arrest bail under Section 438 CrPC."
    key_points:
      - "Granted by Sessions Court or High Court."
    important_legislation:
      - "Code of Criminal Procedure, 1973: Section 438"
    tags: ["bail"]
  - topic: right to life
    keywords: ["article 21", "right to life"]
    title: "Right to Life and Personal Liberty"
    summary: "Article 21 jurisprudence."
    tags: ["constitutional law"]

related_issues:
  - topic: anticipatory bail
    related: ["regular bail", "bail conditions"]
  - topic: bail
    related: ["anticipatory bail", "personal liberty"]

fallback_texts:
  - id: sibbia-1980
    title: "Gurbaksh Singh Sibbia v. State of Punjab"
    court: "Supreme Court of India"
    date: "1980-04-09"
    full_text: "Constitution Bench ruling on Section 438."
`

func mustParse(t *testing.T) *Catalog {
	t.Helper()
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	return c
}

func TestMatchOverviewFirstTopicWins(t *testing.T) {
	c := mustParse(t)

	tmpl, ok := c.MatchOverview("I need anticipatory bail for my client")
	if !ok {
		t.Fatalf("expected a topic match")
	}
	if tmpl.Topic != "anticipatory bail" {
		t.Fatalf("expected anticipatory bail topic, got %q", tmpl.Topic)
	}
	if tmpl.Title != "Anticipatory Bail in India" {
		t.Fatalf("unexpected title %q", tmpl.Title)
	}
}

func TestMatchOverviewCaseInsensitive(t *testing.T) {
	c := mustParse(t)

	if _, ok := c.MatchOverview("ARTICLE 21 violation"); !ok {
		t.Fatalf("keyword matching must be case-insensitive")
	}
}

func TestMatchOverviewNoMatch(t *testing.T) {
	c := mustParse(t)

	if _, ok := c.MatchOverview("trademark infringement"); ok {
		t.Fatalf("expected no topic match")
	}
	if _, ok := c.MatchOverview("   "); ok {
		t.Fatalf("blank query must not match")
	}
}

func TestRelatedTopics(t *testing.T) {
	c := mustParse(t)

	// "anticipatory bail" contains "bail", so both adjacency rows apply.
	got := c.RelatedTopics("anticipatory bail")
	want := []string{"regular bail", "bail conditions", "anticipatory bail", "personal liberty"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFallbackFullText(t *testing.T) {
	c := mustParse(t)

	rec, ok := c.FallbackFullText("sibbia-1980")
	if !ok {
		t.Fatalf("expected fallback text for known id")
	}
	if rec.Court != "Supreme Court of India" {
		t.Fatalf("unexpected court %q", rec.Court)
	}

	if _, ok := c.FallbackFullText("unknown"); ok {
		t.Fatalf("expected no fallback for unknown id")
	}
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"fallback without id", "fallback_texts:\n  - title: orphan\n"},
		{"topic without keywords", "topics:\n  - topic: bail\n"},
		{"not yaml", "{{{"},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.raw)); err == nil {
			t.Fatalf("%s: expected parse error", tc.name)
		}
	}
}
