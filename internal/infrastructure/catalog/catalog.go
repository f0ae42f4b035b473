// Package catalog loads the curated legal-content tables from a YAML
// file: canned per-topic overviews, the related-issue adjacency map, and
// fallback full texts for well-known judgment ids. Keeping the content
// in data keeps the matching logic testable independent of its volume.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

type topicEntry struct {
	Topic                string   `yaml:"topic"`
	Keywords             []string `yaml:"keywords"`
	Title                string   `yaml:"title"`
	Summary              string   `yaml:"summary"`
	KeyPoints            []string `yaml:"key_points"`
	ImportantLegislation []string `yaml:"important_legislation"`
	Tags                 []string `yaml:"tags"`
}

type adjacencyEntry struct {
	Topic   string   `yaml:"topic"`
	Related []string `yaml:"related"`
}

type fallbackEntry struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Court     string   `yaml:"court"`
	Date      string   `yaml:"date"`
	Citation  string   `yaml:"citation"`
	Judges    []string `yaml:"judges"`
	SourceURL string   `yaml:"source_url"`
	FullText  string   `yaml:"full_text"`
}

type catalogFile struct {
	Topics        []topicEntry     `yaml:"topics"`
	RelatedIssues []adjacencyEntry `yaml:"related_issues"`
	FallbackTexts []fallbackEntry  `yaml:"fallback_texts"`
}

type Catalog struct {
	topics    []topicEntry
	adjacency []adjacencyEntry
	fallbacks map[string]fallbackEntry
}

func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	fallbacks := make(map[string]fallbackEntry, len(file.FallbackTexts))
	for _, f := range file.FallbackTexts {
		if f.ID == "" {
			return nil, fmt.Errorf("fallback text without id (title=%q)", f.Title)
		}
		fallbacks[f.ID] = f
	}

	for i, t := range file.Topics {
		if t.Topic == "" || len(t.Keywords) == 0 {
			return nil, fmt.Errorf("topic entry %d: topic and keywords are required", i)
		}
	}

	return &Catalog{
		topics:    file.Topics,
		adjacency: file.RelatedIssues,
		fallbacks: fallbacks,
	}, nil
}

// MatchOverview tests the lowercased query against each topic's keyword
// list in file order; the first topic with any keyword contained in the
// query wins.
func (c *Catalog) MatchOverview(query string) (domain.OverviewTemplate, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.OverviewTemplate{}, false
	}
	for _, t := range c.topics {
		for _, kw := range t.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(q, strings.ToLower(kw)) {
				return domain.OverviewTemplate{
					Topic:                t.Topic,
					Keywords:             t.Keywords,
					Title:                t.Title,
					Summary:              t.Summary,
					KeyPoints:            t.KeyPoints,
					ImportantLegislation: t.ImportantLegislation,
					TopicTags:            t.Tags,
				}, true
			}
		}
	}
	return domain.OverviewTemplate{}, false
}

// RelatedTopics collects adjacency entries whose topic phrase contains
// the query or is contained by it, in file order.
func (c *Catalog) RelatedTopics(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []string
	for _, entry := range c.adjacency {
		topic := strings.ToLower(entry.Topic)
		if topic == "" {
			continue
		}
		if strings.Contains(q, topic) || strings.Contains(topic, q) {
			out = append(out, entry.Related...)
		}
	}
	return out
}

func (c *Catalog) FallbackFullText(id string) (*domain.FullRecordText, bool) {
	f, ok := c.fallbacks[id]
	if !ok {
		return nil, false
	}
	return &domain.FullRecordText{
		ID:        f.ID,
		Title:     f.Title,
		Court:     f.Court,
		Date:      f.Date,
		Citation:  f.Citation,
		FullText:  f.FullText,
		Judges:    f.Judges,
		SourceURL: f.SourceURL,
	}, true
}
