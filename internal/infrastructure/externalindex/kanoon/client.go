// Package kanoon proxies the third-party legal-database search API.
// The upstream is outside this system's control, so every call is
// timeout-bounded and routed through the resilience executor; callers
// treat any error as a zero-result contribution.
package kanoon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
	"github.com/kartikrao/legal-issue-search/internal/infrastructure/resilience"
)

const defaultTimeout = 8 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, apiKey string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type searchResponse struct {
	Docs []struct {
		TID      json.Number `json:"tid"`
		Title    string      `json:"title"`
		Court    string      `json:"docsource"`
		Date     string      `json:"publishdate"`
		Citation string      `json:"citation"`
		Headline string      `json:"headline"`
		Score    float64     `json:"score"`
		URL      string      `json:"url"`
	} `json:"docs"`
}

func (c *Client) Search(ctx context.Context, term string, limit int) ([]domain.ExternalHit, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = domain.DefaultResultLimit
	}

	var hits []domain.ExternalHit
	call := func(callCtx context.Context) error {
		var err error
		hits, err = c.search(callCtx, term, limit)
		return err
	}

	if c.executor != nil {
		if err := c.executor.Execute(ctx, "kanoon.search", call, classifyKanoonError); err != nil {
			return nil, err
		}
		return hits, nil
	}
	if err := call(ctx); err != nil {
		return nil, err
	}
	return hits, nil
}

func (c *Client) search(ctx context.Context, term string, limit int) ([]domain.ExternalHit, error) {
	params := url.Values{}
	params.Set("formInput", term)
	params.Set("pagenum", "0")
	params.Set("maxresults", strconv.Itoa(limit))

	endpoint := c.baseURL + "/search/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kanoon search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{
			Operation:  "search",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.ExternalHit, 0, len(parsed.Docs))
	for _, doc := range parsed.Docs {
		if len(out) >= limit {
			break
		}
		hit := domain.ExternalHit{
			ID:        doc.TID.String(),
			Title:     strings.TrimSpace(doc.Title),
			Court:     strings.TrimSpace(doc.Court),
			Date:      strings.TrimSpace(doc.Date),
			Citation:  strings.TrimSpace(doc.Citation),
			Snippet:   strings.TrimSpace(doc.Headline),
			SourceURL: doc.URL,
			Relevance: clampUnit(doc.Score),
		}
		if hit.Title == "" {
			continue
		}
		out = append(out, hit)
	}
	return out, nil
}

// clampUnit keeps the upstream relevance on its documented 0..1 scale
// even when the proxy misbehaves.
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
