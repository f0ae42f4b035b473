package kanoon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchParsesDocs(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("formInput")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"docs": [
				{"tid": 1308540, "title": "Sibbia v. State of Punjab", "docsource": "Supreme Court of India",
				 "publishdate": "1980-04-09", "headline": "anticipatory bail", "score": 0.92, "url": "https://example.org/doc/1308540"},
				{"tid": 2, "title": "", "score": 0.5},
				{"tid": 3, "title": "Overflowing score", "score": 7.5}
			]
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-token", Options{})
	hits, err := client.Search(context.Background(), "anticipatory bail", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Token secret-token" {
		t.Fatalf("expected token auth header, got %q", gotAuth)
	}
	if gotQuery != "anticipatory bail" {
		t.Fatalf("expected query forwarded, got %q", gotQuery)
	}

	// Untitled docs are dropped.
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	first := hits[0]
	if first.ID != "1308540" || first.Court != "Supreme Court of India" {
		t.Fatalf("unexpected first hit %+v", first)
	}
	if first.Relevance != 0.92 {
		t.Fatalf("expected relevance 0.92, got %f", first.Relevance)
	}
	// Out-of-range upstream scores are clamped to the unit interval.
	if hits[1].Relevance != 1 {
		t.Fatalf("expected clamped relevance 1, got %f", hits[1].Relevance)
	}
}

func TestSearchHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "", Options{})
	_, err := client.Search(context.Background(), "bail", 10)
	if err == nil {
		t.Fatalf("expected error for 503 response")
	}
	class := classifyKanoonError(err)
	if !class.Retryable || !class.RecordFailure {
		t.Fatalf("503 must classify as retryable failure, got %+v", class)
	}
}

func TestSearchClientErrorNotRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, "bad-key", Options{})
	_, err := client.Search(context.Background(), "bail", 10)
	if err == nil {
		t.Fatalf("expected error for 401 response")
	}
	class := classifyKanoonError(err)
	if class.Retryable {
		t.Fatalf("401 must not be retryable, got %+v", class)
	}
}

func TestSearchBlankTerm(t *testing.T) {
	client := New("http://localhost:1", "", Options{})
	hits, err := client.Search(context.Background(), "   ", 10)
	if err != nil {
		t.Fatalf("blank term must not error: %v", err)
	}
	if hits != nil {
		t.Fatalf("blank term must yield no hits, got %v", hits)
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"docs": [
			{"tid": 1, "title": "A", "score": 0.9},
			{"tid": 2, "title": "B", "score": 0.8},
			{"tid": 3, "title": "C", "score": 0.7}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, "", Options{})
	hits, err := client.Search(context.Background(), "bail", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected limit of 2 applied, got %d", len(hits))
	}
}
