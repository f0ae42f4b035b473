package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %s", cfg.APIPort)
	}
	if cfg.NATSSubject != "judgments.scraped" {
		t.Fatalf("expected default nats subject judgments.scraped, got %s", cfg.NATSSubject)
	}
	if cfg.SourceTimeout != 5*time.Second {
		t.Fatalf("expected default source timeout 5s, got %s", cfg.SourceTimeout)
	}
	if cfg.SearchDefaultLimit != 50 {
		t.Fatalf("expected default search limit 50, got %d", cfg.SearchDefaultLimit)
	}
	if cfg.APIMaxInFlight != 256 {
		t.Fatalf("expected default max in flight 256, got %d", cfg.APIMaxInFlight)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("SEARCH_SOURCE_TIMEOUT", "750ms")
	t.Setenv("API_RATE_LIMIT_RPS", "5")
	t.Setenv("EXTERNAL_INDEX_API_KEY", "test-token")

	cfg := Load()

	if cfg.APIPort != "9999" {
		t.Fatalf("expected api port 9999, got %s", cfg.APIPort)
	}
	if cfg.SourceTimeout != 750*time.Millisecond {
		t.Fatalf("expected source timeout 750ms, got %s", cfg.SourceTimeout)
	}
	if cfg.APIRateLimitRPS != 5 {
		t.Fatalf("expected rate limit rps 5, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.ExternalIndexAPIKey != "test-token" {
		t.Fatalf("expected external index api key override, got %q", cfg.ExternalIndexAPIKey)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SEARCH_DEFAULT_LIMIT", "not-a-number")
	t.Setenv("SEARCH_SOURCE_TIMEOUT", "soon")

	cfg := Load()

	if cfg.SearchDefaultLimit != 50 {
		t.Fatalf("expected fallback search limit 50, got %d", cfg.SearchDefaultLimit)
	}
	if cfg.SourceTimeout != 5*time.Second {
		t.Fatalf("expected fallback source timeout 5s, got %s", cfg.SourceTimeout)
	}
}
