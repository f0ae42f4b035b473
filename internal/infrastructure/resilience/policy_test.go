package resilience

import (
	"testing"
	"time"
)

func TestDefaultConfigFitsSourceWindow(t *testing.T) {
	cfg := DefaultConfig()

	// Worst-case backoff across all retries must stay well under the
	// 5s a search grants each source.
	var total time.Duration
	backoff := cfg.RetryInitialBackoff
	for i := 1; i < cfg.RetryMaxAttempts; i++ {
		if backoff > cfg.RetryMaxBackoff {
			backoff = cfg.RetryMaxBackoff
		}
		total += backoff
		backoff = time.Duration(float64(backoff) * cfg.RetryMultiplier)
	}
	if total >= 1*time.Second {
		t.Fatalf("default retry backoff budget too large: %v", total)
	}
	if !cfg.BreakerEnabled {
		t.Fatalf("breaker must be enabled by default")
	}
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	got := Config{}.normalize()
	def := DefaultConfig()

	if got.RetryMaxAttempts != def.RetryMaxAttempts {
		t.Fatalf("expected default attempts %d, got %d", def.RetryMaxAttempts, got.RetryMaxAttempts)
	}
	if got.RetryInitialBackoff != def.RetryInitialBackoff || got.RetryMaxBackoff != def.RetryMaxBackoff {
		t.Fatalf("expected default backoffs, got %v/%v", got.RetryInitialBackoff, got.RetryMaxBackoff)
	}
	if got.BreakerMinRequests != def.BreakerMinRequests || got.BreakerOpenTimeout != def.BreakerOpenTimeout {
		t.Fatalf("expected default breaker settings, got %+v", got)
	}
}

func TestNormalizeKeepsBackoffOrdered(t *testing.T) {
	got := Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: 1 * time.Second,
		RetryMaxBackoff:     100 * time.Millisecond,
		RetryMultiplier:     2,
	}.normalize()

	if got.RetryMaxBackoff < got.RetryInitialBackoff {
		t.Fatalf("max backoff %v must not undercut initial %v", got.RetryMaxBackoff, got.RetryInitialBackoff)
	}
}

func TestNormalizeRejectsBadFailureRatio(t *testing.T) {
	def := DefaultConfig()
	for _, ratio := range []float64{-0.5, 0, 1.5} {
		got := Config{BreakerFailureRatio: ratio}.normalize()
		if got.BreakerFailureRatio != def.BreakerFailureRatio {
			t.Fatalf("ratio %v must fall back to default, got %v", ratio, got.BreakerFailureRatio)
		}
	}
}
