package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/kartikrao/legal-issue-search/internal/core/domain"
)

func TestClassifyNATSError(t *testing.T) {
	cases := []struct {
		name          string
		err           error
		retryable     bool
		recordFailure bool
	}{
		{"nil", nil, false, false},
		{"canceled", context.Canceled, false, false},
		{"no servers", nats.ErrNoServers, true, true},
		{"timeout", nats.ErrTimeout, true, true},
		{"connection closed", nats.ErrConnectionClosed, true, true},
		{"other", errors.New("boom"), false, true},
	}
	for _, tc := range cases {
		class := classifyNATSError(tc.err)
		if class.Retryable != tc.retryable || class.RecordFailure != tc.recordFailure {
			t.Fatalf("%s: got %+v, want retryable=%v recordFailure=%v", tc.name, class, tc.retryable, tc.recordFailure)
		}
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	if err := wrapTemporaryIfNeeded(nil); err != nil {
		t.Fatalf("nil must stay nil, got %v", err)
	}

	wrapped := wrapTemporaryIfNeeded(nats.ErrTimeout)
	if !domain.IsKind(wrapped, domain.ErrTemporary) {
		t.Fatalf("retryable transport error must become temporary, got %v", wrapped)
	}

	plain := errors.New("schema violation")
	if got := wrapTemporaryIfNeeded(plain); !errors.Is(got, plain) || domain.IsKind(got, domain.ErrTemporary) {
		t.Fatalf("permanent error must pass through unwrapped, got %v", got)
	}

	already := domain.WrapError(domain.ErrTemporary, "nats publish", nats.ErrTimeout)
	if got := wrapTemporaryIfNeeded(already); got != already {
		t.Fatalf("already-temporary error must not be double wrapped")
	}
}
