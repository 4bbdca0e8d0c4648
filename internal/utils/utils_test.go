package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "returns empty when limit non-positive", input: "Built REST APIs", limit: 0, expect: ""},
		{name: "shorter than limit", input: "Python", limit: 10, expect: "Python"},
		{name: "truncates and adds ellipsis", input: "Built REST APIs", limit: 5, expect: "Built..."},
		{name: "counts runes not bytes", input: "Ünïcödé text", limit: 7, expect: "Ünïcödé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    time.Duration
		attempt int
		limit   time.Duration
		expect  time.Duration
	}{
		{name: "first attempt waits base", base: time.Second, attempt: 1, limit: 5 * time.Second, expect: time.Second},
		{name: "grows linearly", base: time.Second, attempt: 3, limit: 5 * time.Second, expect: 3 * time.Second},
		{name: "capped at limit", base: time.Second, attempt: 10, limit: 5 * time.Second, expect: 5 * time.Second},
		{name: "no cap", base: time.Second, attempt: 10, limit: 0, expect: 10 * time.Second},
		{name: "zero attempt", base: time.Second, attempt: 0, limit: 0, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Backoff(tt.base, tt.attempt, tt.limit); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestWaitFor(t *testing.T) {
	original := sleep
	t.Cleanup(func() { sleep = original })

	var slept time.Duration
	sleep = func(d time.Duration) { slept = d }

	if err := WaitFor(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 2*time.Second {
		t.Fatalf("expected to sleep 2s, slept %s", slept)
	}

	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("zero duration must return immediately, got %v", err)
	}
}

func TestWaitForCancelled(t *testing.T) {
	original := sleep
	t.Cleanup(func() { sleep = original })

	release := make(chan struct{})
	sleep = func(time.Duration) { <-release }
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
