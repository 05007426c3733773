package util

import (
	"context"
	"fmt"
	"testing"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	result, err := Retry(3, 0, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, fmt.Errorf("attempt %d failed", calls)
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != 42 {
		t.Errorf("expected 42, got %d", result)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryReturnsLastError(t *testing.T) {
	calls := 0
	_, err := Retry(2, 0, func() (int, error) {
		calls++
		return 0, fmt.Errorf("attempt %d failed", calls)
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err.Error() != "attempt 2 failed" {
		t.Errorf("expected last error, got %v", err)
	}
}

func TestRetryWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := RetryWithContext(ctx, 3, 0, func(ctx context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("should not run")
	})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no calls after cancellation, got %d", calls)
	}
}

func TestRetryWithContextStopsOnContextError(t *testing.T) {
	calls := 0
	_, err := RetryWithContext(context.Background(), 3, 0, func(ctx context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("wrapped: %w", context.DeadlineExceeded)
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
