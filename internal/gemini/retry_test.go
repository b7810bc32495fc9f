package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"adgen/internal/domain"
)

func TestWithRetryRecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", &domain.ServiceError{Kind: domain.KindOverloaded, Status: 503, Message: "model overloaded"}
		}
		return "ok", nil
	}

	out, err := withRetry(context.Background(), zerolog.Nop(), op, DefaultMaxRetries, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Errorf("expected ok, got %q", out)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryStopsAtBudget(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		return 0, &domain.ServiceError{Kind: domain.KindInternalFault, Status: 500, Message: "internal"}
	}

	_, err := withRetry(context.Background(), zerolog.Nop(), op, 2, time.Millisecond)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected initial call plus 2 retries, got %d calls", calls)
	}
	var svcErr *domain.ServiceError
	if !errors.As(err, &svcErr) || svcErr.Kind != domain.KindInternalFault {
		t.Errorf("expected internal fault service error, got %v", err)
	}
}

func TestWithRetryPropagatesTerminalErrorsImmediately(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("invalid argument")
	}

	_, err := withRetry(context.Background(), zerolog.Nop(), op, DefaultMaxRetries, time.Millisecond)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("terminal error should not be retried, got %d calls", calls)
	}
}

func TestWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := func(ctx context.Context) (string, error) {
		cancel()
		return "", &domain.ServiceError{Kind: domain.KindOverloaded, Status: 503, Message: "model overloaded"}
	}

	_, err := withRetry(ctx, zerolog.Nop(), op, DefaultMaxRetries, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
