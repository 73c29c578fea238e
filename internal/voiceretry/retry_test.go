package voiceretry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

var errBoom = errors.New("boom")

func transientBoom() error {
	return fmt.Errorf("%w: %v", vic.ErrTransient, errBoom)
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	res, err := Do(context.Background(), Config{}, func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Value != 42 {
		t.Fatalf("value = %d, want 42", res.Value)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if res.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", res.Attempts)
	}
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	res, err := Do(context.Background(), Config{BaseDelay: time.Millisecond}, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", transientBoom()
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Value != "ok" {
		t.Fatalf("value = %q, want ok", res.Value)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if res.Attempts != 3 {
		t.Fatalf("attempts = %d, want 3", res.Attempts)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Millisecond}
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, transientBoom()
	})
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if !errors.Is(err, vic.ErrTransient) {
		t.Fatalf("err = %v, want wrapped ErrTransient", err)
	}
}

func TestDo_DefaultsAppliedWhenZero(t *testing.T) {
	calls := 0
	cfg := Config{BaseDelay: time.Millisecond}
	_, _ = Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, transientBoom()
	})
	if calls != defaultMaxAttempts {
		t.Fatalf("calls = %d, want default %d", calls, defaultMaxAttempts)
	}
}

func TestDo_DelayDoubles(t *testing.T) {
	cfg := Config{BaseDelay: 1 * time.Second}
	if got := cfg.delayFor(1); got != 1*time.Second {
		t.Fatalf("delayFor(1) = %v, want 1s", got)
	}
	if got := cfg.delayFor(2); got != 2*time.Second {
		t.Fatalf("delayFor(2) = %v, want 2s", got)
	}
	if got := cfg.delayFor(3); got != 4*time.Second {
		t.Fatalf("delayFor(3) = %v, want 4s", got)
	}
}

func TestDo_DelayCappedByMaxDelay(t *testing.T) {
	cfg := Config{BaseDelay: 1 * time.Second, MaxDelay: 3 * time.Second}
	if got := cfg.delayFor(3); got != 3*time.Second {
		t.Fatalf("delayFor(3) = %v, want capped 3s", got)
	}
}

func TestDo_RetryOnFalseStopsImmediately(t *testing.T) {
	calls := 0
	cfg := Config{
		BaseDelay: time.Millisecond,
		RetryOn:   func(err error) bool { return false },
	}
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, errBoom
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (RetryOn=false should stop immediately)", calls)
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want errBoom", err)
	}
}

func TestDo_ValidationErrorNotRetried(t *testing.T) {
	calls := 0
	cfg := Config{BaseDelay: time.Millisecond, RetryOn: TransientOnly}
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("%w: empty audio", vic.ErrValidation)
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (validation errors are never retried)", calls)
	}
	if !errors.Is(err, vic.ErrValidation) {
		t.Fatalf("err = %v, want wrapped ErrValidation", err)
	}
}

func TestDo_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, Config{}, func(ctx context.Context) (int, error) {
		calls++
		return 0, nil
	})
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
	if !errors.Is(err, vic.ErrCancelled) {
		t.Fatalf("err = %v, want wrapped ErrCancelled", err)
	}
}

func TestDo_CancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{BaseDelay: time.Hour}

	calls := 0
	done := make(chan struct{})
	var err error
	go func() {
		_, err = Do(ctx, cfg, func(ctx context.Context) (int, error) {
			calls++
			return 0, transientBoom()
		})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if !errors.Is(err, vic.ErrCancelled) {
		t.Fatalf("err = %v, want wrapped ErrCancelled", err)
	}
}
