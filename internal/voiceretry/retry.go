// Package voiceretry implements the exponential-backoff retry primitive
// reused across the Voice Pipeline Orchestrator and any downstream caller
// that needs bounded, cancellation-aware retries.
//
// Retry is deliberately a plain higher-order function rather than a
// decorator: the call site is where cancellation propagation becomes
// visible, matching the rest of the VIC core's style.
package voiceretry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// defaultMaxAttempts and defaultBaseDelay match spec §4.A's defaults: three
// attempts with a 1s base delay, producing 1s/2s sleeps between attempts.
const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
)

// Config tunes a single Retry call.
type Config struct {
	// MaxAttempts is the total number of attempts (including the first).
	// Defaults to 3.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt; it doubles on each
	// subsequent attempt. Defaults to 1s.
	BaseDelay time.Duration

	// MaxDelay caps the computed delay. Zero means uncapped.
	MaxDelay time.Duration

	// RetryOn decides whether a given error should be retried. A nil RetryOn
	// retries every error. Returning false causes Retry to return err
	// immediately without consuming further attempts.
	RetryOn func(error) bool
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = defaultBaseDelay
	}
	return c
}

// delayFor returns the sleep duration before the given 1-indexed attempt
// number, per spec §4.A: min(base_delay * 2^(attempt-1), max_delay).
func (c Config) delayFor(attempt int) time.Duration {
	d := c.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	if c.MaxDelay > 0 && d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// Op is the operation retried by Do. It receives the active context so
// long-running operations can observe cancellation mid-call.
type Op[T any] func(ctx context.Context) (T, error)

// Result carries the outcome of a Do call alongside bookkeeping the caller
// needs for StageOutcome accounting (attempt count in particular).
type Result[T any] struct {
	Value    T
	Attempts int
}

// Do invokes op, retrying on failure per cfg. On success it returns
// immediately. On exhaustion it returns the last error unwrapped. If ctx is
// cancelled — either before an attempt or during the inter-attempt sleep —
// Do returns a wrapped [vic.ErrCancelled] without consuming further
// attempts.
//
// Do logs a warning per failed attempt and an info message when a retried
// operation eventually succeeds, matching spec §4.A.
func Do[T any](ctx context.Context, cfg Config, op Op[T]) (Result[T], error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result[T]{Value: zero, Attempts: attempt - 1}, fmt.Errorf("%w: %v", vic.ErrCancelled, err)
		}

		val, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				slog.Info("voiceretry: operation succeeded after retry",
					"attempt", attempt, "max_attempts", cfg.MaxAttempts)
			}
			return Result[T]{Value: val, Attempts: attempt}, nil
		}

		lastErr = err

		if errors.Is(err, vic.ErrCancelled) {
			return Result[T]{Value: zero, Attempts: attempt}, err
		}

		if cfg.RetryOn != nil && !cfg.RetryOn(err) {
			return Result[T]{Value: zero, Attempts: attempt}, err
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		delay := cfg.delayFor(attempt)
		slog.Warn("voiceretry: attempt failed, retrying",
			"attempt", attempt, "max_attempts", cfg.MaxAttempts, "delay", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result[T]{Value: zero, Attempts: attempt}, fmt.Errorf("%w: %v", vic.ErrCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	slog.Warn("voiceretry: attempts exhausted", "max_attempts", cfg.MaxAttempts, "error", lastErr)
	return Result[T]{Value: zero, Attempts: cfg.MaxAttempts}, lastErr
}

// TransientOnly is a ready-made RetryOn predicate that retries only errors
// classified as transient per spec §7 (kind 2): timeouts, connection
// failures, upstream 5xx-equivalents. Validation, cancellation, capacity,
// and critical errors are never retried.
func TransientOnly(err error) bool {
	return vic.IsTransient(err)
}
