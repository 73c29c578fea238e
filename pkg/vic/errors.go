package vic

import "errors"

// Error kinds per spec §7. These are sentinel categories, not concrete error
// types — call sites wrap them with fmt.Errorf("%w: ...") and callers use
// errors.Is to classify a failure.
var (
	// ErrValidation marks input that fails validation: empty audio,
	// unsupported language, malformed input. Never retried, no health impact.
	ErrValidation = errors.New("vic: validation error")

	// ErrTransient marks a retryable failure: timeout, connection failure,
	// upstream 5xx-equivalent.
	ErrTransient = errors.New("vic: transient error")

	// ErrCancelled marks caller-initiated cancellation. Never retried, no
	// health impact.
	ErrCancelled = errors.New("vic: cancelled")

	// ErrCapacityExceeded marks a session-cap violation. Never retried.
	ErrCapacityExceeded = errors.New("vic: capacity exceeded")

	// ErrCritical marks a critical-service-unavailable condition surfaced via
	// an event; non-critical paths continue operating.
	ErrCritical = errors.New("vic: critical service unavailable")
)

// IsTransient reports whether err should be treated as retryable per the
// Retry Engine's default predicate.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
