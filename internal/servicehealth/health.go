// Package servicehealth tracks the health of every externally dependent
// service the Voice Interaction Core relies on and dispatches to registered
// fallback handlers when a service degrades, per spec §4.B.
package servicehealth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// Status is the health state of a single service kind.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnavailable
)

// String returns the lowercase wire/log name of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ErrNoFallback is returned when ExecuteWithFallback needs a fallback handler
// that was never registered for the given service kind.
var ErrNoFallback = errors.New("servicehealth: no fallback handler registered")

// EventSink receives best-effort status-transition notifications. A nil
// sink is valid; events are dropped.
type EventSink interface {
	EmitServiceStatusChanged(kind vic.ServiceKind, old, new Status)
}

// ServiceHealth is a point-in-time snapshot of one service kind's health.
type ServiceHealth struct {
	Kind                vic.ServiceKind
	Status              Status
	LastCheck           time.Time
	FailureCount        int
	LastError           error
	FallbackAvailable   bool
	FallbackDescription string
}

// Config tunes a Controller. The zero value is not usable; use NewController
// or DefaultConfig to obtain sane defaults.
type Config struct {
	// MaxFailures is the consecutive-failure count at which a service is
	// marked Unavailable. Defaults to 3.
	MaxFailures int

	// CriticalServices are kinds whose Unavailable status escalates the
	// overall system status to "critical" rather than merely "degraded".
	// Defaults to {Database}.
	CriticalServices []vic.ServiceKind

	// AutoFallback, when true, makes ExecuteWithFallback try the registered
	// fallback handler automatically after a primary-operation failure, in
	// addition to the already-unavailable short-circuit path. Defaults to
	// true.
	AutoFallback bool

	// FallbackDescriptions documents, per kind, what degraded behavior looks
	// like. Purely informational — surfaced via SystemHealth/Feature maps.
	FallbackDescriptions map[vic.ServiceKind]string
}

// DefaultConfig returns the spec's default degraded-mode configuration.
func DefaultConfig() Config {
	return Config{
		MaxFailures:      3,
		CriticalServices: []vic.ServiceKind{vic.Database},
		AutoFallback:     true,
		FallbackDescriptions: map[vic.ServiceKind]string{
			vic.STT:            "use cached transcriptions or text input",
			vic.Translation:    "use cached translations or show original text",
			vic.TTS:            "show text output instead of audio",
			vic.LLM:            "use template-based suggestions",
			vic.PriceOracle:    "use cached price data or demo data",
			vic.VoiceBiometric: "use PIN-based authentication",
			vic.Cache:          "use in-memory cache or direct database access",
		},
	}
}

func (c Config) isCritical(kind vic.ServiceKind) bool {
	for _, k := range c.CriticalServices {
		if k == kind {
			return true
		}
	}
	return false
}

// Controller is the Service Health & Graceful Degradation Controller
// (spec §4.B). It is safe for concurrent use.
type Controller struct {
	cfg  Config
	sink EventSink

	mu     sync.Mutex
	health map[vic.ServiceKind]*ServiceHealth

	handlersMu sync.RWMutex
	handlers   map[vic.ServiceKind]any // holds fallbackHandler[T] boxed as any
}

// Option configures a Controller.
type Option func(*Controller)

// WithEventSink sets the sink that receives ServiceStatusChanged events.
func WithEventSink(sink EventSink) Option {
	return func(c *Controller) { c.sink = sink }
}

// NewController creates a Controller with every known ServiceKind initialized
// to StatusHealthy.
func NewController(cfg Config, opts ...Option) *Controller {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 3
	}
	if cfg.CriticalServices == nil {
		cfg.CriticalServices = []vic.ServiceKind{vic.Database}
	}

	c := &Controller{
		cfg:      cfg,
		health:   make(map[vic.ServiceKind]*ServiceHealth, len(vic.AllServiceKinds())),
		handlers: make(map[vic.ServiceKind]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, kind := range vic.AllServiceKinds() {
		desc := cfg.FallbackDescriptions[kind]
		c.health[kind] = &ServiceHealth{
			Kind:                kind,
			Status:              StatusHealthy,
			LastCheck:           time.Now(),
			FallbackAvailable:   desc != "",
			FallbackDescription: desc,
		}
	}
	return c
}

// fallbackHandler is the type-erased storage form of a registered fallback.
type fallbackHandler[T any] func(ctx context.Context) (T, error)

// RegisterFallback registers the fallback used by ExecuteWithFallback when
// kind's primary operation is unavailable or fails. Go does not support
// method-level type parameters, so the type parameter lives on this
// package-level function rather than on Controller itself — the same
// constraint the teacher's resilience.FallbackGroup works around.
func RegisterFallback[T any](c *Controller, kind vic.ServiceKind, handler func(ctx context.Context) (T, error)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.handlers[kind] = fallbackHandler[T](handler)
	slog.Info("servicehealth: registered fallback handler", "service", kind)
}

// RecordFailure records a failed call against kind and updates its status:
// Degraded after the first failure, Unavailable once failures reach
// cfg.MaxFailures. A failure of a critical service is logged at error level.
func (c *Controller) RecordFailure(kind vic.ServiceKind, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.health[kind]
	prev := h.Status
	h.FailureCount++
	h.LastError = err
	h.LastCheck = time.Now()

	switch {
	case h.FailureCount >= c.cfg.MaxFailures:
		h.Status = StatusUnavailable
		slog.Error("servicehealth: service marked unavailable",
			"service", kind, "failure_count", h.FailureCount)
	default:
		h.Status = StatusDegraded
		slog.Warn("servicehealth: service marked degraded",
			"service", kind, "failure_count", h.FailureCount)
	}

	if c.cfg.isCritical(kind) && h.Status != StatusHealthy {
		slog.Error("servicehealth: critical service degraded", "service", kind, "status", h.Status)
	}

	if h.Status != prev && c.sink != nil {
		c.sink.EmitServiceStatusChanged(kind, prev, h.Status)
	}
}

// RecordSuccess records a successful call against kind, resetting its
// failure count and restoring StatusHealthy.
func (c *Controller) RecordSuccess(kind vic.ServiceKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.health[kind]
	prev := h.Status
	if h.FailureCount > 0 {
		slog.Info("servicehealth: service recovered", "service", kind, "prior_failures", h.FailureCount)
	}
	h.FailureCount = 0
	h.Status = StatusHealthy
	h.LastError = nil
	h.LastCheck = time.Now()

	if h.Status != prev && c.sink != nil {
		c.sink.EmitServiceStatusChanged(kind, prev, h.Status)
	}
}

// StatusOf returns kind's current status.
func (c *Controller) StatusOf(kind vic.ServiceKind) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.health[kind].Status
}

// IsAvailable reports whether kind is Healthy or Degraded (i.e. not
// Unavailable).
func (c *Controller) IsAvailable(kind vic.ServiceKind) bool {
	s := c.StatusOf(kind)
	return s == StatusHealthy || s == StatusDegraded
}

// HasFallback reports whether kind has a documented fallback description.
// This reflects configuration, not whether a handler is actually registered
// — use ExecuteWithFallback to exercise the registered handler.
func (c *Controller) HasFallback(kind vic.ServiceKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.health[kind].FallbackAvailable
}

// Snapshot returns a copy of kind's current ServiceHealth.
func (c *Controller) Snapshot(kind vic.ServiceKind) ServiceHealth {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.health[kind]
}

// ExecuteWithFallback runs primary against kind's current health. If kind is
// already Unavailable, the registered fallback runs immediately. Otherwise
// primary is tried first; on success the service is recorded healthy, on
// failure the service is recorded as failed and — when AutoFallback is
// enabled and a fallback is registered — the fallback is tried before the
// error is returned.
//
// This is a package-level function (not a Controller method) because Go does
// not support method-level type parameters.
func ExecuteWithFallback[T any](ctx context.Context, c *Controller, kind vic.ServiceKind, primary func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if !c.IsAvailable(kind) {
		slog.Warn("servicehealth: service unavailable, using fallback", "service", kind)
		return executeFallback[T](c, ctx, kind)
	}

	result, err := primary(ctx)
	if err == nil {
		c.RecordSuccess(kind)
		return result, nil
	}

	if errors.Is(err, vic.ErrCancelled) {
		// Cancellation is never a health signal (spec §5): the caller aborted,
		// the service itself did nothing wrong.
		return zero, err
	}

	c.RecordFailure(kind, err)

	c.handlersMu.RLock()
	_, registered := c.handlers[kind]
	c.handlersMu.RUnlock()
	if !c.cfg.AutoFallback || !registered {
		return zero, err
	}

	slog.Warn("servicehealth: primary operation failed, attempting fallback", "service", kind, "error", err)
	fbResult, fbErr := executeFallback[T](c, ctx, kind)
	if fbErr != nil {
		// Propagate the handler's own error verbatim (spec §4.B step 2), not a
		// reformatted composite — callers expect errors.Is/As to see exactly
		// what the fallback returned.
		return zero, fbErr
	}
	return fbResult, nil
}

func executeFallback[T any](c *Controller, ctx context.Context, kind vic.ServiceKind) (T, error) {
	var zero T

	c.handlersMu.RLock()
	boxed, ok := c.handlers[kind]
	c.handlersMu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNoFallback, kind)
	}

	handler, ok := boxed.(fallbackHandler[T])
	if !ok {
		return zero, fmt.Errorf("servicehealth: fallback handler for %s registered with a different type", kind)
	}
	return handler(ctx)
}

// SystemHealth summarizes the health of every tracked service kind.
type SystemHealth struct {
	OverallStatus       string
	HealthyServices     int
	DegradedServices    int
	UnavailableServices int
	TotalServices       int
	Services            map[vic.ServiceKind]ServiceHealth
}

// SystemHealth computes an aggregate health summary across all kinds.
// Overall status is "critical" if any critical service is Unavailable,
// "degraded" if any service is Degraded or a non-critical service is
// Unavailable, and "healthy" otherwise.
func (c *Controller) SystemHealth() SystemHealth {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := SystemHealth{
		Services:      make(map[vic.ServiceKind]ServiceHealth, len(c.health)),
		TotalServices: len(c.health),
	}

	for kind, h := range c.health {
		out.Services[kind] = *h
		switch h.Status {
		case StatusHealthy:
			out.HealthyServices++
		case StatusDegraded:
			out.DegradedServices++
		case StatusUnavailable:
			out.UnavailableServices++
		}
	}

	criticalUnavailable := false
	for _, kind := range c.cfg.CriticalServices {
		if c.health[kind].Status == StatusUnavailable {
			criticalUnavailable = true
			break
		}
	}

	switch {
	case criticalUnavailable:
		out.OverallStatus = "critical"
	case out.UnavailableServices > 0, out.DegradedServices > 0:
		out.OverallStatus = "degraded"
	default:
		out.OverallStatus = "healthy"
	}

	return out
}

// AvailableFeatures maps feature names to their current availability, the
// Go equivalent of the original's feature-flag derivation.
func (c *Controller) AvailableFeatures() map[string]bool {
	return map[string]bool{
		"voice_input":            c.IsAvailable(vic.STT),
		"voice_output":           c.IsAvailable(vic.TTS),
		"translation":            c.IsAvailable(vic.Translation),
		"price_check":            c.IsAvailable(vic.PriceOracle),
		"negotiation_assistance": c.IsAvailable(vic.LLM),
		"voice_authentication":   c.IsAvailable(vic.VoiceBiometric),
		"data_persistence":       c.IsAvailable(vic.Database),
		"caching":                c.IsAvailable(vic.Cache),
	}
}

// Reset restores kind to a fresh StatusHealthy record, for manual recovery
// or test setup.
func (c *Controller) Reset(kind vic.ServiceKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	desc := c.cfg.FallbackDescriptions[kind]
	c.health[kind] = &ServiceHealth{
		Kind:                kind,
		Status:              StatusHealthy,
		LastCheck:           time.Now(),
		FallbackAvailable:   desc != "",
		FallbackDescription: desc,
	}
	slog.Info("servicehealth: health reset", "service", kind)
}
