// Package autoscale implements the Autoscaling Control Loop (spec §4.E): a
// periodic load-sampling loop that grows or shrinks a worker pool under
// cooldown hysteresis, driven entirely through externally supplied hooks.
package autoscale

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// loadGauge is a standalone Prometheus gauge (outside the otel metrics
// pipeline) tracking the weighted load fraction computed on each tick, for
// ops dashboards that scrape /metrics directly rather than through otel.
var loadGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "vic",
	Subsystem: "autoscale",
	Name:      "load_fraction",
	Help:      "Weighted host load fraction (0.7*cpu + 0.3*memory) sampled on the most recent autoscale tick.",
})

// instanceGauge tracks the instance count observed on the most recent tick.
var instanceGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "vic",
	Subsystem: "autoscale",
	Name:      "instances",
	Help:      "Number of backend instances discovered on the most recent autoscale tick.",
})

// Action is the decision an autoscale tick produces.
type Action int

const (
	ActionNoOp Action = iota
	ActionUp
	ActionDown
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	default:
		return "no_op"
	}
}

// Default tuning knobs (spec §4.E).
const (
	DefaultCheckInterval      = 60 * time.Second
	DefaultCooldown           = 300 * time.Second
	DefaultScaleUpThreshold   = 0.80
	DefaultScaleDownThreshold = 0.30
	DefaultMinInstances       = 1
	DefaultMaxInstances       = 10

	cpuWeight    = 0.7
	memoryWeight = 0.3
)

// HostMetrics is an instantaneous resource-utilization sample.
type HostMetrics struct {
	CPUFraction    float64
	MemoryFraction float64
	DiskFraction   float64
	OpenConns      int
	SampledAt      time.Time
}

// Load computes the weighted load fraction per spec §3: 0.7·cpu + 0.3·memory.
func (m HostMetrics) Load() float64 {
	load := m.CPUFraction*cpuWeight + m.MemoryFraction*memoryWeight
	// Round off float noise so a load of exactly 0.80 or 0.30 compares equal
	// to its threshold (0.8*0.7 + 0.8*0.3 is 0.7999999999999999 unrounded).
	load = math.Round(load*1e9) / 1e9
	if load < 0 {
		return 0
	}
	if load > 1 {
		return 1
	}
	return load
}

// Decision is the outcome of one control-loop tick.
type Decision struct {
	Action          Action
	Current         int
	Target          int
	Reason          string
	MetricsSnapshot HostMetrics
	MadeAt          time.Time
}

// Hooks are the externally supplied side-effecting operations the loop
// drives. All are required except CheckBackendHealth, which the loop itself
// never calls (reserved for callers wiring their own health sweep).
type Hooks struct {
	GetHostMetrics     func(ctx context.Context) (HostMetrics, error)
	DiscoverInstances  func(ctx context.Context) ([]string, error)
	StartInstance      func(ctx context.Context, id string) error
	StopInstance       func(ctx context.Context, id string) error
	ReloadRouter       func(ctx context.Context) error
	CheckBackendHealth func(ctx context.Context, id string) (bool, error)
}

// EventSink receives best-effort loop notifications.
type EventSink interface {
	EmitScalingExecuted(action Action, from, to int, reason string)
	EmitCriticalEvent(service vic.ServiceKind)
}

// Config tunes a Loop.
type Config struct {
	CheckInterval       time.Duration
	Cooldown            time.Duration
	ScaleUpThreshold    float64
	ScaleDownThreshold  float64
	MinInstances        int
	MaxInstances        int
}

func (c Config) withDefaults() Config {
	if c.CheckInterval <= 0 {
		c.CheckInterval = DefaultCheckInterval
	}
	if c.Cooldown <= 0 {
		c.Cooldown = DefaultCooldown
	}
	if c.ScaleUpThreshold <= 0 {
		c.ScaleUpThreshold = DefaultScaleUpThreshold
	}
	if c.ScaleDownThreshold <= 0 {
		c.ScaleDownThreshold = DefaultScaleDownThreshold
	}
	if c.MinInstances <= 0 {
		c.MinInstances = DefaultMinInstances
	}
	if c.MaxInstances <= 0 {
		c.MaxInstances = DefaultMaxInstances
	}
	return c
}

// HealthSource reports critical-service unavailability to the loop, which
// surfaces it as a CriticalEvent but never acts on it (spec §4.E safety
// clause: "scaling does not repair data loss").
type HealthSource interface {
	IsAvailable(kind vic.ServiceKind) bool
}

// Loop is the Autoscaling Control Loop. Safe for concurrent use; intended to
// have exactly one Start call per process, but Tick may also be invoked
// directly (e.g. from tests) outside the background loop.
type Loop struct {
	cfg    Config
	hooks  Hooks
	sink   EventSink
	health HealthSource

	mu               sync.Mutex
	lastScalingAction time.Time

	now func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a Loop.
type Option func(*Loop)

// WithEventSink sets the sink that receives ScalingExecuted/CriticalEvent
// notifications.
func WithEventSink(sink EventSink) Option {
	return func(l *Loop) { l.sink = sink }
}

// WithHealthSource wires a servicehealth-backed (or any) health source
// consulted each tick for critical-service status.
func WithHealthSource(h HealthSource) Option {
	return func(l *Loop) { l.health = h }
}

// withClock overrides the time source; used by tests.
func withClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// New creates a Loop.
func New(cfg Config, hooks Hooks, opts ...Option) *Loop {
	l := &Loop{
		cfg:   cfg.withDefaults(),
		hooks: hooks,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start runs the periodic loop in a background goroutine until ctx is
// cancelled or Stop is called.
func (l *Loop) Start(ctx context.Context) {
	go l.run(ctx)
}

// Stop halts the loop. Safe to call multiple times.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Loop) run(ctx context.Context) {
	ticker := time.NewTicker(l.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case <-ticker.C:
			decision, err := l.Tick(ctx)
			if err != nil {
				slog.Error("autoscale: tick failed", "error", err)
				continue
			}
			if decision.Action != ActionNoOp {
				if err := l.Execute(ctx, decision); err != nil {
					slog.Error("autoscale: execute failed", "action", decision.Action, "error", err)
				}
			}
		}
	}
}

// Tick samples metrics, discovers instances, and produces a Decision
// without executing it.
func (l *Loop) Tick(ctx context.Context) (Decision, error) {
	metrics, err := l.hooks.GetHostMetrics(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("autoscale: get host metrics: %w", err)
	}

	instances, err := l.hooks.DiscoverInstances(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("autoscale: discover instances: %w", err)
	}
	current := len(instances)
	load := metrics.Load()
	now := l.now()

	loadGauge.Set(load)
	instanceGauge.Set(float64(current))

	if l.health != nil && !l.health.IsAvailable(vic.Database) && l.sink != nil {
		l.sink.EmitCriticalEvent(vic.Database)
	}

	l.mu.Lock()
	last := l.lastScalingAction
	l.mu.Unlock()

	if !last.IsZero() {
		elapsed := now.Sub(last)
		if elapsed < l.cfg.Cooldown {
			remaining := l.cfg.Cooldown - elapsed
			return Decision{
				Action:          ActionNoOp,
				Current:         current,
				Target:          current,
				Reason:          fmt.Sprintf("in cooldown (%s remaining)", remaining.Round(time.Second)),
				MetricsSnapshot: metrics,
				MadeAt:          now,
			}, nil
		}
	}

	switch {
	case load >= l.cfg.ScaleUpThreshold && current < l.cfg.MaxInstances:
		return Decision{
			Action:          ActionUp,
			Current:         current,
			Target:          current + 1,
			Reason:          fmt.Sprintf("load %.2f exceeds scale-up threshold %.2f", load, l.cfg.ScaleUpThreshold),
			MetricsSnapshot: metrics,
			MadeAt:          now,
		}, nil
	case load <= l.cfg.ScaleDownThreshold && current > l.cfg.MinInstances:
		return Decision{
			Action:          ActionDown,
			Current:         current,
			Target:          current - 1,
			Reason:          fmt.Sprintf("load %.2f below scale-down threshold %.2f", load, l.cfg.ScaleDownThreshold),
			MetricsSnapshot: metrics,
			MadeAt:          now,
		}, nil
	default:
		return Decision{
			Action:          ActionNoOp,
			Current:         current,
			Target:          current,
			Reason:          fmt.Sprintf("load %.2f within acceptable range", load),
			MetricsSnapshot: metrics,
			MadeAt:          now,
		}, nil
	}
}

// Execute runs the hooks for a non-NoOp Decision: start/stop the delta
// instance count concurrently, then reload the router. The
// last-scaling-action timestamp only advances on full success, so a failed
// tick is retried on the next one (spec §4.E step 5).
func (l *Loop) Execute(ctx context.Context, d Decision) error {
	if d.Action == ActionNoOp {
		return nil
	}

	instances, err := l.hooks.DiscoverInstances(ctx)
	if err != nil {
		return fmt.Errorf("autoscale: discover instances before execute: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	switch d.Action {
	case ActionUp:
		delta := d.Target - len(instances)
		for i := 0; i < delta; i++ {
			id := fmt.Sprintf("instance-%d", len(instances)+i+1)
			g.Go(func() error { return l.hooks.StartInstance(gctx, id) })
		}
	case ActionDown:
		delta := len(instances) - d.Target
		for i := 0; i < delta && i < len(instances); i++ {
			id := instances[len(instances)-1-i]
			g.Go(func() error { return l.hooks.StopInstance(gctx, id) })
		}
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("autoscale: %s hook failed: %w", d.Action, err)
	}
	if err := l.hooks.ReloadRouter(ctx); err != nil {
		return fmt.Errorf("autoscale: reload router: %w", err)
	}

	l.mu.Lock()
	l.lastScalingAction = l.now()
	l.mu.Unlock()

	slog.Info("autoscale: scaling executed",
		"action", d.Action.String(), "from", d.Current, "to", d.Target, "reason", d.Reason)
	if l.sink != nil {
		l.sink.EmitScalingExecuted(d.Action, d.Current, d.Target, d.Reason)
	}
	return nil
}
