// Package observe provides application-wide observability primitives for
// the Voice Interaction Core: OpenTelemetry metrics, distributed tracing,
// structured logging, and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all VIC metrics.
const meterName = "github.com/bmehaboob/the-multilingual-mandi-sub000"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Pipeline stage latency histograms ---

	// DetectLanguageDuration tracks spec §4.A language detection latency.
	DetectLanguageDuration metric.Float64Histogram

	// TranscribeDuration tracks speech-to-text transcription latency.
	TranscribeDuration metric.Float64Histogram

	// TranslateDuration tracks translation latency.
	TranslateDuration metric.Float64Histogram

	// SynthesizeDuration tracks text-to-speech synthesis latency.
	SynthesizeDuration metric.Float64Histogram

	// PipelineDuration tracks end-to-end pipeline latency across all stages.
	PipelineDuration metric.Float64Histogram

	// --- Counters ---

	// ProviderRequests counts provider API calls. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("stage", ...), attribute.String("status", ...)
	ProviderRequests metric.Int64Counter

	// ProviderErrors counts provider errors. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("stage", ...)
	ProviderErrors metric.Int64Counter

	// StageRetries counts per-stage retry attempts. Use with attribute:
	//   attribute.String("stage", ...)
	StageRetries metric.Int64Counter

	// FallbacksUsed counts pipeline stages that fell back to a degraded
	// provider after exhausting retries. Use with attribute:
	//   attribute.String("stage", ...)
	FallbacksUsed metric.Int64Counter

	// SwitchEvents counts conversation foreground-session switches.
	SwitchEvents metric.Int64Counter

	// InactiveAlerts counts inbound messages delivered to a non-foreground
	// session.
	InactiveAlerts metric.Int64Counter

	// ScalingActions counts autoscaling decisions actually executed. Use
	// with attribute:
	//   attribute.String("action", ...)
	ScalingActions metric.Int64Counter

	// LatencyAlerts counts pipeline runs whose total latency exceeded the
	// budget. Use with attribute:
	//   attribute.String("stage", ...)
	LatencyAlerts metric.Int64Counter

	// CriticalEvents counts critical-service-unavailable events raised by
	// internal/autoscale. Use with
	// attribute:
	//   attribute.String("service", ...)
	CriticalEvents metric.Int64Counter

	// HealthTransitions counts service health state transitions. Use with
	// attributes:
	//   attribute.String("service", ...), attribute.String("status", ...)
	HealthTransitions metric.Int64Counter

	// --- Gauges ---

	// ActiveSessions tracks the number of live conversation sessions across
	// all owners.
	ActiveSessions metric.Int64UpDownCounter

	// RunningInstances tracks the number of running service instances as
	// last observed by the autoscaling control loop.
	RunningInstances metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) optimised
// for voice-pipeline latencies.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.DetectLanguageDuration, err = m.Float64Histogram("vic.detect_language.duration",
		metric.WithDescription("Latency of source language detection."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TranscribeDuration, err = m.Float64Histogram("vic.transcribe.duration",
		metric.WithDescription("Latency of speech-to-text transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TranslateDuration, err = m.Float64Histogram("vic.translate.duration",
		metric.WithDescription("Latency of text translation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SynthesizeDuration, err = m.Float64Histogram("vic.synthesize.duration",
		metric.WithDescription("Latency of text-to-speech synthesis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PipelineDuration, err = m.Float64Histogram("vic.pipeline.duration",
		metric.WithDescription("End-to-end voice pipeline latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.ProviderRequests, err = m.Int64Counter("vic.provider.requests",
		metric.WithDescription("Total provider API requests by provider, stage, and status."),
	); err != nil {
		return nil, err
	}
	if met.ProviderErrors, err = m.Int64Counter("vic.provider.errors",
		metric.WithDescription("Total provider errors by provider and stage."),
	); err != nil {
		return nil, err
	}
	if met.StageRetries, err = m.Int64Counter("vic.pipeline.stage_retries",
		metric.WithDescription("Total per-stage retry attempts by stage."),
	); err != nil {
		return nil, err
	}
	if met.FallbacksUsed, err = m.Int64Counter("vic.pipeline.fallbacks_used",
		metric.WithDescription("Total pipeline stages that fell back to a degraded provider."),
	); err != nil {
		return nil, err
	}
	if met.SwitchEvents, err = m.Int64Counter("vic.conversation.switch_events",
		metric.WithDescription("Total foreground-session switches."),
	); err != nil {
		return nil, err
	}
	if met.InactiveAlerts, err = m.Int64Counter("vic.conversation.inactive_alerts",
		metric.WithDescription("Total inbound messages delivered to a non-foreground session."),
	); err != nil {
		return nil, err
	}
	if met.ScalingActions, err = m.Int64Counter("vic.autoscale.actions",
		metric.WithDescription("Total autoscaling decisions executed by action."),
	); err != nil {
		return nil, err
	}
	if met.LatencyAlerts, err = m.Int64Counter("vic.pipeline.latency_alerts",
		metric.WithDescription("Total pipeline runs whose latency exceeded the stage budget."),
	); err != nil {
		return nil, err
	}
	if met.CriticalEvents, err = m.Int64Counter("vic.health.critical_events",
		metric.WithDescription("Total critical-service-unavailable events."),
	); err != nil {
		return nil, err
	}
	if met.HealthTransitions, err = m.Int64Counter("vic.health.transitions",
		metric.WithDescription("Total service health state transitions by service and status."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveSessions, err = m.Int64UpDownCounter("vic.conversation.active_sessions",
		metric.WithDescription("Number of live conversation sessions across all owners."),
	); err != nil {
		return nil, err
	}
	if met.RunningInstances, err = m.Int64UpDownCounter("vic.autoscale.running_instances",
		metric.WithDescription("Number of running service instances last observed by the autoscaling control loop."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("vic.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordProviderRequest is a convenience method that records a provider
// request counter increment with the standard attribute set.
func (m *Metrics) RecordProviderRequest(ctx context.Context, provider, stage, status string) {
	m.ProviderRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("stage", stage),
			attribute.String("status", status),
		),
	)
}

// RecordProviderError is a convenience method that records a provider error
// counter increment.
func (m *Metrics) RecordProviderError(ctx context.Context, provider, stage string) {
	m.ProviderErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("stage", stage),
		),
	)
}

// RecordStageRetry is a convenience method that records a stage retry
// counter increment.
func (m *Metrics) RecordStageRetry(ctx context.Context, stage string) {
	m.StageRetries.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordFallbackUsed is a convenience method that records a fallback-used
// counter increment.
func (m *Metrics) RecordFallbackUsed(ctx context.Context, stage string) {
	m.FallbacksUsed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordScalingAction is a convenience method that records an executed
// scaling-action counter increment.
func (m *Metrics) RecordScalingAction(ctx context.Context, action string) {
	m.ScalingActions.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

// RecordHealthTransition is a convenience method that records a service
// health transition counter increment.
func (m *Metrics) RecordHealthTransition(ctx context.Context, service, status string) {
	m.HealthTransitions.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("service", service),
			attribute.String("status", status),
		),
	)
}

// RecordLatencyAlert is a convenience method that records a latency-alert
// counter increment.
func (m *Metrics) RecordLatencyAlert(ctx context.Context, stage string) {
	m.LatencyAlerts.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordCriticalEvent is a convenience method that records a critical-event
// counter increment.
func (m *Metrics) RecordCriticalEvent(ctx context.Context, service string) {
	m.CriticalEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}
