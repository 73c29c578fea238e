// Package app wires the Voice Interaction Core's subsystems into a running
// application.
//
// App owns the full lifecycle: New creates and connects every subsystem
// (service health, voice pipeline, conversation sessions, autoscaling,
// negotiation assistance, persistence, and the outbound events/metrics
// fan-out), Run starts its background loops and blocks until the context is
// cancelled, and Shutdown tears everything down in order.
//
// For testing, inject test doubles via functional options (WithRegistry,
// WithStore, WithPriceLookup). When an option is not provided, New builds
// the real implementation from config.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/autoscale"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/config"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/conversation"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/events"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/health"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/observe"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/servicehealth"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/voicepipeline"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/voicepipeline/phonetic"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/collab/culturalctx"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/collab/negotiation"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/storage"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// App owns all subsystem lifetimes and orchestrates the Voice Interaction
// Core.
type App struct {
	cfg     *config.Config
	metrics *observe.Metrics

	hub        *events.Hub
	dispatcher *events.Dispatcher
	health     *servicehealth.Controller
	pipeline   *voicepipeline.Orchestrator
	sessions   *conversation.Manager
	autoscaler *autoscale.Loop
	negotiator *negotiation.Negotiator
	store      storage.Store
	healthHTTP *health.Handler
	mux        *http.ServeMux

	// closers are invoked in order during Shutdown.
	closers []func() error

	stopOnce sync.Once
}

// Option configures New. Use these to inject test doubles or override what
// New would otherwise construct from config.
type Option func(*options)

type options struct {
	registry    *config.Registry
	store       storage.Store
	priceLookup negotiation.PriceLookup
}

// WithRegistry supplies the provider registry New uses to resolve the STT,
// Translation, TTS, and LLM providers named in cfg.Providers. Callers
// register concrete adapters (e.g. an OpenAI-backed llm.Provider) before
// passing the registry in; a provider whose name has no registered factory
// is skipped rather than treated as an error, matching the graceful
// degraded-capability posture of spec §4.B.
func WithRegistry(r *config.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithStore injects a storage.Store instead of connecting to
// cfg's configured database.
func WithStore(s storage.Store) Option {
	return func(o *options) { o.store = s }
}

// WithPriceLookup supplies the market-price oracle consulted by the
// negotiation assistant. When omitted, the negotiation collaborator falls
// back to its own zero-price handling (spec §4's price oracle remains a
// black-box external integration).
func WithPriceLookup(p negotiation.PriceLookup) Option {
	return func(o *options) { o.priceLookup = p }
}

// New wires every subsystem together from cfg and returns a ready-to-run
// App. Construction is synchronous: provider resolution, health controller
// setup, and (if configured) the database connection all complete before
// New returns.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = config.NewRegistry()
	}

	a := &App{cfg: cfg}

	a.metrics = observe.DefaultMetrics()
	a.hub = events.NewHub()
	a.dispatcher = events.New(a.hub, a.metrics)

	if err := a.initHealth(); err != nil {
		return nil, fmt.Errorf("app: init health: %w", err)
	}
	if err := a.initStore(ctx, o.store); err != nil {
		return nil, fmt.Errorf("app: init store: %w", err)
	}
	if err := a.initPipeline(o.registry); err != nil {
		return nil, fmt.Errorf("app: init pipeline: %w", err)
	}
	a.initSessions()
	if err := a.initNegotiator(o.registry, o.priceLookup); err != nil {
		return nil, fmt.Errorf("app: init negotiator: %w", err)
	}
	a.initAutoscaler()
	a.initHTTP()

	return a, nil
}

// initHealth constructs the Service Health & Graceful Degradation
// Controller from cfg.Health.
func (a *App) initHealth() error {
	criticalServices, err := parseServiceKinds(a.cfg.Health.CriticalServices)
	if err != nil {
		return err
	}

	cfg := servicehealth.DefaultConfig()
	if a.cfg.Health.MaxFailures > 0 {
		cfg.MaxFailures = a.cfg.Health.MaxFailures
	}
	if len(criticalServices) > 0 {
		cfg.CriticalServices = criticalServices
	}
	cfg.AutoFallback = a.cfg.Health.AutoFallback

	a.health = servicehealth.NewController(cfg, servicehealth.WithEventSink(a.dispatcher))
	return nil
}

// initStore connects to the configured database, or adopts an injected
// store. A nil store is valid: with no database DSN configured the App runs
// without persistence and Store returns nil. The nil store does not change
// any service kind's health status.
func (a *App) initStore(ctx context.Context, injected storage.Store) error {
	if injected != nil {
		a.store = injected
		return nil
	}

	dsn := a.cfg.Storage.DatabaseDSN
	if dsn == "" {
		slog.Warn("app: no database DSN configured, persistence-backed features are disabled")
		return nil
	}

	store, err := storage.NewPostgresStore(ctx, dsn)
	if err != nil {
		return err
	}
	a.store = store
	a.closers = append(a.closers, func() error {
		store.Close()
		return nil
	})
	return nil
}

// initPipeline resolves the STT, Translation, and TTS providers named in
// cfg.Providers and, if all three are available, constructs the Voice
// Pipeline Orchestrator with the phonetic-similarity transcript corrector
// attached (commodity vocabulary from culturalctx). A provider that has no
// registered factory is skipped — per spec.md's Non-goals, this module
// carries no concrete model vendor adapters, so in practice the pipeline
// stays nil until a caller registers real adapters in the Registry.
func (a *App) initPipeline(registry *config.Registry) error {
	var adapters voicepipeline.Adapters
	var missing []string

	sttProvider, err := registry.CreateSTT(a.cfg.Providers.STT)
	switch {
	case err == nil:
		adapters.STT = sttProvider
	case errors.Is(err, config.ErrProviderNotRegistered):
		missing = append(missing, "stt")
	default:
		return err
	}

	translationProvider, err := registry.CreateTranslation(a.cfg.Providers.Translation)
	switch {
	case err == nil:
		adapters.Translation = translationProvider
	case errors.Is(err, config.ErrProviderNotRegistered):
		missing = append(missing, "translation")
	default:
		return err
	}

	ttsProvider, err := registry.CreateTTS(a.cfg.Providers.TTS)
	switch {
	case err == nil:
		adapters.TTS = ttsProvider
	case errors.Is(err, config.ErrProviderNotRegistered):
		missing = append(missing, "tts")
	default:
		return err
	}

	if len(missing) > 0 {
		slog.Warn("app: voice pipeline not started, providers not registered", "missing", missing)
		return nil
	}

	matcher := phonetic.New()
	vocabulary := culturalctx.CommodityVocabulary()
	corrector := func(text string) string {
		return phonetic.CorrectText(matcher, text, vocabulary)
	}

	a.pipeline = voicepipeline.New(adapters, a.health,
		voicepipeline.WithEventSink(a.dispatcher),
		voicepipeline.WithPostTranscribeCorrector(corrector),
	)
	return nil
}

// initSessions constructs the Conversation Session Manager.
func (a *App) initSessions() {
	opts := []conversation.Option{conversation.WithEventSink(a.dispatcher)}
	if a.cfg.Session.MaxConcurrent > 0 {
		opts = append(opts, conversation.WithMaxConcurrent(a.cfg.Session.MaxConcurrent))
	}
	a.sessions = conversation.New(opts...)
}

// initNegotiator resolves the LLM provider named in cfg.Providers and, if
// registered, constructs the negotiation assistant.
func (a *App) initNegotiator(registry *config.Registry, priceLookup negotiation.PriceLookup) error {
	llmProvider, err := registry.CreateLLM(a.cfg.Providers.LLM)
	if err != nil {
		if errors.Is(err, config.ErrProviderNotRegistered) {
			slog.Warn("app: negotiation assistant not started, llm provider not registered")
			return nil
		}
		return err
	}

	a.negotiator = negotiation.New(llmProvider, culturalctx.NewEngine(), priceLookup)
	return nil
}

// initAutoscaler constructs the Autoscaling Control Loop. The loop's
// infrastructure hooks (instance discovery, start/stop, router reload) are
// left as no-op stubs that log their invocation: no example in this
// codebase's dependency surface talks to a concrete cloud-provider or
// orchestrator API, so wiring a real one here would be fabricated.
func (a *App) initAutoscaler() {
	hooks := autoscale.Hooks{
		GetHostMetrics:    a.sampleHostMetrics,
		DiscoverInstances: func(context.Context) ([]string, error) { return []string{"vicd-0"}, nil },
		StartInstance: func(_ context.Context, id string) error {
			slog.Info("autoscale: start instance requested", "id", id)
			return nil
		},
		StopInstance: func(_ context.Context, id string) error {
			slog.Info("autoscale: stop instance requested", "id", id)
			return nil
		},
		ReloadRouter: func(context.Context) error {
			slog.Info("autoscale: router reload requested")
			return nil
		},
	}

	cfg := autoscale.Config{
		CheckInterval:      a.cfg.Autoscale.CheckInterval(),
		Cooldown:           a.cfg.Autoscale.Cooldown(),
		ScaleUpThreshold:   a.cfg.Autoscale.ScaleUpThreshold,
		ScaleDownThreshold: a.cfg.Autoscale.ScaleDownThreshold,
		MinInstances:       a.cfg.Autoscale.MinInstances,
		MaxInstances:       a.cfg.Autoscale.MaxInstances,
	}

	a.autoscaler = autoscale.New(cfg, hooks,
		autoscale.WithEventSink(a.dispatcher),
		autoscale.WithHealthSource(a.health))
}

// sampleHostMetrics reports zero-valued CPU/memory/disk fractions: this
// module has no access to the host's resource counters outside of a real
// deployment. A production deployment replaces this hook with one backed by
// the same Prometheus instance cfg.Server.PrometheusURL points at (spec
// §4.E operates on whatever GetHostMetrics reports).
func (a *App) sampleHostMetrics(context.Context) (autoscale.HostMetrics, error) {
	return autoscale.HostMetrics{}, nil
}

// initHTTP assembles the HTTP mux serving /healthz, /readyz, and the
// websocket events feed. The Prometheus /metrics endpoint is mounted by the
// caller (cmd/vicd), which also owns the process's promhttp.Handler wiring.
func (a *App) initHTTP() {
	checkers := make([]health.Checker, 0, len(vic.AllServiceKinds()))
	for _, kind := range vic.AllServiceKinds() {
		kind := kind
		checkers = append(checkers, health.CheckerFor(kind.String(), func() bool {
			return a.health.IsAvailable(kind)
		}))
	}
	a.healthHTTP = health.New(checkers...)

	mux := http.NewServeMux()
	a.healthHTTP.Register(mux)
	mux.Handle("/events", a.hub)
	a.mux = mux
}

// Mux returns the *http.ServeMux serving /healthz, /readyz, and /events, so
// the caller can register additional routes (e.g. /metrics) before serving
// it.
func (a *App) Mux() *http.ServeMux { return a.mux }

// Handler wraps Mux with the request-tracing and metrics middleware. This
// is what the caller should actually hand to its *http.Server.
func (a *App) Handler() http.Handler { return observe.Middleware(a.metrics)(a.mux) }

// Health returns the Service Health & Graceful Degradation Controller.
func (a *App) Health() *servicehealth.Controller { return a.health }

// Pipeline returns the Voice Pipeline Orchestrator, or nil if no STT,
// Translation, and TTS providers were all registered.
func (a *App) Pipeline() *voicepipeline.Orchestrator { return a.pipeline }

// Sessions returns the Conversation Session Manager.
func (a *App) Sessions() *conversation.Manager { return a.sessions }

// Negotiator returns the negotiation assistant, or nil if no LLM provider
// was registered.
func (a *App) Negotiator() *negotiation.Negotiator { return a.negotiator }

// Store returns the persistence layer, or nil if none is configured.
func (a *App) Store() storage.Store { return a.store }

// EventsHub returns the websocket events broadcaster.
func (a *App) EventsHub() *events.Hub { return a.hub }

// Run starts the Autoscaling Control Loop's background goroutine and blocks
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.autoscaler.Start(ctx)
	slog.Info("app running",
		"pipeline_enabled", a.pipeline != nil,
		"negotiator_enabled", a.negotiator != nil,
		"store_enabled", a.store != nil)

	<-ctx.Done()
	return ctx.Err()
}

// Shutdown stops the autoscaler and runs every closer in order. It respects
// the context deadline: if ctx expires before all closers finish, the
// remaining ones are skipped and the context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		a.autoscaler.Stop()
		slog.Info("shutting down", "closers", len(a.closers))

		for i, closer := range a.closers {
			select {
			case <-ctx.Done():
				slog.Warn("shutdown deadline exceeded", "remaining", len(a.closers)-i)
				shutdownErr = ctx.Err()
				return
			default:
			}
			if err := closer(); err != nil {
				slog.Warn("closer error", "index", i, "err", err)
			}
		}

		slog.Info("shutdown complete")
	})
	return shutdownErr
}

// parseServiceKinds converts the wire names used in config (e.g.
// "database", "voice_biometric") into their vic.ServiceKind values.
func parseServiceKinds(names []string) ([]vic.ServiceKind, error) {
	if len(names) == 0 {
		return nil, nil
	}

	byName := make(map[string]vic.ServiceKind, len(vic.AllServiceKinds()))
	for _, kind := range vic.AllServiceKinds() {
		byName[kind.String()] = kind
	}

	kinds := make([]vic.ServiceKind, 0, len(names))
	for _, name := range names {
		kind, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("app: unknown critical service kind %q", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
