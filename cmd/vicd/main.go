// Command vicd is the Voice Interaction Core daemon: it loads configuration,
// wires provider adapters into the registry, and runs the application until
// an interrupt or terminate signal arrives.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/app"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/config"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/observe"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/llm"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/llm/anyllm"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/llm/openai"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("vicd: fatal error", "err", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogger(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "vicd"})
	if err != nil {
		return fmt.Errorf("init observability providers: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("vicd: telemetry shutdown error", "err", err)
		}
	}()

	registry := buildRegistry()

	application, err := app.New(ctx, cfg, app.WithRegistry(registry))
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}

	application.Mux().Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: application.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("vicd: listening", "addr", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	runErr := make(chan error, 1)
	go func() { runErr <- application.Run(ctx) }()

	select {
	case err := <-serveErr:
		stop()
		if err != nil {
			slog.Error("vicd: http server error", "err", err)
		}
	case <-ctx.Done():
		slog.Info("vicd: shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("vicd: http server shutdown error", "err", err)
	}

	<-runErr

	return application.Shutdown(shutdownCtx)
}

func setupLogger(level config.LogLevel) {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// buildRegistry registers the concrete LLM adapters this module ships
// (OpenAI directly, plus any-llm-go's multi-backend bridge). STT,
// Translation, and TTS have no concrete adapters in this module — per
// spec.md's Non-goals, vendor integrations for those stages are supplied
// by the deployer via its own config.Registry registrations.
func buildRegistry() *config.Registry {
	r := config.NewRegistry()

	r.RegisterLLM("openai", func(entry config.ProviderEntry) (llm.Provider, error) {
		opts := []openai.Option{}
		if entry.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(entry.BaseURL))
		}
		return openai.New(entry.APIKey, entry.Model, opts...)
	})
	r.RegisterLLM("anthropic", func(entry config.ProviderEntry) (llm.Provider, error) {
		return anyllm.NewAnthropic(entry.Model, anyllmOpts(entry)...)
	})
	r.RegisterLLM("gemini", func(entry config.ProviderEntry) (llm.Provider, error) {
		return anyllm.NewGemini(entry.Model, anyllmOpts(entry)...)
	})
	r.RegisterLLM("ollama", func(entry config.ProviderEntry) (llm.Provider, error) {
		return anyllm.NewOllama(entry.Model, anyllmOpts(entry)...)
	})

	return r
}

// anyllmOpts translates a ProviderEntry's API key and base URL overrides
// into any-llm-go options. A zero-value entry yields no options, letting
// the backend fall back to its usual environment variable.
func anyllmOpts(entry config.ProviderEntry) []anyllmlib.Option {
	var opts []anyllmlib.Option
	if entry.APIKey != "" {
		opts = append(opts, anyllmlib.WithAPIKey(entry.APIKey))
	}
	if entry.BaseURL != "" {
		opts = append(opts, anyllmlib.WithBaseURL(entry.BaseURL))
	}
	return opts
}
