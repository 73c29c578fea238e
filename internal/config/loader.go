package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// ValidProviderNames lists known provider names per provider kind. Used by
// [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"stt":         {"deepgram", "whisper", "whisper-native"},
	"translation": {"google-translate", "indictrans2", "bhashini"},
	"tts":         {"elevenlabs", "coqui", "bhashini"},
	"llm":         {"openai", "anthropic", "ollama", "gemini"},
}

// Load reads the YAML configuration file at path and returns a validated
// [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in zero-valued tunables with the defaults named in
// spec §4.A/§4.B/§4.D/§4.E.
func applyDefaults(cfg *Config) {
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Pipeline.StageRetryMaxAttempts == 0 {
		cfg.Pipeline.StageRetryMaxAttempts = 3
	}
	if cfg.Pipeline.StageRetryBaseDelayMS == 0 {
		cfg.Pipeline.StageRetryBaseDelayMS = 500
	}
	if cfg.Pipeline.TotalBudgetMS == 0 {
		cfg.Pipeline.TotalBudgetMS = 8000
	}
	if cfg.Health.MaxFailures == 0 {
		cfg.Health.MaxFailures = 3
	}
	if len(cfg.Health.CriticalServices) == 0 {
		cfg.Health.CriticalServices = []string{vic.Database.String()}
	}
	if cfg.Session.MaxConcurrent == 0 {
		cfg.Session.MaxConcurrent = 5
	}
	if cfg.Autoscale.CheckIntervalSeconds == 0 {
		cfg.Autoscale.CheckIntervalSeconds = 60
	}
	if cfg.Autoscale.CooldownSeconds == 0 {
		cfg.Autoscale.CooldownSeconds = 300
	}
	if cfg.Autoscale.ScaleUpThreshold == 0 {
		cfg.Autoscale.ScaleUpThreshold = 0.80
	}
	if cfg.Autoscale.ScaleDownThreshold == 0 {
		cfg.Autoscale.ScaleDownThreshold = 0.30
	}
	if cfg.Autoscale.MinInstances == 0 {
		cfg.Autoscale.MinInstances = 1
	}
	if cfg.Autoscale.MaxInstances == 0 {
		cfg.Autoscale.MaxInstances = 10
	}
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	validateProviderName("stt", cfg.Providers.STT.Name)
	validateProviderName("translation", cfg.Providers.Translation.Name)
	validateProviderName("tts", cfg.Providers.TTS.Name)
	validateProviderName("llm", cfg.Providers.LLM.Name)

	if cfg.Providers.STT.Name == "" {
		slog.Warn("providers.stt is not configured; the pipeline cannot transcribe audio")
	}
	if cfg.Providers.TTS.Name == "" {
		slog.Warn("providers.tts is not configured; the pipeline cannot synthesize audio")
	}

	if cfg.Pipeline.StageRetryMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("pipeline.stage_retry_max_attempts must be >= 1, got %d", cfg.Pipeline.StageRetryMaxAttempts))
	}
	if cfg.Pipeline.TotalBudgetMS <= 0 {
		errs = append(errs, fmt.Errorf("pipeline.total_budget_ms must be positive, got %d", cfg.Pipeline.TotalBudgetMS))
	}

	if cfg.Health.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("health.max_failures must be >= 1, got %d", cfg.Health.MaxFailures))
	}

	if cfg.Session.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("session.max_concurrent must be >= 1, got %d", cfg.Session.MaxConcurrent))
	}

	if cfg.Autoscale.MinInstances < 0 {
		errs = append(errs, fmt.Errorf("autoscale.min_instances must be >= 0, got %d", cfg.Autoscale.MinInstances))
	}
	if cfg.Autoscale.MaxInstances < cfg.Autoscale.MinInstances {
		errs = append(errs, fmt.Errorf("autoscale.max_instances (%d) must be >= min_instances (%d)", cfg.Autoscale.MaxInstances, cfg.Autoscale.MinInstances))
	}
	if cfg.Autoscale.ScaleUpThreshold <= cfg.Autoscale.ScaleDownThreshold {
		errs = append(errs, fmt.Errorf("autoscale.scale_up_threshold (%.2f) must exceed scale_down_threshold (%.2f) to avoid flapping", cfg.Autoscale.ScaleUpThreshold, cfg.Autoscale.ScaleDownThreshold))
	}
	if cfg.Autoscale.ScaleUpThreshold <= 0 || cfg.Autoscale.ScaleUpThreshold > 1 {
		errs = append(errs, fmt.Errorf("autoscale.scale_up_threshold must be in (0, 1], got %.2f", cfg.Autoscale.ScaleUpThreshold))
	}
	if cfg.Autoscale.ScaleDownThreshold < 0 || cfg.Autoscale.ScaleDownThreshold >= 1 {
		errs = append(errs, fmt.Errorf("autoscale.scale_down_threshold must be in [0, 1), got %.2f", cfg.Autoscale.ScaleDownThreshold))
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind, "name", name, "known", known)
}
