// Package config provides the configuration schema, loader, and provider
// registry for the Voice Interaction Core.
package config

import "time"

// Config is the root configuration structure for the Voice Interaction Core.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Providers ProvidersConfig `yaml:"providers"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Health    HealthConfig    `yaml:"health"`
	Session   SessionConfig   `yaml:"session"`
	Autoscale AutoscaleConfig `yaml:"autoscale"`
	Storage   StorageConfig   `yaml:"storage"`
}

// StorageConfig configures the user/transaction/voiceprint persistence
// layer. Leaving DatabaseDSN empty is valid: the application runs with
// persistence-backed features disabled rather than failing to start.
type StorageConfig struct {
	DatabaseDSN string `yaml:"database_dsn"`
}

// LogLevel controls logging verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is one of the recognized log levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	default:
		return false
	}
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the service listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// PrometheusURL is the address of a Prometheus server. It is loaded
	// into Config, but no component reads it.
	PrometheusURL string `yaml:"prometheus_url"`
}

// ProvidersConfig declares which provider implementation to use for each
// pipeline stage. Each field selects a named provider registered in the
// [Registry].
type ProvidersConfig struct {
	STT         ProviderEntry `yaml:"stt"`
	Translation ProviderEntry `yaml:"translation"`
	TTS         ProviderEntry `yaml:"tts"`
	LLM         ProviderEntry `yaml:"llm"`
}

// ProviderEntry is the common configuration block shared by all provider
// types. The Name field is used to look up the constructor in the
// [Registry].
type ProviderEntry struct {
	// Name selects the registered provider implementation.
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint. Leave empty to
	// use the provider's built-in default.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider.
	Model string `yaml:"model"`

	// Options holds provider-specific configuration values not covered by
	// the standard fields above.
	Options map[string]any `yaml:"options"`
}

// PipelineConfig holds per-stage retry and latency-budget settings for the
// Voice Pipeline Orchestrator (spec §4.A/§4.C defaults apply when zero). The
// loader fills in and validates these values, but the orchestrator does not
// read them: voicepipeline.New takes no PipelineConfig and uses its own
// built-in retry and budget constants. Delay
// and budget fields are expressed in milliseconds — gopkg.in/yaml.v3 has no
// built-in time.Duration decoding, so the wire format stays a plain integer
// and call sites convert with time.Duration(n) * time.Millisecond.
type PipelineConfig struct {
	StageRetryMaxAttempts int `yaml:"stage_retry_max_attempts"`
	StageRetryBaseDelayMS int `yaml:"stage_retry_base_delay_ms"`

	DetectLanguageBudgetMS int `yaml:"detect_language_budget_ms"`
	TranscribeBudgetMS     int `yaml:"transcribe_budget_ms"`
	TranslateBudgetMS      int `yaml:"translate_budget_ms"`
	SynthesizeBudgetMS     int `yaml:"synthesize_budget_ms"`
	TotalBudgetMS          int `yaml:"total_budget_ms"`
}

// StageRetryBaseDelay returns the configured base delay as a time.Duration.
func (p PipelineConfig) StageRetryBaseDelay() time.Duration {
	return time.Duration(p.StageRetryBaseDelayMS) * time.Millisecond
}

// HealthConfig tunes the Service Health & Graceful Degradation Controller.
type HealthConfig struct {
	MaxFailures      int      `yaml:"max_failures"`
	CriticalServices []string `yaml:"critical_services"`
	AutoFallback     bool     `yaml:"auto_fallback"`
}

// SessionConfig tunes the Conversation Session Manager.
type SessionConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// AutoscaleConfig tunes the Autoscaling Control Loop. CheckInterval and
// Cooldown are expressed in seconds, matching the original service's
// environment-variable convention (spec §6).
type AutoscaleConfig struct {
	CheckIntervalSeconds int     `yaml:"check_interval_seconds"`
	CooldownSeconds      int     `yaml:"cooldown_seconds"`
	ScaleUpThreshold     float64 `yaml:"scale_up_threshold"`
	ScaleDownThreshold   float64 `yaml:"scale_down_threshold"`
	MinInstances         int     `yaml:"min_instances"`
	MaxInstances         int     `yaml:"max_instances"`
}

// CheckInterval returns the configured check interval as a time.Duration.
func (a AutoscaleConfig) CheckInterval() time.Duration {
	return time.Duration(a.CheckIntervalSeconds) * time.Second
}

// Cooldown returns the configured cooldown period as a time.Duration.
func (a AutoscaleConfig) Cooldown() time.Duration {
	return time.Duration(a.CooldownSeconds) * time.Second
}
