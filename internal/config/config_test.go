package config_test

import (
	"strings"
	"testing"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/config"
)

const minimalYAML = `
server:
  listen_addr: ":8080"
  log_level: info
providers:
  stt:
    name: deepgram
    api_key: test-key
  tts:
    name: elevenlabs
    api_key: test-key
`

func TestLoadFromReader_Minimal(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != config.LogInfo {
		t.Errorf("log_level = %q, want %q", cfg.Server.LogLevel, config.LogInfo)
	}
	if cfg.Providers.STT.Name != "deepgram" {
		t.Errorf("providers.stt.name = %q, want deepgram", cfg.Providers.STT.Name)
	}
}

func TestLoadFromReader_DefaultsApplied(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.StageRetryMaxAttempts != 3 {
		t.Errorf("stage_retry_max_attempts default = %d, want 3", cfg.Pipeline.StageRetryMaxAttempts)
	}
	if cfg.Pipeline.StageRetryBaseDelayMS != 500 {
		t.Errorf("stage_retry_base_delay_ms default = %d, want 500", cfg.Pipeline.StageRetryBaseDelayMS)
	}
	if cfg.Health.MaxFailures != 3 {
		t.Errorf("health.max_failures default = %d, want 3", cfg.Health.MaxFailures)
	}
	if len(cfg.Health.CriticalServices) != 1 || cfg.Health.CriticalServices[0] != "database" {
		t.Errorf("health.critical_services default = %v, want [database]", cfg.Health.CriticalServices)
	}
	if cfg.Session.MaxConcurrent != 5 {
		t.Errorf("session.max_concurrent default = %d, want 5", cfg.Session.MaxConcurrent)
	}
	if cfg.Autoscale.MinInstances != 1 || cfg.Autoscale.MaxInstances != 10 {
		t.Errorf("autoscale instance defaults = [%d,%d], want [1,10]", cfg.Autoscale.MinInstances, cfg.Autoscale.MaxInstances)
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	bad := minimalYAML + "\nnot_a_real_field: true\n"
	if _, err := config.LoadFromReader(strings.NewReader(bad)); err == nil {
		t.Fatal("expected an error for an unknown top-level field")
	}
}

func TestLoadFromReader_InvalidLogLevel(t *testing.T) {
	bad := strings.Replace(minimalYAML, "log_level: info", "log_level: verbose", 1)
	if _, err := config.LoadFromReader(strings.NewReader(bad)); err == nil {
		t.Fatal("expected an error for an invalid log_level")
	}
}

func TestPipelineConfig_StageRetryBaseDelay(t *testing.T) {
	p := config.PipelineConfig{StageRetryBaseDelayMS: 500}
	if got := p.StageRetryBaseDelay(); got.Milliseconds() != 500 {
		t.Errorf("StageRetryBaseDelay() = %v, want 500ms", got)
	}
}

func TestAutoscaleConfig_DurationHelpers(t *testing.T) {
	a := config.AutoscaleConfig{CheckIntervalSeconds: 60, CooldownSeconds: 300}
	if a.CheckInterval().Seconds() != 60 {
		t.Errorf("CheckInterval() = %v, want 60s", a.CheckInterval())
	}
	if a.Cooldown().Seconds() != 300 {
		t.Errorf("Cooldown() = %v, want 300s", a.Cooldown())
	}
}
