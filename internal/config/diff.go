package config

// ConfigDiff describes what changed between two configs. Only fields that
// can be safely hot-reloaded by the Watcher are tracked.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	HealthChanged bool
	NewHealth     HealthConfig

	AutoscaleChanged bool
	NewAutoscale     AutoscaleConfig

	SessionChanged bool
	NewSession     SessionConfig
}

// Diff compares old and new configs and returns what changed. Provider
// selection and pipeline latency budgets are intentionally excluded — they
// require component re-wiring, not a hot swap.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if !healthEqual(old.Health, new.Health) {
		d.HealthChanged = true
		d.NewHealth = new.Health
	}

	if old.Autoscale != new.Autoscale {
		d.AutoscaleChanged = true
		d.NewAutoscale = new.Autoscale
	}

	if old.Session != new.Session {
		d.SessionChanged = true
		d.NewSession = new.Session
	}

	return d
}

// healthEqual compares two HealthConfig values field-by-field since
// CriticalServices is a slice (incomparable with ==).
func healthEqual(a, b HealthConfig) bool {
	if a.MaxFailures != b.MaxFailures || a.AutoFallback != b.AutoFallback {
		return false
	}
	if len(a.CriticalServices) != len(b.CriticalServices) {
		return false
	}
	for i := range a.CriticalServices {
		if a.CriticalServices[i] != b.CriticalServices[i] {
			return false
		}
	}
	return true
}
