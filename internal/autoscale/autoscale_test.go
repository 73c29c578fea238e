package autoscale

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func hooksWithInstances(n int) Hooks {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "instance"
	}
	return Hooks{
		GetHostMetrics: func(ctx context.Context) (HostMetrics, error) {
			return HostMetrics{}, nil
		},
		DiscoverInstances: func(ctx context.Context) ([]string, error) {
			return ids, nil
		},
		StartInstance: func(ctx context.Context, id string) error { return nil },
		StopInstance:  func(ctx context.Context, id string) error { return nil },
		ReloadRouter:  func(ctx context.Context) error { return nil },
	}
}

func TestTick_CooldownForcesNoOpEvenAtHighLoad(t *testing.T) {
	now := time.Now()
	hooks := hooksWithInstances(2)
	hooks.GetHostMetrics = func(ctx context.Context) (HostMetrics, error) {
		return HostMetrics{CPUFraction: 1.0, MemoryFraction: 1.0}, nil // load = 1.0
	}

	l := New(Config{MaxInstances: 5}, hooks, withClock(fixedClock(now)))
	l.lastScalingAction = now.Add(-60 * time.Second) // last action 60s ago, cooldown default 300s

	var started []string
	hooks.StartInstance = func(ctx context.Context, id string) error {
		started = append(started, id)
		return nil
	}
	l.hooks = hooks

	decision, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if decision.Action != ActionNoOp {
		t.Fatalf("action = %v, want NoOp", decision.Action)
	}
	if len(started) != 0 {
		t.Fatal("start_instance should not have been called during cooldown")
	}
}

func TestTick_ScaleUpAtThresholdExactly(t *testing.T) {
	hooks := hooksWithInstances(2)
	hooks.GetHostMetrics = func(ctx context.Context) (HostMetrics, error) {
		// cpu=0.80/0.70*... simplify: craft load exactly 0.80.
		return HostMetrics{CPUFraction: 0.80, MemoryFraction: 0.80}, nil
	}
	l := New(Config{MaxInstances: 5}, hooks)

	decision, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if decision.Action != ActionUp {
		t.Fatalf("action = %v, want Up at load==threshold", decision.Action)
	}
	if decision.Target != 3 {
		t.Fatalf("target = %d, want 3", decision.Target)
	}
}

func TestTick_ScaleDownAtThresholdExactly(t *testing.T) {
	hooks := hooksWithInstances(3)
	hooks.GetHostMetrics = func(ctx context.Context) (HostMetrics, error) {
		return HostMetrics{CPUFraction: 0.30, MemoryFraction: 0.30}, nil
	}
	l := New(Config{MinInstances: 1, MaxInstances: 5}, hooks)

	decision, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if decision.Action != ActionDown {
		t.Fatalf("action = %v, want Down at load==threshold", decision.Action)
	}
	if decision.Target != 2 {
		t.Fatalf("target = %d, want 2", decision.Target)
	}
}

func TestTick_NoScaleUpAtMaxInstances(t *testing.T) {
	hooks := hooksWithInstances(5)
	hooks.GetHostMetrics = func(ctx context.Context) (HostMetrics, error) {
		return HostMetrics{CPUFraction: 1.0, MemoryFraction: 1.0}, nil
	}
	l := New(Config{MaxInstances: 5}, hooks)

	decision, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if decision.Action != ActionNoOp {
		t.Fatalf("action = %v, want NoOp at max instances regardless of load", decision.Action)
	}
}

func TestTick_NoScaleDownAtMinInstances(t *testing.T) {
	hooks := hooksWithInstances(1)
	hooks.GetHostMetrics = func(ctx context.Context) (HostMetrics, error) {
		return HostMetrics{CPUFraction: 0.0, MemoryFraction: 0.0}, nil
	}
	l := New(Config{MinInstances: 1, MaxInstances: 5}, hooks)

	decision, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if decision.Action != ActionNoOp {
		t.Fatalf("action = %v, want NoOp at min instances regardless of load", decision.Action)
	}
}

func TestExecute_AdvancesLastScalingActionOnlyOnSuccess(t *testing.T) {
	now := time.Now()
	hooks := hooksWithInstances(2)
	l := New(Config{MaxInstances: 5, Cooldown: 300 * time.Second}, hooks, withClock(fixedClock(now)))

	decision := Decision{Action: ActionUp, Current: 2, Target: 3}
	if err := l.Execute(context.Background(), decision); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if l.lastScalingAction.IsZero() {
		t.Fatal("last scaling action should have advanced")
	}
}

func TestExecute_DoesNotAdvanceLastScalingActionOnHookFailure(t *testing.T) {
	hooks := hooksWithInstances(2)
	hooks.StartInstance = func(ctx context.Context, id string) error {
		return errFailingHook
	}
	l := New(Config{MaxInstances: 5}, hooks)

	decision := Decision{Action: ActionUp, Current: 2, Target: 3}
	if err := l.Execute(context.Background(), decision); err == nil {
		t.Fatal("expected execute to fail")
	}
	if !l.lastScalingAction.IsZero() {
		t.Fatal("last scaling action should not advance on hook failure")
	}
}

var errFailingHook = errHook("hook failed")

type errHook string

func (e errHook) Error() string { return string(e) }

func TestTwoConsecutiveScalingActions_RespectCooldownGap(t *testing.T) {
	now := time.Now()
	hooks := hooksWithInstances(2)
	l := New(Config{MaxInstances: 5, Cooldown: 300 * time.Second}, hooks, withClock(fixedClock(now)))

	if err := l.Execute(context.Background(), Decision{Action: ActionUp, Current: 2, Target: 3}); err != nil {
		t.Fatalf("first execute: %v", err)
	}
	firstAction := l.lastScalingAction

	// Simulate a tick 60s later: still within cooldown.
	l.now = fixedClock(now.Add(60 * time.Second))
	decision, err := l.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if decision.Action != ActionNoOp {
		t.Fatalf("action = %v, want NoOp within cooldown gap", decision.Action)
	}
	if !firstAction.Equal(l.lastScalingAction) {
		t.Fatal("last scaling action must not change without an executed decision")
	}
}

func TestTick_UpdatesStandaloneGauges(t *testing.T) {
	hooks := hooksWithInstances(3)
	hooks.GetHostMetrics = func(ctx context.Context) (HostMetrics, error) {
		return HostMetrics{CPUFraction: 0.5, MemoryFraction: 0.5}, nil // load = 0.5
	}

	l := New(Config{MaxInstances: 5}, hooks, withClock(fixedClock(time.Now())))
	if _, err := l.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}

	if got := testutil.ToFloat64(loadGauge); got != 0.5 {
		t.Errorf("vic_autoscale_load_fraction = %v, want 0.5", got)
	}
	if got := testutil.ToFloat64(instanceGauge); got != 3 {
		t.Errorf("vic_autoscale_instances = %v, want 3", got)
	}
}
