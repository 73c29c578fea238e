// Package events defines the outbound event envelope the Voice Interaction
// Core emits for external consumers (operator dashboards, alerting) and a
// Dispatcher that fans the four component-specific EventSink interfaces
// (conversation, autoscale, voicepipeline, servicehealth) out to that
// envelope, to observability counters, and to any number of subscribers
// over a websocket Hub.
package events

import (
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/servicehealth"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// Kind identifies the payload carried by an Envelope.
type Kind string

const (
	KindLatencyAlert         Kind = "latency_alert"
	KindInactiveAlert        Kind = "inactive_alert"
	KindSwitch               Kind = "switch"
	KindServiceStatusChanged Kind = "service_status_changed"
	KindScalingExecuted      Kind = "scaling_executed"
	KindCriticalEvent        Kind = "critical_event"
)

// LatencyAlert mirrors voicepipeline.LatencyAlert, with JSON tags for the
// wire format.
type LatencyAlert struct {
	Stage       vic.Stage `json:"stage"`
	MeasuredMS  int64     `json:"measured_ms"`
	ThresholdMS int64     `json:"threshold_ms"`
}

// InactiveAlert mirrors conversation.InactiveAlert.
type InactiveAlert struct {
	Owner        string `json:"owner"`
	SessionID    string `json:"session_id"`
	Counterparty string `json:"counterparty"`
}

// SwitchEvent mirrors conversation.SwitchEvent.
type SwitchEvent struct {
	Owner               string `json:"owner"`
	PreviousSessionID   string `json:"previous_session_id"`
	NewSessionID        string `json:"new_session_id"`
	CounterpartyDisplay string `json:"counterparty_display"`
	Commodity           string `json:"commodity"`
	MessageCount        int    `json:"message_count"`
}

// ServiceStatusChanged mirrors a servicehealth.Controller status transition.
type ServiceStatusChanged struct {
	Service vic.ServiceKind      `json:"service"`
	Old     servicehealth.Status `json:"old"`
	New     servicehealth.Status `json:"new"`
}

// ScalingExecuted mirrors an autoscale.Loop decision that was acted on. The
// action is carried as its string form ("up"/"down") rather than the
// package-internal Action enum, so the wire format is stable independent of
// iota ordering.
type ScalingExecuted struct {
	Action string `json:"action"`
	From   int    `json:"from"`
	To     int    `json:"to"`
	Reason string `json:"reason"`
}

// CriticalEvent mirrors a critical-service-unavailable notification raised
// by autoscale. servicehealth reports its transitions as
// ServiceStatusChanged instead.
type CriticalEvent struct {
	Service vic.ServiceKind `json:"service"`
}

// Envelope is the wire format delivered to subscribers: a tagged union over
// one of the payload types above.
type Envelope struct {
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}
