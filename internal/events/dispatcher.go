package events

import (
	"context"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/autoscale"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/conversation"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/observe"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/servicehealth"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/voicepipeline"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// Sink receives every Envelope the Dispatcher produces. A Hub implements
// this; tests can supply a simpler recording double.
type Sink interface {
	Publish(Envelope)
}

// Dispatcher implements conversation.EventSink, autoscale.EventSink,
// voicepipeline.EventSink, and servicehealth.EventSink by converting each
// component-specific call into an Envelope, recording it to metrics, and
// forwarding it to a Sink. A nil metrics or nil out is valid: metrics are
// skipped, and the envelope is simply dropped.
//
// Compile-time assertions that Dispatcher satisfies every component
// EventSink it is built to feed.
var (
	_ conversation.EventSink  = (*Dispatcher)(nil)
	_ autoscale.EventSink     = (*Dispatcher)(nil)
	_ voicepipeline.EventSink = (*Dispatcher)(nil)
	_ servicehealth.EventSink = (*Dispatcher)(nil)
)

// Dispatcher is safe for concurrent use: every method either forwards to a
// concurrency-safe Sink or records to OpenTelemetry instruments, both of
// which manage their own synchronization.
type Dispatcher struct {
	out     Sink
	metrics *observe.Metrics
	now     func() time.Time
}

// New creates a Dispatcher that publishes to out and records to metrics.
// Either may be nil.
func New(out Sink, metrics *observe.Metrics) *Dispatcher {
	return &Dispatcher{out: out, metrics: metrics, now: time.Now}
}

func (d *Dispatcher) publish(kind Kind, payload any) {
	if d.out == nil {
		return
	}
	d.out.Publish(Envelope{Kind: kind, At: d.now(), Payload: payload})
}

// EmitSwitch implements conversation.EventSink.
func (d *Dispatcher) EmitSwitch(ev conversation.SwitchEvent) {
	if d.metrics != nil {
		d.metrics.SwitchEvents.Add(context.Background(), 1)
	}
	d.publish(KindSwitch, SwitchEvent{
		Owner:               ev.Owner,
		PreviousSessionID:   ev.PreviousSessionID,
		NewSessionID:        ev.NewSessionID,
		CounterpartyDisplay: ev.CounterpartyDisplay,
		Commodity:           ev.Commodity,
		MessageCount:        ev.MessageCount,
	})
}

// EmitInactiveAlert implements conversation.EventSink.
func (d *Dispatcher) EmitInactiveAlert(ev conversation.InactiveAlert) {
	if d.metrics != nil {
		d.metrics.InactiveAlerts.Add(context.Background(), 1)
	}
	d.publish(KindInactiveAlert, InactiveAlert{
		Owner:        ev.Owner,
		SessionID:    ev.SessionID,
		Counterparty: ev.Counterparty,
	})
}

// EmitScalingExecuted implements autoscale.EventSink.
func (d *Dispatcher) EmitScalingExecuted(action autoscale.Action, from, to int, reason string) {
	if d.metrics != nil {
		d.metrics.RecordScalingAction(context.Background(), action.String())
	}
	d.publish(KindScalingExecuted, ScalingExecuted{
		Action: action.String(),
		From:   from,
		To:     to,
		Reason: reason,
	})
}

// EmitCriticalEvent implements autoscale.EventSink.
func (d *Dispatcher) EmitCriticalEvent(service vic.ServiceKind) {
	if d.metrics != nil {
		d.metrics.RecordCriticalEvent(context.Background(), service.String())
	}
	d.publish(KindCriticalEvent, CriticalEvent{Service: service})
}

// EmitLatencyAlert implements voicepipeline.EventSink.
func (d *Dispatcher) EmitLatencyAlert(a voicepipeline.LatencyAlert) {
	if d.metrics != nil {
		d.metrics.RecordLatencyAlert(context.Background(), a.Stage.String())
	}
	d.publish(KindLatencyAlert, LatencyAlert{
		Stage:       a.Stage,
		MeasuredMS:  a.MeasuredMS,
		ThresholdMS: a.ThresholdMS,
	})
}

// EmitServiceStatusChanged implements servicehealth.EventSink.
func (d *Dispatcher) EmitServiceStatusChanged(kind vic.ServiceKind, old, new servicehealth.Status) {
	if d.metrics != nil {
		d.metrics.RecordHealthTransition(context.Background(), kind.String(), new.String())
	}
	d.publish(KindServiceStatusChanged, ServiceStatusChanged{
		Service: kind,
		Old:     old,
		New:     new,
	})
}
