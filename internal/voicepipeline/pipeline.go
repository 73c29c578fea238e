// Package voicepipeline implements the Voice Pipeline Orchestrator (spec
// §4.C): the four-stage DetectLanguage → Transcribe → Translate →
// Synthesize sequence that turns one Utterance into a VoiceResponse, with
// per-stage retry via internal/voiceretry and fallback dispatch via
// internal/servicehealth.
package voicepipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/servicehealth"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/voiceretry"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/stt"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/translation"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/tts"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// stageRetryMaxAttempts and stageRetryBaseDelay are the per-stage retry
// defaults mandated by spec §4.C — distinct from internal/voiceretry's own
// package defaults (max_attempts=3, base_delay=1s used elsewhere).
const (
	stageRetryMaxAttempts = 3
	stageRetryBaseDelay   = 500 * time.Millisecond
)

// Latency budgets per stage, in design-target milliseconds (spec §4.C).
// These are not hard failure conditions: exceeding the total budget logs a
// warning and emits a LatencyAlert but does not fail an otherwise
// successful response.
const (
	budgetDetectLanguage = 2000 * time.Millisecond
	budgetTranscribe     = 3000 * time.Millisecond
	budgetTranslate      = 2000 * time.Millisecond
	budgetSynthesize     = 2000 * time.Millisecond
	budgetTotal          = 8000 * time.Millisecond

	// timeoutFactor scales each stage's budget into its effective timeout
	// per spec §5 ("effective timeout equal to its latency budget × 1.5").
	timeoutFactor = 1.5
)

func stageBudget(s vic.Stage) time.Duration {
	switch s {
	case vic.StageDetectLanguage:
		return budgetDetectLanguage
	case vic.StageTranscribe:
		return budgetTranscribe
	case vic.StageTranslate:
		return budgetTranslate
	case vic.StageSynthesize:
		return budgetSynthesize
	default:
		return 0
	}
}

// PipelineError is returned when a non-partial-eligible stage fails after
// retries and fallback are exhausted.
type PipelineError struct {
	Stage vic.Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("voicepipeline: stage %s failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// LatencyAlert is emitted when the total pipeline latency exceeds
// budgetTotal. Consumers receive alerts through the EventSink passed to New.
type LatencyAlert struct {
	Stage       vic.Stage
	MeasuredMS  int64
	ThresholdMS int64
}

// EventSink receives best-effort outbound events from the orchestrator. A
// nil sink is valid; events are simply dropped.
type EventSink interface {
	EmitLatencyAlert(LatencyAlert)
}

// Adapters bundles the model adapters the Orchestrator calls for each
// stage. All three are required.
type Adapters struct {
	STT         stt.Provider
	Translation translation.Provider
	TTS         tts.Provider
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithEventSink sets the sink that receives LatencyAlert events.
func WithEventSink(sink EventSink) Option {
	return func(o *Orchestrator) { o.sink = sink }
}

// WithPostTranscribeCorrector sets an optional correction pass run on the
// Transcribe stage's output before it is handed to Translate (the
// transcript self-correction sub-step folded into this stage, not a fifth
// pipeline stage).
func WithPostTranscribeCorrector(fn func(text string) string) Option {
	return func(o *Orchestrator) { o.corrector = fn }
}

// Orchestrator is the Voice Pipeline Orchestrator. It is safe for
// concurrent use: distinct Utterances may be processed concurrently, but
// the stages of a single Utterance always run strictly sequentially (spec
// §5).
type Orchestrator struct {
	adapters Adapters
	health   *servicehealth.Controller
	sink     EventSink

	corrector func(text string) string
}

// New creates an Orchestrator wired to adapters and health.
func New(adapters Adapters, health *servicehealth.Controller, opts ...Option) *Orchestrator {
	o := &Orchestrator{adapters: adapters, health: health}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process runs u through the four-stage pipeline and returns a
// VoiceResponse, or a *PipelineError / cancellation error on non-partial
// failure.
func (o *Orchestrator) Process(ctx context.Context, u vic.Utterance) (*vic.VoiceResponse, error) {
	if err := validate(u); err != nil {
		return nil, err
	}

	start := time.Now()
	outcomes := make(map[vic.Stage]vic.StageOutcome, 4)

	sourceLang, detectOutcome := o.runDetectLanguage(ctx, u)
	outcomes[vic.StageDetectLanguage] = detectOutcome
	if detectOutcome.Err != nil {
		return nil, o.fail(vic.StageDetectLanguage, detectOutcome.Err)
	}

	transcript, transcribeOutcome := o.runTranscribe(ctx, u, sourceLang)
	outcomes[vic.StageTranscribe] = transcribeOutcome
	if transcribeOutcome.Err != nil {
		return nil, o.fail(vic.StageTranscribe, transcribeOutcome.Err)
	}

	translated, translateOutcome := o.runTranslate(ctx, transcript, sourceLang, u.TargetLanguage)
	outcomes[vic.StageTranslate] = translateOutcome
	if translateOutcome.Err != nil {
		if u.AllowPartial {
			return nil, &PipelineError{Stage: vic.StageTranslate, Err: translateOutcome.Err}
		}
		return nil, o.fail(vic.StageTranslate, translateOutcome.Err)
	}

	audio, synthesizeOutcome := o.runSynthesize(ctx, translated, u.TargetLanguage)
	outcomes[vic.StageSynthesize] = synthesizeOutcome

	resp := &vic.VoiceResponse{
		Transcription:   transcript,
		Translation:     translated,
		SourceLanguage:  sourceLang,
		TargetLanguage:  u.TargetLanguage,
		StageLatencies:  latencyMap(outcomes),
		StageConfidence: confidenceMap(outcomes),
		StageAttempts:   attemptsMap(outcomes),
	}

	if synthesizeOutcome.Err != nil {
		if !u.AllowPartial {
			return nil, o.fail(vic.StageSynthesize, synthesizeOutcome.Err)
		}
		resp.Partial = true
	} else {
		resp.Audio = audio
	}

	resp.TotalLatency = time.Since(start)
	o.checkTotalBudget(resp.TotalLatency)

	return resp, nil
}

func validate(u vic.Utterance) error {
	if len(u.Audio) == 0 {
		return fmt.Errorf("%w: empty audio", vic.ErrValidation)
	}
	if !vic.SupportedTargetLanguages[u.TargetLanguage] {
		return fmt.Errorf("%w: unsupported target language %q", vic.ErrValidation, u.TargetLanguage)
	}
	return nil
}

// fail converts a stage failure into the orchestrator's return error,
// respecting cancellation propagation (spec §4.C: cancellation surfaces
// immediately and does not record an in-flight stage's outcome).
func (o *Orchestrator) fail(stage vic.Stage, err error) error {
	if errors.Is(err, vic.ErrCancelled) {
		return err
	}
	return &PipelineError{Stage: stage, Err: err}
}

func (o *Orchestrator) checkTotalBudget(total time.Duration) {
	if total <= budgetTotal {
		return
	}
	slog.Warn("voicepipeline: total latency budget exceeded",
		"measured_ms", total.Milliseconds(), "threshold_ms", budgetTotal.Milliseconds())
	if o.sink != nil {
		o.sink.EmitLatencyAlert(LatencyAlert{
			MeasuredMS:  total.Milliseconds(),
			ThresholdMS: budgetTotal.Milliseconds(),
		})
	}
}

func latencyMap(outcomes map[vic.Stage]vic.StageOutcome) map[vic.Stage]time.Duration {
	m := make(map[vic.Stage]time.Duration, len(outcomes))
	for stage, o := range outcomes {
		m[stage] = o.Latency()
	}
	return m
}

func confidenceMap(outcomes map[vic.Stage]vic.StageOutcome) map[vic.Stage]float64 {
	m := make(map[vic.Stage]float64, len(outcomes))
	for stage, o := range outcomes {
		m[stage] = o.Confidence
	}
	return m
}

func attemptsMap(outcomes map[vic.Stage]vic.StageOutcome) map[vic.Stage]int {
	m := make(map[vic.Stage]int, len(outcomes))
	for stage, o := range outcomes {
		m[stage] = o.Attempts
	}
	return m
}

// retryConfig builds the §4.C per-stage retry configuration: three attempts,
// 500ms base delay, retry only on transient errors.
func retryConfig() voiceretry.Config {
	return voiceretry.Config{
		MaxAttempts: stageRetryMaxAttempts,
		BaseDelay:   stageRetryBaseDelay,
		RetryOn:     voiceretry.TransientOnly,
	}
}

// withStageTimeout wraps ctx with the stage's effective timeout (budget ×
// 1.5, spec §5), returning the derived context and its cancel func.
func withStageTimeout(ctx context.Context, stage vic.Stage) (context.Context, context.CancelFunc) {
	budget := stageBudget(stage)
	timeout := time.Duration(float64(budget) * timeoutFactor)
	return context.WithTimeout(ctx, timeout)
}
