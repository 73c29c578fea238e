// Package vic defines the shared data types that flow through the Voice
// Interaction Core: the immutable Utterance that enters the pipeline, the
// per-stage outcomes the orchestrator records, and the aggregate
// VoiceResponse handed back to the caller.
//
// These types are intentionally free of behavior — they are the lingua
// franca between internal/voicepipeline, internal/servicehealth, and the
// provider packages under pkg/provider, so that none of those packages need
// to import one another directly.
package vic

import "time"

// ServiceKind is a closed enumeration naming an externally dependent
// capability tracked by the Service Health Controller.
type ServiceKind int

const (
	STT ServiceKind = iota
	Translation
	TTS
	LLM
	PriceOracle
	VoiceBiometric
	Database
	Cache
)

// String returns the lowercase wire/log name of the service kind.
func (k ServiceKind) String() string {
	switch k {
	case STT:
		return "stt"
	case Translation:
		return "translation"
	case TTS:
		return "tts"
	case LLM:
		return "llm"
	case PriceOracle:
		return "price_oracle"
	case VoiceBiometric:
		return "voice_biometric"
	case Database:
		return "database"
	case Cache:
		return "cache"
	default:
		return "unknown"
	}
}

// AllServiceKinds lists every recognized ServiceKind, in bootstrap order.
func AllServiceKinds() []ServiceKind {
	return []ServiceKind{STT, Translation, TTS, LLM, PriceOracle, VoiceBiometric, Database, Cache}
}

// Stage identifies one of the four sequential pipeline steps.
type Stage int

const (
	StageDetectLanguage Stage = iota
	StageTranscribe
	StageTranslate
	StageSynthesize
)

// String returns the human-readable stage name, used in logs and events.
func (s Stage) String() string {
	switch s {
	case StageDetectLanguage:
		return "detect_language"
	case StageTranscribe:
		return "transcribe"
	case StageTranslate:
		return "translate"
	case StageSynthesize:
		return "synthesize"
	default:
		return "unknown_stage"
	}
}

// SupportedTargetLanguages are the 22 scheduled Indian languages (ISO 639-3)
// plus English. A target outside this set is a validation error.
var SupportedTargetLanguages = map[string]bool{
	"hin": true, "tel": true, "tam": true, "kan": true, "mar": true,
	"ben": true, "guj": true, "pan": true, "mal": true, "asm": true,
	"ori": true, "urd": true, "kas": true, "kok": true, "nep": true,
	"brx": true, "doi": true, "mai": true, "mni": true, "sat": true,
	"snd": true, "san": true, "eng": true,
}

// Utterance is an immutable input record consumed exactly once by the
// Orchestrator. Callers must not mutate it after submission.
type Utterance struct {
	// Audio is the raw PCM audio buffer (16kHz mono assumed, but not enforced
	// here — model adapters validate their own format requirements).
	Audio []byte

	// SampleRate is the audio sample rate in Hz.
	SampleRate int

	// SourceLanguageHint, if non-empty, skips the DetectLanguage stage.
	SourceLanguageHint string

	// TargetLanguage is the ISO 639-3 tag the reply must be synthesized in.
	TargetLanguage string

	// SessionID optionally binds this utterance to a conversation session.
	SessionID string

	// AllowPartial, when true, permits a degraded VoiceResponse if only the
	// Synthesize stage fails after retries (see spec §4.C).
	AllowPartial bool
}

// StageOutcome records the result of one pipeline stage for one utterance.
type StageOutcome struct {
	Stage      Stage
	Start      time.Time
	End        time.Time
	Attempts   int
	Confidence float64
	Source     ServiceKind
	Err        error
}

// Latency returns End-Start. Callers must not call this on a zero-value
// outcome.
func (o StageOutcome) Latency() time.Duration {
	return o.End.Sub(o.Start)
}

// Succeeded reports whether this outcome represents a completed stage.
func (o StageOutcome) Succeeded() bool {
	return o.Err == nil
}

// VoiceResponse is the aggregate result of a fully or partially processed
// Utterance.
type VoiceResponse struct {
	Audio          []byte
	Transcription  string
	Translation    string
	SourceLanguage string
	TargetLanguage string

	TotalLatency    time.Duration
	StageLatencies  map[Stage]time.Duration
	StageConfidence map[Stage]float64
	StageAttempts   map[Stage]int

	// Partial is true when Synthesize failed but allow_partial permitted a
	// text-only response per spec §4.C.
	Partial bool
}
