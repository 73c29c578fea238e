// Package tts defines the Provider abstraction for speech synthesis
// backends consumed by the Voice Pipeline Orchestrator's Synthesize stage.
//
// VIC synthesizes one complete translated utterance at a time rather than
// piping incremental LLM output through a streaming voice, so Provider
// exposes a plain request/response contract. Implementations must be safe
// for concurrent use.
package tts

import "context"

// Request carries the text to synthesize and the language it is in.
type Request struct {
	// Text is the final translated text to speak.
	Text string

	// Language is the ISO 639-3 tag of Text, used to select a voice model.
	Language string
}

// Result is the outcome of a Synthesize call.
type Result struct {
	// Audio is the synthesized PCM audio buffer.
	Audio []byte

	// Confidence is the provider's self-reported synthesis quality in
	// [0.0, 1.0]. Most providers report 1.0 unconditionally; it exists so
	// providers that do estimate quality (e.g., low-resource-language
	// voices) have somewhere to report it.
	Confidence float64
}

// Provider is the abstraction over any TTS backend. Implementations must
// distinguish transient failures (timeouts, connection errors — wrap with
// vic.ErrTransient) from permanent ones so the Retry Engine and Service
// Health Controller can react correctly.
type Provider interface {
	// Synthesize produces audio for req.Text in req.Language.
	Synthesize(ctx context.Context, req Request) (Result, error)
}
