// Package stt defines the Provider abstraction for speech recognition
// backends consumed by the Voice Pipeline Orchestrator's DetectLanguage and
// Transcribe stages.
//
// VIC's pipeline operates on one complete Utterance at a time rather than a
// live audio stream, so Provider exposes a plain request/response contract.
// Implementations must be safe for concurrent use: the orchestrator invokes
// the same Provider for many independent utterances at once.
package stt

import (
	"context"
	"errors"
)

// ErrUnsupportedLanguage is returned by DetectLanguage when the audio does
// not match any language the provider can recognize.
var ErrUnsupportedLanguage = errors.New("stt: unsupported language")

// Request carries one utterance's audio to either Provider method.
type Request struct {
	// Audio is the raw PCM audio buffer (16kHz mono assumed).
	Audio []byte

	// SampleRate is the audio sample rate in Hz.
	SampleRate int

	// LanguageHint, if non-empty, is the ISO 639-3 source language to
	// transcribe against directly. The orchestrator always sets it on
	// Transcribe, to vic.Utterance.SourceLanguageHint when given (in which
	// case it skips DetectLanguage) or else to the detected language (see
	// internal/voicepipeline).
	LanguageHint string
}

// Result is the outcome of a DetectLanguage or Transcribe call.
type Result struct {
	// Text is the recognized transcript. Empty for DetectLanguage results.
	Text string

	// Language is the ISO 639-3 tag the provider detected or transcribed
	// against.
	Language string

	// Confidence is the provider's self-reported confidence in [0.0, 1.0].
	Confidence float64
}

// Provider is the abstraction over any STT backend. Implementations must
// distinguish transient failures (timeouts, connection errors — wrap with
// vic.ErrTransient) from permanent ones so the Retry Engine and Service
// Health Controller can react correctly.
type Provider interface {
	// DetectLanguage identifies the spoken language of req.Audio without
	// producing a transcript.
	DetectLanguage(ctx context.Context, req Request) (Result, error)

	// Transcribe produces a text transcript of req.Audio. If req.LanguageHint
	// is set, the provider transcribes against that language directly.
	Transcribe(ctx context.Context, req Request) (Result, error)
}
