// Package translation defines the Provider abstraction for the machine
// translation backend consumed by the Voice Pipeline Orchestrator's
// Translate stage. There is no concrete teacher equivalent — this package
// follows the same request/response shape as pkg/provider/stt and
// pkg/provider/tts so the orchestrator can wrap all three stage kinds
// uniformly with the Retry Engine and Service Health Controller.
package translation

import "context"

// Request carries the text to translate and its source/target languages.
type Request struct {
	// Text is the source-language text to translate.
	Text string

	// SourceLanguage is the ISO 639-3 tag Text is written in.
	SourceLanguage string

	// TargetLanguage is the ISO 639-3 tag to translate into.
	TargetLanguage string
}

// Result is the outcome of a Translate call.
type Result struct {
	// Text is the translated text.
	Text string

	// Confidence is the provider's self-reported confidence in [0.0, 1.0].
	Confidence float64
}

// Provider is the abstraction over any machine-translation backend.
// Implementations must distinguish transient failures (timeouts, connection
// errors — wrap with vic.ErrTransient) from permanent ones so the Retry
// Engine and Service Health Controller can react correctly.
type Provider interface {
	// Translate converts req.Text from req.SourceLanguage to
	// req.TargetLanguage.
	Translate(ctx context.Context, req Request) (Result, error)
}
