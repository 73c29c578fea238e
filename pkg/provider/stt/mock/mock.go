// Package mock provides a test double for the stt.Provider interface.
//
// Use Provider to feed controlled DetectLanguage/Transcribe results or
// errors to consumers under test, and to inspect which requests it
// received.
package mock

import (
	"context"
	"sync"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/stt"
)

// Call records a single invocation of either Provider method.
type Call struct {
	Ctx context.Context
	Req stt.Request
}

// Provider is a mock implementation of stt.Provider.
type Provider struct {
	mu sync.Mutex

	// DetectLanguageResult is returned by DetectLanguage when
	// DetectLanguageErr is nil.
	DetectLanguageResult stt.Result
	DetectLanguageErr    error

	// TranscribeResult is returned by Transcribe when TranscribeErr is nil.
	TranscribeResult stt.Result
	TranscribeErr    error

	DetectLanguageCalls []Call
	TranscribeCalls     []Call
}

// DetectLanguage records the call and returns DetectLanguageResult, DetectLanguageErr.
func (p *Provider) DetectLanguage(ctx context.Context, req stt.Request) (stt.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DetectLanguageCalls = append(p.DetectLanguageCalls, Call{Ctx: ctx, Req: req})
	return p.DetectLanguageResult, p.DetectLanguageErr
}

// Transcribe records the call and returns TranscribeResult, TranscribeErr.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (stt.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TranscribeCalls = append(p.TranscribeCalls, Call{Ctx: ctx, Req: req})
	return p.TranscribeResult, p.TranscribeErr
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DetectLanguageCalls = nil
	p.TranscribeCalls = nil
}

// Ensure Provider implements stt.Provider at compile time.
var _ stt.Provider = (*Provider)(nil)
