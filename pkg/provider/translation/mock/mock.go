// Package mock provides a test double for the translation.Provider interface.
package mock

import (
	"context"
	"sync"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/translation"
)

// Call records a single invocation of Translate.
type Call struct {
	Ctx context.Context
	Req translation.Request
}

// Provider is a mock implementation of translation.Provider.
type Provider struct {
	mu sync.Mutex

	TranslateResult translation.Result
	TranslateErr    error

	TranslateCalls []Call
}

// Translate records the call and returns TranslateResult, TranslateErr.
func (p *Provider) Translate(ctx context.Context, req translation.Request) (translation.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TranslateCalls = append(p.TranslateCalls, Call{Ctx: ctx, Req: req})
	return p.TranslateResult, p.TranslateErr
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TranslateCalls = nil
}

// Ensure Provider implements translation.Provider at compile time.
var _ translation.Provider = (*Provider)(nil)
