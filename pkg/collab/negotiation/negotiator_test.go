package negotiation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/collab/culturalctx"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/collab/negotiation"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/llm"
	llmmock "github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/llm/mock"
)

func TestNegotiator_Suggest_ExtractsPriceAndCarriesStyle(t *testing.T) {
	provider := &llmmock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "मैं ₹45.50 प्रति किलो सुझाता हूं।"},
	}
	cultural := culturalctx.NewEngine()
	n := negotiation.New(provider, cultural, nil)

	req := negotiation.Request{
		Commodity: "onion",
		SellerAsk: 50,
		Language:  "hin",
		Region:    "Delhi",
	}

	sug, err := n.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if sug.SuggestedPrice != 45.50 {
		t.Errorf("SuggestedPrice = %v, want 45.50", sug.SuggestedPrice)
	}
	if sug.Style != culturalctx.RelationshipFocused {
		t.Errorf("Style = %v, want RelationshipFocused (Hindi default)", sug.Style)
	}
	if len(provider.CompleteCalls) != 1 {
		t.Fatalf("CompleteCalls = %d, want 1", len(provider.CompleteCalls))
	}
}

func TestNegotiator_Suggest_UsesPriceLookup(t *testing.T) {
	provider := &llmmock.Provider{CompleteResponse: &llm.CompletionResponse{Content: "ok"}}
	cultural := culturalctx.NewEngine()

	var lookedUpCommodity string
	lookup := func(_ context.Context, commodity string) (float64, error) {
		lookedUpCommodity = commodity
		return 40, nil
	}
	n := negotiation.New(provider, cultural, lookup)

	_, err := n.Suggest(context.Background(), negotiation.Request{Commodity: "onion", Language: "tam", Region: "Tamil Nadu"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if lookedUpCommodity != "onion" {
		t.Errorf("price lookup commodity = %q, want onion", lookedUpCommodity)
	}
}

func TestNegotiator_Suggest_PropagatesPriceLookupError(t *testing.T) {
	provider := &llmmock.Provider{CompleteResponse: &llm.CompletionResponse{Content: "ok"}}
	cultural := culturalctx.NewEngine()
	wantErr := errors.New("oracle unavailable")
	lookup := func(_ context.Context, _ string) (float64, error) { return 0, wantErr }
	n := negotiation.New(provider, cultural, lookup)

	_, err := n.Suggest(context.Background(), negotiation.Request{Commodity: "onion", Language: "hin", Region: "Delhi"})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapping %v", err, wantErr)
	}
}

func TestNegotiator_Suggest_PropagatesLLMError(t *testing.T) {
	wantErr := errors.New("model unavailable")
	provider := &llmmock.Provider{CompleteErr: wantErr}
	cultural := culturalctx.NewEngine()
	n := negotiation.New(provider, cultural, nil)

	_, err := n.Suggest(context.Background(), negotiation.Request{Commodity: "onion", Language: "hin", Region: "Delhi"})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapping %v", err, wantErr)
	}
}
