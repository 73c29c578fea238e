package negotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/collab/culturalctx"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/llm"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/types"
)

// Negotiator generates negotiation suggestions for the conversation
// session manager.
//
// Safe for concurrent use; its fields are immutable after construction.
type Negotiator struct {
	llm         llm.Provider
	cultural    *culturalctx.Engine
	priceLookup PriceLookup
}

// New returns a Negotiator. priceLookup may be nil, in which case
// suggestions omit a market reference price.
func New(provider llm.Provider, cultural *culturalctx.Engine, priceLookup PriceLookup) *Negotiator {
	return &Negotiator{llm: provider, cultural: cultural, priceLookup: priceLookup}
}

// Suggest produces a culturally-aware negotiation suggestion for req.
func (n *Negotiator) Suggest(ctx context.Context, req Request) (*Suggestion, error) {
	cultural := n.cultural.BuildContext(req.Language, req.Region, req.Relationship, time.Now(), req.Commodity)

	var referencePrice float64
	if n.priceLookup != nil {
		price, err := n.priceLookup(ctx, req.Commodity)
		if err != nil {
			return nil, fmt.Errorf("negotiation: price lookup: %w", err)
		}
		referencePrice = price
	}

	systemPrompt := buildSystemPrompt(cultural, referencePrice)
	userPrompt := buildUserPrompt(req, referencePrice)

	resp, err := n.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages:     []types.Message{{Role: "user", Content: userPrompt}},
		Temperature:  0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("negotiation: suggest: %w", err)
	}

	return &Suggestion{
		SuggestedPrice: extractPrice(resp.Content),
		Message:        resp.Content,
		Style:          cultural.NegotiationStyle,
		Festival:       cultural.Festival,
	}, nil
}

func buildSystemPrompt(cultural culturalctx.Context, referencePrice float64) string {
	prompt := fmt.Sprintf(
		"You are a negotiation assistant helping a trader in a %s market negotiate in %s. "+
			"Use a %s tone. Address the other party with one of these honorifics: %v, "+
			"and these pronouns: %v.",
		cultural.Region, cultural.Language, cultural.NegotiationStyle, cultural.Honorifics, cultural.RelationshipTerms,
	)
	if referencePrice > 0 {
		prompt += fmt.Sprintf(" The current market reference price is ₹%.2f per unit.", referencePrice)
	}
	if cultural.Festival != nil {
		prompt += fmt.Sprintf(
			" Note that %s is approaching, which typically adjusts prices by a factor of %.2f.",
			cultural.Festival.FestivalName, cultural.Festival.TypicalPriceAdjustment,
		)
	}
	return prompt
}

func buildUserPrompt(req Request, referencePrice float64) string {
	prompt := fmt.Sprintf("Commodity: %s.", req.Commodity)
	if req.BuyerOffer > 0 {
		prompt += fmt.Sprintf(" Buyer has offered ₹%.2f.", req.BuyerOffer)
	}
	if req.SellerAsk > 0 {
		prompt += fmt.Sprintf(" Seller is asking ₹%.2f.", req.SellerAsk)
	}
	prompt += " Suggest the next counter-offer and a short message to send."
	return prompt
}
