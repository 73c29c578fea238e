// Package negotiation generates culturally-aware price-negotiation
// suggestions for a buyer/seller exchange. It consults
// pkg/collab/culturalctx for honorifics, address terms, negotiation style,
// and festival pricing context, optionally consults an injected
// PriceLookup for a market reference price, and calls an
// pkg/provider/llm.Provider to phrase the suggestion.
package negotiation

import (
	"context"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/collab/culturalctx"
)

// Request describes one negotiation turn awaiting a suggestion.
type Request struct {
	Commodity    string
	BuyerOffer   float64 // INR, 0 if not yet stated
	SellerAsk    float64 // INR, 0 if not yet stated
	Language     string  // ISO 639-3
	Region       string
	Relationship culturalctx.RelationshipContext
}

// Suggestion is the negotiation assistant's recommendation for the next
// message in the exchange.
type Suggestion struct {
	// SuggestedPrice is the assistant's recommended price point, or 0 if
	// none could be extracted from the model's reply.
	SuggestedPrice float64

	// Message is the full suggested reply text, in Request.Language,
	// already incorporating the chosen honorific and address terms.
	Message string

	// Style is the negotiation style the suggestion was generated under.
	Style culturalctx.NegotiationStyle

	// Festival is set when an active festival period influenced the
	// suggested price.
	Festival *culturalctx.FestivalContext
}

// PriceLookup resolves a market reference price (INR per standard unit)
// for a commodity. Implementations are a black box to this package — the
// proprietary price-oracle integration lives outside it, per spec.md §1.
type PriceLookup func(ctx context.Context, commodity string) (float64, error)
