// Package culturalctx provides regional honorifics, relationship-term
// selection, negotiation-style defaults, and festival pricing context for
// the 22 scheduled languages VIC serves. It is consulted by
// pkg/collab/negotiation before a suggestion is generated, so that
// negotiation phrasing and pricing both respect local convention.
//
// The package also exposes a pgvector-backed commodity/style embedding
// lookup, used to find the closest-matching cultural profile for a
// commodity or dialect that has no exact entry in the built-in table.
package culturalctx

import "time"

// RelationshipType classifies the history between two negotiating parties.
type RelationshipType int

const (
	NewCustomer RelationshipType = iota
	RepeatCustomer
	FrequentPartner
)

// NegotiationStyle is the regional default tone for price negotiation.
type NegotiationStyle int

const (
	RelationshipFocused NegotiationStyle = iota
	Direct
	BusinessFocused
	Indirect
)

// String returns the lowercase wire/log name of the style.
func (s NegotiationStyle) String() string {
	switch s {
	case RelationshipFocused:
		return "relationship_focused"
	case Direct:
		return "direct"
	case BusinessFocused:
		return "business_focused"
	case Indirect:
		return "indirect"
	default:
		return "unknown"
	}
}

// RelationshipContext describes the negotiating relationship for which
// honorifics and relationship terms are being selected.
type RelationshipContext struct {
	Type RelationshipType
}

// FestivalContext describes an active festival period and its typical
// effect on commodity pricing.
type FestivalContext struct {
	FestivalName           string
	Date                   time.Time
	TypicalPriceAdjustment float64
}

// Context is the complete cultural profile assembled for one negotiation
// turn.
type Context struct {
	Language          string
	Region            string
	Honorifics        []string
	RelationshipTerms []string
	NegotiationStyle  NegotiationStyle
	Festival          *FestivalContext
}
