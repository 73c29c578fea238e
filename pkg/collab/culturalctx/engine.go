package culturalctx

import "time"

// Engine assembles a complete cultural [Context] for one negotiation turn
// from the built-in regional norms and festival calendar.
//
// Engine holds no state and is safe for concurrent use; construct it once
// and share it.
type Engine struct{}

// NewEngine returns a ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Honorifics returns the honorifics appropriate for language and
// relationship, defaulting to English/pan-India business norms when
// language has no dedicated entry.
func (e *Engine) Honorifics(language string, relationship RelationshipContext) []string {
	return lookupNorm(language).honorificsFor(relationship.Type)
}

// RelationshipTerms returns the address terms (formal/informal pronouns)
// appropriate for language and relationship.
func (e *Engine) RelationshipTerms(language string, relationship RelationshipContext) []string {
	return lookupNorm(language).relationshipTermsFor(relationship.Type)
}

// NegotiationStyleFor returns the regional negotiation style preference,
// preferring an exact language match and falling back to matching region
// against the known regions of each language entry.
func (e *Engine) NegotiationStyleFor(region, language string) NegotiationStyle {
	if n, ok := regionalNorms[language]; ok {
		return n.style
	}
	for _, n := range regionalNorms {
		if contains(n.regions, region) {
			return n.style
		}
	}
	return RelationshipFocused
}

// CheckFestivalPricing reports whether date falls within an active
// festival window for region (optionally narrowed to commodity),
// including a 7-day buffer before the festival's nominal start. Festivals
// with no fixed month (lunar-calendar festivals) never match. Returns nil
// if no festival is active.
func (e *Engine) CheckFestivalPricing(date time.Time, region, commodity string) *FestivalContext {
	month, day := int(date.Month()), date.Day()

	for _, f := range festivalCalendar {
		if !appliesToRegion(f, region) {
			continue
		}
		if !appliesToCommodity(f, commodity) {
			continue
		}
		if f.month == 0 || f.month != month {
			continue
		}
		startDay := f.dayStart - 7
		if startDay < 1 {
			startDay = 1
		}
		if day >= startDay && day <= f.dayEnd {
			return &FestivalContext{
				FestivalName:           f.name,
				Date:                   date,
				TypicalPriceAdjustment: f.priceAdjustment,
			}
		}
	}
	return nil
}

// BuildContext assembles a complete cultural Context for language, region
// and relationship, checking festival pricing as of date (zero value
// means "no festival check").
func (e *Engine) BuildContext(language, region string, relationship RelationshipContext, date time.Time, commodity string) Context {
	var festivalCtx *FestivalContext
	if !date.IsZero() {
		festivalCtx = e.CheckFestivalPricing(date, region, commodity)
	}

	return Context{
		Language:          language,
		Region:            region,
		Honorifics:        e.Honorifics(language, relationship),
		RelationshipTerms: e.RelationshipTerms(language, relationship),
		NegotiationStyle:  e.NegotiationStyleFor(region, language),
		Festival:          festivalCtx,
	}
}
