package culturalctx

// festival is one entry in the built-in festival calendar. Dates are
// approximate month/day ranges; festivals following the lunar calendar
// (Month == 0) are recorded but never matched by CheckFestivalPricing,
// matching the original engine's "skip festivals with no fixed dates"
// behavior.
type festival struct {
	name                string
	month               int // 1-12, 0 = lunar/unscheduled
	dayStart, dayEnd    int
	regions             []string
	priceAdjustment     float64
	affectedCommodities []string // "all" matches every commodity
}

var festivalCalendar = []festival{
	{name: "Diwali", month: 10, dayStart: 15, dayEnd: 30, regions: []string{"Pan-India"}, priceAdjustment: 1.15, affectedCommodities: []string{"all"}},
	{name: "Holi", month: 3, dayStart: 1, dayEnd: 15, regions: []string{"Pan-India"}, priceAdjustment: 1.10, affectedCommodities: []string{"all"}},
	{name: "Pongal", month: 1, dayStart: 14, dayEnd: 17, regions: []string{"Tamil Nadu", "Puducherry"}, priceAdjustment: 1.20, affectedCommodities: []string{"rice", "sugarcane", "turmeric"}},
	{name: "Onam", month: 8, dayStart: 15, dayEnd: 30, regions: []string{"Kerala"}, priceAdjustment: 1.18, affectedCommodities: []string{"banana", "coconut", "vegetables"}},
	{name: "Durga Puja", month: 10, dayStart: 1, dayEnd: 15, regions: []string{"West Bengal", "Assam", "Tripura"}, priceAdjustment: 1.20, affectedCommodities: []string{"all"}},
	{name: "Ganesh Chaturthi", month: 9, dayStart: 1, dayEnd: 15, regions: []string{"Maharashtra", "Karnataka", "Goa"}, priceAdjustment: 1.12, affectedCommodities: []string{"all"}},
	{name: "Ugadi", month: 3, dayStart: 15, dayEnd: 30, regions: []string{"Karnataka", "Andhra Pradesh", "Telangana"}, priceAdjustment: 1.15, affectedCommodities: []string{"mango", "neem", "jaggery"}},
	{name: "Baisakhi", month: 4, dayStart: 13, dayEnd: 14, regions: []string{"Punjab", "Haryana"}, priceAdjustment: 1.10, affectedCommodities: []string{"wheat", "rice"}},
	{name: "Eid al-Fitr", month: 0, regions: []string{"Pan-India"}, priceAdjustment: 1.12, affectedCommodities: []string{"all"}},
	{name: "Eid al-Adha", month: 0, regions: []string{"Pan-India"}, priceAdjustment: 1.10, affectedCommodities: []string{"all"}},
	{name: "Rabi Harvest", month: 4, dayStart: 1, dayEnd: 31, regions: []string{"Pan-India"}, priceAdjustment: 0.90, affectedCommodities: []string{"wheat", "barley", "mustard", "chickpea"}},
	{name: "Kharif Harvest", month: 10, dayStart: 1, dayEnd: 31, regions: []string{"Pan-India"}, priceAdjustment: 0.92, affectedCommodities: []string{"rice", "cotton", "soybean", "sugarcane"}},
}

// CommodityVocabulary returns the deduplicated set of commodity names named
// anywhere in the built-in festival calendar ("all" excluded), in calendar
// order. It is a convenient, already-grounded domain vocabulary for callers
// that need a known-word list to correct against — the transcript
// corrector's phonetic stage in particular.
func CommodityVocabulary() []string {
	seen := make(map[string]struct{})
	var vocab []string
	for _, f := range festivalCalendar {
		for _, c := range f.affectedCommodities {
			if c == "all" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			vocab = append(vocab, c)
		}
	}
	return vocab
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func appliesToRegion(f festival, region string) bool {
	return contains(f.regions, region) || contains(f.regions, "Pan-India")
}

func appliesToCommodity(f festival, commodity string) bool {
	if commodity == "" {
		return true
	}
	return contains(f.affectedCommodities, "all") || contains(f.affectedCommodities, commodity)
}
