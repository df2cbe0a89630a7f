package royalty

// HeadID identifies one royalty category. The set of heads is closed: a row
// set produced by search always contains exactly the nine ids below.
type HeadID string

const (
	HeadUSDomestic           HeadID = "us-domestic"
	HeadCanadian             HeadID = "canadian"
	HeadForeign              HeadID = "foreign"
	HeadChapterSales         HeadID = "chapter-sales"
	HeadHighDiscount         HeadID = "high-discount"
	HeadStateAdoption        HeadID = "state-adoption"
	HeadSubscriptionTrial    HeadID = "subscription-trial"
	HeadSubscriptionDomestic HeadID = "subscription-domestic"
	HeadSubscriptionForeign  HeadID = "subscription-foreign"
)

// Heads lists all royalty heads in presentation order.
var Heads = []HeadID{
	HeadUSDomestic,
	HeadCanadian,
	HeadForeign,
	HeadChapterSales,
	HeadHighDiscount,
	HeadStateAdoption,
	HeadSubscriptionTrial,
	HeadSubscriptionDomestic,
	HeadSubscriptionForeign,
}

var headLabels = map[HeadID]string{
	HeadUSDomestic:           "US Domestic",
	HeadCanadian:             "Canadian",
	HeadForeign:              "Foreign",
	HeadChapterSales:         "Chapter Sales",
	HeadHighDiscount:         "High Discount",
	HeadStateAdoption:        "State Adoption",
	HeadSubscriptionTrial:    "Subscription – Trial/Present",
	HeadSubscriptionDomestic: "Subscription Sales – Domestic",
	HeadSubscriptionForeign:  "Subscription Sales – Foreign",
}

// Label returns the human-readable name for a head, or the id itself when
// the head is unknown.
func (h HeadID) Label() string {
	if label, ok := headLabels[h]; ok {
		return label
	}
	return string(h)
}

// Known reports whether the id belongs to the closed head set.
func (h HeadID) Known() bool {
	_, ok := headLabels[h]
	return ok
}

// comparisonFields selects the amount/discrepancy/narrative triple for one
// head out of a comparison response. Every known head maps to exactly one
// triple; the table is the single source of truth for the wire pairing.
type comparisonFields struct {
	amount    func(*ComparisonResponse) float64
	discr     func(*ComparisonResponse) float64
	narrative func(*ComparisonResponse) string
}

var comparisonByHead = map[HeadID]comparisonFields{
	HeadUSDomestic: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltyUSAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltyUSDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateUSResponse },
	},
	HeadCanadian: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltyCanadaAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltyCanadaDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateCanadaResponse },
	},
	HeadForeign: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltyForeignAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltyForeignDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateForeignResponse },
	},
	HeadChapterSales: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltyChapterAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltyChapterDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateChapterResponse },
	},
	HeadHighDiscount: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltyHighDiscountAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltyHighDiscountDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateHighDiscResponse },
	},
	HeadStateAdoption: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltyStateAdoptionAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltyStateAdoptionDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateStateAdoptionsResponse },
	},
	HeadSubscriptionTrial: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltySubTrialAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltySubTrialDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateSubTrialResponse },
	},
	HeadSubscriptionDomestic: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltySubUSAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltySubUSDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateSubUSResponse },
	},
	HeadSubscriptionForeign: {
		amount:    func(r *ComparisonResponse) float64 { return r.RoyaltySubForeignAmount },
		discr:     func(r *ComparisonResponse) float64 { return r.RoyaltySubForeignDiscr },
		narrative: func(r *ComparisonResponse) string { return r.RoyaltyRateSubForeignResponse },
	},
}
