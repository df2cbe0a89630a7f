package upstream

import (
	"context"
	"encoding/json"
	"time"

	"github.com/noah-isme/royalty-recon/internal/royalty"
)

// MockDirectory returns a canned author payload regardless of the lookup key
// and is useful for development and testing without live upstreams.
type MockDirectory struct{}

// AuthorDetails returns a static nine-head payload.
func (MockDirectory) AuthorDetails(ctx context.Context, author, isbn string) (royalty.AuthorDetails, error) {
	_ = ctx
	_ = author
	_ = isbn
	return royalty.AuthorDetails{
		Title:  "Advanced Data Structures and Algorithms",
		ISBN:   9780134685991,
		Author: "Dr. Sarah Mitchell",

		RoyaltyUS:            12.5,
		RoyaltyCanada:        10.0,
		RoyaltyForeign:       8.5,
		RoyaltyChapter:       15.0,
		RoyaltyHighDiscount:  6.0,
		RoyaltyStateAdoption: 5.5,
		RoyaltySubTrial:      3.0,
		RoyaltySubUS:         9.0,
		RoyaltySubForeign:    7.0,

		RoyaltyUSAmount:            30625,
		RoyaltyCanadaAmount:        4500,
		RoyaltyForeignAmount:       6630,
		RoyaltyChapterAmount:       1875,
		RoyaltyHighDiscountAmount:  2040,
		RoyaltyStateAdoptionAmount: 4895,
		RoyaltySubTrialAmount:      450,
		RoyaltySubUSAmount:         5040,
		RoyaltySubForeignAmount:    1610,

		RoyaltyTotalAmount: 57665,

		SalesUS:            245000,
		SalesCanada:        45000,
		SalesForeign:       78000,
		SalesChapter:       12500,
		SalesHighDiscount:  34000,
		SalesStateAdoption: 89000,
		SalesSubTrial:      15000,
		SalesSubUS:         56000,
		SalesSubForeign:    23000,
		SalesTotal:         597500,
	}, nil
}

// MockComparison returns a canned comparison payload where the high-discount
// and subscription-domestic heads carry amended amounts.
type MockComparison struct{}

// LatestComparison returns the static payload with two flagged heads.
func (MockComparison) LatestComparison(ctx context.Context) (royalty.ComparisonResponse, error) {
	_ = ctx
	return royalty.ComparisonResponse{
		Title:       "Advanced Data Structures and Algorithms",
		ISBN:        9780134685991,
		Author:      "Dr. Sarah Mitchell",
		ProcessDate: time.Now().Format("2006-01-02"),

		RoyaltyUSAmount:            30625,
		RoyaltyCanadaAmount:        4500,
		RoyaltyForeignAmount:       6630,
		RoyaltyChapterAmount:       1875,
		RoyaltyHighDiscountAmount:  2550,
		RoyaltyHighDiscountDiscr:   1,
		RoyaltyStateAdoptionAmount: 4895,
		RoyaltySubTrialAmount:      450,
		RoyaltySubUSAmount:         6160,
		RoyaltySubUSDiscr:          1,
		RoyaltySubForeignAmount:    1610,

		RoyaltyTotalDB:     57665,
		RoyaltyTotalLatest: 59295,
		RoyaltyTotalDisc:   1630,

		RoyaltyRateHighDiscResponse: "Amendment Q2-2024: High Discount rate increased from 6.0% to 7.5%",
		RoyaltyRateSubUSResponse:    "Amendment Q3-2024: Subscription Domestic rate increased from 9.0% to 11.0%",
	}, nil
}

// MockRates accepts commits without calling anywhere and records the last
// update payload for inspection in tests.
type MockRates struct {
	LastUpdate *royalty.UpdateRatesRequest
	Resets     int
}

// UpdateRates stores the request and returns a canned confirmation.
func (m *MockRates) UpdateRates(ctx context.Context, req royalty.UpdateRatesRequest) (json.RawMessage, error) {
	_ = ctx
	m.LastUpdate = &req
	return json.RawMessage(`{"status":"ok"}`), nil
}

// ResetRates counts the call and returns a canned confirmation.
func (m *MockRates) ResetRates(ctx context.Context) (json.RawMessage, error) {
	_ = ctx
	m.Resets++
	return json.RawMessage(`{"status":"reset"}`), nil
}
