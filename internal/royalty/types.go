package royalty

// BookMetadata describes the book a session is scoped to.
type BookMetadata struct {
	Title  string `json:"title"`
	ISBN   string `json:"isbn"`
	Author string `json:"author"`
}

// Row holds one royalty head's figures. DatabaseRate, SalesAmount and
// CalculatedRoyalty come from the system of record via the author directory.
// LatestRate and LatestCalculatedRoyalty are nil until a reconciliation has
// run for the session; a nil pointer means "not yet reconciled", which is a
// different state from "reconciled with no discrepancy".
type Row struct {
	ID                      HeadID   `json:"id"`
	RoyaltyHead             string   `json:"royaltyHead"`
	DatabaseRate            float64  `json:"databaseRate"`
	SalesAmount             float64  `json:"salesAmount"`
	CalculatedRoyalty       float64  `json:"calculatedRoyalty"`
	LatestRate              *float64 `json:"latestRate,omitempty"`
	LatestCalculatedRoyalty *float64 `json:"latestCalculatedRoyalty,omitempty"`
	DiscrepancyReason       string   `json:"discrepancyReason,omitempty"`
	HasDiscrepancy          bool     `json:"hasDiscrepancy"`
}

// AuthorDetails is the author directory payload: per-head rates, sales and
// royalty amounts recorded in the system of record. Field names follow the
// upstream contract.
type AuthorDetails struct {
	Title  string `json:"title" validate:"required"`
	ISBN   int64  `json:"isbn" validate:"required"`
	Author string `json:"author" validate:"required"`

	RoyaltyCanada        float64 `json:"royalty_canada"`
	RoyaltyChapter       float64 `json:"royalty_chapter"`
	RoyaltyUS            float64 `json:"royalty_us"`
	RoyaltyForeign       float64 `json:"royalty_foreign"`
	RoyaltyHighDiscount  float64 `json:"royalty_high_discount"`
	RoyaltyStateAdoption float64 `json:"royalty_state_adoption"`
	RoyaltySubUS         float64 `json:"royalty_sub_us"`
	RoyaltySubForeign    float64 `json:"royalty_sub_foreign"`
	RoyaltySubTrial      float64 `json:"royalty_sub_trial"`

	RoyaltyCanadaAmount        float64 `json:"royalty_canada_amount"`
	RoyaltyChapterAmount       float64 `json:"royalty_chapter_amount"`
	RoyaltyUSAmount            float64 `json:"royalty_us_amount"`
	RoyaltyForeignAmount       float64 `json:"royalty_foreign_amount"`
	RoyaltyHighDiscountAmount  float64 `json:"royalty_high_discount_amount"`
	RoyaltyStateAdoptionAmount float64 `json:"royalty_state_adoption_amount"`
	RoyaltySubUSAmount         float64 `json:"royalty_sub_us_amount"`
	RoyaltySubForeignAmount    float64 `json:"royalty_sub_foreign_amount"`
	RoyaltySubTrialAmount      float64 `json:"royalty_sub_trial_amount"`

	RoyaltyTotalAmount float64 `json:"royalty_total_amount"`

	SalesTotal         float64 `json:"sales_total"`
	SalesCanada        float64 `json:"sales_canada"`
	SalesChapter       float64 `json:"sales_chapter"`
	SalesUS            float64 `json:"sales_us"`
	SalesForeign       float64 `json:"sales_foreign"`
	SalesHighDiscount  float64 `json:"sales_high_discount"`
	SalesStateAdoption float64 `json:"sales_state_adoption"`
	SalesSubUS         float64 `json:"sales_sub_us"`
	SalesSubForeign    float64 `json:"sales_sub_foreign"`
	SalesSubTrial      float64 `json:"sales_sub_trial"`
}

// ComparisonResponse is the latest-rates payload returned by the
// reconciliation source: per-head amount, discrepancy indicator and
// narrative, plus totals and process metadata. Field names follow the
// upstream contract.
type ComparisonResponse struct {
	Title       string `json:"title" validate:"required"`
	ISBN        int64  `json:"isbn" validate:"required"`
	Author      string `json:"author" validate:"required"`
	ProcessDate string `json:"process_date" validate:"required"`

	RoyaltyCanadaAmount float64 `json:"royalty_canada_amount"`
	RoyaltyCanadaDiscr  float64 `json:"royalty_canada_discr"`

	RoyaltyChapterAmount float64 `json:"royalty_chapter_amount"`
	RoyaltyChapterDiscr  float64 `json:"royalty_chapter_discr"`

	RoyaltyUSAmount float64 `json:"royalty_us_amount"`
	RoyaltyUSDiscr  float64 `json:"royalty_us_discr"`

	RoyaltyForeignAmount float64 `json:"royalty_foreign_amount"`
	RoyaltyForeignDiscr  float64 `json:"royalty_foreign_discr"`

	RoyaltyHighDiscountAmount float64 `json:"royalty_high_discount_amount"`
	RoyaltyHighDiscountDiscr  float64 `json:"royalty_high_discount_discr"`

	RoyaltyStateAdoptionAmount float64 `json:"royalty_state_adoption_amount"`
	RoyaltyStateAdoptionDiscr  float64 `json:"royalty_state_adoption_discr"`

	RoyaltySubUSAmount float64 `json:"royalty_sub_us_amount"`
	RoyaltySubUSDiscr  float64 `json:"royalty_sub_us_discr"`

	RoyaltySubForeignAmount float64 `json:"royalty_sub_foreign_amount"`
	RoyaltySubForeignDiscr  float64 `json:"royalty_sub_foreign_discr"`

	RoyaltySubTrialAmount float64 `json:"royalty_sub_trial_amount"`
	RoyaltySubTrialDiscr  float64 `json:"royalty_sub_trial_discr"`

	RoyaltyTotalDB     float64 `json:"royalty_total_DB"`
	RoyaltyTotalLatest float64 `json:"royalty_total_latest"`
	RoyaltyTotalDisc   float64 `json:"royalty_total_disc"`

	RoyaltyRateUSResponse             string `json:"royalty_rate_us_response"`
	CanFrnChptrStateResponse          string `json:"can_frn_chptr_state_response"`
	RoyaltyRateHighDiscResponse       string `json:"royalty_rate_high_disc_response"`
	RoyaltyRateSubResponse            string `json:"royalty_rate_sub_response"`
	RoyaltyRateCanadaResponse         string `json:"royalty_rate_canada_response"`
	RoyaltyRateChapterResponse        string `json:"royalty_rate_chapter_response"`
	RoyaltyUSDiscrResponse            string `json:"royalty_us_discr_response"`
	RoyaltyRateForeignResponse        string `json:"royalty_rate_foreign_response"`
	RoyaltyRateStateAdoptionsResponse string `json:"royalty_rate_state_adoptions_response"`
	RoyaltyRateSubUSResponse          string `json:"royalty_rate_sub_us_response"`
	RoyaltyRateSubForeignResponse     string `json:"royalty_rate_sub_foreign_response"`
	RoyaltyRateSubTrialResponse       string `json:"royalty_rate_sub_trial_response"`
}

// UpdateRatesRequest is the body posted to the rates sink when committing
// selected rows.
type UpdateRatesRequest struct {
	Rows   []Row  `json:"rows"`
	Author string `json:"author"`
	ISBN   int64  `json:"isbn"`
}

// RowsFromAuthorDetails builds the initial nine-head row set from an author
// directory payload. Latest values stay unset until a reconciliation runs.
func RowsFromAuthorDetails(details AuthorDetails) []Row {
	type source struct {
		rate, sales, amount float64
	}
	byHead := map[HeadID]source{
		HeadUSDomestic:           {details.RoyaltyUS, details.SalesUS, details.RoyaltyUSAmount},
		HeadCanadian:             {details.RoyaltyCanada, details.SalesCanada, details.RoyaltyCanadaAmount},
		HeadForeign:              {details.RoyaltyForeign, details.SalesForeign, details.RoyaltyForeignAmount},
		HeadChapterSales:         {details.RoyaltyChapter, details.SalesChapter, details.RoyaltyChapterAmount},
		HeadHighDiscount:         {details.RoyaltyHighDiscount, details.SalesHighDiscount, details.RoyaltyHighDiscountAmount},
		HeadStateAdoption:        {details.RoyaltyStateAdoption, details.SalesStateAdoption, details.RoyaltyStateAdoptionAmount},
		HeadSubscriptionTrial:    {details.RoyaltySubTrial, details.SalesSubTrial, details.RoyaltySubTrialAmount},
		HeadSubscriptionDomestic: {details.RoyaltySubUS, details.SalesSubUS, details.RoyaltySubUSAmount},
		HeadSubscriptionForeign:  {details.RoyaltySubForeign, details.SalesSubForeign, details.RoyaltySubForeignAmount},
	}
	rows := make([]Row, 0, len(Heads))
	for _, id := range Heads {
		src := byHead[id]
		rows = append(rows, Row{
			ID:                id,
			RoyaltyHead:       id.Label(),
			DatabaseRate:      src.rate,
			SalesAmount:       src.sales,
			CalculatedRoyalty: src.amount,
		})
	}
	return rows
}
