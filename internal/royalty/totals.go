package royalty

// Totals aggregates sales and royalty amounts across a row set.
type Totals struct {
	SalesAmount       float64 `json:"salesAmount"`
	CalculatedRoyalty float64 `json:"calculatedRoyalty"`
}

// Aggregate sums sales unconditionally. In latest mode the royalty column
// sums only latest amounts, counting unreconciled rows as zero; it never
// borrows the recorded value, so a partial reconciliation is visible in the
// total rather than papered over. In recorded mode the latest values are
// ignored entirely.
func Aggregate(rows []Row, useLatest bool) Totals {
	var t Totals
	for _, row := range rows {
		t.SalesAmount += row.SalesAmount
		if useLatest {
			if row.LatestCalculatedRoyalty != nil {
				t.CalculatedRoyalty += *row.LatestCalculatedRoyalty
			}
			continue
		}
		t.CalculatedRoyalty += row.CalculatedRoyalty
	}
	return t
}

// DiscrepancyCount reports how many rows are currently flagged.
func DiscrepancyCount(rows []Row) int {
	n := 0
	for _, row := range rows {
		if row.HasDiscrepancy {
			n++
		}
	}
	return n
}

// TotalDifference is the latest royalty total minus the recorded one.
func TotalDifference(rows []Row) float64 {
	return Aggregate(rows, true).CalculatedRoyalty - Aggregate(rows, false).CalculatedRoyalty
}
