package royalty

// Merge folds a comparison response into a row set. For every known head it
// produces a fresh row carrying the latest amount, the narrative, the
// discrepancy verdict and a latest rate derived from the head's sales.
// Rows with an unknown id pass through untouched.
//
// Merge never mutates its input and preserves input order; pairing is by id,
// not position.
func Merge(rows []Row, resp ComparisonResponse) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		fields, ok := comparisonByHead[row.ID]
		if !ok {
			out[i] = row
			continue
		}
		amount := fields.amount(&resp)
		rate := DeriveRate(row.SalesAmount, amount)

		row.LatestCalculatedRoyalty = &amount
		row.LatestRate = &rate
		row.DiscrepancyReason = fields.narrative(&resp)
		row.HasDiscrepancy = HasDiscrepancy(row.CalculatedRoyalty, amount, fields.discr(&resp))
		out[i] = row
	}
	return out
}
