package royalty

import "testing"

func totalsFixture() []Row {
	latest := func(v float64) *float64 { return &v }
	return []Row{
		{ID: HeadUSDomestic, SalesAmount: 245000, CalculatedRoyalty: 30625, LatestCalculatedRoyalty: latest(30625)},
		{ID: HeadHighDiscount, SalesAmount: 34000, CalculatedRoyalty: 2040, LatestCalculatedRoyalty: latest(2550)},
		{ID: HeadSubscriptionForeign, SalesAmount: 23000, CalculatedRoyalty: 1610},
	}
}

func TestAggregateRecordedMode(t *testing.T) {
	got := Aggregate(totalsFixture(), false)
	if got.SalesAmount != 302000 {
		t.Fatalf("sales total = %v, want 302000", got.SalesAmount)
	}
	if got.CalculatedRoyalty != 34275 {
		t.Fatalf("recorded royalty total = %v, want 34275", got.CalculatedRoyalty)
	}
}

func TestAggregateLatestModeCountsUnreconciledAsZero(t *testing.T) {
	got := Aggregate(totalsFixture(), true)
	if got.SalesAmount != 302000 {
		t.Fatalf("sales total = %v, want 302000", got.SalesAmount)
	}
	// The subscription-foreign row has no latest value and must contribute
	// zero, not its recorded 1610.
	if got.CalculatedRoyalty != 33175 {
		t.Fatalf("latest royalty total = %v, want 33175", got.CalculatedRoyalty)
	}
}

func TestAggregateEmptyRows(t *testing.T) {
	got := Aggregate(nil, true)
	if got.SalesAmount != 0 || got.CalculatedRoyalty != 0 {
		t.Fatalf("empty aggregate = %+v", got)
	}
}

func TestDiscrepancyCount(t *testing.T) {
	rows := []Row{
		{ID: HeadUSDomestic},
		{ID: HeadHighDiscount, HasDiscrepancy: true},
		{ID: HeadSubscriptionDomestic, HasDiscrepancy: true},
	}
	if n := DiscrepancyCount(rows); n != 2 {
		t.Fatalf("discrepancy count = %d, want 2", n)
	}
}

func TestTotalDifference(t *testing.T) {
	// 30625 + 2550 latest vs 30625 + 2040 + 1610 recorded.
	if got := TotalDifference(totalsFixture()); got != -1100 {
		t.Fatalf("total difference = %v, want -1100", got)
	}
}
