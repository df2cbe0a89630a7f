package royalty

import (
	"errors"
	"testing"
)

func nineHeadSession() *Session {
	rows := make([]Row, 0, len(Heads))
	for _, id := range Heads {
		rows = append(rows, Row{ID: id, RoyaltyHead: id.Label()})
	}
	return NewSession("s-1", BookMetadata{Title: "T", ISBN: "1", Author: "A"}, rows)
}

func TestToggleSelectionFlipsMembership(t *testing.T) {
	s := nineHeadSession()
	if err := s.ToggleSelection(HeadHighDiscount); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if _, ok := s.Selected[HeadHighDiscount]; !ok {
		t.Fatal("row not selected after toggle")
	}
	if err := s.ToggleSelection(HeadHighDiscount); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if len(s.Selected) != 0 {
		t.Fatal("row still selected after second toggle")
	}
}

func TestToggleSelectionRejectsUnknownHead(t *testing.T) {
	s := nineHeadSession()
	if err := s.ToggleSelection("audio-rights"); !errors.Is(err, ErrUnknownHead) {
		t.Fatalf("expected ErrUnknownHead, got %v", err)
	}
}

func TestToggleAllTriState(t *testing.T) {
	s := nineHeadSession()
	if s.SelectAll() != SelectAllNone {
		t.Fatalf("fresh session select-all = %s", s.SelectAll())
	}

	_ = s.ToggleSelection(HeadCanadian)
	if s.SelectAll() != SelectAllIndeterminate {
		t.Fatalf("partial selection select-all = %s", s.SelectAll())
	}

	if err := s.ToggleAll(); err != nil {
		t.Fatalf("toggle all: %v", err)
	}
	if len(s.Selected) != len(Heads) {
		t.Fatalf("toggle-all selected %d of %d", len(s.Selected), len(Heads))
	}
	if s.SelectAll() != SelectAllAll {
		t.Fatalf("full selection select-all = %s", s.SelectAll())
	}

	if err := s.ToggleAll(); err != nil {
		t.Fatalf("toggle all on full selection: %v", err)
	}
	if len(s.Selected) != 0 {
		t.Fatal("toggle-all on full selection did not clear")
	}
	if s.SelectAll() != SelectAllNone {
		t.Fatalf("cleared selection select-all = %s", s.SelectAll())
	}
}

func TestSelectedRowsKeepRowOrder(t *testing.T) {
	s := nineHeadSession()
	_ = s.ToggleSelection(HeadSubscriptionForeign)
	_ = s.ToggleSelection(HeadUSDomestic)
	rows := s.SelectedRows()
	if len(rows) != 2 {
		t.Fatalf("selected rows = %d", len(rows))
	}
	if rows[0].ID != HeadUSDomestic || rows[1].ID != HeadSubscriptionForeign {
		t.Fatalf("selection order not row order: %s, %s", rows[0].ID, rows[1].ID)
	}
}

func TestReconcileGuardRejectsSecondInvocation(t *testing.T) {
	s := nineHeadSession()
	if err := s.BeginReconcile(); err != nil {
		t.Fatalf("first begin: %v", err)
	}
	if err := s.BeginReconcile(); !errors.Is(err, ErrOperationInFlight) {
		t.Fatalf("expected ErrOperationInFlight, got %v", err)
	}
	s.FinishReconcile(ComparisonResponse{ProcessDate: "2024-06-30"}, nil)
	if err := s.BeginReconcile(); err != nil {
		t.Fatalf("begin after finish: %v", err)
	}
}

func TestFinishReconcileSuccessMergesAndMarks(t *testing.T) {
	s := NewSession("s-1", BookMetadata{}, fixtureRows())
	_ = s.BeginReconcile()
	s.FinishReconcile(fixtureComparison(), nil)

	if !s.Reconciled {
		t.Fatal("session not marked reconciled")
	}
	if s.ProcessDate != "2024-06-30" {
		t.Fatalf("process date = %q", s.ProcessDate)
	}
	if s.ReconcileOp.Status != OpSucceeded {
		t.Fatalf("reconcile op = %s", s.ReconcileOp.Status)
	}
	if s.Rows[1].LatestRate == nil {
		t.Fatal("rows not merged")
	}
}

func TestFinishReconcileFailureLeavesRowsAlone(t *testing.T) {
	s := NewSession("s-1", BookMetadata{}, fixtureRows())
	_ = s.BeginReconcile()
	s.FinishReconcile(ComparisonResponse{}, errors.New("upstream down"))

	if s.Reconciled {
		t.Fatal("failed reconcile marked session reconciled")
	}
	if s.ReconcileOp.Status != OpFailed || s.ReconcileOp.LastErr == "" {
		t.Fatalf("reconcile op = %+v", s.ReconcileOp)
	}
	for _, row := range s.Rows {
		if row.LatestRate != nil {
			t.Fatal("rows merged despite failure")
		}
	}
}

func TestBeginCommitRequiresSelection(t *testing.T) {
	s := nineHeadSession()
	if err := s.BeginCommit(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	_ = s.ToggleSelection(HeadCanadian)
	if err := s.BeginCommit(); err != nil {
		t.Fatalf("begin with selection: %v", err)
	}
	if err := s.BeginCommit(); !errors.Is(err, ErrOperationInFlight) {
		t.Fatalf("expected ErrOperationInFlight, got %v", err)
	}
}

func TestFinishCommitUpdatePromotesSelectedRows(t *testing.T) {
	s := NewSession("s-1", BookMetadata{}, fixtureRows())
	_ = s.BeginReconcile()
	s.FinishReconcile(fixtureComparison(), nil)
	_ = s.ToggleSelection(HeadHighDiscount)
	_ = s.ToggleSelection(HeadSubscriptionDomestic)
	_ = s.BeginCommit()
	s.FinishCommitUpdate([]HeadID{HeadHighDiscount, HeadSubscriptionDomestic}, nil)

	hd := s.Rows[1]
	if hd.DatabaseRate != 7.5 || hd.CalculatedRoyalty != 2550 {
		t.Fatalf("high discount not promoted: rate=%v royalty=%v", hd.DatabaseRate, hd.CalculatedRoyalty)
	}
	if hd.HasDiscrepancy {
		t.Fatal("promoted row still flagged")
	}
	if hd.DiscrepancyReason != "No discrepancy after update" {
		t.Fatalf("promoted row reason = %q", hd.DiscrepancyReason)
	}

	sub := s.Rows[2]
	if sub.DatabaseRate != 11.0 || sub.CalculatedRoyalty != 6160 {
		t.Fatalf("subscription not promoted: rate=%v royalty=%v", sub.DatabaseRate, sub.CalculatedRoyalty)
	}

	us := s.Rows[0]
	if us.DatabaseRate != 12.5 || us.CalculatedRoyalty != 30625 {
		t.Fatalf("unselected row changed: %+v", us)
	}

	if len(s.Selected) != 0 {
		t.Fatal("selection not cleared after commit")
	}
	if s.CommitOp.Status != OpSucceeded {
		t.Fatalf("commit op = %s", s.CommitOp.Status)
	}
}

func TestFinishCommitUpdateFailurePreservesState(t *testing.T) {
	s := NewSession("s-1", BookMetadata{}, fixtureRows())
	_ = s.BeginReconcile()
	s.FinishReconcile(fixtureComparison(), nil)
	_ = s.ToggleSelection(HeadHighDiscount)
	_ = s.BeginCommit()
	s.FinishCommitUpdate([]HeadID{HeadHighDiscount}, errors.New("rates endpoint down"))

	hd := s.Rows[1]
	if hd.DatabaseRate != 6.0 || hd.CalculatedRoyalty != 2040 {
		t.Fatalf("row promoted despite failure: %+v", hd)
	}
	if !hd.HasDiscrepancy {
		t.Fatal("discrepancy cleared despite failure")
	}
	if _, ok := s.Selected[HeadHighDiscount]; !ok {
		t.Fatal("selection cleared despite failure")
	}
	if s.CommitOp.Status != OpFailed {
		t.Fatalf("commit op = %s", s.CommitOp.Status)
	}

	// The guard reopens so the user can retry.
	if err := s.BeginCommit(); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestSelectionFrozenWhileCommitInFlight(t *testing.T) {
	s := nineHeadSession()
	_ = s.ToggleSelection(HeadHighDiscount)
	_ = s.BeginCommit()

	if err := s.ToggleSelection(HeadCanadian); !errors.Is(err, ErrOperationInFlight) {
		t.Fatalf("toggle during commit: expected ErrOperationInFlight, got %v", err)
	}
	if err := s.ToggleAll(); !errors.Is(err, ErrOperationInFlight) {
		t.Fatalf("toggle-all during commit: expected ErrOperationInFlight, got %v", err)
	}
	if len(s.Selected) != 1 {
		t.Fatalf("selection changed during commit: %d rows", len(s.Selected))
	}

	s.FinishCommitReset(nil)
	if err := s.ToggleSelection(HeadCanadian); err != nil {
		t.Fatalf("toggle after commit resolved: %v", err)
	}
}

func TestFinishCommitUpdatePromotesSnapshotNotLiveSelection(t *testing.T) {
	s := NewSession("s-1", BookMetadata{}, fixtureRows())
	_ = s.BeginReconcile()
	s.FinishReconcile(fixtureComparison(), nil)
	_ = s.ToggleSelection(HeadHighDiscount)
	_ = s.BeginCommit()

	// The selection map mutates underneath the commit; only the snapshot
	// taken at begin time may be promoted.
	s.Selected[HeadSubscriptionDomestic] = struct{}{}
	s.FinishCommitUpdate([]HeadID{HeadHighDiscount}, nil)

	if s.Rows[1].DatabaseRate != 7.5 {
		t.Fatalf("snapshot row not promoted: %+v", s.Rows[1])
	}
	if s.Rows[2].DatabaseRate != 9.0 {
		t.Fatalf("row outside snapshot promoted: %+v", s.Rows[2])
	}
	if len(s.Selected) != 0 {
		t.Fatal("selection not cleared after commit")
	}
}

func TestFinishCommitResetClearsSelectionOnly(t *testing.T) {
	s := NewSession("s-1", BookMetadata{}, fixtureRows())
	_ = s.ToggleSelection(HeadUSDomestic)
	_ = s.BeginCommit()
	s.FinishCommitReset(nil)

	if len(s.Selected) != 0 {
		t.Fatal("selection not cleared")
	}
	if len(s.Rows) != 3 {
		t.Fatal("rows dropped by reset finish")
	}
	if s.CommitOp.Status != OpSucceeded {
		t.Fatalf("commit op = %s", s.CommitOp.Status)
	}
}
