package royalty

import (
	"errors"
	"sync"
)

var (
	// ErrUnknownHead is returned when a selection targets an id outside the row set.
	ErrUnknownHead = errors.New("royalty: unknown royalty head")
	// ErrEmptySelection is returned when a commit is attempted with nothing selected.
	ErrEmptySelection = errors.New("royalty: no rows selected")
	// ErrOperationInFlight rejects a second invocation while an operation of the
	// same family is still running. Callers retry after the first one resolves;
	// nothing is queued.
	ErrOperationInFlight = errors.New("royalty: operation already in flight")
	// ErrNotReconciled is returned when a commit update is attempted before any
	// reconciliation has produced latest values.
	ErrNotReconciled = errors.New("royalty: session has not been reconciled")
)

// OpStatus is the observable state of one asynchronous operation family.
type OpStatus string

const (
	OpIdle      OpStatus = "idle"
	OpInFlight  OpStatus = "in_flight"
	OpSucceeded OpStatus = "succeeded"
	OpFailed    OpStatus = "failed"
)

// OpState tracks one operation family (reconcile or commit) through
// idle → in_flight → succeeded/failed. It replaces the implicit boolean busy
// flag with a state readable by tests and by the session view.
type OpState struct {
	Status  OpStatus `json:"status"`
	LastErr string   `json:"lastError,omitempty"`
}

func (s *OpState) begin() error {
	if s.Status == OpInFlight {
		return ErrOperationInFlight
	}
	s.Status = OpInFlight
	s.LastErr = ""
	return nil
}

func (s *OpState) finish(err error) {
	if err != nil {
		s.Status = OpFailed
		s.LastErr = err.Error()
		return
	}
	s.Status = OpSucceeded
}

// SelectAllState is the tri-state value backing the header checkbox.
type SelectAllState string

const (
	SelectAllNone          SelectAllState = "none"
	SelectAllIndeterminate SelectAllState = "indeterminate"
	SelectAllAll           SelectAllState = "all"
)

// Session is the working state for one searched book: the row set, the
// user's selection, and the per-family operation states. Sessions are plain
// state machines with no I/O; the service owns locking and upstream calls.
type Session struct {
	ID           string
	Book         BookMetadata
	UpstreamISBN int64
	Rows         []Row
	Selected     map[HeadID]struct{}
	Reconciled   bool
	ProcessDate  string

	ReconcileOp OpState
	CommitOp    OpState

	// mu serialises service access across HTTP requests. The state machine
	// methods themselves stay lock-free so tests can drive them directly.
	mu sync.Mutex
}

// NewSession builds a session over a freshly searched row set.
func NewSession(id string, book BookMetadata, rows []Row) *Session {
	return &Session{
		ID:          id,
		Book:        book,
		Rows:        rows,
		Selected:    make(map[HeadID]struct{}),
		ReconcileOp: OpState{Status: OpIdle},
		CommitOp:    OpState{Status: OpIdle},
	}
}

// ToggleSelection flips one row's membership in the selection set. The
// selection is frozen while a commit is in flight so the rows promoted on
// success are exactly the rows that were posted.
func (s *Session) ToggleSelection(id HeadID) error {
	if s.CommitOp.Status == OpInFlight {
		return ErrOperationInFlight
	}
	if !s.hasRow(id) {
		return ErrUnknownHead
	}
	if _, ok := s.Selected[id]; ok {
		delete(s.Selected, id)
		return nil
	}
	s.Selected[id] = struct{}{}
	return nil
}

// ToggleAll clears the selection when every row is selected, otherwise
// selects every row. Frozen while a commit is in flight, like ToggleSelection.
func (s *Session) ToggleAll() error {
	if s.CommitOp.Status == OpInFlight {
		return ErrOperationInFlight
	}
	if len(s.Selected) == len(s.Rows) {
		s.Selected = make(map[HeadID]struct{})
		return nil
	}
	for _, row := range s.Rows {
		s.Selected[row.ID] = struct{}{}
	}
	return nil
}

// SelectAll reports the tri-state value of the select-all control.
func (s *Session) SelectAll() SelectAllState {
	switch {
	case len(s.Rows) > 0 && len(s.Selected) == len(s.Rows):
		return SelectAllAll
	case len(s.Selected) > 0:
		return SelectAllIndeterminate
	default:
		return SelectAllNone
	}
}

// SelectedRows returns the selected rows in row-set order.
func (s *Session) SelectedRows() []Row {
	out := make([]Row, 0, len(s.Selected))
	for _, row := range s.Rows {
		if _, ok := s.Selected[row.ID]; ok {
			out = append(out, row)
		}
	}
	return out
}

// BeginReconcile guards the reconcile family against concurrent invocation.
func (s *Session) BeginReconcile() error {
	return s.ReconcileOp.begin()
}

// FinishReconcile records the outcome. On success the comparison is merged
// into the row set and the source's process date is retained.
func (s *Session) FinishReconcile(resp ComparisonResponse, err error) {
	s.ReconcileOp.finish(err)
	if err != nil {
		return
	}
	s.Rows = Merge(s.Rows, resp)
	s.Reconciled = true
	s.ProcessDate = resp.ProcessDate
}

// BeginCommit guards the commit family (update and reset share one guard).
func (s *Session) BeginCommit() error {
	if len(s.Selected) == 0 {
		return ErrEmptySelection
	}
	return s.CommitOp.begin()
}

// FinishCommitUpdate records the outcome of a commit update. On success the
// latest values of the committed rows are promoted into the recorded ones,
// discrepancy state is cleared, and the selection is emptied. The committed
// ids are the snapshot taken when the commit began, not the live selection.
// On failure rows and selection are left exactly as they were.
func (s *Session) FinishCommitUpdate(committed []HeadID, err error) {
	s.CommitOp.finish(err)
	if err != nil {
		return
	}
	promoted := make(map[HeadID]struct{}, len(committed))
	for _, id := range committed {
		promoted[id] = struct{}{}
	}
	for i, row := range s.Rows {
		if _, ok := promoted[row.ID]; !ok {
			continue
		}
		if row.LatestRate != nil {
			row.DatabaseRate = *row.LatestRate
		}
		if row.LatestCalculatedRoyalty != nil {
			row.CalculatedRoyalty = *row.LatestCalculatedRoyalty
		}
		row.HasDiscrepancy = false
		row.DiscrepancyReason = "No discrepancy after update"
		s.Rows[i] = row
	}
	s.Selected = make(map[HeadID]struct{})
}

// FinishCommitReset records the outcome of a commit reset. On success only
// the selection is cleared here; the caller discards the session entirely,
// since a successful reset signals a return to the unsearched state.
func (s *Session) FinishCommitReset(err error) {
	s.CommitOp.finish(err)
	if err != nil {
		return
	}
	s.Selected = make(map[HeadID]struct{})
}

func (s *Session) hasRow(id HeadID) bool {
	for _, row := range s.Rows {
		if row.ID == id {
			return true
		}
	}
	return false
}
