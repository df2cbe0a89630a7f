package royalty

// RowView is a Row plus the display fields the table renders directly: the
// word-truncated narrative and whether truncation happened.
type RowView struct {
	Row
	DisplayReason   string `json:"displayReason,omitempty"`
	ReasonTruncated bool   `json:"reasonTruncated,omitempty"`
}

// SessionView is the full payload the UI renders: rows, totals, the
// reconciliation summary figures and the operation states.
type SessionView struct {
	SessionID        string         `json:"sessionId"`
	Book             BookMetadata   `json:"book"`
	ProcessDate      string         `json:"processDate,omitempty"`
	Reconciled       bool           `json:"reconciled"`
	Rows             []RowView      `json:"rows"`
	Totals           Totals         `json:"totals"`
	LatestTotals     *Totals        `json:"latestTotals,omitempty"`
	DiscrepancyCount int            `json:"discrepancyCount"`
	MatchedCount     int            `json:"matchedCount"`
	TotalDifference  float64        `json:"totalDifference"`
	Selected         []HeadID       `json:"selected"`
	SelectAll        SelectAllState `json:"selectAll"`
	ReconcileOp      OpState        `json:"reconcileOp"`
	CommitOp         OpState        `json:"commitOp"`
}

// NewSessionView derives the render payload from a session. Totals and
// summary figures are always recomputed from the rows, never stored.
func NewSessionView(s *Session) SessionView {
	rows := make([]RowView, 0, len(s.Rows))
	for _, row := range s.Rows {
		view := RowView{Row: row}
		if row.DiscrepancyReason != "" {
			view.DisplayReason = TruncateWords(row.DiscrepancyReason, DefaultReasonWordLimit)
			view.ReasonTruncated = view.DisplayReason != row.DiscrepancyReason
		}
		rows = append(rows, view)
	}
	discrepancies := DiscrepancyCount(s.Rows)
	out := SessionView{
		SessionID:        s.ID,
		Book:             s.Book,
		ProcessDate:      s.ProcessDate,
		Reconciled:       s.Reconciled,
		Rows:             rows,
		Totals:           Aggregate(s.Rows, false),
		DiscrepancyCount: discrepancies,
		MatchedCount:     len(s.Rows) - discrepancies,
		TotalDifference:  TotalDifference(s.Rows),
		Selected:         s.selectedIDs(),
		SelectAll:        s.SelectAll(),
		ReconcileOp:      s.ReconcileOp,
		CommitOp:         s.CommitOp,
	}
	if s.Reconciled {
		latest := Aggregate(s.Rows, true)
		out.LatestTotals = &latest
	}
	return out
}

func (s *Session) selectedIDs() []HeadID {
	ids := make([]HeadID, 0, len(s.Selected))
	for _, row := range s.Rows {
		if _, ok := s.Selected[row.ID]; ok {
			ids = append(ids, row.ID)
		}
	}
	return ids
}
