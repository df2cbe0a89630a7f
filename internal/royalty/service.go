package royalty

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/royalty-recon/internal/common"
	"github.com/noah-isme/royalty-recon/internal/events"
	"github.com/noah-isme/royalty-recon/internal/obs"
)

// AuthorDirectory looks up the recorded per-head rates, sales and amounts
// for a book in the system of record.
type AuthorDirectory interface {
	AuthorDetails(ctx context.Context, author, isbn string) (AuthorDetails, error)
}

// ReconciliationSource fetches the latest-rates comparison payload.
type ReconciliationSource interface {
	LatestComparison(ctx context.Context) (ComparisonResponse, error)
}

// RatesSink receives committed rate updates and reset requests. The reset
// request intentionally carries no row payload; the upstream contract keys
// it off server-side state.
type RatesSink interface {
	UpdateRates(ctx context.Context, req UpdateRatesRequest) (json.RawMessage, error)
	ResetRates(ctx context.Context) (json.RawMessage, error)
}

// SearchRequest identifies the book to load. Title is optional; the
// directory resolves the canonical title.
type SearchRequest struct {
	Title  string `json:"title"`
	ISBN   string `json:"isbn" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// CommitResult is returned by both commit operations. Result passes the
// upstream success body through untouched. Reload signals that the caller
// must discard all search state and start over; it is only set by reset.
type CommitResult struct {
	View   *SessionView    `json:"view,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Reload bool            `json:"reload"`
}

// Service orchestrates sessions against the three upstream endpoints. The
// row math itself lives in the pure functions of this package; the service
// adds lookup, caching, guarding and event emission.
type Service struct {
	Directory AuthorDirectory
	Recon     ReconciliationSource
	Rates     RatesSink
	Store     *Store
	Cache     *Cache
	Events    *events.Bus
	Logger    zerolog.Logger
	Validate  *validator.Validate
}

// Search loads author details (cache first), builds the nine-head row set
// and registers a fresh session for it.
func (svc *Service) Search(ctx context.Context, req SearchRequest) (SessionView, error) {
	if err := svc.validate(req); err != nil {
		return SessionView{}, common.NewAppError(common.CodeValidation, "author and isbn are required", http.StatusUnprocessableEntity, err)
	}

	details, cached, err := svc.Cache.GetAuthorDetails(ctx, req.Author, req.ISBN)
	if err != nil {
		svc.Logger.Warn().Err(err).Msg("author cache read failed")
		cached = false
	}
	if !cached {
		details, err = svc.Directory.AuthorDetails(ctx, req.Author, req.ISBN)
		if err != nil {
			obs.ObserveSearch("error")
			return SessionView{}, err
		}
		if err := svc.validate(details); err != nil {
			obs.ObserveSearch("shape_error")
			return SessionView{}, common.UpstreamShape("author directory", err)
		}
		if err := svc.Cache.SetAuthorDetails(ctx, req.Author, req.ISBN, details); err != nil {
			svc.Logger.Warn().Err(err).Msg("author cache write failed")
		}
	}

	book := BookMetadata{Title: details.Title, ISBN: req.ISBN, Author: req.Author}
	session := NewSession(uuid.NewString(), book, RowsFromAuthorDetails(details))
	session.UpstreamISBN = details.ISBN
	svc.Store.Put(session)

	obs.ObserveSearch("ok")
	svc.emit(ctx, events.TopicSearchCompleted, session.ID, map[string]any{
		"isbn":   req.ISBN,
		"author": req.Author,
		"cached": cached,
	})
	return NewSessionView(session), nil
}

// Get returns the current view of a session.
func (svc *Service) Get(_ context.Context, sessionID string) (SessionView, error) {
	session, err := svc.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return NewSessionView(session), nil
}

// Reconcile fetches the latest comparison and merges it into the session.
// A second call while one is in flight is rejected, not queued.
func (svc *Service) Reconcile(ctx context.Context, sessionID string) (SessionView, error) {
	session, err := svc.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	session.mu.Lock()
	if err := session.BeginReconcile(); err != nil {
		session.mu.Unlock()
		return SessionView{}, inFlight(err)
	}
	session.mu.Unlock()

	resp, err := svc.Recon.LatestComparison(ctx)
	if err == nil {
		if shapeErr := svc.validate(resp); shapeErr != nil {
			err = common.UpstreamShape("reconciliation source", shapeErr)
		}
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.FinishReconcile(resp, err)
	if err != nil {
		obs.ObserveReconciliation("error")
		svc.emit(ctx, events.TopicReconciliationFailed, session.ID, map[string]any{"error": err.Error()})
		return SessionView{}, err
	}

	obs.ObserveReconciliation("ok")
	for _, row := range session.Rows {
		if row.HasDiscrepancy {
			obs.ObserveDiscrepancy(string(row.ID))
		}
	}
	svc.emit(ctx, events.TopicReconciliationCompleted, session.ID, map[string]any{
		"processDate":   session.ProcessDate,
		"discrepancies": DiscrepancyCount(session.Rows),
	})
	return NewSessionView(session), nil
}

// ToggleSelection flips one row in the selection set.
func (svc *Service) ToggleSelection(_ context.Context, sessionID string, head HeadID) (SessionView, error) {
	session, err := svc.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.ToggleSelection(head); err != nil {
		if errors.Is(err, ErrOperationInFlight) {
			return SessionView{}, commitGuard(err)
		}
		return SessionView{}, common.NewAppError(common.CodeValidation, "unknown royalty head", http.StatusUnprocessableEntity, err)
	}
	return NewSessionView(session), nil
}

// ToggleAll applies the tri-state select-all toggle.
func (svc *Service) ToggleAll(_ context.Context, sessionID string) (SessionView, error) {
	session, err := svc.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.ToggleAll(); err != nil {
		return SessionView{}, commitGuard(err)
	}
	return NewSessionView(session), nil
}

// CommitUpdate posts the selected rows to the rates sink and, on success,
// promotes their latest values into the recorded ones. On failure the rows
// and selection stay exactly as they were.
func (svc *Service) CommitUpdate(ctx context.Context, sessionID string) (CommitResult, error) {
	session, err := svc.session(sessionID)
	if err != nil {
		return CommitResult{}, err
	}

	session.mu.Lock()
	if !session.Reconciled {
		session.mu.Unlock()
		return CommitResult{}, common.NewAppError(common.CodeNotReconciled, "reconcile before committing updated rates", http.StatusUnprocessableEntity, ErrNotReconciled)
	}
	if err := session.BeginCommit(); err != nil {
		session.mu.Unlock()
		return CommitResult{}, commitGuard(err)
	}
	payload := UpdateRatesRequest{
		Rows:   session.SelectedRows(),
		Author: session.Book.Author,
		ISBN:   session.UpstreamISBN,
	}
	committed := make([]HeadID, len(payload.Rows))
	for i, row := range payload.Rows {
		committed[i] = row.ID
	}
	session.mu.Unlock()

	result, err := svc.Rates.UpdateRates(ctx, payload)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.FinishCommitUpdate(committed, err)
	if err != nil {
		obs.ObserveCommit("update", "error")
		svc.emit(ctx, events.TopicCommitFailed, session.ID, map[string]any{"action": "update", "error": err.Error()})
		return CommitResult{}, err
	}

	obs.ObserveCommit("update", "ok")
	svc.emit(ctx, events.TopicRatesUpdated, session.ID, map[string]any{"rows": len(payload.Rows)})
	view := NewSessionView(session)
	return CommitResult{View: &view, Result: result}, nil
}

// CommitReset posts a reset request. On success the session is discarded and
// the caller is told to reload from the unsearched state.
func (svc *Service) CommitReset(ctx context.Context, sessionID string) (CommitResult, error) {
	session, err := svc.session(sessionID)
	if err != nil {
		return CommitResult{}, err
	}

	session.mu.Lock()
	if err := session.BeginCommit(); err != nil {
		session.mu.Unlock()
		return CommitResult{}, commitGuard(err)
	}
	session.mu.Unlock()

	result, err := svc.Rates.ResetRates(ctx)

	session.mu.Lock()
	session.FinishCommitReset(err)
	session.mu.Unlock()
	if err != nil {
		obs.ObserveCommit("reset", "error")
		svc.emit(ctx, events.TopicCommitFailed, session.ID, map[string]any{"action": "reset", "error": err.Error()})
		return CommitResult{}, err
	}

	svc.Store.Delete(session.ID)
	obs.ObserveCommit("reset", "ok")
	svc.emit(ctx, events.TopicRatesReset, session.ID, nil)
	return CommitResult{Result: result, Reload: true}, nil
}

func (svc *Service) session(id string) (*Session, error) {
	session, err := svc.Store.Get(id)
	if err != nil {
		return nil, common.NewAppError(common.CodeSessionNotFound, "session not found", http.StatusNotFound, err)
	}
	return session, nil
}

func (svc *Service) validate(v any) error {
	if svc.Validate == nil {
		return nil
	}
	return svc.Validate.Struct(v)
}

func (svc *Service) emit(ctx context.Context, topic, sessionID string, payload any) {
	if svc.Events == nil {
		return
	}
	if _, err := svc.Events.Emit(ctx, topic, sessionID, payload); err != nil {
		svc.Logger.Warn().Err(err).Str("topic", topic).Msg("emit event")
	}
}

func inFlight(err error) error {
	if errors.Is(err, ErrOperationInFlight) {
		return common.NewAppError(common.CodeOperationInFlight, "reconciliation already in flight", http.StatusConflict, err)
	}
	return err
}

func commitGuard(err error) error {
	switch {
	case errors.Is(err, ErrEmptySelection):
		return common.NewAppError(common.CodeEmptySelection, "select at least one royalty head", http.StatusUnprocessableEntity, err)
	case errors.Is(err, ErrOperationInFlight):
		return common.NewAppError(common.CodeOperationInFlight, "commit already in flight", http.StatusConflict, err)
	}
	return err
}
