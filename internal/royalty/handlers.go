package royalty

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/royalty-recon/internal/common"
)

// Handler exposes the reconciliation session endpoints.
type Handler struct {
	Svc *Service
}

// Routes mounts the session endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/search", h.Search)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/reconcile", h.Reconcile)
		r.Post("/selection", h.ToggleSelection)
		r.Post("/selection/all", h.ToggleAll)
		r.Post("/commit/update", h.CommitUpdate)
		r.Post("/commit/reset", h.CommitReset)
	})
}

// Search creates a session from the author directory payload.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "royalty service not configured", nil)
		return
	}
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	view, err := h.Svc.Search(r.Context(), req)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, view)
}

// Get returns the current session state.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "royalty service not configured", nil)
		return
	}
	view, err := h.Svc.Get(r.Context(), sessionID(r))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// Reconcile folds the latest comparison payload into the session rows.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "royalty service not configured", nil)
		return
	}
	view, err := h.Svc.Reconcile(r.Context(), sessionID(r))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// ToggleSelection flips one row's committed-selection flag.
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "royalty service not configured", nil)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	view, err := h.Svc.ToggleSelection(r.Context(), sessionID(r), HeadID(strings.TrimSpace(req.ID)))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// ToggleAll selects every row, or clears the selection when all rows are
// already selected.
func (h *Handler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "royalty service not configured", nil)
		return
	}
	view, err := h.Svc.ToggleAll(r.Context(), sessionID(r))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// CommitUpdate pushes the selected rows to the rates sink and promotes their
// latest values on success.
func (h *Handler) CommitUpdate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "royalty service not configured", nil)
		return
	}
	result, err := h.Svc.CommitUpdate(r.Context(), sessionID(r))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.Data(w, http.StatusOK, result)
}

// CommitReset asks the upstream to discard staged changes and tears the
// session down.
func (h *Handler) CommitReset(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "royalty service not configured", nil)
		return
	}
	result, err := h.Svc.CommitReset(r.Context(), sessionID(r))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.Data(w, http.StatusOK, result)
}

func sessionID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "sessionID"))
}
