// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jpspell/premier-squares-service/internal/model"
	"github.com/jpspell/premier-squares-service/internal/repository"
	"github.com/jpspell/premier-squares-service/internal/service"
)

// ContestHandler holds the HTTP handlers for the contest lifecycle API.
type ContestHandler struct {
	svc *service.ContestService
}

// NewContestHandler constructs a ContestHandler.
func NewContestHandler(svc *service.ContestService) *ContestHandler {
	return &ContestHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError is the single dispatcher from the domain error taxonomy
// to HTTP status codes and response shapes. Anything outside the taxonomy is
// logged and reported as a generic internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *service.ValidationError
		stateErr      *service.InvalidStateError
		startErr      *service.StartValidationError
		existsErr     *service.AlreadyExistsError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:            "validation_error",
			Message:          "Request validation failed",
			ValidationErrors: validationErr.Errors,
		})
	case errors.As(err, &stateErr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:         "invalid_state",
			Message:       stateErr.Error(),
			CurrentStatus: stateErr.CurrentStatus,
		})
	case errors.As(err, &startErr):
		snapshot := startErr.Snapshot
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:            "validation_failed",
			Message:          "Contest cannot be started",
			ValidationErrors: startErr.Errors,
			ContestData:      &snapshot,
		})
	case errors.As(err, &existsErr):
		// The source reported this as a 400 rather than 409; the stable
		// error category lets clients tell it apart.
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   "already_exists",
			Message: "A winner has already been selected",
			Data:    existsErr.Existing,
		})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	case errors.Is(err, repository.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "service_unavailable",
			Message: "Document store is not available",
		})
	default:
		slog.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "An unexpected error occurred",
		})
	}
}

// ─── Contest handlers ─────────────────────────────────────────────────────────

// Create handles POST /contests
func (h *ContestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	contest, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateContestResponse{
		Success:    true,
		Message:    "Contest created successfully",
		DocumentID: contest.ID,
		Data:       contest,
	})
}

// List handles GET /contests
func (h *ContestHandler) List(w http.ResponseWriter, r *http.Request) {
	contests, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if contests == nil {
		contests = []model.Contest{}
	}

	writeJSON(w, http.StatusOK, model.ListContestsResponse{
		Success:  true,
		Count:    len(contests),
		Contests: contests,
	})
}

// Get handles GET /contests/{id}
func (h *ContestHandler) Get(w http.ResponseWriter, r *http.Request) {
	contest, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GetContestResponse{
		Success: true,
		Contest: contest,
	})
}

// UpdateNames handles PUT /contests/{id}
func (h *ContestHandler) UpdateNames(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateNamesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	contest, err := h.svc.UpdateNames(r.Context(), chi.URLParam(r, "id"), req.Names)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ContestMutationResponse{
		Success: true,
		Message: "Contest names updated successfully",
		Data:    contest,
	})
}

// Start handles POST /contests/{id}/start
func (h *ContestHandler) Start(w http.ResponseWriter, r *http.Request) {
	contest, err := h.svc.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ContestMutationResponse{
		Success: true,
		Message: "Contest started successfully",
		Data:    contest,
	})
}

// ─── Winner handlers ──────────────────────────────────────────────────────────

// WinnerHandler holds the HTTP handlers for the bag-builder winner registry.
type WinnerHandler struct {
	svc *service.WinnerService
}

// NewWinnerHandler constructs a WinnerHandler.
func NewWinnerHandler(svc *service.WinnerService) *WinnerHandler {
	return &WinnerHandler{svc: svc}
}

// SetWinner handles POST /bagbuilder/winner/{name}
func (h *WinnerHandler) SetWinner(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.SetWinner(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.WinnerResponse{
		Success: true,
		Message: "Winner recorded successfully",
		Data:    record,
	})
}

// GetWinner handles GET /bagbuilder/winner
func (h *WinnerHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.GetWinner(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	message := "Winner found"
	if record == nil {
		message = "No winner selected yet"
	}
	writeJSON(w, http.StatusOK, model.WinnerResponse{
		Success: true,
		Message: message,
		Data:    record,
	})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthHandler reports process liveness.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler constructs a HealthHandler anchored at the current time.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.started).Seconds(),
		Timestamp:     time.Now().UTC(),
	})
}
