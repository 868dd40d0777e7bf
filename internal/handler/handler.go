// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the scheduling service.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/techconf/scheduler/internal/model"
	"github.com/techconf/scheduler/internal/service"
	"github.com/techconf/scheduler/internal/snapshot"
)

// SchedulerHandler holds all HTTP handlers for the scheduling API.
type SchedulerHandler struct {
	svc   *service.Scheduler
	snaps service.SnapshotStore
}

// NewSchedulerHandler constructs a SchedulerHandler. snaps may be nil
// when snapshot persistence is not configured.
func NewSchedulerHandler(svc *service.Scheduler, snaps service.SnapshotStore) *SchedulerHandler {
	return &SchedulerHandler{svc: svc, snaps: snaps}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusFor maps the service error taxonomy onto HTTP statuses:
// validation failures are 422, missing resources 404, state conflicts
// 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateRoom),
		errors.Is(err, service.ErrDuplicateUser),
		errors.Is(err, service.ErrDuplicateTitle),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrNotVIP),
		errors.Is(err, service.ErrNotEnrolled):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func respond(w http.ResponseWriter, err error, okStatus int, okBody any) {
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, okStatus, okBody)
}

// ─── Rooms ────────────────────────────────────────────────────────────────────

// CreateRoom handles POST /rooms
func (h *SchedulerHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.CreateRoom(r.Context(), req.ID, req.Capacity)
	respond(w, err, http.StatusCreated, model.Room{ID: req.ID, Capacity: req.Capacity})
}

// ListRooms handles GET /rooms
func (h *SchedulerHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.svc.ListRooms(r.Context())
	if rooms == nil {
		rooms = []model.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// ─── Events ───────────────────────────────────────────────────────────────────

// CreateEvent handles POST /events
func (h *SchedulerHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.CreateEvent(r.Context(), req)
	respond(w, err, http.StatusCreated, map[string]string{"title": req.Title})
}

// CreateParty handles POST /events/party
func (h *SchedulerHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.CreateParty(r.Context(), req)
	respond(w, err, http.StatusCreated, map[string]string{"title": req.Title})
}

// ListEvents handles GET /events
func (h *SchedulerHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.svc.ListAllEvents(r.Context())
	if events == nil {
		events = []model.EventSummary{}
	}
	writeJSON(w, http.StatusOK, events)
}

// CancelEvent handles DELETE /events/{title}
func (h *SchedulerHandler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	var req model.CancelEventRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	err := h.svc.CancelEvent(r.Context(), title, req.Actor)
	respond(w, err, http.StatusOK, map[string]string{"cancelled": title})
}

// ChangeCapacity handles PATCH /events/{title}/capacity
func (h *SchedulerHandler) ChangeCapacity(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	var req model.ChangeCapacityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.ChangeCapacity(r.Context(), title, req.Capacity, req.Actor, req.RoomID)
	respond(w, err, http.StatusOK, map[string]any{"title": title, "capacity": req.Capacity})
}

// ─── Enrollment ───────────────────────────────────────────────────────────────

// SignUp handles POST /events/{title}/signup
func (h *SchedulerHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	var req model.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.SignUp(r.Context(), req.Username, title)
	respond(w, err, http.StatusCreated, map[string]string{"title": title, "username": req.Username})
}

// CancelSignUp handles DELETE /events/{title}/signup
func (h *SchedulerHandler) CancelSignUp(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	var req model.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.CancelSignUp(r.Context(), req.Username, title)
	respond(w, err, http.StatusOK, map[string]string{"title": title, "username": req.Username})
}

// ─── Users ────────────────────────────────────────────────────────────────────

// CreateAccount handles POST /users
func (h *SchedulerHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.CreateAccount(r.Context(), req.Username, req.Type)
	respond(w, err, http.StatusCreated, map[string]string{"username": req.Username, "type": req.Type})
}

// ListUserEvents handles GET /users/{username}/events
func (h *SchedulerHandler) ListUserEvents(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	schedule, err := h.svc.ListUserEvents(r.Context(), username)
	respond(w, err, http.StatusOK, schedule)
}

// GetVIP handles GET /users/{username}/vip
func (h *SchedulerHandler) GetVIP(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	vip, err := h.svc.IsVIP(r.Context(), username)
	respond(w, err, http.StatusOK, map[string]bool{"vip": vip})
}

// ─── Snapshots ────────────────────────────────────────────────────────────────

// SaveSnapshot handles POST /admin/snapshot
func (h *SchedulerHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snaps == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot persistence is not configured")
		return
	}
	if err := h.svc.SaveSnapshot(r.Context(), h.snaps); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save snapshot")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// RestoreSnapshot handles POST /admin/restore
func (h *SchedulerHandler) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snaps == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot persistence is not configured")
		return
	}
	if err := h.svc.RestoreSnapshot(r.Context(), h.snaps); err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			writeError(w, http.StatusNotFound, "no snapshot available")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to restore snapshot")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
