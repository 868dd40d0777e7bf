package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techconf/scheduler/internal/model"
	"github.com/techconf/scheduler/internal/notify"
	"github.com/techconf/scheduler/internal/repository"
	"github.com/techconf/scheduler/internal/service"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	svc := service.NewScheduler(repository.NewStore(), notify.NopBroadcaster{})
	h := NewSchedulerHandler(svc, nil)

	r := chi.NewRouter()
	r.Post("/rooms", h.CreateRoom)
	r.Get("/rooms", h.ListRooms)
	r.Post("/events", h.CreateEvent)
	r.Get("/events", h.ListEvents)
	r.Post("/events/{title}/signup", h.SignUp)
	r.Post("/users", h.CreateAccount)
	r.Get("/users/{username}/events", h.ListUserEvents)
	r.Post("/admin/snapshot", h.SaveSnapshot)
	r.Get("/health", HealthCheck)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateRoomEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/rooms", model.CreateRoomRequest{ID: "101", Capacity: 5})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/rooms", model.CreateRoomRequest{ID: "101", Capacity: 5})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "already exists")
}

func TestCreateEventEndpoint_StatusMapping(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/rooms", model.CreateRoomRequest{ID: "101", Capacity: 5})
	doJSON(t, r, http.MethodPost, "/users", model.CreateAccountRequest{Username: "sp1", Type: "speaker"})

	valid := model.CreateEventRequest{
		StartDate: "20240101", EndDate: "20240101",
		StartTime: "10:00:00", EndTime: "11:00:00",
		RoomID: "101", Speakers: []string{"sp1"}, Title: "T1", Capacity: 5,
	}
	rec := doJSON(t, r, http.MethodPost, "/events", valid)
	assert.Equal(t, http.StatusCreated, rec.Code)

	bad := valid
	bad.Title = "T2"
	bad.StartDate = "not-a-date"
	rec = doJSON(t, r, http.MethodPost, "/events", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	dup := valid
	dup.StartTime = "12:00:00"
	dup.EndTime = "13:00:00"
	rec = doJSON(t, r, http.MethodPost, "/events", dup)
	assert.Equal(t, http.StatusConflict, rec.Code, "duplicate title at a free slot")

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString("{oops"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUpEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/events/ghost/signup", model.SignUpRequest{Username: "alice"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEndpoints_EmptyArrays(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/events", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = doJSON(t, r, http.MethodGet, "/rooms", nil)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestUserEventsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/users/ghost/events", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doJSON(t, r, http.MethodPost, "/users", model.CreateAccountRequest{Username: "alice", Type: "attendee"})
	rec = doJSON(t, r, http.MethodGet, "/users/alice/events", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var sched model.UserSchedule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sched))
	assert.Equal(t, model.UserAttendee, sched.Role)
}

func TestSnapshotEndpoint_Unconfigured(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/admin/snapshot", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
