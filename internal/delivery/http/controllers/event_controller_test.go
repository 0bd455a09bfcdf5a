package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testViewer = domain.Viewer{UserID: "user-123", OrganizationID: "org-1"}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createEventErr      error
	createEventResult   *domain.Event
	createEventCreated  bool
	lastCreateInput     domain.CreateEventInput
	updateEventErr      error
	updateEventResult   *domain.Event
	lastUpdateEventID   string
	broadcastErr        error
	broadcastResult     *domain.Event
	hideEventErr        error
	lastHideEventID     string
	hideAllErr          error
	hideAllCount        int
	deleteEventsErr     error
	deleteEventsResult  domain.DeletionResult
	lastDeleteEventIDs  []string
	syncInvitationsErr  error
	lastSyncEventID     string
	lastSyncUserIDs     []string
	lastViewer          domain.Viewer
}

func (f *fakeEventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, bool, error) {
	f.lastCreateInput = in
	if f.createEventErr != nil {
		return nil, false, f.createEventErr
	}
	if f.createEventResult != nil {
		return f.createEventResult, f.createEventCreated, nil
	}
	return &domain.Event{ID: "ev-created", OrganizationID: in.OrganizationID, Title: in.Title}, true, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID string, viewer domain.Viewer, fields domain.UpdateEventFields) (*domain.Event, error) {
	f.lastUpdateEventID = eventID
	f.lastViewer = viewer
	if f.updateEventErr != nil {
		return nil, f.updateEventErr
	}
	return f.updateEventResult, nil
}

func (f *fakeEventService) BroadcastEvent(ctx context.Context, eventID string, viewer domain.Viewer) (*domain.Event, error) {
	f.lastViewer = viewer
	if f.broadcastErr != nil {
		return nil, f.broadcastErr
	}
	if f.broadcastResult != nil {
		return f.broadcastResult, nil
	}
	return &domain.Event{ID: eventID, IsBroadcast: true}, nil
}

func (f *fakeEventService) HideEvent(ctx context.Context, viewer domain.Viewer, eventID string) error {
	f.lastHideEventID = eventID
	f.lastViewer = viewer
	return f.hideEventErr
}

func (f *fakeEventService) HideAllVisible(ctx context.Context, viewer domain.Viewer) (int, error) {
	f.lastViewer = viewer
	if f.hideAllErr != nil {
		return 0, f.hideAllErr
	}
	return f.hideAllCount, nil
}

func (f *fakeEventService) DeleteEvents(ctx context.Context, viewer domain.Viewer, eventIDs []string) (domain.DeletionResult, error) {
	f.lastDeleteEventIDs = eventIDs
	f.lastViewer = viewer
	if f.deleteEventsErr != nil {
		return domain.DeletionResult{}, f.deleteEventsErr
	}
	return f.deleteEventsResult, nil
}

func (f *fakeEventService) SyncInvitations(ctx context.Context, eventID string, viewer domain.Viewer, userIDs []string) error {
	f.lastSyncEventID = eventID
	f.lastSyncUserIDs = userIDs
	f.lastViewer = viewer
	return f.syncInvitationsErr
}

// fakeResolver implements domain.VisibilityResolver for handler tests.
type fakeResolver struct {
	events []*domain.Event
	err    error
}

func (f *fakeResolver) ListVisibleEvents(ctx context.Context, viewer domain.Viewer) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	return envelope
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		fakeResult     *domain.Event
		fakeCreated    bool
		noViewer       bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:        "created",
			body:        `{"title":"Town Hall","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T12:00:00Z"}`,
			fakeResult:  &domain.Event{ID: "ev-1", Title: "Town Hall"},
			fakeCreated: true,
			wantStatus:  http.StatusCreated,
		},
		{
			name:       "duplicate returns existing with 200",
			body:       `{"title":"Town Hall","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T12:00:00Z"}`,
			fakeResult: &domain.Event{ID: "ev-existing", Title: "Town Hall"},
			wantStatus: http.StatusOK,
		},
		{
			name:           "no viewer in context",
			body:           `{"title":"Town Hall","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T12:00:00Z"}`,
			noViewer:       true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "invalid json",
			body:           `{invalid`,
			noViewer:       true,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "missing title",
			body:           `{"start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T12:00:00Z"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "title is required",
		},
		{
			name:           "end before start",
			body:           `{"title":"Town Hall","start_time":"2025-06-01T12:00:00Z","end_time":"2025-06-01T09:00:00Z"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "end_time must be after start_time",
		},
		{
			name:           "invalid input from service",
			body:           `{"title":"Town Hall","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T12:00:00Z"}`,
			fakeErr:        domain.ErrInvalidInput,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid input",
		},
		{
			name:           "service error",
			body:           `{"title":"Town Hall","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T12:00:00Z"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{
				createEventErr:     tt.fakeErr,
				createEventResult:  tt.fakeResult,
				createEventCreated: tt.fakeCreated,
			}
			ctrl := NewEventController(testLogger, fake, &fakeResolver{})
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noViewer {
				req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
			}
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			} else {
				require.Nil(t, envelope.Error, "success response must have error nil")
			}
		})
	}

	t.Run("creator and organization come from the viewer", func(t *testing.T) {
		fake := &fakeEventService{}
		ctrl := NewEventController(testLogger, fake, &fakeResolver{})
		body := `{"title":"Town Hall","start_time":"2025-06-01T09:00:00Z","end_time":"2025-06-01T12:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
		rr := httptest.NewRecorder()

		ctrl.CreateEvent(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "user-123", fake.lastCreateInput.CreatorID)
		assert.Equal(t, "org-1", fake.lastCreateInput.OrganizationID)
	})
}

func TestEventController_ListVisibleEvents(t *testing.T) {
	tests := []struct {
		name           string
		noViewer       bool
		fakeEvents     []*domain.Event
		fakeErr        error
		wantStatus     int
		wantLen        int
		wantBodySubstr string
	}{
		{
			name:       "success with events",
			fakeEvents: []*domain.Event{{ID: "ev-1"}, {ID: "ev-2"}},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:       "empty list is an empty array",
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:           "no viewer in context",
			noViewer:       true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "resolver error",
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, &fakeEventService{}, &fakeResolver{events: tt.fakeEvents, err: tt.fakeErr})
			req := httptest.NewRequest(http.MethodGet, "/events/visible", nil)
			if !tt.noViewer {
				req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
			}
			rr := httptest.NewRecorder()

			ctrl.ListVisibleEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				events, ok := envelope.Data.([]interface{})
				require.True(t, ok, "data must be an array")
				assert.Len(t, events, tt.wantLen)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name           string
		eventID        string
		body           string
		fakeErr        error
		noViewer       bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			eventID:    "ev-1",
			body:       `{"title":"Renamed"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing eventID",
			eventID:        "",
			body:           `{"title":"Renamed"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "missing eventID",
		},
		{
			name:           "empty title rejected",
			eventID:        "ev-1",
			body:           `{"title":"  "}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "title cannot be empty",
		},
		{
			name:           "bad status value",
			eventID:        "ev-1",
			body:           `{"status":"paused"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "status must be one of",
		},
		{
			name:           "no viewer in context",
			eventID:        "ev-1",
			body:           `{"title":"Renamed"}`,
			noViewer:       true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "not found",
			eventID:        "ev-missing",
			body:           `{"title":"Renamed"}`,
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "forbidden",
			eventID:        "ev-1",
			body:           `{"title":"Renamed"}`,
			fakeErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
		{
			name:           "service error",
			eventID:        "ev-1",
			body:           `{"title":"Renamed"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{
				updateEventErr:    tt.fakeErr,
				updateEventResult: &domain.Event{ID: tt.eventID, Title: "Renamed"},
			}
			ctrl := NewEventController(testLogger, fake, &fakeResolver{})
			req := httptest.NewRequest(http.MethodPatch, "http://test/events/"+tt.eventID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.eventID != "" {
				req.SetPathValue("eventID", tt.eventID)
			}
			if !tt.noViewer {
				req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
			}
			rr := httptest.NewRecorder()

			ctrl.UpdateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			} else {
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.eventID, fake.lastUpdateEventID)
			}
		})
	}
}

func TestEventController_BroadcastEvent(t *testing.T) {
	tests := []struct {
		name           string
		eventID        string
		fakeErr        error
		noViewer       bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			eventID:    "ev-1",
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing eventID",
			eventID:        "",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "missing eventID",
		},
		{
			name:           "no viewer in context",
			eventID:        "ev-1",
			noViewer:       true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "not found",
			eventID:        "ev-missing",
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "forbidden",
			eventID:        "ev-1",
			fakeErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{broadcastErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake, &fakeResolver{})
			req := httptest.NewRequest(http.MethodPost, "http://test/events/"+tt.eventID+"/broadcast", nil)
			if tt.eventID != "" {
				req.SetPathValue("eventID", tt.eventID)
			}
			if !tt.noViewer {
				req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
			}
			rr := httptest.NewRecorder()

			ctrl.BroadcastEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			} else {
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestEventController_HideEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeEventService{}
		ctrl := NewEventController(testLogger, fake, &fakeResolver{})
		req := httptest.NewRequest(http.MethodPost, "http://test/events/ev-1/hide", nil)
		req.SetPathValue("eventID", "ev-1")
		req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
		rr := httptest.NewRecorder()

		ctrl.HideEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ev-1", fake.lastHideEventID)
	})

	t.Run("not found", func(t *testing.T) {
		fake := &fakeEventService{hideEventErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, fake, &fakeResolver{})
		req := httptest.NewRequest(http.MethodPost, "http://test/events/ev-missing/hide", nil)
		req.SetPathValue("eventID", "ev-missing")
		req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
		rr := httptest.NewRecorder()

		ctrl.HideEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("no viewer in context", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{}, &fakeResolver{})
		req := httptest.NewRequest(http.MethodPost, "http://test/events/ev-1/hide", nil)
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.HideEvent(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestEventController_HideAllVisible(t *testing.T) {
	t.Run("returns the hidden count", func(t *testing.T) {
		fake := &fakeEventService{hideAllCount: 3}
		ctrl := NewEventController(testLogger, fake, &fakeResolver{})
		req := httptest.NewRequest(http.MethodPost, "/events/hide-all", nil)
		req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
		rr := httptest.NewRecorder()

		ctrl.HideAllVisible(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok, "data must be object")
		assert.Equal(t, float64(3), data["hidden_count"])
	})

	t.Run("no viewer in context", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{}, &fakeResolver{})
		req := httptest.NewRequest(http.MethodPost, "/events/hide-all", nil)
		rr := httptest.NewRecorder()

		ctrl.HideAllVisible(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestEventController_DeleteEvents(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		fakeResult     domain.DeletionResult
		noViewer       bool
		wantStatus     int
		wantBodySubstr string
		wantIDs        []string
	}{
		{
			name:       "success",
			body:       `{"event_ids":["ev-1","ev-2"]}`,
			fakeResult: domain.DeletionResult{DeletedCount: 2},
			wantStatus: http.StatusOK,
			wantIDs:    []string{"ev-1", "ev-2"},
		},
		{
			name:       "empty list succeeds",
			body:       `{"event_ids":[]}`,
			wantStatus: http.StatusOK,
			wantIDs:    []string{},
		},
		{
			name:           "no viewer in context",
			body:           `{"event_ids":["ev-1"]}`,
			noViewer:       true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "forbidden",
			body:           `{"event_ids":["ev-1"]}`,
			fakeErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
		{
			name:           "deletion failure",
			body:           `{"event_ids":["ev-1"]}`,
			fakeErr:        domain.ErrDeletionFailed,
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "deletion failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{deleteEventsErr: tt.fakeErr, deleteEventsResult: tt.fakeResult}
			ctrl := NewEventController(testLogger, fake, &fakeResolver{})
			req := httptest.NewRequest(http.MethodDelete, "/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noViewer {
				req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
			}
			rr := httptest.NewRecorder()

			ctrl.DeleteEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			} else {
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.wantIDs, fake.lastDeleteEventIDs)
			}
		})
	}
}

func TestEventController_SyncInvitations(t *testing.T) {
	tests := []struct {
		name           string
		eventID        string
		body           string
		fakeErr        error
		noViewer       bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			eventID:    "ev-1",
			body:       `{"user_ids":["u-1","u-2"]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty set clears invitations",
			eventID:    "ev-1",
			body:       `{"user_ids":[]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing eventID",
			eventID:        "",
			body:           `{"user_ids":["u-1"]}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "missing eventID",
		},
		{
			name:           "no viewer in context",
			eventID:        "ev-1",
			body:           `{"user_ids":["u-1"]}`,
			noViewer:       true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "not found",
			eventID:        "ev-missing",
			body:           `{"user_ids":["u-1"]}`,
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "forbidden",
			eventID:        "ev-1",
			body:           `{"user_ids":["u-1"]}`,
			fakeErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{syncInvitationsErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake, &fakeResolver{})
			req := httptest.NewRequest(http.MethodPut, "http://test/events/"+tt.eventID+"/invitations", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.eventID != "" {
				req.SetPathValue("eventID", tt.eventID)
			}
			if !tt.noViewer {
				req = req.WithContext(middleware.SetViewer(req.Context(), testViewer))
			}
			rr := httptest.NewRecorder()

			ctrl.SyncInvitations(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			} else {
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.eventID, fake.lastSyncEventID)
			}
		})
	}
}
