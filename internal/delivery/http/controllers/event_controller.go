package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	OrganizationID   string    `json:"organization_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	RequireSignature bool      `json:"require_signature"`
	Broadcast        bool      `json:"broadcast"`
	InvitedUserIDs   []string  `json:"invited_user_ids"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if c.EndTime.IsZero() {
		errs = append(errs, "end_time is required")
	}
	if !c.StartTime.IsZero() && !c.EndTime.IsZero() && !c.EndTime.After(c.StartTime) {
		errs = append(errs, "end_time must be after start_time")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /events (200/201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger   *slog.Logger
	Service  domain.EventService
	Resolver domain.VisibilityResolver
}

func NewEventController(logger *slog.Logger, svc domain.EventService, resolver domain.VisibilityResolver) *EventController {
	return &EventController{
		Logger:   logger,
		Service:  svc,
		Resolver: resolver,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event owned by the authenticated user's organization. If an event with the same organization, title, start time, and end time already exists, the existing event is returned with 200 instead of creating a duplicate. Broadcast events without an organization are attached to the platform fallback organization.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 200 {object} controllers.CreateEventSuccessResponse "data contains the existing event (duplicate request)"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	orgID := req.OrganizationID
	if orgID == "" {
		orgID = viewer.OrganizationID
	}
	event, created, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		OrganizationID:   orgID,
		CreatorID:        viewer.UserID,
		Title:            req.Title,
		Description:      req.Description,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		RequireSignature: req.RequireSignature,
		Broadcast:        req.Broadcast,
		InvitedUserIDs:   req.InvitedUserIDs,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, event)
}

// ListVisibleEventsSuccessResponse is the success response envelope for GET /events/visible (200).
type ListVisibleEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListVisibleEvents godoc
// @Summary List events visible to the current user
// @Description Returns the events the authenticated user can see: their organization's events, broadcast events, and events they were invited to, minus events they have hidden. Platform admins see every event. Results are unique and ordered by creation time, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListVisibleEventsSuccessResponse "data is an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/visible [get]
func (c *EventController) ListVisibleEvents(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Resolver.ListVisibleEvents(r.Context(), viewer)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title            *string             `json:"title"`
	Description      *string             `json:"description"`
	StartTime        *time.Time          `json:"start_time"`
	EndTime          *time.Time          `json:"end_time"`
	Status           *domain.EventStatus `json:"status"`
	RequireSignature *bool               `json:"require_signature"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Status != nil {
		switch *u.Status {
		case domain.EventStatusDraft, domain.EventStatusActive, domain.EventStatusCompleted, domain.EventStatusCancelled:
		default:
			errs = append(errs, "status must be one of: draft, active, completed, cancelled")
		}
	}
	return errs
}

// UpdateEventSuccessResponse is the success response envelope for PATCH /events/{eventID} (200).
type UpdateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates event title, description, times, status, and signature requirement. Only the creator, an organizer of the owning organization, or a platform admin can update. Optional fields omitted from body are unchanged. Requires authentication.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not allowed to manage)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, viewer, domain.UpdateEventFields{
		Title:            req.Title,
		Description:      req.Description,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           req.Status,
		RequireSignature: req.RequireSignature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// BroadcastEventSuccessResponse is the success response envelope for POST /events/{eventID}/broadcast (200).
type BroadcastEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BroadcastEvent godoc
// @Summary Broadcast an event platform-wide
// @Description Flags the event as broadcast so every user can see it regardless of organization. Only the creator, an organizer of the owning organization, or a platform admin can broadcast. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.BroadcastEventSuccessResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not allowed to manage)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/broadcast [post]
func (c *EventController) BroadcastEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.BroadcastEvent(r.Context(), eventID, viewer)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// HideEventResponse is the data payload for POST /events/{eventID}/hide (200).
type HideEventResponse struct {
	Status string `json:"status"`
}

// HideEventSuccessResponse is the success response envelope for POST /events/{eventID}/hide (200).
type HideEventSuccessResponse struct {
	Data  HideEventResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// HideEvent godoc
// @Summary Hide an event from the current user's view
// @Description Hides the event from the authenticated user's visible list. Hiding an already-hidden event is a no-op. The event itself is unchanged for other users. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.HideEventSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/hide [post]
func (c *EventController) HideEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.HideEvent(r.Context(), viewer, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HideEventResponse{Status: "hidden"})
}

// HideAllVisibleResponse is the data payload for POST /events/hide-all (200).
type HideAllVisibleResponse struct {
	HiddenCount int `json:"hidden_count"`
}

// HideAllVisibleSuccessResponse is the success response envelope for POST /events/hide-all (200).
type HideAllVisibleSuccessResponse struct {
	Data  HideAllVisibleResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// HideAllVisible godoc
// @Summary Hide every event currently visible to the current user
// @Description Takes a snapshot of the events visible to the authenticated user and hides all of them. Events created or shared after this call are unaffected. Returns the number of events in the snapshot. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.HideAllVisibleSuccessResponse "data contains hidden_count"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/hide-all [post]
func (c *EventController) HideAllVisible(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	count, err := c.Service.HideAllVisible(r.Context(), viewer)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HideAllVisibleResponse{HiddenCount: count})
}

// DeleteEventsRequest is the request body for DELETE /events.
type DeleteEventsRequest struct {
	EventIDs []string `json:"event_ids"`
}

// Validate implements Validator.
func (d DeleteEventsRequest) Validate() []string {
	return nil
}

// DeleteEventsSuccessResponse is the success response envelope for DELETE /events (200).
type DeleteEventsSuccessResponse struct {
	Data  domain.DeletionResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// DeleteEvents godoc
// @Summary Delete events and all their dependent records
// @Description Deletes the given events and everything attached to them (invitations, participants, agenda, documents, notifications, and so on) in a single all-or-nothing transaction. Unknown or already-deleted IDs are skipped silently; an empty list succeeds with deleted_count 0. Only the creator, an organizer of the owning organization, or a platform admin can delete an event. Requires authentication.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteEventsRequest true "IDs of the events to delete"
// @Success 200 {object} controllers.DeleteEventsSuccessResponse "data contains deleted_count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not allowed to manage one of the events)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [delete]
func (c *EventController) DeleteEvents(w http.ResponseWriter, r *http.Request) {
	var req DeleteEventsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := c.Service.DeleteEvents(r.Context(), viewer, req.EventIDs)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// SyncInvitationsRequest is the request body for PUT /events/{eventID}/invitations.
// UserIDs is the full desired set of invited users; missing users are invited
// and users no longer listed are removed.
type SyncInvitationsRequest struct {
	UserIDs []string `json:"user_ids"`
}

// Validate implements Validator.
func (s SyncInvitationsRequest) Validate() []string {
	return nil
}

// SyncInvitationsResponse is the data payload for PUT /events/{eventID}/invitations (200).
type SyncInvitationsResponse struct {
	Status string `json:"status"`
}

// SyncInvitationsSuccessResponse is the success response envelope for PUT /events/{eventID}/invitations (200).
type SyncInvitationsSuccessResponse struct {
	Data  SyncInvitationsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// SyncInvitations godoc
// @Summary Replace the invited-user set of an event
// @Description Reconciles the event's invitations with the given user list: users in the list but not invited are added, invited users missing from the list are removed. Repeating the same list is a no-op. Only the creator, an organizer of the owning organization, or a platform admin can sync. Requires authentication.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body SyncInvitationsRequest true "Desired invited user IDs"
// @Success 200 {object} controllers.SyncInvitationsSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not allowed to manage)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [put]
func (c *EventController) SyncInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SyncInvitationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.SyncInvitations(r.Context(), eventID, viewer, req.UserIDs); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SyncInvitationsResponse{Status: "synced"})
}
