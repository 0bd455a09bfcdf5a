package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// JoinEventResponse is the data payload for POST /events/{eventID}/join (200/201).
type JoinEventResponse struct {
	Status string `json:"status"`
}

// JoinEventSuccessResponse is the success response envelope for POST /events/{eventID}/join.
type JoinEventSuccessResponse struct {
	Data  JoinEventResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// JoinEvent godoc
// @Summary Join an event as a participant
// @Description Registers the authenticated user as a participant of the event. Joining an event the user already joined is a no-op and returns 200. Requires authentication.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.JoinEventSuccessResponse "data contains status (already joined)"
// @Success 201 {object} controllers.JoinEventSuccessResponse "data contains status (joined)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/join [post]
func (c *ParticipantController) JoinEvent(w http.ResponseWriter, r *http.Request) {
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
	created, err := c.Service.JoinEvent(r.Context(), viewer, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
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
	helpers.WriteJSONSuccess(w, status, JoinEventResponse{Status: "joined"})
}

// SignAttendanceResponse is the data payload for POST /events/{eventID}/signature (200).
type SignAttendanceResponse struct {
	Status string `json:"status"`
}

// SignAttendanceSuccessResponse is the success response envelope for POST /events/{eventID}/signature.
type SignAttendanceSuccessResponse struct {
	Data  SignAttendanceResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// SignAttendance godoc
// @Summary Sign attendance for an event
// @Description Records the authenticated user's attendance signature for an event that requires one, and logs the attendance. Signing twice returns 409. Requires authentication.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.SignAttendanceSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (event does not collect signatures)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already signed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/signature [post]
func (c *ParticipantController) SignAttendance(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.SignAttendance(r.Context(), viewer, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrAlreadySigned) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already signed")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, SignAttendanceResponse{Status: "signed"})
}
