package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

type PublicLinkController struct {
	Logger  *slog.Logger
	Service domain.PublicLinkService
}

func NewPublicLinkController(logger *slog.Logger, svc domain.PublicLinkService) *PublicLinkController {
	return &PublicLinkController{
		Logger:  logger,
		Service: svc,
	}
}

// CreatePublicLinkRequest is the request body for POST /events/{eventID}/public-links.
type CreatePublicLinkRequest struct {
	AccessCode string `json:"access_code"`
}

// Validate implements Validator.
func (c CreatePublicLinkRequest) Validate() []string {
	if strings.TrimSpace(c.AccessCode) == "" {
		return []string{"access_code is required"}
	}
	return nil
}

// CreatePublicLinkSuccessResponse is the success response envelope for POST /events/{eventID}/public-links (201).
type CreatePublicLinkSuccessResponse struct {
	Data  *domain.EventPublicLink `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// CreatePublicLink godoc
// @Summary Create a shareable public link for an event
// @Description Issues a public link token for the event, protected by the given access code. The code is stored hashed and never returned. Only the creator, an organizer of the owning organization, or a platform admin can create a link. Requires authentication.
// @Tags public-links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreatePublicLinkRequest true "Access code guests must present"
// @Success 201 {object} controllers.CreatePublicLinkSuccessResponse "data contains the public link"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not allowed to manage)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/public-links [post]
func (c *PublicLinkController) CreatePublicLink(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreatePublicLinkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	viewer, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	link, err := c.Service.CreatePublicLink(r.Context(), viewer, eventID, req.AccessCode)
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, link)
}

// AccessAsGuestRequest is the request body for POST /public/events/{token}.
type AccessAsGuestRequest struct {
	AccessCode string `json:"access_code"`
	Name       string `json:"name"`
}

// Validate implements Validator.
func (a AccessAsGuestRequest) Validate() []string {
	if strings.TrimSpace(a.AccessCode) == "" {
		return []string{"access_code is required"}
	}
	return nil
}

// AccessAsGuestSuccessResponse is the success response envelope for POST /public/events/{token} (200).
type AccessAsGuestSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AccessAsGuest godoc
// @Summary Access an event through a public link
// @Description Verifies the access code for the public link token, records the guest, and returns the linked event. No authentication required.
// @Tags public-links
// @Accept json
// @Produce json
// @Param token path string true "Public link token"
// @Param body body AccessAsGuestRequest true "Access code and optional guest name"
// @Success 200 {object} controllers.AccessAsGuestSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (wrong access code)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events/{token} [post]
func (c *PublicLinkController) AccessAsGuest(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing token")
		return
	}
	var req AccessAsGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.AccessAsGuest(r.Context(), token, req.AccessCode, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "link not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidAccessCode) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid access code")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
