package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	participantController *controllers.ParticipantController,
	publicLinkController *controllers.PublicLinkController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("DELETE /events", auth(eventController.DeleteEvents))
	mux.HandleFunc("GET /events/visible", auth(eventController.ListVisibleEvents))
	mux.HandleFunc("POST /events/hide-all", auth(eventController.HideAllVisible))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("POST /events/{eventID}/broadcast", auth(eventController.BroadcastEvent))
	mux.HandleFunc("POST /events/{eventID}/hide", auth(eventController.HideEvent))
	mux.HandleFunc("PUT /events/{eventID}/invitations", auth(eventController.SyncInvitations))

	// Participants
	mux.HandleFunc("POST /events/{eventID}/join", auth(participantController.JoinEvent))
	mux.HandleFunc("POST /events/{eventID}/signature", auth(participantController.SignAttendance))

	// Public links
	mux.HandleFunc("POST /events/{eventID}/public-links", auth(publicLinkController.CreatePublicLink))
	mux.HandleFunc("POST /public/events/{token}", publicLinkController.AccessAsGuest)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
