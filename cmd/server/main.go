// Package main runs the event platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventdesk/config"
	_ "eventdesk/docs"
	httpdelivery "eventdesk/internal/delivery/http"
	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"

	"eventdesk/internal/adapters/auth"
	"eventdesk/internal/adapters/email"
	"eventdesk/internal/repository/postgres"
	"eventdesk/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title EventDesk API
// @version 1.0
// @description Event access and lifecycle service: visibility, invitations, broadcasting, hiding, and cascade deletion.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	hiddenRepo := postgres.NewHiddenEventRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	publicLinkRepo := postgres.NewPublicLinkRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	deleter := postgres.NewEventDeleter(db, logger)

	// Adapters
	tokenAuthority := auth.NewJWTAuthority(cfg.JWTSecret)
	accessCodeHasher := auth.NewBcryptAccessCodeHasher(12)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	templateRenderer := email.NewTemplateRenderer()

	// Services
	emailService := services.NewEmailService(mailer, templateRenderer)
	resolver := services.NewVisibilityResolver(eventRepo, hiddenRepo, serviceTimeout)
	eventService := services.NewEventService(
		eventRepo, orgRepo, invitationRepo, hiddenRepo, userRepo,
		notificationRepo, deleter, resolver, emailService,
		logger, serviceTimeout,
	)
	participantService := services.NewParticipantService(eventRepo, participantRepo, serviceTimeout)
	publicLinkService := services.NewPublicLinkService(eventRepo, publicLinkRepo, accessCodeHasher, serviceTimeout)

	// Controllers
	eventController := controllers.NewEventController(logger, eventService, resolver)
	participantController := controllers.NewParticipantController(logger, participantService)
	publicLinkController := controllers.NewPublicLinkController(logger, publicLinkService)

	mux := httpdelivery.NewRouter(logger, tokenAuthority, eventController, participantController, publicLinkController)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	if len(cfg.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.AllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
