package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"

	"meetapp/config"
	_ "meetapp/docs"
	authAdapter "meetapp/internal/adapters/auth"
	"meetapp/internal/adapters/queue"
	"meetapp/internal/adapters/storage"
	httpDelivery "meetapp/internal/delivery/http"
	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
	"meetapp/internal/repository/postgres"
	"meetapp/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Meetapp API
// @version 1.0
// @description Meetup scheduling backend: organizers publish meetups, attendees subscribe, and the organizer is notified by email.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
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

	blobStorage, err := storage.NewLocalStorage(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Error("init storage", "err", err)
		os.Exit(1)
	}

	var notifier domain.Notifier = queue.NoopNotifier{Logger: logger}
	if cfg.AMQPUrl != "" {
		conn, err := amqp.Dial(cfg.AMQPUrl)
		if err != nil {
			logger.Error("connect to broker", "err", err)
			os.Exit(1)
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			logger.Error("open broker channel", "err", err)
			os.Exit(1)
		}
		publisher, err := queue.NewPublisher(ch, domain.TopicSubscriptionCreated)
		if err != nil {
			logger.Error("declare queues", "err", err)
			os.Exit(1)
		}
		notifier = publisher
	} else {
		logger.Warn("AMQP_URL not set, subscription notifications are disabled")
	}

	userRepo := postgres.NewUserRepository(db)
	fileRepo := postgres.NewFileRepository(db)
	meetupRepo := postgres.NewMeetupRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)

	hasher := authAdapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := authAdapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authAdapter.NewJWTVerifier(cfg.JWTSecret)

	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry)
	fileService := services.NewFileService(fileRepo, blobStorage)
	meetupService := services.NewMeetupService(meetupRepo, fileRepo, serviceTimeout)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, meetupRepo, userRepo, notifier, logger, serviceTimeout)

	router := httpDelivery.NewRouter(
		controllers.NewAuthController(logger, authService),
		controllers.NewFileController(logger, fileService),
		controllers.NewMeetupController(logger, meetupService),
		controllers.NewSubscriptionController(logger, subscriptionService),
		tokenVerifier,
		logger,
	)

	var handler http.Handler = router
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
			os.Exit(1)
		}
	}
}
