package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	authController *controllers.AuthController,
	fileController *controllers.FileController,
	meetupController *controllers.MeetupController,
	subscriptionController *controllers.SubscriptionController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /users", authController.SignUp)
	mux.HandleFunc("POST /sessions", authController.Login)
	mux.HandleFunc("PUT /users", auth(authController.UpdateProfile))

	// Files
	mux.HandleFunc("POST /files", auth(fileController.Upload))

	// Meetups
	mux.HandleFunc("GET /meetups", auth(meetupController.List))
	mux.HandleFunc("POST /meetups", auth(meetupController.Create))
	mux.HandleFunc("PUT /meetups/{meetupID}", auth(meetupController.Update))
	mux.HandleFunc("DELETE /meetups/{meetupID}", auth(meetupController.Delete))

	// Subscriptions
	mux.HandleFunc("GET /subscriptions", auth(subscriptionController.ListUpcoming))
	mux.HandleFunc("POST /meetups/{meetupID}/subscriptions", auth(subscriptionController.Subscribe))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
