package controllers

import (
	"log/slog"
	"net/http"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// SubscriptionSuccessResponse is the success envelope for POST /meetups/{meetupID}/subscriptions (201).
type SubscriptionSuccessResponse struct {
	Data  *domain.Subscription `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// UpcomingListSuccessResponse is the success envelope for GET /subscriptions (200).
type UpcomingListSuccessResponse struct {
	Data  []*domain.UpcomingMeetup `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type SubscriptionController struct {
	Logger  *slog.Logger
	Service domain.SubscriptionService
}

func NewSubscriptionController(logger *slog.Logger, svc domain.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		Logger:  logger,
		Service: svc,
	}
}

// Subscribe godoc
// @Summary Subscribe to a meetup
// @Description Subscribes the authenticated user to a meetup. Rejected if the meetup passed, is the user's own, is already subscribed, or clashes with another subscription in the same clock hour.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Success 201 {object} controllers.SubscriptionSuccessResponse "data contains the created subscription"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID}/subscriptions [post]
func (c *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sub, err := c.Service.Subscribe(r.Context(), userID, meetupID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// ListUpcoming godoc
// @Summary List my upcoming subscriptions
// @Description Lists meetups the authenticated user subscribed to that have not happened yet, ascending by date.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UpcomingListSuccessResponse "data contains upcoming meetups"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscriptions [get]
func (c *SubscriptionController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upcoming, err := c.Service.ListUpcoming(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, upcoming)
}
