package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// CreateMeetupRequest is the request body for POST /meetups. Rule-level
// validation (field lengths, future date, banner existence) happens in the
// service.
type CreateMeetupRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Date        *time.Time `json:"date"`
	BannerID    string     `json:"banner_id"`
}

// UpdateMeetupRequest is the request body for PUT /meetups/{meetupID}.
// All fields optional; omitted fields are unchanged.
type UpdateMeetupRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	BannerID    *string    `json:"banner_id"`
}

// MeetupListSuccessResponse is the success envelope for GET /meetups (200).
type MeetupListSuccessResponse struct {
	Data  []*domain.MeetupSummary `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// MeetupSuccessResponse is the success envelope for meetup create/update (200/201).
type MeetupSuccessResponse struct {
	Data  *domain.Meetup    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type MeetupController struct {
	Logger  *slog.Logger
	Service domain.MeetupService
}

func NewMeetupController(logger *slog.Logger, svc domain.MeetupService) *MeetupController {
	return &MeetupController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List my meetups
// @Description Lists meetups organized by the authenticated user, ascending by date, in pages of 10. Optional date filter restricts to one calendar day.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day filter (RFC3339 or YYYY-MM-DD)"
// @Param page query int false "Page number (1-indexed)"
// @Success 200 {object} controllers.MeetupListSuccessResponse "data contains meetup summaries"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [get]
func (c *MeetupController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	date, err := helpers.ParseDate(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	page := helpers.ParsePage(r)

	meetups, err := c.Service.List(r.Context(), userID, date, page)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// Create godoc
// @Summary Create a meetup
// @Description Creates a meetup owned by the authenticated user. The date must be in the future, the banner must exist, and no identical meetup may exist in the same clock hour.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetup body CreateMeetupRequest true "Meetup data"
// @Success 201 {object} controllers.MeetupSuccessResponse "data contains the created meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [post]
func (c *MeetupController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	draft := domain.MeetupDraft{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		BannerID:    req.BannerID,
	}
	if req.Date != nil {
		draft.ScheduledAt = *req.Date
	}
	meetup, err := c.Service.Create(r.Context(), userID, draft)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, meetup)
}

// Update godoc
// @Summary Update a meetup
// @Description Applies a partial update to a meetup owned by the authenticated user.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Param meetup body UpdateMeetupRequest true "Fields to change"
// @Success 200 {object} controllers.MeetupSuccessResponse "data contains the updated meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [put]
func (c *MeetupController) Update(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return
	}
	var req UpdateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	patch := domain.MeetupPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ScheduledAt: req.Date,
		BannerID:    req.BannerID,
	}
	meetup, err := c.Service.Update(r.Context(), meetupID, userID, patch)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Delete godoc
// @Summary Cancel a meetup
// @Description Deletes a meetup owned by the authenticated user. Only allowed more than 48 hours before the meetup starts.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [delete]
func (c *MeetupController) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Delete(r.Context(), meetupID, userID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
