package controllers

import (
	"log/slog"
	"net/http"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"
)

// maxUploadSize caps banner uploads at 8 MiB.
const maxUploadSize = 8 << 20

// FileSuccessResponse is the success envelope for POST /files (201).
type FileSuccessResponse struct {
	Data  *domain.File      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type FileController struct {
	Logger  *slog.Logger
	Service domain.FileService
}

func NewFileController(logger *slog.Logger, svc domain.FileService) *FileController {
	return &FileController{
		Logger:  logger,
		Service: svc,
	}
}

// Upload godoc
// @Summary Upload a banner image
// @Description Stores a banner file and returns its record. Reference the returned ID when creating a meetup.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Banner image"
// @Success 201 {object} controllers.FileSuccessResponse "data contains the stored file record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files [post]
func (c *FileController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	stored, err := c.Service.Store(r.Context(), header.Filename, file)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, stored)
}
