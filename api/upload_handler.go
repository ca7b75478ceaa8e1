package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/storage"
)

// multipartOverhead covers the form fields and part headers around the file.
const multipartOverhead = 1 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *storage.Uploader
}

func newUploadHandler(uploader *storage.Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// upload stores one media file and returns its public URL
// @Summary Upload media
// @Description Multipart upload; project_id is a project UUID or "global", folder is thumbnail or gallery
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Param project_id formData string false "Owning project or global"
// @Param folder formData string false "thumbnail or gallery"
// @Success 201 {object} storage.UploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/admin/uploads [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxSize := h.uploader.MaxSize()
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxSize))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("upload", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		result, err := h.uploader.Upload(r.Context(), storage.Upload{
			Owner:    r.FormValue("project_id"),
			Folder:   storage.Folder(r.FormValue("folder")),
			Filename: header.Filename,
			Size:     header.Size,
			Body:     file,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("path", result.Path).Int64("size", header.Size).Msg("media uploaded")
		h.responder.WriteJSONStatus(w, http.StatusCreated, result)
	}
}
