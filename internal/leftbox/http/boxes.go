package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/httpx"
)

// BoxHandler serves the box endpoints: create, fetch with files, and
// multipart file upload.
type BoxHandler struct {
	BoxService *service.BoxService
}

// HandleCreate serves POST /boxes.
func (h *BoxHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boxsdk.CreateBoxRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return
	}

	// Boxes do not require a login, but if the caller happens to present a
	// valid bearer the box is attributed to them.
	createdBy := httpx.UserIDFromCtx(ctx)

	box, err := h.BoxService.Create(ctx, req.Name, createdBy)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, boxToWire(box))
}

// HandleGet serves GET /boxes/{id}: the box plus its files, newest first.
func (h *BoxHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	box, files, err := h.BoxService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, boxsdk.BoxResponse{
		Box:   boxToWire(box),
		Files: filesToWire(files),
	})
}

// HandleUpload serves POST /boxes/{id}/files. The body is multipart form
// data with the upload in the "file" field.
func (h *BoxHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadBytes+(1<<20))

	src, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			(&boxsdk.APIError{
				StatusCode: http.StatusRequestEntityTooLarge,
				Code:       boxsdk.ErrorCodeValidation,
				Message:    "uploaded file is too large",
			}).WriteError(w)
			return
		}
		boxsdk.NewValidationError([]boxsdk.FieldError{
			{Field: "file", Message: "multipart field \"file\" is required"},
		}).WriteError(w)
		return
	}
	defer func() { _ = src.Close() }()

	file, err := h.BoxService.AttachFile(ctx, r.PathValue("id"), header.Filename, src)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, fileToWire(file))
}
