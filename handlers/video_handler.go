package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/askhat/football-analysis/middleware"
	"github.com/askhat/football-analysis/services"
	"github.com/askhat/football-analysis/storage"
	"github.com/google/uuid"
)

// Match footage uploads are large; the limit is per request body.
const maxVideoUploadBytes = 2 << 30 // 2GB

type VideoHandler struct {
	sessionService services.SessionService
	uploader       storage.FileUploader
}

func NewVideoHandler(sessionService services.SessionService, uploader storage.FileUploader) *VideoHandler {
	return &VideoHandler{
		sessionService: sessionService,
		uploader:       uploader,
	}
}

// Upload streams a multipart "video" part to object storage and
// attaches the resulting key to the session. Playback resets to the
// start, paused.
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	sessionID, err := urlParamInt(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxVideoUploadBytes)

	file, header, err := r.FormFile("video")
	if err != nil {
		badRequestResponse(w, r, errors.New("request must contain a 'video' file part"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		badRequestResponse(w, r, fmt.Errorf("unsupported content type %q, expected video/*", contentType))
		return
	}

	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("videos/session_%d/%s%s", sessionID, uuid.NewString(), ext)

	result, err := h.uploader.Upload(r.Context(), key, contentType, file)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to upload video: %w", err))
		return
	}

	if err := h.sessionService.AttachVideo(r.Context(), userID, sessionID, result.Key); err != nil {
		// The object is orphaned if attach fails; remove it so storage
		// does not accumulate unreferenced footage.
		_ = h.uploader.Delete(r.Context(), result.Key)
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"key": result.Key,
		"url": result.Location,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
