package handlers

import (
	"net/http"

	"github.com/askhat/football-analysis/middleware"
	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/services"
	"github.com/go-chi/chi/v5"
)

type TaggingHandler struct {
	taggingService services.TaggingService
}

func NewTaggingHandler(taggingService services.TaggingService) *TaggingHandler {
	return &TaggingHandler{taggingService: taggingService}
}

// StartDraft opens a new draft. Events with no confirmation steps are
// finalized immediately and returned as "event"; everything else
// returns the first prompt as "draft".
func (h *TaggingHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		EventType      models.EventType `json:"event_type"`
		VideoTimestamp *float64         `json:"video_timestamp,omitempty"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draft, event, err := h.taggingService.StartDraft(r.Context(), userID, sessionID, input.EventType, input.VideoTimestamp)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if event != nil {
		if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draft": draft}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaggingHandler) Advance(w http.ResponseWriter, r *http.Request) {
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
	category := services.Category(chi.URLParam(r, "category"))

	var input services.StepInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draft, event, err := h.taggingService.Advance(r.Context(), userID, sessionID, category, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if event != nil {
		if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draft": draft}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaggingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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
	category := services.Category(chi.URLParam(r, "category"))

	if err := h.taggingService.Cancel(r.Context(), userID, sessionID, category); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaggingHandler) CurrentDraft(w http.ResponseWriter, r *http.Request) {
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
	category := services.Category(chi.URLParam(r, "category"))

	draft, err := h.taggingService.CurrentDraft(r.Context(), userID, sessionID, category)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draft": draft}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Options returns the selection catalogs for an event type, so clients
// render the same choices the validator accepts.
func (h *TaggingHandler) Options(w http.ResponseWriter, r *http.Request) {
	eventType := models.EventType(r.URL.Query().Get("event_type"))
	if _, ok := services.CategoryOf(eventType); !ok {
		mapServiceErrorToHTTP(w, r, services.ErrUnknownEventType)
		return
	}

	technique := r.URL.Query().Get("technique")
	response := jsonResponse{
		"techniques":      services.TechniqueOptions(eventType),
		"results":         services.ResultOptions(eventType, technique),
		"body_parts":      services.BodyPartOptions(),
		"pass_types":      services.PassTypeOptions(),
		"save_techniques": services.SaveTechniqueOptions(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
