package handlers

import (
	"net/http"

	"github.com/askhat/football-analysis/middleware"
	"github.com/askhat/football-analysis/services"
	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	eventLogService services.EventLogService
}

func NewEventHandler(eventLogService services.EventLogService) *EventHandler {
	return &EventHandler{eventLogService: eventLogService}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := urlParamInt(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	events, err := h.eventLogService.List(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	eventID := chi.URLParam(r, "eventID")

	if err := h.eventLogService.Delete(r.Context(), userID, sessionID, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) Clear(w http.ResponseWriter, r *http.Request) {
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

	if err := h.eventLogService.Clear(r.Context(), userID, sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate is the log's click-to-seek: playback jumps to the event's
// video timestamp, paused.
func (h *EventHandler) Activate(w http.ResponseWriter, r *http.Request) {
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
	eventID := chi.URLParam(r, "eventID")

	event, err := h.eventLogService.Activate(r.Context(), userID, sessionID, eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
