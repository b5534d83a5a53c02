package handlers

import (
	"net/http"

	"github.com/askhat/football-analysis/middleware"
	"github.com/askhat/football-analysis/services"
)

type LineupHandler struct {
	lineupService services.LineupService
}

func NewLineupHandler(lineupService services.LineupService) *LineupHandler {
	return &LineupHandler{lineupService: lineupService}
}

func (h *LineupHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := urlParamInt(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	lineup, err := h.lineupService.Get(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"lineup": lineup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LineupHandler) AddToStarting(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, playerID, ok := h.readLineupParams(w, r)
	if !ok {
		return
	}

	lineup, err := h.lineupService.AddToStarting(r.Context(), userID, sessionID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"lineup": lineup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LineupHandler) MoveToSubstitutes(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, playerID, ok := h.readLineupParams(w, r)
	if !ok {
		return
	}

	lineup, err := h.lineupService.MoveToSubstitutes(r.Context(), userID, sessionID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"lineup": lineup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LineupHandler) SetTacticalPosition(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, playerID, ok := h.readLineupParams(w, r)
	if !ok {
		return
	}

	var input struct {
		Position string `json:"position"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	lineup, err := h.lineupService.SetTacticalPosition(r.Context(), userID, sessionID, playerID, input.Position)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"lineup": lineup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LineupHandler) readLineupParams(w http.ResponseWriter, r *http.Request) (userID, sessionID, playerID int, ok bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return 0, 0, 0, false
	}
	sessionID, err = urlParamInt(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, 0, false
	}
	playerID, err = urlParamInt(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, 0, false
	}
	return userID, sessionID, playerID, true
}
