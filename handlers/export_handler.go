package handlers

import (
	"fmt"
	"net/http"

	"github.com/askhat/football-analysis/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV streams the session's event log as a CSV download.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sessionID, err := urlParamInt(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, err := h.exportService.ExportCSV(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		serverErrorResponse(w, r, err)
	}
}
