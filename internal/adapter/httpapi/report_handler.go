package httpapi

import (
	"net/http"

	"github.com/viniciustorricelli/pensell/internal/domain"
)

// HandleSubmitReport mails an abuse report to the admins.
func (h *Handler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type          string `json:"type"`
		ItemID        string `json:"item_id"`
		ItemTitle     string `json:"item_title"`
		ReporterName  string `json:"reporter_name"`
		ReporterEmail string `json:"reporter_email"`
		Description   string `json:"description"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	err := h.reports.Submit(r.Context(), domain.Report{
		Type:          payload.Type,
		ItemID:        payload.ItemID,
		ItemTitle:     payload.ItemTitle,
		ReporterName:  payload.ReporterName,
		ReporterEmail: payload.ReporterEmail,
		Description:   payload.Description,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}
