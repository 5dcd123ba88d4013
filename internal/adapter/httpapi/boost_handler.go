package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

// HandleBoostStatus returns the session user's top up entitlement.
func (h *Handler) HandleBoostStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.boost.GetStatus(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":            string(status.State),
		"available_topups": status.AvailableTopups,
		"countdown":        status.Countdown,
	})
}

// HandleActivateBoost spends the credit to boost the caller's own ad.
func (h *Handler) HandleActivateBoost(w http.ResponseWriter, r *http.Request) {
	ad, err := h.boost.Activate(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if h.metrics != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyBoosted):
				h.metrics.BoostsRejectedTotal.WithLabelValues("already_boosted").Inc()
			case errors.Is(err, domain.ErrBoostUnavailable):
				h.metrics.BoostsRejectedTotal.WithLabelValues("cooling").Inc()
			}
		}
		h.writeError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.BoostsActivatedTotal.Inc()
	}
	h.writeJSON(w, http.StatusOK, toAdResponse(ad))
}
