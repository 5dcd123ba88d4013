package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

type userResponse struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	ProfilePhoto       string    `json:"profile_photo,omitempty"`
	City               string    `json:"city,omitempty"`
	Neighborhood       string    `json:"neighborhood,omitempty"`
	CurrentCommunityID string    `json:"current_community_id,omitempty"`
	Communities        []string  `json:"communities,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		FullName:           u.FullName,
		Email:              u.Email,
		ProfilePhoto:       u.ProfilePhoto,
		City:               u.City,
		Neighborhood:       u.Neighborhood,
		CurrentCommunityID: u.CurrentCommunityID,
		Communities:        u.Communities,
		CreatedAt:          u.CreatedAt,
	}
}

// HandleMe returns the session user's profile.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Me(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdateProfile applies partial profile updates.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FullName     *string `json:"full_name"`
		ProfilePhoto *string `json:"profile_photo"`
		City         *string `json:"city"`
		Neighborhood *string `json:"neighborhood"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), SessionUserID(r.Context()), domain.ProfileUpdate{
		FullName:     payload.FullName,
		ProfilePhoto: payload.ProfilePhoto,
		City:         payload.City,
		Neighborhood: payload.Neighborhood,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleProfileStats returns the counters panel for a profile.
func (h *Handler) HandleProfileStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"active_ads":     stats.ActiveAds,
		"sold_ads":       stats.SoldAds,
		"review_count":   stats.ReviewCount,
		"average_rating": stats.AverageRating,
	})
}
