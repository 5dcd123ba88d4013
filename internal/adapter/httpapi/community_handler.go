package httpapi

import (
	"net/http"

	"github.com/viniciustorricelli/pensell/internal/domain"
)

type communityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// HandleListCommunities returns active communities, filtered by ?q=.
func (h *Handler) HandleListCommunities(w http.ResponseWriter, r *http.Request) {
	communities, err := h.communities.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]communityResponse, 0, len(communities))
	for _, c := range communities {
		out = append(out, communityResponse{ID: c.ID, Name: c.Name, City: c.City})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// HandleSelectCommunity switches the session user's current community.
func (h *Handler) HandleSelectCommunity(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CommunityID string `json:"community_id"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	if err := h.communities.Select(r.Context(), SessionUserID(r.Context()), payload.CommunityID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"community_id": payload.CommunityID})
}

// HandleRequestCommunity mails a new-community request to the admins.
func (h *Handler) HandleRequestCommunity(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name           string `json:"name"`
		City           string `json:"city"`
		Details        string `json:"details"`
		RequesterName  string `json:"requester_name"`
		RequesterEmail string `json:"requester_email"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	err := h.communities.Request(r.Context(), domain.CommunityRequest{
		Name:           payload.Name,
		City:           payload.City,
		Details:        payload.Details,
		RequesterName:  payload.RequesterName,
		RequesterEmail: payload.RequesterEmail,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}
