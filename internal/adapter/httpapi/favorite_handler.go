package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

type favoriteResponse struct {
	ID        string    `json:"id"`
	AdID      string    `json:"ad_id"`
	AdTitle   string    `json:"ad_title"`
	AdImage   string    `json:"ad_image,omitempty"`
	AdPrice   float64   `json:"ad_price"`
	CreatedAt time.Time `json:"created_at"`
}

func toFavoriteResponses(favorites []*domain.Favorite) []favoriteResponse {
	out := make([]favoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, favoriteResponse{
			ID:        f.ID,
			AdID:      f.AdID,
			AdTitle:   f.AdTitle,
			AdImage:   f.AdImage,
			AdPrice:   f.AdPrice,
			CreatedAt: f.CreatedAt,
		})
	}
	return out
}

// HandleToggleFavorite flips the favorite state of an ad for the session user.
func (h *Handler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	favorited, err := h.favorites.Toggle(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "adID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if h.metrics != nil {
		action := "removed"
		if favorited {
			action = "added"
		}
		h.metrics.FavoritesTotal.WithLabelValues(action).Inc()
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// HandleListFavorites returns the session user's favorites.
func (h *Handler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.List(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toFavoriteResponses(favorites))
}
