package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

type reviewResponse struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"seller_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toReviewResponse(review *domain.Review) reviewResponse {
	return reviewResponse{
		ID:           review.ID,
		SellerID:     review.SellerID,
		ReviewerID:   review.ReviewerID,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	}
}

// HandleCreateReview records the session user's rating of a seller.
func (h *Handler) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rating  int32  `json:"rating"`
		Comment string `json:"comment"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context()), payload.Comment, payload.Rating)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

// HandleSellerReviews returns a seller's reviews and average rating.
func (h *Handler) HandleSellerReviews(w http.ResponseWriter, r *http.Request) {
	reviews, average, err := h.reviews.SellerReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewResponse(review))
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"reviews":        out,
		"average_rating": average,
	})
}
