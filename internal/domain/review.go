package domain

import (
	"errors"
	"time"
)

// Review is a buyer's rating of a seller.
type Review struct {
	ID           string
	SellerID     string
	ReviewerID   string
	ReviewerName string
	Rating       int32
	Comment      string
	CreatedAt    time.Time
}

// NewReview validates and builds a review.
func NewReview(sellerID, reviewerID, reviewerName, comment string, rating int32) (*Review, error) {
	if sellerID == "" || reviewerID == "" {
		return nil, errors.New("sellerID and reviewerID are required")
	}
	if sellerID == reviewerID {
		return nil, errors.New("sellers cannot review themselves")
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	return &Review{
		SellerID:     sellerID,
		ReviewerID:   reviewerID,
		ReviewerName: reviewerName,
		Rating:       rating,
		Comment:      comment,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// AverageRating computes the mean rating of a review list, 0 when empty.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int64
	for _, r := range reviews {
		sum += int64(r.Rating)
	}
	return float64(sum) / float64(len(reviews))
}
