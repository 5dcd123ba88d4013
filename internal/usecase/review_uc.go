package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// ReviewUsecase implements seller reviews: one per reviewer per seller.
type ReviewUsecase struct {
	reviewRepo domain.ReviewRepository
	userRepo   domain.UserRepository
	logger     *logger.Logger
}

// NewReviewUsecase creates a new ReviewUsecase.
func NewReviewUsecase(reviewRepo domain.ReviewRepository, userRepo domain.UserRepository, log *logger.Logger) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		logger:     log.Named("ReviewUsecase"),
	}
}

// CreateReview records a rating of sellerID by reviewerID.
func (uc *ReviewUsecase) CreateReview(ctx context.Context, sellerID, reviewerID, comment string, rating int32) (*domain.Review, error) {
	uc.logger.Info("Creating review", zap.String("seller_id", sellerID), zap.String("reviewer_id", reviewerID), zap.Int32("rating", rating))

	if _, err := uc.userRepo.FindByID(ctx, sellerID); err != nil {
		return nil, err
	}
	reviewer, err := uc.userRepo.FindByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	review, err := domain.NewReview(sellerID, reviewerID, reviewer.FullName, comment, rating)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			return nil, err
		}
		uc.logger.Error("Failed to save review to repository", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to create review: %v", domain.ErrRepository, err)
	}

	uc.logger.Info("Review created successfully", zap.String("review_id", review.ID))
	return review, nil
}

// SellerReviews returns a seller's reviews, newest first, plus the average.
func (uc *ReviewUsecase) SellerReviews(ctx context.Context, sellerID string) ([]*domain.Review, float64, error) {
	reviews, err := uc.reviewRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, domain.AverageRating(reviews), nil
}
