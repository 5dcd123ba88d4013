package usecase

import (
	"context"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// UserUsecase serves profiles and the profile stats panel.
type UserUsecase struct {
	userRepo   domain.UserRepository
	adRepo     domain.AdRepository
	reviewRepo domain.ReviewRepository
	logger     *logger.Logger
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(userRepo domain.UserRepository, adRepo domain.AdRepository, reviewRepo domain.ReviewRepository, log *logger.Logger) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		adRepo:     adRepo,
		reviewRepo: reviewRepo,
		logger:     log.Named("UserUsecase"),
	}
}

// Me returns the caller's profile.
func (uc *UserUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.FindByID(ctx, userID)
}

// UpdateProfile applies the given profile fields; nil fields are untouched.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := uc.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("Profile updated", zap.String("user_id", userID))
	return user, nil
}

// ProfileStats is the counters panel of the profile screen.
type ProfileStats struct {
	ActiveAds     int
	SoldAds       int
	ReviewCount   int
	AverageRating float64
}

// Stats aggregates a user's ad counts and review average.
func (uc *UserUsecase) Stats(ctx context.Context, userID string) (ProfileStats, error) {
	ads, err := uc.adRepo.FindBySeller(ctx, userID)
	if err != nil {
		return ProfileStats{}, err
	}
	reviews, err := uc.reviewRepo.FindBySeller(ctx, userID)
	if err != nil {
		return ProfileStats{}, err
	}

	stats := ProfileStats{
		ReviewCount:   len(reviews),
		AverageRating: domain.AverageRating(reviews),
	}
	for _, ad := range ads {
		switch ad.Status {
		case domain.AdStatusActive:
			stats.ActiveAds++
		case domain.AdStatusSold:
			stats.SoldAds++
		}
	}
	return stats, nil
}
