package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// FavoriteUsecase implements toggle-style favorites with a denormalized ad
// snapshot and the ad's saves counter kept in step.
type FavoriteUsecase struct {
	favoriteRepo domain.FavoriteRepository
	adRepo       domain.AdRepository
	logger       *logger.Logger
}

// NewFavoriteUsecase creates a new FavoriteUsecase.
func NewFavoriteUsecase(favoriteRepo domain.FavoriteRepository, adRepo domain.AdRepository, log *logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		adRepo:       adRepo,
		logger:       log.Named("FavoriteUsecase"),
	}
}

// Toggle adds the ad to the user's favorites, or removes it when already
// present. Returns true when the ad ended up favorited.
func (uc *FavoriteUsecase) Toggle(ctx context.Context, userID, adID string) (bool, error) {
	existing, err := uc.favoriteRepo.FindByUserAndAd(ctx, userID, adID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	if existing != nil {
		if err := uc.favoriteRepo.Remove(ctx, existing.ID); err != nil {
			return false, err
		}
		if err := uc.adRepo.AdjustSaves(ctx, adID, -1); err != nil {
			uc.logger.Warn("Failed to decrement saves count", zap.Error(err), zap.String("ad_id", adID))
		}
		uc.logger.Info("Favorite removed", zap.String("user_id", userID), zap.String("ad_id", adID))
		return false, nil
	}

	ad, err := uc.adRepo.FindByID(ctx, adID)
	if err != nil {
		return false, err
	}

	favorite := &domain.Favorite{
		UserID:    userID,
		AdID:      ad.ID,
		AdTitle:   ad.Title,
		AdPrice:   ad.Price,
		CreatedAt: time.Now().UTC(),
	}
	if len(ad.Images) > 0 {
		favorite.AdImage = ad.Images[0]
	}

	if err := uc.favoriteRepo.Add(ctx, favorite); err != nil {
		if errors.Is(err, domain.ErrDuplicateFavorite) {
			// Lost the race against a parallel toggle; the ad is favorited.
			return true, err
		}
		return false, err
	}
	if err := uc.adRepo.AdjustSaves(ctx, adID, 1); err != nil {
		uc.logger.Warn("Failed to increment saves count", zap.Error(err), zap.String("ad_id", adID))
	}
	uc.logger.Info("Favorite added", zap.String("user_id", userID), zap.String("ad_id", adID))
	return true, nil
}

// List returns the user's favorites, dropping entries whose ad is gone or no
// longer active. The stored snapshot is refreshed from the live ad.
func (uc *FavoriteUsecase) List(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	favorites, err := uc.favoriteRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Favorite, 0, len(favorites))
	for _, favorite := range favorites {
		ad, err := uc.adRepo.FindByID(ctx, favorite.AdID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if ad.Status != domain.AdStatusActive {
			continue
		}
		favorite.AdTitle = ad.Title
		favorite.AdPrice = ad.Price
		if len(ad.Images) > 0 {
			favorite.AdImage = ad.Images[0]
		}
		out = append(out, favorite)
	}
	return out, nil
}
