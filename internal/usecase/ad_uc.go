package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viniciustorricelli/pensell/internal/adapter/messaging/nats"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/feed"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// BoostedCache caches the boosted carousel per community.
type BoostedCache interface {
	GetBoosted(ctx context.Context, communityID string) ([]*domain.Ad, error)
	SetBoosted(ctx context.Context, communityID string, ads []*domain.Ad) error
	InvalidateBoosted(ctx context.Context, communityID string) error
}

// AdUsecase implements the business logic for ads: publishing, editing,
// lifecycle, the search feed and the boosted carousel.
type AdUsecase struct {
	adRepo   domain.AdRepository
	userRepo domain.UserRepository
	cache    BoostedCache
	natsPub  domain.EventPublisher
	logger   *logger.Logger
}

// NewAdUsecase creates a new AdUsecase.
func NewAdUsecase(adRepo domain.AdRepository, userRepo domain.UserRepository, cache BoostedCache, natsPub domain.EventPublisher, log *logger.Logger) *AdUsecase {
	return &AdUsecase{
		adRepo:   adRepo,
		userRepo: userRepo,
		cache:    cache,
		natsPub:  natsPub,
		logger:   log.Named("AdUsecase"),
	}
}

// CreateAdInput holds the publish form. The neighborhood is optional here;
// EditAd requires it.
type CreateAdInput struct {
	Title        string
	Description  string
	Price        float64
	Category     string
	City         string
	Neighborhood string
	Images       []string
}

// CreateAd publishes a new active ad in the seller's current community.
// Seller name and photo are denormalized onto the ad at creation time.
func (uc *AdUsecase) CreateAd(ctx context.Context, sellerID string, input CreateAdInput) (*domain.Ad, error) {
	uc.logger.Info("Creating ad", zap.String("seller_id", sellerID), zap.String("title", input.Title))

	seller, err := uc.userRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	ad, err := domain.NewAd(sellerID, seller.FullName, seller.ProfilePhoto, seller.CurrentCommunityID,
		input.Title, input.Description, input.Category, input.City, input.Neighborhood,
		input.Price, input.Images)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := uc.adRepo.Create(ctx, ad); err != nil {
		uc.logger.Error("Failed to save ad to repository", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to create ad: %v", domain.ErrRepository, err)
	}

	eventData := map[string]interface{}{
		"ad_id":        ad.ID,
		"seller_id":    ad.SellerID,
		"community_id": ad.CommunityID,
		"category":     ad.Category,
		"price":        ad.Price,
		"created_at":   ad.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := uc.natsPub.Publish(ctx, nats.SubjectAdCreated, eventData); err != nil {
		uc.logger.Warn("Failed to publish ad.created event", zap.Error(err), zap.String("ad_id", ad.ID))
	}

	uc.logger.Info("Ad created successfully", zap.String("ad_id", ad.ID))
	return ad, nil
}

// GetAd returns one ad and counts the view when the viewer is not the seller.
func (uc *AdUsecase) GetAd(ctx context.Context, adID, viewerID string) (*domain.Ad, error) {
	ad, err := uc.adRepo.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if viewerID != "" && viewerID != ad.SellerID {
		if err := uc.adRepo.IncrementViews(ctx, adID); err != nil {
			uc.logger.Warn("Failed to increment ad views", zap.Error(err), zap.String("ad_id", adID))
		} else {
			ad.ViewsCount++
		}
	}
	return ad, nil
}

// EditAdInput holds the edit form. Unlike CreateAdInput the neighborhood is
// required: the edit screen always collects it.
type EditAdInput struct {
	Title        string
	Description  string
	Price        float64
	Category     string
	City         string
	Neighborhood string
	Images       []string
}

// EditAd updates an ad's listing fields. Only the seller may edit.
func (uc *AdUsecase) EditAd(ctx context.Context, adID, sellerID string, input EditAdInput) (*domain.Ad, error) {
	uc.logger.Info("Editing ad", zap.String("ad_id", adID), zap.String("seller_id", sellerID))

	ad, err := uc.adRepo.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.SellerID != sellerID {
		uc.logger.Warn("User forbidden to edit ad", zap.String("ad_id", adID), zap.String("requesting_user", sellerID))
		return nil, domain.ErrForbidden
	}

	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.City) == "" || strings.TrimSpace(input.Neighborhood) == "" {
		return nil, fmt.Errorf("%w: title, description, city and neighborhood are required", domain.ErrInvalidInput)
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, input.Category)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if len(input.Images) == 0 || len(input.Images) > domain.MaxAdImages {
		return nil, fmt.Errorf("%w: between 1 and %d images are required", domain.ErrInvalidInput, domain.MaxAdImages)
	}

	ad.Title = strings.TrimSpace(input.Title)
	ad.Description = strings.TrimSpace(input.Description)
	ad.Price = input.Price
	ad.Category = input.Category
	ad.LocationCity = strings.TrimSpace(input.City)
	ad.LocationNeighborhood = strings.TrimSpace(input.Neighborhood)
	ad.Images = input.Images

	if err := uc.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}
	uc.logger.Info("Ad updated successfully", zap.String("ad_id", adID))
	return ad, nil
}

// DeleteAd removes an ad. Only the seller may delete.
func (uc *AdUsecase) DeleteAd(ctx context.Context, adID, sellerID string) error {
	ad, err := uc.adRepo.FindByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.SellerID != sellerID {
		uc.logger.Warn("User forbidden to delete ad", zap.String("ad_id", adID), zap.String("requesting_user", sellerID))
		return domain.ErrForbidden
	}
	return uc.adRepo.Delete(ctx, adID)
}

// UpdateAdStatus switches the lifecycle status. Only the seller may do it.
func (uc *AdUsecase) UpdateAdStatus(ctx context.Context, adID, sellerID string, status domain.AdStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, status)
	}

	ad, err := uc.adRepo.FindByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.SellerID != sellerID {
		return domain.ErrForbidden
	}

	if err := uc.adRepo.UpdateStatus(ctx, adID, status); err != nil {
		return err
	}

	eventData := map[string]interface{}{
		"ad_id":      adID,
		"old_status": string(ad.Status),
		"new_status": string(status),
	}
	if err := uc.natsPub.Publish(ctx, nats.SubjectAdStatusChange, eventData); err != nil {
		uc.logger.Warn("Failed to publish ad.status_changed event", zap.Error(err), zap.String("ad_id", adID))
	}
	return nil
}

// MyAds returns the caller's own ads grouped by lifecycle status.
func (uc *AdUsecase) MyAds(ctx context.Context, sellerID string) (map[domain.AdStatus][]*domain.Ad, error) {
	ads, err := uc.adRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[domain.AdStatus][]*domain.Ad)
	for _, ad := range ads {
		grouped[ad.Status] = append(grouped[ad.Status], ad)
	}
	return grouped, nil
}

// SellerAds returns a seller's public (active) ads, for the profile screen.
func (uc *AdUsecase) SellerAds(ctx context.Context, sellerID string) ([]*domain.Ad, error) {
	ads, err := uc.adRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	active := make([]*domain.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Status == domain.AdStatusActive {
			active = append(active, ad)
		}
	}
	return active, nil
}

// Search runs the feed engine over the active ads of the spec's community.
func (uc *AdUsecase) Search(ctx context.Context, spec feed.Spec) (feed.Page, error) {
	ads, err := uc.adRepo.FindActive(ctx, spec.CommunityID)
	if err != nil {
		return feed.Page{}, err
	}
	return feed.Apply(ads, spec, time.Now().UTC()), nil
}

// Boosted returns the boosted carousel for a community, served from cache
// when warm. Cache failures fall through to the database.
func (uc *AdUsecase) Boosted(ctx context.Context, communityID string) ([]*domain.Ad, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetBoosted(ctx, communityID)
		if err != nil {
			uc.logger.Warn("Boosted cache read failed", zap.Error(err), zap.String("community_id", communityID))
		} else if cached != nil {
			return cached, nil
		}
	}

	ads, err := uc.adRepo.FindBoosted(ctx, communityID)
	if err != nil {
		return nil, err
	}
	carousel := feed.Boosted(ads, communityID, time.Now().UTC())

	if uc.cache != nil {
		if err := uc.cache.SetBoosted(ctx, communityID, carousel); err != nil {
			uc.logger.Warn("Boosted cache write failed", zap.Error(err), zap.String("community_id", communityID))
		}
	}
	return carousel, nil
}

// RefreshBoosted re-primes the carousel cache for every given community.
// Called periodically from main so expired boosts drop out of the carousel
// without waiting for the TTL.
func (uc *AdUsecase) RefreshBoosted(ctx context.Context, communityIDs []string) {
	for _, id := range communityIDs {
		if uc.cache != nil {
			if err := uc.cache.InvalidateBoosted(ctx, id); err != nil {
				uc.logger.Warn("Boosted cache invalidation failed", zap.Error(err), zap.String("community_id", id))
				continue
			}
		}
		if _, err := uc.Boosted(ctx, id); err != nil {
			if !errors.Is(err, context.Canceled) {
				uc.logger.Warn("Boosted cache refresh failed", zap.Error(err), zap.String("community_id", id))
			}
		}
	}
}
