package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
)

func validCreateInput() CreateAdInput {
	return CreateAdInput{
		Title:       "iPhone 13 128GB",
		Description: "Pouco usado, sem riscos",
		Price:       2500,
		Category:    "eletronicos",
		City:        "Campinas",
		Images:      []string{"https://cdn.example.com/photos/1.jpg"},
	}
}

func TestAdUsecase_CreateAd_DenormalizesSeller(t *testing.T) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	pub := new(MockEventPublisher)
	uc := NewAdUsecase(adRepo, userRepo, new(MockBoostedCache), pub, logger.NewLogger())

	seller := &domain.User{ID: "u1", FullName: "Maria Silva", ProfilePhoto: "photo.jpg", CurrentCommunityID: "c1"}
	userRepo.On("FindByID", mock.Anything, "u1").Return(seller, nil)
	adRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ad")).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ad, err := uc.CreateAd(context.Background(), "u1", validCreateInput())

	assert.NoError(t, err)
	assert.Equal(t, "Maria Silva", ad.SellerName)
	assert.Equal(t, "photo.jpg", ad.SellerPhoto)
	assert.Equal(t, "c1", ad.CommunityID)
	assert.Equal(t, domain.AdStatusActive, ad.Status)
	adRepo.AssertExpectations(t)
}

func TestAdUsecase_CreateAd_NeighborhoodOptional(t *testing.T) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	pub := new(MockEventPublisher)
	uc := NewAdUsecase(adRepo, userRepo, new(MockBoostedCache), pub, logger.NewLogger())

	userRepo.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)
	adRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	input := validCreateInput()
	input.Neighborhood = ""
	_, err := uc.CreateAd(context.Background(), "u1", input)

	assert.NoError(t, err)
}

func TestAdUsecase_CreateAd_RejectsWithoutImages(t *testing.T) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	uc := NewAdUsecase(adRepo, userRepo, new(MockBoostedCache), new(MockEventPublisher), logger.NewLogger())

	userRepo.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)

	input := validCreateInput()
	input.Images = nil
	_, err := uc.CreateAd(context.Background(), "u1", input)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	adRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdUsecase_EditAd_RequiresNeighborhood(t *testing.T) {
	adRepo := new(MockAdRepository)
	uc := NewAdUsecase(adRepo, new(MockUserRepository), new(MockBoostedCache), new(MockEventPublisher), logger.NewLogger())

	ad := &domain.Ad{ID: "a1", SellerID: "u1"}
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)

	input := EditAdInput{
		Title:       "iPhone 13",
		Description: "Atualizado",
		Price:       2400,
		Category:    "eletronicos",
		City:        "Campinas",
		// Neighborhood intentionally empty: the edit form always requires it.
		Images: []string{"1.jpg"},
	}
	_, err := uc.EditAd(context.Background(), "a1", "u1", input)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	adRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdUsecase_EditAd_ForbiddenForNonOwner(t *testing.T) {
	adRepo := new(MockAdRepository)
	uc := NewAdUsecase(adRepo, new(MockUserRepository), new(MockBoostedCache), new(MockEventPublisher), logger.NewLogger())

	ad := &domain.Ad{ID: "a1", SellerID: "owner"}
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)

	_, err := uc.EditAd(context.Background(), "a1", "intruder", EditAdInput{})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdUsecase_GetAd_CountsViewForVisitor(t *testing.T) {
	adRepo := new(MockAdRepository)
	uc := NewAdUsecase(adRepo, new(MockUserRepository), new(MockBoostedCache), new(MockEventPublisher), logger.NewLogger())

	ad := &domain.Ad{ID: "a1", SellerID: "owner", ViewsCount: 5}
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)
	adRepo.On("IncrementViews", mock.Anything, "a1").Return(nil)

	got, err := uc.GetAd(context.Background(), "a1", "visitor")

	assert.NoError(t, err)
	assert.Equal(t, int64(6), got.ViewsCount)
	adRepo.AssertCalled(t, "IncrementViews", mock.Anything, "a1")
}

func TestAdUsecase_GetAd_NoViewForOwner(t *testing.T) {
	adRepo := new(MockAdRepository)
	uc := NewAdUsecase(adRepo, new(MockUserRepository), new(MockBoostedCache), new(MockEventPublisher), logger.NewLogger())

	ad := &domain.Ad{ID: "a1", SellerID: "owner", ViewsCount: 5}
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)

	got, err := uc.GetAd(context.Background(), "a1", "owner")

	assert.NoError(t, err)
	assert.Equal(t, int64(5), got.ViewsCount)
	adRepo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestAdUsecase_MyAds_GroupsByStatus(t *testing.T) {
	adRepo := new(MockAdRepository)
	uc := NewAdUsecase(adRepo, new(MockUserRepository), new(MockBoostedCache), new(MockEventPublisher), logger.NewLogger())

	ads := []*domain.Ad{
		{ID: "a1", Status: domain.AdStatusActive},
		{ID: "a2", Status: domain.AdStatusSold},
		{ID: "a3", Status: domain.AdStatusActive},
	}
	adRepo.On("FindBySeller", mock.Anything, "u1").Return(ads, nil)

	grouped, err := uc.MyAds(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Len(t, grouped[domain.AdStatusActive], 2)
	assert.Len(t, grouped[domain.AdStatusSold], 1)
}

func TestAdUsecase_Boosted_ServesFromCache(t *testing.T) {
	adRepo := new(MockAdRepository)
	cache := new(MockBoostedCache)
	uc := NewAdUsecase(adRepo, new(MockUserRepository), cache, new(MockEventPublisher), logger.NewLogger())

	cached := []*domain.Ad{{ID: "a1", IsBoosted: true}}
	cache.On("GetBoosted", mock.Anything, "c1").Return(cached, nil)

	got, err := uc.Boosted(context.Background(), "c1")

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	adRepo.AssertNotCalled(t, "FindBoosted", mock.Anything, mock.Anything)
}

func TestAdUsecase_Boosted_MissFillsCacheAndDropsExpired(t *testing.T) {
	adRepo := new(MockAdRepository)
	cache := new(MockBoostedCache)
	uc := NewAdUsecase(adRepo, new(MockUserRepository), cache, new(MockEventPublisher), logger.NewLogger())

	future := time.Now().UTC().Add(2 * time.Hour)
	past := time.Now().UTC().Add(-2 * time.Hour)
	ads := []*domain.Ad{
		{ID: "live", Status: domain.AdStatusActive, IsBoosted: true, CommunityID: "c1", BoostExpiresAt: &future},
		{ID: "expired", Status: domain.AdStatusActive, IsBoosted: true, CommunityID: "c1", BoostExpiresAt: &past},
	}

	cache.On("GetBoosted", mock.Anything, "c1").Return(nil, nil)
	adRepo.On("FindBoosted", mock.Anything, "c1").Return(ads, nil)
	cache.On("SetBoosted", mock.Anything, "c1", mock.Anything).Return(nil)

	got, err := uc.Boosted(context.Background(), "c1")

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "live", got[0].ID)
	cache.AssertCalled(t, "SetBoosted", mock.Anything, "c1", mock.Anything)
}
