package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
)

func TestFavoriteUsecase_Toggle_AddsSnapshotAndBumpsSaves(t *testing.T) {
	favoriteRepo := new(MockFavoriteRepository)
	adRepo := new(MockAdRepository)
	uc := NewFavoriteUsecase(favoriteRepo, adRepo, logger.NewLogger())

	ad := &domain.Ad{ID: "a1", Title: "Sofá 3 lugares", Price: 800, Images: []string{"sofa.jpg"}}
	favoriteRepo.On("FindByUserAndAd", mock.Anything, "u1", "a1").Return(nil, domain.ErrNotFound)
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)
	favoriteRepo.On("Add", mock.Anything, mock.MatchedBy(func(f *domain.Favorite) bool {
		return f.UserID == "u1" && f.AdID == "a1" && f.AdTitle == "Sofá 3 lugares" && f.AdImage == "sofa.jpg"
	})).Return(nil)
	adRepo.On("AdjustSaves", mock.Anything, "a1", int64(1)).Return(nil)

	favorited, err := uc.Toggle(context.Background(), "u1", "a1")

	assert.NoError(t, err)
	assert.True(t, favorited)
	favoriteRepo.AssertExpectations(t)
	adRepo.AssertExpectations(t)
}

func TestFavoriteUsecase_Toggle_RemovesAndDecrementsSaves(t *testing.T) {
	favoriteRepo := new(MockFavoriteRepository)
	adRepo := new(MockAdRepository)
	uc := NewFavoriteUsecase(favoriteRepo, adRepo, logger.NewLogger())

	existing := &domain.Favorite{ID: "f1", UserID: "u1", AdID: "a1"}
	favoriteRepo.On("FindByUserAndAd", mock.Anything, "u1", "a1").Return(existing, nil)
	favoriteRepo.On("Remove", mock.Anything, "f1").Return(nil)
	adRepo.On("AdjustSaves", mock.Anything, "a1", int64(-1)).Return(nil)

	favorited, err := uc.Toggle(context.Background(), "u1", "a1")

	assert.NoError(t, err)
	assert.False(t, favorited)
	adRepo.AssertCalled(t, "AdjustSaves", mock.Anything, "a1", int64(-1))
}

func TestFavoriteUsecase_Toggle_SurfacesDuplicate(t *testing.T) {
	favoriteRepo := new(MockFavoriteRepository)
	adRepo := new(MockAdRepository)
	uc := NewFavoriteUsecase(favoriteRepo, adRepo, logger.NewLogger())

	favoriteRepo.On("FindByUserAndAd", mock.Anything, "u1", "a1").Return(nil, domain.ErrNotFound)
	adRepo.On("FindByID", mock.Anything, "a1").Return(&domain.Ad{ID: "a1"}, nil)
	favoriteRepo.On("Add", mock.Anything, mock.Anything).Return(domain.ErrDuplicateFavorite)

	favorited, err := uc.Toggle(context.Background(), "u1", "a1")

	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)
	assert.True(t, favorited)
	adRepo.AssertNotCalled(t, "AdjustSaves", mock.Anything, mock.Anything, mock.Anything)
}

func TestFavoriteUsecase_List_DropsInactiveAds(t *testing.T) {
	favoriteRepo := new(MockFavoriteRepository)
	adRepo := new(MockAdRepository)
	uc := NewFavoriteUsecase(favoriteRepo, adRepo, logger.NewLogger())

	favorites := []*domain.Favorite{
		{ID: "f1", UserID: "u1", AdID: "live"},
		{ID: "f2", UserID: "u1", AdID: "sold"},
		{ID: "f3", UserID: "u1", AdID: "gone"},
	}
	favoriteRepo.On("FindByUser", mock.Anything, "u1").Return(favorites, nil)
	adRepo.On("FindByID", mock.Anything, "live").Return(&domain.Ad{ID: "live", Status: domain.AdStatusActive, Title: "Bicicleta"}, nil)
	adRepo.On("FindByID", mock.Anything, "sold").Return(&domain.Ad{ID: "sold", Status: domain.AdStatusSold}, nil)
	adRepo.On("FindByID", mock.Anything, "gone").Return(nil, domain.ErrNotFound)

	out, err := uc.List(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "live", out[0].AdID)
	assert.Equal(t, "Bicicleta", out[0].AdTitle)
}
