package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/viniciustorricelli/pensell/internal/boost"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
)

var boostNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newBoostUsecase(adRepo *MockAdRepository, userRepo *MockUserRepository, cache *MockBoostedCache, pub *MockEventPublisher) *BoostUsecase {
	uc := NewBoostUsecase(adRepo, userRepo, cache, pub, logger.NewLogger())
	uc.now = func() time.Time { return boostNow }
	return uc
}

func readyUser(id string) *domain.User {
	topups := 1
	reset := boostNow.Add(-2 * time.Hour)
	return &domain.User{ID: id, AvailableTopups: &topups, LastTopupReset: &reset}
}

func TestBoostUsecase_GetStatus_FirstUseInitializes(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newBoostUsecase(new(MockAdRepository), userRepo, new(MockBoostedCache), new(MockEventPublisher))

	userRepo.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)
	userRepo.On("SetTopups", mock.Anything, "u1", 1, boostNow).Return(nil)

	status, err := uc.GetStatus(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Equal(t, boost.StateReady, status.State)
	assert.Equal(t, 1, status.AvailableTopups)
	userRepo.AssertExpectations(t)
}

func TestBoostUsecase_GetStatus_CoolingExposesCountdown(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newBoostUsecase(new(MockAdRepository), userRepo, new(MockBoostedCache), new(MockEventPublisher))

	topups := 0
	reset := boostNow.Add(-1 * time.Hour)
	userRepo.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", AvailableTopups: &topups, LastTopupReset: &reset}, nil)

	status, err := uc.GetStatus(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Equal(t, boost.StateCooling, status.State)
	assert.Equal(t, "23h 0m 0s", status.Countdown)
	userRepo.AssertNotCalled(t, "SetTopups", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBoostUsecase_Activate_Success(t *testing.T) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	cache := new(MockBoostedCache)
	pub := new(MockEventPublisher)
	uc := newBoostUsecase(adRepo, userRepo, cache, pub)

	ad := &domain.Ad{ID: "a1", SellerID: "u1", CommunityID: "c1", Status: domain.AdStatusActive}
	expiresAt := boostNow.Add(boost.Window)

	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)
	userRepo.On("FindByID", mock.Anything, "u1").Return(readyUser("u1"), nil)
	adRepo.On("SetBoost", mock.Anything, "a1", expiresAt, boost.Package24h).Return(nil)
	userRepo.On("SetTopups", mock.Anything, "u1", 0, boostNow).Return(nil)
	cache.On("InvalidateBoosted", mock.Anything, "c1").Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	boosted, err := uc.Activate(context.Background(), "u1", "a1")

	assert.NoError(t, err)
	assert.True(t, boosted.IsBoosted)
	assert.Equal(t, expiresAt, *boosted.BoostExpiresAt)
	assert.Equal(t, boost.Package24h, boosted.BoostPackage)
	adRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestBoostUsecase_Activate_RollsBackOnEntitlementFailure(t *testing.T) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	uc := newBoostUsecase(adRepo, userRepo, new(MockBoostedCache), new(MockEventPublisher))

	ad := &domain.Ad{ID: "a1", SellerID: "u1", Status: domain.AdStatusActive}
	writeErr := errors.New("write failed")

	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)
	userRepo.On("FindByID", mock.Anything, "u1").Return(readyUser("u1"), nil)
	adRepo.On("SetBoost", mock.Anything, "a1", mock.Anything, boost.Package24h).Return(nil)
	userRepo.On("SetTopups", mock.Anything, "u1", 0, boostNow).Return(writeErr)
	adRepo.On("ClearBoost", mock.Anything, "a1").Return(nil)

	_, err := uc.Activate(context.Background(), "u1", "a1")

	assert.ErrorIs(t, err, writeErr)
	adRepo.AssertCalled(t, "ClearBoost", mock.Anything, "a1")
}

func TestBoostUsecase_Activate_RejectsAlreadyBoostedWithoutMutation(t *testing.T) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	uc := newBoostUsecase(adRepo, userRepo, new(MockBoostedCache), new(MockEventPublisher))

	expires := boostNow.Add(3 * time.Hour)
	ad := &domain.Ad{ID: "a1", SellerID: "u1", IsBoosted: true, BoostExpiresAt: &expires}
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)

	_, err := uc.Activate(context.Background(), "u1", "a1")

	assert.ErrorIs(t, err, domain.ErrAlreadyBoosted)
	adRepo.AssertNotCalled(t, "SetBoost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "SetTopups", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBoostUsecase_Activate_RejectsDuringCooldown(t *testing.T) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	uc := newBoostUsecase(adRepo, userRepo, new(MockBoostedCache), new(MockEventPublisher))

	ad := &domain.Ad{ID: "a1", SellerID: "u1", Status: domain.AdStatusActive}
	topups := 0
	reset := boostNow.Add(-1 * time.Hour)
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)
	userRepo.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", AvailableTopups: &topups, LastTopupReset: &reset}, nil)

	_, err := uc.Activate(context.Background(), "u1", "a1")

	assert.ErrorIs(t, err, domain.ErrBoostUnavailable)
	adRepo.AssertNotCalled(t, "SetBoost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBoostUsecase_Activate_ForbiddenForNonOwner(t *testing.T) {
	adRepo := new(MockAdRepository)
	uc := newBoostUsecase(adRepo, new(MockUserRepository), new(MockBoostedCache), new(MockEventPublisher))

	ad := &domain.Ad{ID: "a1", SellerID: "someone-else"}
	adRepo.On("FindByID", mock.Anything, "a1").Return(ad, nil)

	_, err := uc.Activate(context.Background(), "u1", "a1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
