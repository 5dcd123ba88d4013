package usecase

import (
	"context"
	"time"

	"github.com/viniciustorricelli/pensell/internal/adapter/messaging/nats"
	"github.com/viniciustorricelli/pensell/internal/boost"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// BoostUsecase drives the top up entitlement flow: status reads persist lazy
// state transitions, activation runs as a two-write saga with a compensating
// rollback.
type BoostUsecase struct {
	adRepo   domain.AdRepository
	userRepo domain.UserRepository
	cache    BoostedCache
	natsPub  domain.EventPublisher
	logger   *logger.Logger
	now      func() time.Time
}

// NewBoostUsecase creates a new BoostUsecase.
func NewBoostUsecase(adRepo domain.AdRepository, userRepo domain.UserRepository, cache BoostedCache, natsPub domain.EventPublisher, log *logger.Logger) *BoostUsecase {
	return &BoostUsecase{
		adRepo:   adRepo,
		userRepo: userRepo,
		cache:    cache,
		natsPub:  natsPub,
		logger:   log.Named("BoostUsecase"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// BoostStatus is the entitlement view the client renders.
type BoostStatus struct {
	State           boost.State
	AvailableTopups int
	Countdown       string
}

// GetStatus evaluates the user's entitlement and persists any lazy transition
// (first-use initialization or the 24h auto-reset).
func (uc *BoostUsecase) GetStatus(ctx context.Context, userID string) (BoostStatus, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return BoostStatus{}, err
	}

	status := boost.Evaluate(user.AvailableTopups, user.LastTopupReset, uc.now())
	if status.Mutated {
		if err := uc.userRepo.SetTopups(ctx, userID, status.AvailableTopups, status.LastTopupReset); err != nil {
			uc.logger.Error("Failed to persist topup state transition", zap.Error(err), zap.String("user_id", userID))
			return BoostStatus{}, err
		}
	}

	return BoostStatus{
		State:           status.State,
		AvailableTopups: status.AvailableTopups,
		Countdown:       boost.FormatRemaining(status.Remaining),
	}, nil
}

// Activate spends the user's credit to boost their own ad for 24 hours.
//
// The write order is ad first, entitlement second. If the entitlement write
// fails the ad's boost fields are rolled back so a credit is never consumed
// silently nor a boost granted for free.
func (uc *BoostUsecase) Activate(ctx context.Context, userID, adID string) (*domain.Ad, error) {
	uc.logger.Info("Activating boost", zap.String("user_id", userID), zap.String("ad_id", adID))

	ad, err := uc.adRepo.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.SellerID != userID {
		uc.logger.Warn("User forbidden to boost ad", zap.String("ad_id", adID), zap.String("requesting_user", userID))
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	if err := boost.CheckTarget(ad, now); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := boost.Evaluate(user.AvailableTopups, user.LastTopupReset, now)
	if status.State != boost.StateReady {
		uc.logger.Info("Boost rejected: cooling", zap.String("user_id", userID), zap.Duration("remaining", status.Remaining))
		return nil, domain.ErrBoostUnavailable
	}

	expiresAt := now.Add(boost.Window)
	if err := uc.adRepo.SetBoost(ctx, adID, expiresAt, boost.Package24h); err != nil {
		return nil, err
	}

	if err := uc.userRepo.SetTopups(ctx, userID, 0, now); err != nil {
		uc.logger.Error("Entitlement write failed, rolling back ad boost", zap.Error(err), zap.String("ad_id", adID))
		if rbErr := uc.adRepo.ClearBoost(ctx, adID); rbErr != nil {
			uc.logger.Error("Compensating rollback failed, ad left boosted", zap.Error(rbErr), zap.String("ad_id", adID))
		}
		return nil, err
	}

	ad.IsBoosted = true
	ad.BoostExpiresAt = &expiresAt
	ad.BoostPackage = boost.Package24h
	ad.Status = domain.AdStatusActive

	if uc.cache != nil {
		if err := uc.cache.InvalidateBoosted(ctx, ad.CommunityID); err != nil {
			uc.logger.Warn("Failed to invalidate boosted cache", zap.Error(err), zap.String("community_id", ad.CommunityID))
		}
	}

	eventData := map[string]interface{}{
		"ad_id":      adID,
		"seller_id":  userID,
		"package":    boost.Package24h,
		"expires_at": expiresAt.Format(time.RFC3339Nano),
	}
	if err := uc.natsPub.Publish(ctx, nats.SubjectAdBoosted, eventData); err != nil {
		uc.logger.Warn("Failed to publish ad.boosted event", zap.Error(err), zap.String("ad_id", adID))
	}

	uc.logger.Info("Boost activated", zap.String("ad_id", adID), zap.Time("expires_at", expiresAt))
	return ad, nil
}
