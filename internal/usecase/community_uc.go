package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// CommunityUsecase lists communities, switches the user's current one and
// forwards open-a-community requests to the admins.
type CommunityUsecase struct {
	communityRepo domain.CommunityRepository
	userRepo      domain.UserRepository
	mailer        domain.Mailer
	logger        *logger.Logger
}

// NewCommunityUsecase creates a new CommunityUsecase.
func NewCommunityUsecase(communityRepo domain.CommunityRepository, userRepo domain.UserRepository, mailer domain.Mailer, log *logger.Logger) *CommunityUsecase {
	return &CommunityUsecase{
		communityRepo: communityRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		logger:        log.Named("CommunityUsecase"),
	}
}

// List returns active communities, optionally filtered by a case-insensitive
// substring match on name or city.
func (uc *CommunityUsecase) List(ctx context.Context, query string) ([]*domain.Community, error) {
	communities, err := uc.communityRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return communities, nil
	}

	out := make([]*domain.Community, 0, len(communities))
	for _, c := range communities {
		if strings.Contains(strings.ToLower(c.Name), query) || strings.Contains(strings.ToLower(c.City), query) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Select makes communityID the user's current community and records the
// membership.
func (uc *CommunityUsecase) Select(ctx context.Context, userID, communityID string) error {
	community, err := uc.communityRepo.FindByID(ctx, communityID)
	if err != nil {
		return err
	}
	if !community.IsActive {
		return fmt.Errorf("%w: community %q is not active", domain.ErrInvalidInput, community.Name)
	}

	if err := uc.userRepo.SetCommunity(ctx, userID, communityID); err != nil {
		return err
	}
	uc.logger.Info("Community selected", zap.String("user_id", userID), zap.String("community_id", communityID))
	return nil
}

// Request mails a new-community request to the admins.
func (uc *CommunityUsecase) Request(ctx context.Context, request domain.CommunityRequest) error {
	if strings.TrimSpace(request.Name) == "" || strings.TrimSpace(request.City) == "" {
		return fmt.Errorf("%w: community name and city are required", domain.ErrInvalidInput)
	}
	if err := uc.mailer.SendCommunityRequest(request); err != nil {
		uc.logger.Error("Failed to send community request email", zap.Error(err), zap.String("name", request.Name))
		return err
	}
	uc.logger.Info("Community request sent", zap.String("name", request.Name), zap.String("city", request.City))
	return nil
}
