package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

type MockAdRepository struct{ mock.Mock }

func (m *MockAdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}
func (m *MockAdRepository) Update(ctx context.Context, ad *domain.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}
func (m *MockAdRepository) UpdateStatus(ctx context.Context, id string, status domain.AdStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockAdRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) FindActive(ctx context.Context, communityID string) ([]*domain.Ad, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) FindBySeller(ctx context.Context, sellerID string) ([]*domain.Ad, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) FindBoosted(ctx context.Context, communityID string) ([]*domain.Ad, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAdRepository) AdjustSaves(ctx context.Context, id string, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}
func (m *MockAdRepository) IncrementChatClicks(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAdRepository) SetBoost(ctx context.Context, id string, expiresAt time.Time, boostPackage string) error {
	args := m.Called(ctx, id, expiresAt, boostPackage)
	return args.Error(0)
}
func (m *MockAdRepository) ClearBoost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) SetTopups(ctx context.Context, id string, available int, resetAt time.Time) error {
	args := m.Called(ctx, id, available, resetAt)
	return args.Error(0)
}
func (m *MockUserRepository) SetCommunity(ctx context.Context, id, communityID string) error {
	args := m.Called(ctx, id, communityID)
	return args.Error(0)
}

type MockFavoriteRepository struct{ mock.Mock }

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}
func (m *MockFavoriteRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFavoriteRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Favorite), args.Error(1)
}
func (m *MockFavoriteRepository) FindByUserAndAd(ctx context.Context, userID, adID string) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, adID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

type MockConversationRepository struct{ mock.Mock }

func (m *MockConversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}
func (m *MockConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}
func (m *MockConversationRepository) FindByAdAndBuyer(ctx context.Context, adID, buyerID string) (*domain.Conversation, error) {
	args := m.Called(ctx, adID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}
func (m *MockConversationRepository) FindByParticipant(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Conversation), args.Error(1)
}
func (m *MockConversationRepository) RecordMessage(ctx context.Context, id, preview string, at time.Time, recipientIsSeller bool) error {
	args := m.Called(ctx, id, preview, at, recipientIsSeller)
	return args.Error(0)
}
func (m *MockConversationRepository) MarkRead(ctx context.Context, id string, readerIsBuyer bool) error {
	args := m.Called(ctx, id, readerIsBuyer)
	return args.Error(0)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *MockMessageRepository) FindByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

type MockCommunityRepository struct{ mock.Mock }

func (m *MockCommunityRepository) FindActive(ctx context.Context) ([]*domain.Community, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Community), args.Error(1)
}
func (m *MockCommunityRepository) FindByID(ctx context.Context, id string) (*domain.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepository) FindBySeller(ctx context.Context, sellerID string) ([]*domain.Review, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockBoostedCache struct{ mock.Mock }

func (m *MockBoostedCache) GetBoosted(ctx context.Context, communityID string) ([]*domain.Ad, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}
func (m *MockBoostedCache) SetBoosted(ctx context.Context, communityID string, ads []*domain.Ad) error {
	args := m.Called(ctx, communityID, ads)
	return args.Error(0)
}
func (m *MockBoostedCache) InvalidateBoosted(ctx context.Context, communityID string) error {
	args := m.Called(ctx, communityID)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendReport(report domain.Report) error {
	args := m.Called(report)
	return args.Error(0)
}
func (m *MockMailer) SendCommunityRequest(request domain.CommunityRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}
