package domain

import (
	"context"
	"time"
)

// AdRepository persists ads and their read-side counters.
type AdRepository interface {
	Create(ctx context.Context, ad *Ad) error
	Update(ctx context.Context, ad *Ad) error
	UpdateStatus(ctx context.Context, id string, status AdStatus) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Ad, error)
	// FindActive returns every active ad, optionally scoped to a community.
	FindActive(ctx context.Context, communityID string) ([]*Ad, error)
	// FindBySeller returns all of a seller's ads, newest first.
	FindBySeller(ctx context.Context, sellerID string) ([]*Ad, error)
	// FindBoosted returns active ads flagged as boosted, newest first.
	// Expiry filtering is the caller's concern.
	FindBoosted(ctx context.Context, communityID string) ([]*Ad, error)
	IncrementViews(ctx context.Context, id string) error
	// AdjustSaves increments or decrements saves_count; decrements never go below zero.
	AdjustSaves(ctx context.Context, id string, delta int64) error
	IncrementChatClicks(ctx context.Context, id string) error
	// SetBoost marks the ad boosted and active until expiresAt.
	SetBoost(ctx context.Context, id string, expiresAt time.Time, boostPackage string) error
	// ClearBoost reverts the boost fields (compensating action for a failed activation).
	ClearBoost(ctx context.Context, id string) error
}

// UserRepository persists marketplace profiles.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
	// SetTopups stores the boost entitlement counters.
	SetTopups(ctx context.Context, id string, available int, resetAt time.Time) error
	// SetCommunity switches the current community and records membership.
	SetCommunity(ctx context.Context, id, communityID string) error
}

// FavoriteRepository persists per-user ad snapshots.
// Add returns ErrDuplicateFavorite for a repeated (user, ad) pair.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, id string) error
	FindByUser(ctx context.Context, userID string) ([]*Favorite, error)
	FindByUserAndAd(ctx context.Context, userID, adID string) (*Favorite, error)
}

// ConversationRepository persists chat threads.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByID(ctx context.Context, id string) (*Conversation, error)
	FindByAdAndBuyer(ctx context.Context, adID, buyerID string) (*Conversation, error)
	// FindByParticipant returns threads where the user is buyer or seller,
	// most recently active first.
	FindByParticipant(ctx context.Context, userID string) ([]*Conversation, error)
	// RecordMessage updates the preview and bumps the recipient's unread counter.
	RecordMessage(ctx context.Context, id, preview string, at time.Time, recipientIsSeller bool) error
	// MarkRead zeroes the reader's unread counter.
	MarkRead(ctx context.Context, id string, readerIsBuyer bool) error
}

// MessageRepository persists the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// FindByConversation returns messages oldest first.
	FindByConversation(ctx context.Context, conversationID string) ([]*Message, error)
}

// CommunityRepository lists the partitions users can join.
type CommunityRepository interface {
	FindActive(ctx context.Context) ([]*Community, error)
	FindByID(ctx context.Context, id string) (*Community, error)
}

// ReviewRepository persists seller reviews.
// Create returns ErrDuplicateReview for a repeated (seller, reviewer) pair.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	// FindBySeller returns a seller's reviews, newest first.
	FindBySeller(ctx context.Context, sellerID string) ([]*Review, error)
}

// PhotoStorage stores uploaded images and returns their public URL.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// EventPublisher emits domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer delivers operational emails to the marketplace admins.
type Mailer interface {
	SendReport(report Report) error
	SendCommunityRequest(request CommunityRequest) error
}

// Report is an abuse report about an ad or a user.
type Report struct {
	Type          string
	ItemID        string
	ItemTitle     string
	ReporterName  string
	ReporterEmail string
	Description   string
}

// CommunityRequest asks the admins to open a new community.
type CommunityRequest struct {
	Name           string
	City           string
	Details        string
	RequesterName  string
	RequesterEmail string
}
