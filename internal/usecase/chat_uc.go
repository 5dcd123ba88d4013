package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viniciustorricelli/pensell/internal/adapter/messaging/nats"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// imagePreview is the inbox preview shown for image-only messages.
const imagePreview = "📷 Imagem"

// ChatUsecase implements buyer/seller conversations: one thread per
// (ad, buyer) pair, per-side unread counters and an append-only message log.
type ChatUsecase struct {
	conversationRepo domain.ConversationRepository
	messageRepo      domain.MessageRepository
	adRepo           domain.AdRepository
	userRepo         domain.UserRepository
	natsPub          domain.EventPublisher
	logger           *logger.Logger
}

// NewChatUsecase creates a new ChatUsecase.
func NewChatUsecase(conversationRepo domain.ConversationRepository, messageRepo domain.MessageRepository, adRepo domain.AdRepository, userRepo domain.UserRepository, natsPub domain.EventPublisher, log *logger.Logger) *ChatUsecase {
	return &ChatUsecase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		adRepo:           adRepo,
		userRepo:         userRepo,
		natsPub:          natsPub,
		logger:           log.Named("ChatUsecase"),
	}
}

// StartConversation opens (or reuses) the thread between buyerID and the
// ad's seller. Sellers cannot open a thread on their own ad. A fresh thread
// counts as one chat click on the ad.
func (uc *ChatUsecase) StartConversation(ctx context.Context, adID, buyerID string) (*domain.Conversation, error) {
	ad, err := uc.adRepo.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.SellerID == buyerID {
		uc.logger.Warn("Seller tried to open a conversation on own ad", zap.String("ad_id", adID), zap.String("user_id", buyerID))
		return nil, domain.ErrForbidden
	}

	existing, err := uc.conversationRepo.FindByAdAndBuyer(ctx, adID, buyerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	buyer, err := uc.userRepo.FindByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	conversation := &domain.Conversation{
		AdID:          ad.ID,
		AdTitle:       ad.Title,
		AdPrice:       ad.Price,
		BuyerID:       buyer.ID,
		BuyerName:     buyer.FullName,
		BuyerPhoto:    buyer.ProfilePhoto,
		SellerID:      ad.SellerID,
		SellerName:    ad.SellerName,
		SellerPhoto:   ad.SellerPhoto,
		LastMessageAt: time.Now().UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	if len(ad.Images) > 0 {
		conversation.AdImage = ad.Images[0]
	}

	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}
	if err := uc.adRepo.IncrementChatClicks(ctx, adID); err != nil {
		uc.logger.Warn("Failed to increment chat clicks", zap.Error(err), zap.String("ad_id", adID))
	}
	return conversation, nil
}

// ListConversations returns the user's inbox, most recently active first.
func (uc *ChatUsecase) ListConversations(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	return uc.conversationRepo.FindByParticipant(ctx, userID)
}

// UnreadCount returns how many conversations carry unread messages for the
// user. This backs the inbox badge.
func (uc *ChatUsecase) UnreadCount(ctx context.Context, userID string) (int, error) {
	conversations, err := uc.conversationRepo.FindByParticipant(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range conversations {
		if c.UnreadFor(userID) > 0 {
			count++
		}
	}
	return count, nil
}

// SendMessage appends a text or image message and updates the thread's
// preview and the recipient's unread counter.
func (uc *ChatUsecase) SendMessage(ctx context.Context, conversationID, senderID, content, imageURL string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" && imageURL == "" {
		return nil, fmt.Errorf("%w: message needs text or an image", domain.ErrInvalidInput)
	}

	conversation, err := uc.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		uc.logger.Warn("Non-participant tried to send a message", zap.String("conversation_id", conversationID), zap.String("user_id", senderID))
		return nil, domain.ErrForbidden
	}

	senderName := conversation.BuyerName
	if senderID == conversation.SellerID {
		senderName = conversation.SellerName
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     senderName,
		Content:        content,
		ImageURL:       imageURL,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	preview := content
	if preview == "" {
		preview = imagePreview
	}
	recipientIsSeller := senderID == conversation.BuyerID
	if err := uc.conversationRepo.RecordMessage(ctx, conversationID, preview, message.CreatedAt, recipientIsSeller); err != nil {
		uc.logger.Warn("Failed to update conversation preview", zap.Error(err), zap.String("conversation_id", conversationID))
	}

	eventData := map[string]interface{}{
		"conversation_id": conversationID,
		"sender_id":       senderID,
		"has_image":       imageURL != "",
		"sent_at":         message.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := uc.natsPub.Publish(ctx, nats.SubjectMessageSent, eventData); err != nil {
		uc.logger.Warn("Failed to publish chat.message_sent event", zap.Error(err), zap.String("conversation_id", conversationID))
	}
	return message, nil
}

// Messages returns the thread history oldest first and marks the caller's
// side read.
func (uc *ChatUsecase) Messages(ctx context.Context, conversationID, userID string) ([]*domain.Message, error) {
	conversation, err := uc.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, domain.ErrForbidden
	}

	messages, err := uc.messageRepo.FindByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	readerIsBuyer := userID == conversation.BuyerID
	if err := uc.conversationRepo.MarkRead(ctx, conversationID, readerIsBuyer); err != nil {
		uc.logger.Warn("Failed to mark conversation read", zap.Error(err), zap.String("conversation_id", conversationID))
	}
	return messages, nil
}

// MarkRead zeroes the caller's unread counter without fetching history.
func (uc *ChatUsecase) MarkRead(ctx context.Context, conversationID, userID string) error {
	conversation, err := uc.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return domain.ErrForbidden
	}
	return uc.conversationRepo.MarkRead(ctx, conversationID, userID == conversation.BuyerID)
}
