package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const conversationCollectionName = "conversations"

// ConversationRepository implements domain.ConversationRepository using MongoDB.
type ConversationRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewConversationRepository creates the conversations repository and ensures
// its indexes. The unique (ad_id, buyer_id) index backs thread deduplication.
func NewConversationRepository(db *mongo.Database, log *logger.Logger) (*ConversationRepository, error) {
	collection := db.Collection(conversationCollectionName)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ad_id", Value: 1}, {Key: "buyer_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "last_message_at", Value: -1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "last_message_at", Value: -1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for conversations collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for conversations collection")
	}

	return &ConversationRepository{
		collection: collection,
		logger:     log.Named("ConversationRepository"),
	}, nil
}

// Create inserts a new thread.
func (r *ConversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	doc, err := fromDomainConversation(conversation)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	conversation.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert conversation into DB", zap.Error(err), zap.String("ad_id", conversation.AdID))
		return fmt.Errorf("db insert failed: %w", err)
	}
	r.logger.Info("Conversation created", zap.String("conversation_id", conversation.ID), zap.String("ad_id", conversation.AdID))
	return nil
}

// FindByID retrieves one thread.
func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc conversationDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get conversation by ID from DB", zap.Error(err), zap.String("conversation_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByAdAndBuyer looks up an existing thread by its natural key.
func (r *ConversationRepository) FindByAdAndBuyer(ctx context.Context, adID, buyerID string) (*domain.Conversation, error) {
	var doc conversationDocument
	if err := r.collection.FindOne(ctx, bson.M{"ad_id": adID, "buyer_id": buyerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get conversation from DB", zap.Error(err), zap.String("ad_id", adID), zap.String("buyer_id", buyerID))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByParticipant returns threads where the user is buyer or seller, most
// recently active first.
func (r *ConversationRepository) FindByParticipant(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"buyer_id": userID},
		bson.M{"seller_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to query conversations", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []*domain.Conversation
	for cursor.Next(ctx) {
		var doc conversationDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Error("Failed to decode conversation document", zap.Error(err))
			return nil, fmt.Errorf("db decode failed: %w", err)
		}
		conversations = append(conversations, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("db cursor failed: %w", err)
	}
	return conversations, nil
}

// RecordMessage updates the inbox preview and bumps the recipient's unread
// counter in one write.
func (r *ConversationRepository) RecordMessage(ctx context.Context, id, preview string, at time.Time, recipientIsSeller bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	unreadField := "unread_buyer"
	if recipientIsSeller {
		unreadField = "unread_seller"
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"last_message": preview, "last_message_at": at},
		"$inc": bson.M{unreadField: 1},
	})
	if err != nil {
		r.logger.Error("Failed to record message on conversation", zap.Error(err), zap.String("conversation_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkRead zeroes the reader's unread counter.
func (r *ConversationRepository) MarkRead(ctx context.Context, id string, readerIsBuyer bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	unreadField := "unread_seller"
	if readerIsBuyer {
		unreadField = "unread_buyer"
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{unreadField: 0},
	})
	if err != nil {
		r.logger.Error("Failed to mark conversation read", zap.Error(err), zap.String("conversation_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
