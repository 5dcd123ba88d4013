package mongodb

import (
	"context"
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

const messageCollectionName = "messages"

// MessageRepository implements domain.MessageRepository using MongoDB.
type MessageRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewMessageRepository creates the messages repository and ensures its index.
func NewMessageRepository(db *mongo.Database, log *logger.Logger) (*MessageRepository, error) {
	collection := db.Collection(messageCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for messages collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for messages collection")
	}

	return &MessageRepository{
		collection: collection,
		logger:     log.Named("MessageRepository"),
	}, nil
}

// Create appends a message to its conversation.
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	doc := &messageDocument{
		ID:             primitive.NewObjectID(),
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		SenderName:     message.SenderName,
		Content:        message.Content,
		ImageURL:       message.ImageURL,
		CreatedAt:      message.CreatedAt,
	}
	message.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert message into DB", zap.Error(err), zap.String("conversation_id", message.ConversationID))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// FindByConversation returns a conversation's messages oldest first.
func (r *MessageRepository) FindByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		r.logger.Error("Failed to query messages", zap.Error(err), zap.String("conversation_id", conversationID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*domain.Message
	for cursor.Next(ctx) {
		var doc messageDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Error("Failed to decode message document", zap.Error(err))
			return nil, fmt.Errorf("db decode failed: %w", err)
		}
		messages = append(messages, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("db cursor failed: %w", err)
	}
	return messages, nil
}
