package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const communityCollectionName = "communities"

// CommunityRepository implements domain.CommunityRepository using MongoDB.
type CommunityRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewCommunityRepository creates the communities repository.
func NewCommunityRepository(db *mongo.Database, log *logger.Logger) (*CommunityRepository, error) {
	return &CommunityRepository{
		collection: db.Collection(communityCollectionName),
		logger:     log.Named("CommunityRepository"),
	}, nil
}

// FindActive returns the communities open for joining, alphabetically.
func (r *CommunityRepository) FindActive(ctx context.Context) ([]*domain.Community, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		r.logger.Error("Failed to query communities", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var communities []*domain.Community
	for cursor.Next(ctx) {
		var doc communityDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Error("Failed to decode community document", zap.Error(err))
			return nil, fmt.Errorf("db decode failed: %w", err)
		}
		communities = append(communities, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("db cursor failed: %w", err)
	}
	return communities, nil
}

// FindByID retrieves one community.
func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*domain.Community, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc communityDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get community by ID from DB", zap.Error(err), zap.String("community_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}
