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

const userCollectionName = "users"

// UserRepository implements domain.UserRepository using MongoDB.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates the users repository and ensures its indexes.
func NewUserRepository(db *mongo.Database, log *logger.Logger) (*UserRepository, error) {
	collection := db.Collection(userCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "current_community_id", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for users collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for users collection")
	}

	return &UserRepository{
		collection: collection,
		logger:     log.Named("UserRepository"),
	}, nil
}

// FindByID retrieves one user.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get user by ID from DB", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateProfile applies the non-nil fields and returns the updated user.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.ProfilePhoto != nil {
		set["profile_photo"] = *update.ProfilePhoto
	}
	if update.City != nil {
		set["city"] = *update.City
	}
	if update.Neighborhood != nil {
		set["neighborhood"] = *update.Neighborhood
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to update user profile", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("db update failed: %w", err)
	}
	r.logger.Info("User profile updated", zap.String("user_id", id))
	return doc.toDomain(), nil
}

// SetTopups stores the boost entitlement counters.
func (r *UserRepository) SetTopups(ctx context.Context, id string, available int, resetAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"available_topups": available,
		"last_topup_reset": resetAt,
		"updated_at":       time.Now().UTC(),
	}})
	if err != nil {
		r.logger.Error("Failed to set user topups", zap.Error(err), zap.String("user_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetCommunity switches the current community and records membership once.
func (r *UserRepository) SetCommunity(ctx context.Context, id, communityID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":      bson.M{"current_community_id": communityID, "updated_at": time.Now().UTC()},
		"$addToSet": bson.M{"communities": communityID},
	})
	if err != nil {
		r.logger.Error("Failed to set user community", zap.Error(err), zap.String("user_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("User community updated", zap.String("user_id", id), zap.String("community_id", communityID))
	return nil
}
