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

const favoriteCollectionName = "favorites"

// FavoriteRepository implements domain.FavoriteRepository using MongoDB.
type FavoriteRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewFavoriteRepository creates the favorites repository and ensures its
// indexes. The unique (user_id, ad_id) index is what enforces one favorite
// per user per ad.
func NewFavoriteRepository(db *mongo.Database, log *logger.Logger) (*FavoriteRepository, error) {
	collection := db.Collection(favoriteCollectionName)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "ad_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for favorites collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for favorites collection")
	}

	return &FavoriteRepository{
		collection: collection,
		logger:     log.Named("FavoriteRepository"),
	}, nil
}

// Add inserts a favorite snapshot. A repeated (user, ad) pair maps to
// domain.ErrDuplicateFavorite via the unique index.
func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	doc, err := fromDomainFavorite(favorite)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	favorite.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateFavorite
		}
		r.logger.Error("Failed to insert favorite into DB", zap.Error(err), zap.String("user_id", favorite.UserID))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// Remove deletes a favorite by ID.
func (r *FavoriteRepository) Remove(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete favorite from DB", zap.Error(err), zap.String("favorite_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByUser returns a user's favorites, newest first.
func (r *FavoriteRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		r.logger.Error("Failed to query favorites", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var favorites []*domain.Favorite
	for cursor.Next(ctx) {
		var doc favoriteDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Error("Failed to decode favorite document", zap.Error(err))
			return nil, fmt.Errorf("db decode failed: %w", err)
		}
		favorites = append(favorites, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("db cursor failed: %w", err)
	}
	return favorites, nil
}

// FindByUserAndAd looks up one favorite by its natural key.
func (r *FavoriteRepository) FindByUserAndAd(ctx context.Context, userID, adID string) (*domain.Favorite, error) {
	var doc favoriteDocument
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "ad_id": adID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get favorite from DB", zap.Error(err), zap.String("user_id", userID), zap.String("ad_id", adID))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}
