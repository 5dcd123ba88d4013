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

const adCollectionName = "ads"

// AdRepository implements domain.AdRepository using MongoDB.
type AdRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewAdRepository creates the ads repository and ensures its indexes.
func NewAdRepository(db *mongo.Database, log *logger.Logger) (*AdRepository, error) {
	collection := db.Collection(adCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "community_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_boosted", Value: 1}, {Key: "status", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for ads collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for ads collection")
	}

	return &AdRepository{
		collection: collection,
		logger:     log.Named("AdRepository"),
	}, nil
}

// Create inserts a new ad.
func (r *AdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	r.logger.Info("Creating ad in DB", zap.String("seller_id", ad.SellerID), zap.String("title", ad.Title))

	doc, err := fromDomainAd(ad)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	ad.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert ad into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// Update replaces the editable fields of an existing ad.
func (r *AdRepository) Update(ctx context.Context, ad *domain.Ad) error {
	r.logger.Info("Updating ad in DB", zap.String("ad_id", ad.ID))

	doc, err := fromDomainAd(ad)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	doc.UpdatedAt = time.Now().UTC()
	ad.UpdatedAt = doc.UpdatedAt

	update := bson.M{"$set": bson.M{
		"title":                 doc.Title,
		"description":           doc.Description,
		"price":                 doc.Price,
		"category":              doc.Category,
		"location_city":         doc.LocationCity,
		"location_neighborhood": doc.LocationNeighborhood,
		"images":                doc.Images,
		"updated_at":            doc.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Failed to update ad in DB", zap.Error(err), zap.String("ad_id", ad.ID))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus switches the lifecycle status of an ad.
func (r *AdRepository) UpdateStatus(ctx context.Context, id string, status domain.AdStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		r.logger.Error("Failed to update ad status", zap.Error(err), zap.String("ad_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an ad.
func (r *AdRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete ad from DB", zap.Error(err), zap.String("ad_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("Ad deleted from DB", zap.String("ad_id", id))
	return nil
}

// FindByID retrieves one ad.
func (r *AdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc adDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get ad by ID from DB", zap.Error(err), zap.String("ad_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// FindActive returns every active ad, optionally scoped to a community,
// newest first. The feed engine does the rest of the filtering in memory.
func (r *AdRepository) FindActive(ctx context.Context, communityID string) ([]*domain.Ad, error) {
	filter := bson.M{"status": string(domain.AdStatusActive)}
	if communityID != "" {
		filter["community_id"] = communityID
	}
	return r.findSorted(ctx, filter)
}

// FindBySeller returns all of a seller's ads, newest first.
func (r *AdRepository) FindBySeller(ctx context.Context, sellerID string) ([]*domain.Ad, error) {
	return r.findSorted(ctx, bson.M{"seller_id": sellerID})
}

// FindBoosted returns active boosted ads, newest first, without expiry filtering.
func (r *AdRepository) FindBoosted(ctx context.Context, communityID string) ([]*domain.Ad, error) {
	filter := bson.M{
		"is_boosted": true,
		"status":     string(domain.AdStatusActive),
	}
	if communityID != "" {
		filter["community_id"] = communityID
	}
	return r.findSorted(ctx, filter)
}

func (r *AdRepository) findSorted(ctx context.Context, filter bson.M) ([]*domain.Ad, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to query ads", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var ads []*domain.Ad
	for cursor.Next(ctx) {
		var doc adDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Error("Failed to decode ad document", zap.Error(err))
			return nil, fmt.Errorf("db decode failed: %w", err)
		}
		ads = append(ads, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("db cursor failed: %w", err)
	}
	return ads, nil
}

// IncrementViews bumps views_count atomically.
func (r *AdRepository) IncrementViews(ctx context.Context, id string) error {
	return r.increment(ctx, id, "views_count", 1)
}

// IncrementChatClicks bumps chat_clicks atomically.
func (r *AdRepository) IncrementChatClicks(ctx context.Context, id string) error {
	return r.increment(ctx, id, "chat_clicks", 1)
}

// AdjustSaves moves saves_count by delta. Decrements only apply while the
// counter is positive so it never drops below zero.
func (r *AdRepository) AdjustSaves(ctx context.Context, id string, delta int64) error {
	if delta >= 0 {
		return r.increment(ctx, id, "saves_count", delta)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "saves_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"saves_count": delta}},
	)
	if err != nil {
		return fmt.Errorf("db update failed: %w", err)
	}
	return nil
}

func (r *AdRepository) increment(ctx context.Context, id, field string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		r.logger.Error("Failed to increment ad counter", zap.Error(err), zap.String("ad_id", id), zap.String("field", field))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetBoost marks the ad boosted and active until expiresAt.
func (r *AdRepository) SetBoost(ctx context.Context, id string, expiresAt time.Time, boostPackage string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"is_boosted":       true,
		"boost_expires_at": expiresAt,
		"boost_package":    boostPackage,
		"status":           string(domain.AdStatusActive),
		"updated_at":       time.Now().UTC(),
	}})
	if err != nil {
		r.logger.Error("Failed to set boost on ad", zap.Error(err), zap.String("ad_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("Boost set on ad", zap.String("ad_id", id), zap.Time("expires_at", expiresAt))
	return nil
}

// ClearBoost reverts the boost fields. Used as the compensating action when
// the entitlement write fails after the ad write succeeded.
func (r *AdRepository) ClearBoost(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":   bson.M{"is_boosted": false, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"boost_expires_at": "", "boost_package": ""},
	})
	if err != nil {
		r.logger.Error("Failed to clear boost on ad", zap.Error(err), zap.String("ad_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	return nil
}
