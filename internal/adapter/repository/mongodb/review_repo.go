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

const reviewCollectionName = "reviews"

// ReviewRepository implements domain.ReviewRepository using MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewReviewRepository creates the reviews repository and ensures its indexes.
// The unique (seller_id, reviewer_id) index enforces one review per reviewer
// per seller.
func NewReviewRepository(db *mongo.Database, log *logger.Logger) (*ReviewRepository, error) {
	collection := db.Collection(reviewCollectionName)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "seller_id", Value: 1}, {Key: "reviewer_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for reviews collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for reviews collection")
	}

	return &ReviewRepository{
		collection: collection,
		logger:     log.Named("ReviewRepository"),
	}, nil
}

// Create inserts a review. A repeated (seller, reviewer) pair maps to
// domain.ErrDuplicateReview via the unique index.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	doc := &reviewDocument{
		ID:           primitive.NewObjectID(),
		SellerID:     review.SellerID,
		ReviewerID:   review.ReviewerID,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	}
	review.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateReview
		}
		r.logger.Error("Failed to insert review into DB", zap.Error(err), zap.String("seller_id", review.SellerID))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// FindBySeller returns a seller's reviews, newest first.
func (r *ReviewRepository) FindBySeller(ctx context.Context, sellerID string) ([]*domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"seller_id": sellerID}, opts)
	if err != nil {
		r.logger.Error("Failed to query reviews", zap.Error(err), zap.String("seller_id", sellerID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*domain.Review
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Error("Failed to decode review document", zap.Error(err))
			return nil, fmt.Errorf("db decode failed: %w", err)
		}
		reviews = append(reviews, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("db cursor failed: %w", err)
	}
	return reviews, nil
}
