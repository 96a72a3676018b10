package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"home-horizon/internal/models"
)

// ReviewStore provides queries over the reviews collection
type ReviewStore struct {
	c *mongo.Collection
}

// Insert stores a new review and returns its hex id
func (s *ReviewStore) Insert(ctx context.Context, r *models.Review) (string, error) {
	res, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ListByProperty returns all reviews for a property
func (s *ReviewStore) ListByProperty(ctx context.Context, propertyID string) ([]models.Review, error) {
	return s.list(ctx, bson.M{"propertyId": propertyID}, nil)
}

// ListByUser returns all reviews written by a user
func (s *ReviewStore) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return s.list(ctx, bson.M{"userId": userID}, nil)
}

// ListAll returns every review, newest first
func (s *ReviewStore) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *ReviewStore) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Review, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.c.Find(ctx, filter, opts)
	} else {
		cur, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Delete removes a review and reports whether a document was removed
func (s *ReviewStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
