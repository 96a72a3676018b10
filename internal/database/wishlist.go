package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"home-horizon/internal/models"
)

// WishlistStore provides queries over the wishlist collection
type WishlistStore struct {
	c *mongo.Collection
}

// Find returns the entry for (userID, propertyID), or nil when absent
func (s *WishlistStore) Find(ctx context.Context, userID, propertyID string) (*models.WishlistEntry, error) {
	var e models.WishlistEntry
	err := s.c.FindOne(ctx, bson.M{"userId": userID, "propertyId": propertyID}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Add inserts a wishlist entry. Callers check for duplicates first.
func (s *WishlistStore) Add(ctx context.Context, userID, propertyID string) error {
	_, err := s.c.InsertOne(ctx, models.WishlistEntry{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	})
	return err
}

// ListByUser returns a user's wishlist, newest first
func (s *WishlistStore) ListByUser(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var entries []models.WishlistEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Remove deletes the entry for (userID, propertyID) and reports how many
// documents were removed
func (s *WishlistStore) Remove(ctx context.Context, userID, propertyID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
