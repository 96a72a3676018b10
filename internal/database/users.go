package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"home-horizon/internal/models"
)

// UserStore provides queries over the users collection
type UserStore struct {
	c *mongo.Collection
}

// Upsert creates or refreshes a user record keyed by uid. Profile fields
// are only initialized on first insert so owner edits survive re-logins.
func (s *UserStore) Upsert(ctx context.Context, u *models.User) error {
	filter := bson.M{"uid": u.UID}
	update := bson.M{
		"$set": bson.M{
			"uid":         u.UID,
			"email":       u.Email,
			"name":        u.Name,
			"photoURL":    u.PhotoURL,
			"last_log_in": time.Now(),
		},
		"$setOnInsert": bson.M{
			"role":       models.RoleUser,
			"location":   "",
			"bloodGroup": "",
			"address":    "",
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ByUID returns the user with the given uid, or nil when absent
func (s *UserStore) ByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"uid": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByEmail returns the user with the given email, or nil when absent
func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByID returns the user with the given record id, or nil when absent
func (s *UserStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleByUID returns the stored role for uid, "" when the user is absent.
// Satisfies the role lookup used by the authorization middleware.
func (s *UserStore) RoleByUID(ctx context.Context, uid string) (string, error) {
	u, err := s.ByUID(ctx, uid)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", nil
	}
	return string(u.RoleOrDefault()), nil
}

// List returns all users, most recent login first
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "last_log_in", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole updates the role of a user record
func (s *UserStore) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (int64, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// profileProtectedFields are never writable through owner profile edits.
// Role changes go through the admin surface only; identity fields are
// established at login.
var profileProtectedFields = []string{"_id", "uid", "role", "email", "last_log_in"}

// ScrubProfileFields drops the protected fields from an owner-submitted
// update document
func ScrubProfileFields(fields bson.M) bson.M {
	for _, k := range profileProtectedFields {
		delete(fields, k)
	}
	return fields
}

// UpdateProfile applies owner-submitted profile fields to the user with uid
func (s *UserStore) UpdateProfile(ctx context.Context, uid string, fields bson.M) (int64, error) {
	fields = ScrubProfileFields(fields)
	update := bson.M{
		"$set":         fields,
		"$currentDate": bson.M{"lastUpdated": true},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"uid": uid}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes a user record
func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
