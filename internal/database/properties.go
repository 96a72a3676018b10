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

// PropertyStore provides queries over the properties collection
type PropertyStore struct {
	c *mongo.Collection
}

// Bounds is a geographic viewport filter over property coordinates
type Bounds struct {
	SWLat, SWLng float64
	NELat, NELng float64
}

// VerifiedFilter narrows the public verified-property listing
type VerifiedFilter struct {
	Search  string // case-insensitive match on location
	Bounds  *Bounds
	SortAsc bool // sort by minPrice; default descending
}

// Insert stores a new property and returns its id
func (s *PropertyStore) Insert(ctx context.Context, p *models.Property) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// InsertMany stores a batch of properties (seed fixtures)
func (s *PropertyStore) InsertMany(ctx context.Context, props []models.Property) (int, error) {
	docs := make([]interface{}, len(props))
	for i := range props {
		docs[i] = props[i]
	}
	res, err := s.c.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// ByID returns the property with the given id, or nil when absent
func (s *PropertyStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ByHexIDs resolves a set of hex ids to property documents, skipping
// malformed ids
func (s *PropertyStore) ByHexIDs(ctx context.Context, hexIDs []string) ([]models.Property, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		if id, err := models.ParseID(h); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// ListVerified returns verified properties with optional text and bounds
// filters, sorted by minPrice
func (s *PropertyStore) ListVerified(ctx context.Context, f VerifiedFilter) ([]models.Property, error) {
	filter := bson.M{"verificationStatus": models.VerificationVerified}
	if f.Search != "" {
		filter["location"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.Bounds != nil {
		filter["coordinates.lat"] = bson.M{"$gte": f.Bounds.SWLat, "$lte": f.Bounds.NELat}
		filter["coordinates.lng"] = bson.M{"$gte": f.Bounds.SWLng, "$lte": f.Bounds.NELng}
	}

	sortDir := -1
	if f.SortAsc {
		sortDir = 1
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "minPrice", Value: sortDir}}))
	if err != nil {
		return nil, err
	}
	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// ListAll returns every property, newest first
func (s *PropertyStore) ListAll(ctx context.Context) ([]models.Property, error) {
	return s.list(ctx, bson.M{})
}

// ListVerifiedAll returns every verified property, newest first
func (s *PropertyStore) ListVerifiedAll(ctx context.Context) ([]models.Property, error) {
	return s.list(ctx, bson.M{"verificationStatus": models.VerificationVerified})
}

// ListByAgent returns an agent's own listings, newest first
func (s *PropertyStore) ListByAgent(ctx context.Context, agentUID string) ([]models.Property, error) {
	return s.list(ctx, bson.M{"agentId": agentUID})
}

// ListAdvertised returns advertised properties, newest first
func (s *PropertyStore) ListAdvertised(ctx context.Context) ([]models.Property, error) {
	return s.list(ctx, bson.M{"isAdvertised": true})
}

func (s *PropertyStore) list(ctx context.Context, filter bson.M) ([]models.Property, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// listingProtectedFields are never writable through owner listing edits.
// Moderation and sale state are set by the admin surface and the payment
// workflow; ownership is fixed at creation.
var listingProtectedFields = []string{
	"_id", "agentId", "verificationStatus", "isAdvertised", "status", "dealStatus", "createdAt",
}

// ScrubListingFields drops the protected fields from an owner-submitted
// update document
func ScrubListingFields(fields bson.M) bson.M {
	for _, k := range listingProtectedFields {
		delete(fields, k)
	}
	return fields
}

// Update applies owner-submitted fields to a property scoped to its agent.
// Returns the number of matched documents so callers can distinguish
// not-found from no-op.
func (s *PropertyStore) Update(ctx context.Context, id primitive.ObjectID, agentUID string, fields bson.M) (int64, error) {
	fields = ScrubListingFields(fields)
	fields["updatedAt"] = time.Now()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "agentId": agentUID}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes a property scoped to its agent
func (s *PropertyStore) Delete(ctx context.Context, id primitive.ObjectID, agentUID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "agentId": agentUID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByAgent removes every listing owned by agentUID (fraud handling)
func (s *PropertyStore) DeleteByAgent(ctx context.Context, agentUID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"agentId": agentUID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetVerification updates the moderation status of a property
func (s *PropertyStore) SetVerification(ctx context.Context, id primitive.ObjectID, status models.VerificationStatus) (int64, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"verificationStatus": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// SetAdvertised flips the advertised flag of a property
func (s *PropertyStore) SetAdvertised(ctx context.Context, id primitive.ObjectID, advertised bool) (int64, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isAdvertised": advertised}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// CountAdvertised returns the number of advertised properties
func (s *PropertyStore) CountAdvertised(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"isAdvertised": true})
}

// SetStatus mirrors an offer decision onto the property's status field.
// Takes the hex id as stored on the offer.
func (s *PropertyStore) SetStatus(ctx context.Context, propertyID string, status string, at time.Time) error {
	id, err := models.ParseID(propertyID)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": at},
	})
	return err
}

// MarkSold sets the property's deal status after payment confirmation
func (s *PropertyStore) MarkSold(ctx context.Context, propertyID string, at time.Time) error {
	id, err := models.ParseID(propertyID)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"dealStatus": models.DealSold, "updatedAt": at},
	})
	return err
}
