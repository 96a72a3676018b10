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

// OfferStore provides queries over the offers collection
type OfferStore struct {
	c *mongo.Collection
}

// Insert stores a new offer and returns its hex id
func (s *OfferStore) Insert(ctx context.Context, o *models.Offer) (string, error) {
	res, err := s.c.InsertOne(ctx, o)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Get returns the offer with the given hex id, or nil when absent
func (s *OfferStore) Get(ctx context.Context, offerID string) (*models.Offer, error) {
	id, err := models.ParseID(offerID)
	if err != nil {
		return nil, err
	}
	var o models.Offer
	err = s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByPropertyAndBuyer returns the buyer's offer on a property, or nil.
// At most one such offer can exist.
func (s *OfferStore) FindByPropertyAndBuyer(ctx context.Context, propertyID, buyerID string) (*models.Offer, error) {
	var o models.Offer
	err := s.c.FindOne(ctx, bson.M{"propertyId": propertyID, "buyerId": buyerID}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByBuyerEmailAndProperty returns the buyer's offer looked up by email
func (s *OfferStore) FindByBuyerEmailAndProperty(ctx context.Context, email, propertyID string) (*models.Offer, error) {
	var o models.Offer
	err := s.c.FindOne(ctx, bson.M{"buyerEmail": email, "propertyId": propertyID}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SetStatus applies an agent decision to a single offer
func (s *OfferStore) SetStatus(ctx context.Context, offerID string, status models.OfferStatus, at time.Time) error {
	id, err := models.ParseID(offerID)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": at},
	})
	return err
}

// RejectOthers force-rejects every other pending offer on the same
// property. Returns the number of offers rejected.
func (s *OfferStore) RejectOthers(ctx context.Context, propertyID, exceptOfferID string, at time.Time) (int64, error) {
	exceptID, err := models.ParseID(exceptOfferID)
	if err != nil {
		return 0, err
	}
	res, err := s.c.UpdateMany(ctx, bson.M{
		"propertyId": propertyID,
		"_id":        bson.M{"$ne": exceptID},
		"status":     models.OfferPending,
	}, bson.M{
		"$set": bson.M{"status": models.OfferRejected, "updatedAt": at},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// MarkPaid commits the confirmed payment fields and moves the offer to bought
func (s *OfferStore) MarkPaid(ctx context.Context, offerID string, p models.PaymentRecord) error {
	id, err := models.ParseID(offerID)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"isPaid":        true,
			"transactionId": p.TransactionID,
			"amount":        p.Amount,
			"sessionId":     p.SessionID,
			"paidAt":        p.PaidAt,
			"status":        models.OfferBought,
			"updatedAt":     p.PaidAt,
		},
	})
	return err
}

// ListByBuyerEmail returns every offer a buyer has made
func (s *OfferStore) ListByBuyerEmail(ctx context.Context, email string) ([]models.Offer, error) {
	cur, err := s.c.Find(ctx, bson.M{"buyerEmail": email})
	if err != nil {
		return nil, err
	}
	var offers []models.Offer
	if err := cur.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// ListByAgent returns every offer on an agent's listings, newest first
func (s *OfferStore) ListByAgent(ctx context.Context, agentUID string) ([]models.Offer, error) {
	cur, err := s.c.Find(ctx, bson.M{"agentId": agentUID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var offers []models.Offer
	if err := cur.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// ListSoldByAgent returns an agent's bought offers, most recently paid first
func (s *OfferStore) ListSoldByAgent(ctx context.Context, agentUID string) ([]models.Offer, error) {
	cur, err := s.c.Find(ctx, bson.M{"agentId": agentUID, "status": models.OfferBought},
		options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var offers []models.Offer
	if err := cur.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}
