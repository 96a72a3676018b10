// Package workflow owns the offer lifecycle: creation, the agent's
// accept/reject decision, checkout session creation and payment
// verification. Every cross-entity update (property status, wishlist
// removal, sibling-offer rejection) is an explicit write issued here; the
// stores never derive one entity's state from another.
package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"home-horizon/internal/models"
	"home-horizon/internal/payments"
)

// OfferStore is the slice of the offers collection the engine needs
type OfferStore interface {
	Insert(ctx context.Context, o *models.Offer) (string, error)
	Get(ctx context.Context, offerID string) (*models.Offer, error)
	FindByPropertyAndBuyer(ctx context.Context, propertyID, buyerID string) (*models.Offer, error)
	SetStatus(ctx context.Context, offerID string, status models.OfferStatus, at time.Time) error
	RejectOthers(ctx context.Context, propertyID, exceptOfferID string, at time.Time) (int64, error)
	MarkPaid(ctx context.Context, offerID string, p models.PaymentRecord) error
}

// PropertyWriter mirrors workflow decisions onto the property record
type PropertyWriter interface {
	SetStatus(ctx context.Context, propertyID string, status string, at time.Time) error
	MarkSold(ctx context.Context, propertyID string, at time.Time) error
}

// WishlistRemover drops the convenience wishlist entry once a buyer offers
type WishlistRemover interface {
	Remove(ctx context.Context, userID, propertyID string) (int64, error)
}

// TxRunner groups multi-document writes into one transactional boundary
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutConfig carries the session parameters injected from configuration
type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// Engine coordinates offers, payments and the property state they drive
type Engine struct {
	offers     OfferStore
	properties PropertyWriter
	wishlist   WishlistRemover
	gateway    payments.Gateway
	tx         TxRunner
	checkout   CheckoutConfig
}

// NewEngine wires the workflow engine
func NewEngine(offers OfferStore, properties PropertyWriter, wishlist WishlistRemover,
	gateway payments.Gateway, tx TxRunner, checkout CheckoutConfig) *Engine {
	return &Engine{
		offers:     offers,
		properties: properties,
		wishlist:   wishlist,
		gateway:    gateway,
		tx:         tx,
		checkout:   checkout,
	}
}

// CreateOfferInput carries the buyer's offer and the denormalized property
// snapshot submitted with it
type CreateOfferInput struct {
	PropertyID       string  `json:"propertyId"`
	PropertyTitle    string  `json:"propertyTitle"`
	PropertyLocation string  `json:"propertyLocation"`
	PropertyImage    string  `json:"propertyImage"`
	AgentID          string  `json:"agentId"`
	AgentName        string  `json:"agentName"`
	MinPrice         float64 `json:"minPrice"`
	MaxPrice         float64 `json:"maxPrice"`
	OfferAmount      float64 `json:"offerAmount"`
	BuyerID          string  `json:"buyerId"`
	BuyerName        string  `json:"buyerName"`
	BuyerEmail       string  `json:"buyerEmail"`
	BuyingDate       string  `json:"buyingDate"`
}

// CreateOffer validates and stores a new pending offer, then removes the
// buyer's wishlist entry for the property. The wishlist removal is best
// effort: the wishlist is a convenience index, not authoritative, so its
// failure does not undo the offer.
func (e *Engine) CreateOffer(ctx context.Context, in CreateOfferInput) (*models.Offer, error) {
	if in.PropertyID == "" || in.AgentID == "" || in.BuyerID == "" ||
		in.PropertyTitle == "" || in.PropertyLocation == "" || in.OfferAmount == 0 {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	if !models.ValidID(in.PropertyID) {
		return nil, fmt.Errorf("%w: invalid property ID", ErrInvalidInput)
	}

	existing, err := e.offers.FindByPropertyAndBuyer(ctx, in.PropertyID, in.BuyerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: you already made an offer", ErrConflict)
	}

	if in.OfferAmount < in.MinPrice || in.OfferAmount > in.MaxPrice {
		return nil, fmt.Errorf("%w: offer must be between %.0f and %.0f", ErrInvalidInput, in.MinPrice, in.MaxPrice)
	}

	now := time.Now()
	offer := &models.Offer{
		PropertyID:       in.PropertyID,
		PropertyTitle:    in.PropertyTitle,
		PropertyLocation: in.PropertyLocation,
		PropertyImage:    in.PropertyImage,
		AgentID:          in.AgentID,
		AgentName:        in.AgentName,
		MinPrice:         in.MinPrice,
		MaxPrice:         in.MaxPrice,
		OfferAmount:      in.OfferAmount,
		BuyerID:          in.BuyerID,
		BuyerName:        in.BuyerName,
		BuyerEmail:       in.BuyerEmail,
		BuyingDate:       in.BuyingDate,
		Status:           models.OfferPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	id, err := e.offers.Insert(ctx, offer)
	if err != nil {
		return nil, err
	}
	if parsed, perr := models.ParseID(id); perr == nil {
		offer.ID = parsed
	}

	// Promote from "interested" to "offering"
	if _, err := e.wishlist.Remove(ctx, in.BuyerID, in.PropertyID); err != nil {
		log.Printf("[offers] warning: failed to remove wishlist entry for buyer=%s property=%s: %v",
			in.BuyerID, in.PropertyID, err)
	}

	return offer, nil
}

// Decision is the outcome of an agent accept/reject
type Decision struct {
	Offer            *models.Offer `json:"offer"`
	RejectedSiblings int64         `json:"rejectedSiblings"`
}

// Decide applies an agent's accept/reject to an offer, mirrors the decision
// onto the property, and on accept force-rejects every other pending offer
// on the same property. The property id is always derived from the stored
// offer; a client-supplied id is only cross-checked.
func (e *Engine) Decide(ctx context.Context, offerID, claimedPropertyID string, status models.OfferStatus) (*Decision, error) {
	if !status.IsDecision() {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if !models.ValidID(offerID) {
		return nil, fmt.Errorf("%w: invalid offer ID", ErrInvalidInput)
	}

	offer, err := e.offers.Get(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, fmt.Errorf("%w: offer not found", ErrNotFound)
	}
	if claimedPropertyID != "" && claimedPropertyID != offer.PropertyID {
		return nil, fmt.Errorf("%w: propertyId does not match offer", ErrInvalidInput)
	}

	now := time.Now()
	var rejected int64
	err = e.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := e.offers.SetStatus(ctx, offerID, status, now); err != nil {
			return err
		}
		if err := e.properties.SetStatus(ctx, offer.PropertyID, string(status), now); err != nil {
			return err
		}
		if status == models.OfferAccepted {
			n, err := e.offers.RejectOthers(ctx, offer.PropertyID, offerID, now)
			if err != nil {
				return err
			}
			rejected = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	offer.Status = status
	offer.UpdatedAt = now
	return &Decision{Offer: offer, RejectedSiblings: rejected}, nil
}

// CreateCheckoutSession requests a hosted payment session for an accepted
// offer. No local state is mutated; the session is provisional until
// verified.
func (e *Engine) CreateCheckoutSession(ctx context.Context, offerID, callerUID string) (string, error) {
	if offerID == "" || !models.ValidID(offerID) {
		return "", fmt.Errorf("%w: offer ID is required", ErrInvalidInput)
	}

	offer, err := e.offers.Get(ctx, offerID)
	if err != nil {
		return "", err
	}
	if offer == nil {
		return "", fmt.Errorf("%w: offer not found", ErrNotFound)
	}
	if offer.BuyerID != callerUID {
		return "", fmt.Errorf("%w: offer belongs to another buyer", ErrForbidden)
	}
	if offer.Status != models.OfferAccepted {
		return "", fmt.Errorf("%w: offer is not accepted", ErrInvalidState)
	}

	session, err := e.gateway.CreateSession(ctx, payments.CreateSessionInput{
		Description: "Property: " + offer.PropertyTitle,
		AmountMinor: int64(offer.OfferAmount * 100),
		Currency:    e.checkout.Currency,
		SuccessURL:  e.checkout.SuccessURL,
		CancelURL:   e.checkout.CancelURL,
		Metadata: map[string]string{
			"offerId":    offerID,
			"buyerId":    offer.BuyerID,
			"propertyId": offer.PropertyID,
		},
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// VerifyResult reports the outcome of a payment verification
type VerifyResult struct {
	Offer            *models.Offer `json:"offer"`
	AlreadyProcessed bool          `json:"alreadyProcessed"`
}

// VerifyPayment reconciles a returned checkout session: unless the gateway
// reports it paid the call fails, otherwise the offer is marked bought and
// the property sold. Verifying the same session twice is a no-op success.
func (e *Engine) VerifyPayment(ctx context.Context, sessionID string) (*VerifyResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session ID is required", ErrInvalidInput)
	}

	status, err := e.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !status.Paid {
		return nil, ErrPaymentIncomplete
	}

	offerID := status.Metadata["offerId"]
	if offerID == "" {
		return nil, fmt.Errorf("%w: session has no offer reference", ErrInvalidInput)
	}

	offer, err := e.offers.Get(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, fmt.Errorf("%w: offer not found", ErrNotFound)
	}

	// Second verification of the same session. The offer commit already
	// happened, but without transactions the property write may have been
	// lost between MarkPaid and MarkSold, so re-issue it; MarkSold is
	// idempotent. paidAt and the payment fields are left untouched.
	if offer.Status == models.OfferBought {
		at := offer.UpdatedAt
		if offer.PaidAt != nil {
			at = *offer.PaidAt
		}
		if err := e.properties.MarkSold(ctx, offer.PropertyID, at); err != nil {
			return nil, err
		}
		return &VerifyResult{Offer: offer, AlreadyProcessed: true}, nil
	}

	now := time.Now()
	record := models.PaymentRecord{
		TransactionID: status.PaymentIntentID,
		Amount:        float64(status.AmountTotalMinor) / 100,
		SessionID:     sessionID,
		PaidAt:        now,
	}
	err = e.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := e.offers.MarkPaid(ctx, offerID, record); err != nil {
			return err
		}
		return e.properties.MarkSold(ctx, offer.PropertyID, now)
	})
	if err != nil {
		return nil, err
	}

	offer.Status = models.OfferBought
	offer.IsPaid = true
	offer.TransactionID = record.TransactionID
	offer.Amount = record.Amount
	offer.SessionID = sessionID
	offer.PaidAt = &record.PaidAt
	offer.UpdatedAt = now
	return &VerifyResult{Offer: offer}, nil
}
