package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offer is a buyer's proposed purchase price on a property. Property and
// agent fields are denormalized at creation time for display. PropertyID is
// kept as the hex form of the property's ObjectID, matching the document
// shape the frontend submits.
type Offer struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID       string             `bson:"propertyId" json:"propertyId"`
	PropertyTitle    string             `bson:"propertyTitle" json:"propertyTitle"`
	PropertyLocation string             `bson:"propertyLocation" json:"propertyLocation"`
	PropertyImage    string             `bson:"propertyImage,omitempty" json:"propertyImage,omitempty"`

	AgentID   string `bson:"agentId" json:"agentId"`
	AgentName string `bson:"agentName,omitempty" json:"agentName,omitempty"`

	MinPrice    float64 `bson:"minPrice" json:"minPrice"`
	MaxPrice    float64 `bson:"maxPrice" json:"maxPrice"`
	OfferAmount float64 `bson:"offerAmount" json:"offerAmount"`

	BuyerID    string `bson:"buyerId" json:"buyerId"`
	BuyerName  string `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	BuyerEmail string `bson:"buyerEmail" json:"buyerEmail"`
	BuyingDate string `bson:"buyingDate,omitempty" json:"buyingDate,omitempty"`

	Status OfferStatus `bson:"status" json:"status"`

	// Payment fields, populated only after the checkout session is verified
	IsPaid        bool       `bson:"isPaid" json:"isPaid"`
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Amount        float64    `bson:"amount,omitempty" json:"amount,omitempty"`
	SessionID     string     `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OfferStatus is the lifecycle state of an offer
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	OfferBought   OfferStatus = "bought"
)

// IsDecision reports whether s is a valid agent decision
func (s OfferStatus) IsDecision() bool {
	return s == OfferAccepted || s == OfferRejected
}

// PaymentRecord carries the confirmed payment fields committed onto an offer
type PaymentRecord struct {
	TransactionID string
	Amount        float64
	SessionID     string
	PaidAt        time.Time
}
