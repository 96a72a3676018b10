package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a listing owned by an agent. The bson keys mirror the
// camelCase document shape used by the frontend.
type Property struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	Title        string  `bson:"title" json:"title"`
	Location     string  `bson:"location" json:"location"`
	MinPrice     float64 `bson:"minPrice" json:"minPrice"`
	MaxPrice     float64 `bson:"maxPrice" json:"maxPrice"`
	Bedrooms     string  `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms    string  `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	SquareMeters string  `bson:"squareMeters,omitempty" json:"squareMeters,omitempty"`
	GoogleMap    string  `bson:"googleMap,omitempty" json:"googleMap,omitempty"`
	PropertyType string  `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	Parking      string  `bson:"parking,omitempty" json:"parking,omitempty"`
	Description  string  `bson:"description,omitempty" json:"description,omitempty"`

	Images     []PropertyImage `bson:"images" json:"images"`
	Categories []string        `bson:"categories,omitempty" json:"categories,omitempty"`

	// Agent snapshot
	AgentName  string `bson:"agentName,omitempty" json:"agentName,omitempty"`
	AgentEmail string `bson:"agentEmail,omitempty" json:"agentEmail,omitempty"`
	AgentID    string `bson:"agentId" json:"agentId"`
	AgentImage string `bson:"agentImage,omitempty" json:"agentImage,omitempty"`

	// Moderation and sale state
	VerificationStatus VerificationStatus `bson:"verificationStatus" json:"verificationStatus"`
	IsAdvertised       bool               `bson:"isAdvertised" json:"isAdvertised"`
	Status             string             `bson:"status,omitempty" json:"status,omitempty"`
	DealStatus         DealStatus         `bson:"dealStatus,omitempty" json:"dealStatus,omitempty"`

	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PropertyImage is an uploaded image reference in the media store.
type PropertyImage struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}

// Coordinates are used for map display and bounds filtering.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// VerificationStatus is the admin moderation state of a property
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// DealStatus marks a completed sale; empty until payment is confirmed
type DealStatus string

const DealSold DealStatus = "sold"

// IsVerified reports whether the property passed moderation
func (p *Property) IsVerified() bool {
	return p.VerificationStatus == VerificationVerified
}

// PriceInRange reports whether amount lies within [MinPrice, MaxPrice]
func (p *Property) PriceInRange(amount float64) bool {
	return amount >= p.MinPrice && amount <= p.MaxPrice
}
