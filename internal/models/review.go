package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a free-standing rating tied to a property and its agent.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID string             `bson:"propertyId" json:"propertyId"`
	UserID     string             `bson:"userId" json:"userId"`
	AgentID    string             `bson:"agentId,omitempty" json:"agentId,omitempty"`
	ReviewText string             `bson:"reviewText" json:"reviewText"`
	Rating     float64            `bson:"rating" json:"rating"`

	// Display snapshot
	UserImage     string `bson:"userImage,omitempty" json:"userImage,omitempty"`
	UserName      string `bson:"userName,omitempty" json:"userName,omitempty"`
	UserEmail     string `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	PropertyTitle string `bson:"propertyTitle,omitempty" json:"propertyTitle,omitempty"`
	AgentName     string `bson:"agentName,omitempty" json:"agentName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
