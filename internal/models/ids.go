package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseID validates a hex record identifier at the request boundary and
// converts it to an ObjectID. Malformed identifiers are rejected before any
// store query is issued.
func ParseID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

// ValidID reports whether hex is a usable record identifier
func ValidID(hex string) bool {
	_, err := primitive.ObjectIDFromHex(hex)
	return err == nil
}
