package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestScrubProfileFields(t *testing.T) {
	fields := bson.M{
		"name":        "Karim",
		"location":    "Dhaka",
		"bloodGroup":  "O+",
		"address":     "House 12",
		"role":        "super-admin",
		"email":       "other@example.com",
		"uid":         "someone-else",
		"_id":         "abc",
		"last_log_in": "2020-01-01",
	}

	scrubbed := ScrubProfileFields(fields)

	assert.Equal(t, bson.M{
		"name":       "Karim",
		"location":   "Dhaka",
		"bloodGroup": "O+",
		"address":    "House 12",
	}, scrubbed)
}

func TestScrubListingFields(t *testing.T) {
	fields := bson.M{
		"title":              "Updated title",
		"description":        "Updated description",
		"minPrice":           90000.0,
		"verificationStatus": "verified",
		"isAdvertised":       true,
		"status":             "accepted",
		"dealStatus":         "sold",
		"agentId":            "someone-else",
		"_id":                "abc",
		"createdAt":          "2020-01-01",
	}

	scrubbed := ScrubListingFields(fields)

	assert.Equal(t, bson.M{
		"title":       "Updated title",
		"description": "Updated description",
		"minPrice":    90000.0,
	}, scrubbed)
}
