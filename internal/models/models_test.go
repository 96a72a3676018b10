package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := ParseID(oid.Hex())
	assert.NoError(t, err)
	assert.Equal(t, oid, parsed)

	_, err = ParseID("not-hex")
	assert.Error(t, err)

	assert.True(t, ValidID(oid.Hex()))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("12345"))
}

func TestOfferStatusIsDecision(t *testing.T) {
	assert.True(t, OfferAccepted.IsDecision())
	assert.True(t, OfferRejected.IsDecision())
	assert.False(t, OfferPending.IsDecision())
	assert.False(t, OfferBought.IsDecision())
	assert.False(t, OfferStatus("verified").IsDecision())
}

func TestPropertyPriceInRange(t *testing.T) {
	p := &Property{MinPrice: 100, MaxPrice: 200}

	assert.True(t, p.PriceInRange(100))
	assert.True(t, p.PriceInRange(150))
	assert.True(t, p.PriceInRange(200))
	assert.False(t, p.PriceInRange(99))
	assert.False(t, p.PriceInRange(201))
}

func TestUserRoleOrDefault(t *testing.T) {
	assert.Equal(t, RoleUser, (&User{}).RoleOrDefault())
	assert.Equal(t, RoleAgent, (&User{Role: RoleAgent}).RoleOrDefault())
}
