package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-horizon/internal/config"
	"home-horizon/internal/models"
)

func TestSeedProperties(t *testing.T) {
	cfg := config.SeedConfig{
		Count: 6,
		Locations: []config.SeedLocation{
			{Location: "Gulshan, Dhaka", Lat: 23.7806, Lng: 90.4193},
			{Location: "Banani, Dhaka", Lat: 23.7936, Lng: 90.4068},
		},
	}
	agent := models.User{UID: "agent-1", Name: "Rahim", Email: "rahim@example.com"}

	props := SeedProperties(cfg, agent)
	require.Len(t, props, 6)

	for _, p := range props {
		assert.Equal(t, models.VerificationVerified, p.VerificationStatus)
		assert.False(t, p.IsAdvertised)
		assert.Equal(t, "agent-1", p.AgentID)
		assert.LessOrEqual(t, p.MinPrice, p.MaxPrice)
		assert.Len(t, p.Images, 5)
		assert.NotZero(t, p.Coordinates.Lat)
		assert.False(t, p.CreatedAt.IsZero())
	}
}

func TestSeedPropertiesEmptyConfig(t *testing.T) {
	assert.Nil(t, SeedProperties(config.SeedConfig{}, models.User{}))
	assert.Nil(t, SeedProperties(config.SeedConfig{Count: 5}, models.User{}))
}
