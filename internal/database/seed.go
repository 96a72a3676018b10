package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"home-horizon/internal/config"
	"home-horizon/internal/models"
)

var seedTypes = []string{"house", "apartment", "villa"}

// SeedProperties generates verified fixture listings from the configured
// locations. Used by the admin seed endpoint to populate a fresh install.
func SeedProperties(cfg config.SeedConfig, agent models.User) []models.Property {
	if cfg.Count <= 0 || len(cfg.Locations) == 0 {
		return nil
	}

	now := time.Now()
	props := make([]models.Property, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		loc := cfg.Locations[rand.Intn(len(cfg.Locations))]
		typ := seedTypes[i%len(seedTypes)]

		props = append(props, models.Property{
			Title:              fmt.Sprintf("Modern %s in %s", typ, loc.Location),
			Location:           loc.Location,
			MinPrice:           float64(rand.Intn(50000) + 50000),
			MaxPrice:           float64(rand.Intn(100000) + 150000),
			Bedrooms:           fmt.Sprintf("%d", rand.Intn(3)+2),
			Bathrooms:          fmt.Sprintf("%d", rand.Intn(2)+1),
			SquareMeters:       fmt.Sprintf("%d", rand.Intn(500)+100),
			GoogleMap:          fmt.Sprintf("https://www.google.com/maps?q=%f,%f", loc.Lat, loc.Lng),
			PropertyType:       typ,
			Parking:            []string{"yes", "no"}[i%2],
			Description:        fmt.Sprintf("Spacious and modern %s in prime location of %s.", typ, loc.Location),
			Images:             seedImages(),
			AgentName:          agent.Name,
			AgentEmail:         agent.Email,
			AgentID:            agent.UID,
			AgentImage:         agent.PhotoURL,
			Categories:         []string{"featured", "new"},
			VerificationStatus: models.VerificationVerified,
			IsAdvertised:       false,
			Coordinates:        models.Coordinates{Lat: loc.Lat, Lng: loc.Lng},
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	return props
}

func seedImages() []models.PropertyImage {
	images := make([]models.PropertyImage, 0, 5)
	for i := 0; i < 5; i++ {
		id := uuid.NewString()[:8]
		images = append(images, models.PropertyImage{
			URL:      fmt.Sprintf("https://picsum.photos/seed/%s/600/400", id),
			PublicID: fmt.Sprintf("seed/%s", id),
		})
	}
	return images
}
