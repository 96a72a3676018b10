package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/config"
	"home-horizon/internal/database"
	"home-horizon/internal/models"
	"home-horizon/internal/search"
)

// AdminHandler serves moderation and platform management endpoints
type AdminHandler struct {
	users      *database.UserStore
	properties *database.PropertyStore
	reviews    *database.ReviewStore
	search     *search.SearchClient // nil when search is disabled
	seed       config.SeedConfig
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(users *database.UserStore, properties *database.PropertyStore,
	reviews *database.ReviewStore, searchClient *search.SearchClient, seed config.SeedConfig) *AdminHandler {
	return &AdminHandler{
		users:      users,
		properties: properties,
		reviews:    reviews,
		search:     searchClient,
		seed:       seed,
	}
}

// ListProperties returns every property (GET /admin/properties)
func (h *AdminHandler) ListProperties(c *gin.Context) {
	props, err := h.properties.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// ListVerifiedProperties returns every verified property
// (GET /admin/verified-properties)
func (h *AdminHandler) ListVerifiedProperties(c *gin.Context) {
	props, err := h.properties.ListVerifiedAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// VerifyProperty passes a listing through moderation
// (PATCH /admin/properties/verify/:id)
func (h *AdminHandler) VerifyProperty(c *gin.Context) {
	h.setVerification(c, models.VerificationVerified)
}

// RejectProperty fails a listing in moderation
// (PATCH /admin/properties/reject/:id)
func (h *AdminHandler) RejectProperty(c *gin.Context) {
	h.setVerification(c, models.VerificationRejected)
}

func (h *AdminHandler) setVerification(c *gin.Context, status models.VerificationStatus) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	matched, err := h.properties.SetVerification(c.Request.Context(), oid, status)
	if err != nil {
		internalError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found or not updated"})
		return
	}

	// Keep the search index in step with moderation, best effort
	if h.search != nil {
		if status == models.VerificationVerified {
			if prop, err := h.properties.ByID(c.Request.Context(), oid); err == nil && prop != nil {
				if err := h.search.IndexProperty(prop); err != nil {
					log.Printf("[search] warning: failed to index property %s: %v", oid.Hex(), err)
				}
			}
		} else {
			if err := h.search.RemoveProperty(oid.Hex()); err != nil {
				log.Printf("[search] warning: failed to remove property %s from index: %v", oid.Hex(), err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property " + string(status) + " successfully"})
}

// ListUsers returns all users (GET /admin/users)
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetUserRole promotes a user to admin or agent (PATCH /admin/users/:id/role)
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		Role models.UserRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing role"})
		return
	}

	matched, err := h.users.SetRole(c.Request.Context(), oid, req.Role)
	if err != nil {
		internalError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkFraud flags an agent as fraudulent and removes their listings
// (PATCH /admin/users/:id/fraud)
func (h *AdminHandler) MarkFraud(c *gin.Context) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.users.ByID(c.Request.Context(), oid)
	if err != nil {
		internalError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if _, err := h.users.SetRole(c.Request.Context(), oid, models.RoleFraud); err != nil {
		internalError(c, err)
		return
	}
	deleted, err := h.properties.DeleteByAgent(c.Request.Context(), user.UID)
	if err != nil {
		internalError(c, err)
		return
	}
	log.Printf("[admin] marked user %s as fraud, removed %d listings", user.UID, deleted)

	c.JSON(http.StatusOK, gin.H{"success": true, "removedProperties": deleted})
}

// DeleteUser removes a user record (DELETE /admin/users/:id). The identity
// provider account is outside this service and is not touched.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	deleted, err := h.users.Delete(c.Request.Context(), oid)
	if err != nil {
		internalError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SeedProperties inserts fixture listings (POST /admin/seed-properties)
func (h *AdminHandler) SeedProperties(c *gin.Context) {
	var agent models.User
	if err := c.ShouldBindJSON(&agent); err != nil || agent.UID == "" {
		// Fall back to the calling admin as the seed agent
		agent = models.User{UID: "seed-agent", Name: "Seed Agent", Email: "seed@homehorizon.dev"}
	}

	props := database.SeedProperties(h.seed, agent)
	if len(props) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No seed locations configured"})
		return
	}

	inserted, err := h.properties.InsertMany(c.Request.Context(), props)
	if err != nil {
		internalError(c, err)
		return
	}

	if h.search != nil {
		if err := h.search.IndexProperties(props); err != nil {
			log.Printf("[search] warning: failed to index seeded properties: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "inserted": inserted})
}

// ListReviews returns every review (GET /admin/reviews)
func (h *AdminHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// AdvertiseProperty marks a listing as advertised
// (PATCH /admin/advertise-property/:id)
func (h *AdminHandler) AdvertiseProperty(c *gin.Context) {
	h.setAdvertised(c, true)
}

// UnadvertiseProperty clears the advertised flag
// (PATCH /admin/unadvertise-property/:id)
func (h *AdminHandler) UnadvertiseProperty(c *gin.Context) {
	h.setAdvertised(c, false)
}

func (h *AdminHandler) setAdvertised(c *gin.Context, advertised bool) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	matched, err := h.properties.SetAdvertised(c.Request.Context(), oid, advertised)
	if err != nil {
		internalError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdvertiseStats returns the advertised-listing count (GET /admin/advertise-stats)
func (h *AdminHandler) AdvertiseStats(c *gin.Context) {
	total, err := h.properties.CountAdvertised(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}
