package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/auth"
	"home-horizon/internal/database"
	"home-horizon/internal/models"
)

// WishlistHandler serves the per-user saved-properties list. All routes are
// scoped to the authenticated user; a userId query naming someone else is
// rejected.
type WishlistHandler struct {
	wishlist   *database.WishlistStore
	properties *database.PropertyStore
}

// NewWishlistHandler creates a wishlist handler
func NewWishlistHandler(wishlist *database.WishlistStore, properties *database.PropertyStore) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, properties: properties}
}

func callerUID(c *gin.Context) (string, bool) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return "", false
	}
	if q := c.Query("userId"); q != "" && q != id.UID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return "", false
	}
	return id.UID, true
}

// Add saves a property for the caller (POST /wishlist)
func (h *WishlistHandler) Add(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	var req struct {
		PropertyID string `json:"propertyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PropertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "propertyId is required"})
		return
	}
	if !models.ValidID(req.PropertyID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	existing, err := h.wishlist.Find(c.Request.Context(), id.UID, req.PropertyID)
	if err != nil {
		internalError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Property already in wishlist"})
		return
	}

	if err := h.wishlist.Add(c.Request.Context(), id.UID, req.PropertyID); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// List returns the caller's wishlist entries, newest first
// (GET /wishlist?userId=)
func (h *WishlistHandler) List(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}
	entries, err := h.wishlist.ListByUser(c.Request.Context(), uid)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Check reports whether a property is in the caller's wishlist
// (GET /wishlist/check?propertyId=)
func (h *WishlistHandler) Check(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}
	propertyID := c.Query("propertyId")
	if !models.ValidID(propertyID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}
	entry, err := h.wishlist.Find(c.Request.Context(), uid, propertyID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": entry != nil})
}

// Remove deletes the caller's entry for a property
// (DELETE /wishlist?propertyId=)
func (h *WishlistHandler) Remove(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}
	propertyID := c.Query("propertyId")
	if !models.ValidID(propertyID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	deleted, err := h.wishlist.Remove(c.Request.Context(), uid, propertyID)
	if err != nil {
		internalError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResolveProperties expands wishlist property ids into the current listing
// documents (POST /wishlist/properties). Ids that no longer resolve are
// silently dropped, so a deleted listing does not break the page.
func (h *WishlistHandler) ResolveProperties(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	props, err := h.properties.ByHexIDs(c.Request.Context(), req.IDs)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}
