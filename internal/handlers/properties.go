package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"home-horizon/internal/auth"
	"home-horizon/internal/database"
	"home-horizon/internal/models"
	"home-horizon/internal/search"
)

// PropertiesHandler serves the property listing endpoints
type PropertiesHandler struct {
	properties *database.PropertyStore
	search     *search.SearchClient // nil when search is disabled
}

// NewPropertiesHandler creates a properties handler
func NewPropertiesHandler(properties *database.PropertyStore, searchClient *search.SearchClient) *PropertiesHandler {
	return &PropertiesHandler{properties: properties, search: searchClient}
}

// ListVerified returns verified properties with optional location text and
// map-bounds filters (GET /properties/verified)
func (h *PropertiesHandler) ListVerified(c *gin.Context) {
	filter := database.VerifiedFilter{
		Search:  c.Query("search"),
		SortAsc: c.DefaultQuery("sort", "desc") == "asc",
	}

	// All four corners must be present for a bounds filter
	swLat, errA := strconv.ParseFloat(c.Query("swLat"), 64)
	swLng, errB := strconv.ParseFloat(c.Query("swLng"), 64)
	neLat, errC := strconv.ParseFloat(c.Query("neLat"), 64)
	neLng, errD := strconv.ParseFloat(c.Query("neLng"), 64)
	if errA == nil && errB == nil && errC == nil && errD == nil {
		filter.Bounds = &database.Bounds{SWLat: swLat, SWLng: swLng, NELat: neLat, NELng: neLng}
	}

	props, err := h.properties.ListVerified(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// ListAdvertised returns advertised properties (GET /advertised-properties)
func (h *PropertiesHandler) ListAdvertised(c *gin.Context) {
	props, err := h.properties.ListAdvertised(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Search queries the full-text property index (GET /properties/search)
func (h *PropertiesHandler) Search(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not enabled"})
		return
	}

	query := c.Query("q")
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil {
		limit = 20
	}

	docs, err := h.search.Search(query, limit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Create stores a new listing for the calling agent (POST /properties)
func (h *PropertiesHandler) Create(c *gin.Context) {
	var p models.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if p.Title == "" || p.Location == "" || p.AgentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if p.MinPrice > p.MaxPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must not exceed maxPrice"})
		return
	}

	// New listings start unmoderated regardless of what the client sent
	now := time.Now()
	p.VerificationStatus = models.VerificationPending
	p.IsAdvertised = false
	p.Status = ""
	p.DealStatus = ""
	p.CreatedAt = now
	p.UpdatedAt = now

	id, err := h.properties.Insert(c.Request.Context(), &p)
	if err != nil {
		internalError(c, err)
		return
	}
	p.ID = id
	c.JSON(http.StatusCreated, gin.H{"insertedId": id.Hex()})
}

// ListMine returns the calling agent's listings (GET /my-properties)
func (h *PropertiesHandler) ListMine(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	props, err := h.properties.ListByAgent(c.Request.Context(), id.UID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Get returns a single property (GET /properties/:id)
func (h *PropertiesHandler) Get(c *gin.Context) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	prop, err := h.properties.ByID(c.Request.Context(), oid)
	if err != nil {
		internalError(c, err)
		return
	}
	if prop == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, prop)
}

// Update applies edits to the calling agent's own listing (PUT /properties/:id)
func (h *PropertiesHandler) Update(c *gin.Context) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	var fields bson.M
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	id, _ := auth.IdentityFrom(c)
	matched, err := h.properties.Update(c.Request.Context(), oid, id.UID, fields)
	if err != nil {
		internalError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not updated or not found"})
		return
	}

	h.reindex(c.Request.Context(), oid)
	c.JSON(http.StatusOK, gin.H{"message": "Property updated successfully"})
}

// Delete removes the calling agent's own listing (DELETE /properties/:id)
func (h *PropertiesHandler) Delete(c *gin.Context) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	id, _ := auth.IdentityFrom(c)
	deleted, err := h.properties.Delete(c.Request.Context(), oid, id.UID)
	if err != nil {
		internalError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found or unauthorized"})
		return
	}

	if h.search != nil {
		if err := h.search.RemoveProperty(oid.Hex()); err != nil {
			log.Printf("[search] warning: failed to remove property %s from index: %v", oid.Hex(), err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

// reindex refreshes the stored document in the search index, best effort.
// Only verified properties are indexed.
func (h *PropertiesHandler) reindex(ctx context.Context, oid primitive.ObjectID) {
	if h.search == nil {
		return
	}
	prop, err := h.properties.ByID(ctx, oid)
	if err != nil || prop == nil || !prop.IsVerified() {
		return
	}
	if err := h.search.IndexProperty(prop); err != nil {
		log.Printf("[search] warning: failed to index property %s: %v", oid.Hex(), err)
	}
}
