package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/auth"
	"home-horizon/internal/database"
	"home-horizon/internal/models"
	"home-horizon/internal/workflow"
)

// OfferEngine is the slice of the workflow engine the offer routes need
type OfferEngine interface {
	CreateOffer(ctx context.Context, in workflow.CreateOfferInput) (*models.Offer, error)
	Decide(ctx context.Context, offerID, claimedPropertyID string, status models.OfferStatus) (*workflow.Decision, error)
}

// OffersHandler serves offer creation, listing and agent decisions
type OffersHandler struct {
	engine     OfferEngine
	offers     *database.OfferStore
	properties *database.PropertyStore
}

// NewOffersHandler creates an offers handler
func NewOffersHandler(engine OfferEngine, offers *database.OfferStore, properties *database.PropertyStore) *OffersHandler {
	return &OffersHandler{engine: engine, offers: offers, properties: properties}
}

// Create places a new offer (POST /offers). Buyer identity comes from the
// token; an agent offering on their own listing is rejected upstream by the
// role gate.
func (h *OffersHandler) Create(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	var in workflow.CreateOfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	in.BuyerID = id.UID
	in.BuyerEmail = id.Email

	offer, err := h.engine.CreateOffer(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": offer.ID.Hex(), "offer": offer})
}

// ListMine returns the caller's offers, as a buyer (GET /offers)
func (h *OffersHandler) ListMine(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}
	offers, err := h.offers.ListByBuyerEmail(c.Request.Context(), id.Email)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// GetUserOffer returns the caller's offer on a single property, or null
// when none exists (GET /offers/user?propertyId=)
func (h *OffersHandler) GetUserOffer(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}
	propertyID := c.Query("propertyId")
	if !models.ValidID(propertyID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}
	offer, err := h.offers.FindByBuyerEmailAndProperty(c.Request.Context(), id.Email, propertyID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// ListRequested returns offers placed on the agent's listings
// (GET /agent/offers)
func (h *OffersHandler) ListRequested(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}
	offers, err := h.offers.ListByAgent(c.Request.Context(), id.UID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// SoldProperties returns the agent's completed sales with the listing data
// joined in (GET /agent/sold-properties)
func (h *OffersHandler) SoldProperties(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	sold, err := h.offers.ListSoldByAgent(c.Request.Context(), id.UID)
	if err != nil {
		internalError(c, err)
		return
	}

	ids := make([]string, 0, len(sold))
	for _, o := range sold {
		ids = append(ids, o.PropertyID)
	}
	props, err := h.properties.ByHexIDs(c.Request.Context(), ids)
	if err != nil {
		internalError(c, err)
		return
	}
	byID := make(map[string]models.Property, len(props))
	for _, p := range props {
		byID[p.ID.Hex()] = p
	}

	type soldItem struct {
		models.Offer
		Property *models.Property `json:"property,omitempty"`
	}
	items := make([]soldItem, 0, len(sold))
	for _, o := range sold {
		item := soldItem{Offer: o}
		if p, ok := byID[o.PropertyID]; ok {
			prop := p
			item.Property = &prop
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

// Decide applies an agent's accept or reject to an offer (PATCH /agent/offers/:id/status)
func (h *OffersHandler) Decide(c *gin.Context) {
	var req struct {
		Status     models.OfferStatus `json:"status"`
		PropertyID string             `json:"propertyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	decision, err := h.engine.Decide(c.Request.Context(), c.Param("id"), req.PropertyID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}
