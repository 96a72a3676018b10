package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/auth"
	"home-horizon/internal/database"
	"home-horizon/internal/models"
)

// ReviewsHandler serves property reviews
type ReviewsHandler struct {
	reviews *database.ReviewStore
}

// NewReviewsHandler creates a reviews handler
func NewReviewsHandler(reviews *database.ReviewStore) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// Create stores a review (POST /reviews). The reviewer identity comes from
// the token, not the body.
func (h *ReviewsHandler) Create(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if review.PropertyID == "" || review.ReviewText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "propertyId and reviewText are required"})
		return
	}
	if !models.ValidID(review.PropertyID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}
	if review.Rating < 0 || review.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		return
	}

	review.UserID = id.UID
	review.UserEmail = id.Email
	review.CreatedAt = time.Now()

	insertedID, err := h.reviews.Insert(c.Request.Context(), &review)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": insertedID})
}

// ListByProperty returns all reviews for a property
// (GET /reviews/:propertyId)
func (h *ReviewsHandler) ListByProperty(c *gin.Context) {
	propertyID := c.Param("propertyId")
	if !models.ValidID(propertyID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}
	reviews, err := h.reviews.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListMine returns the caller's reviews (GET /my-reviews)
func (h *ReviewsHandler) ListMine(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}
	reviews, err := h.reviews.ListByUser(c.Request.Context(), id.UID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Delete removes a review the caller wrote (DELETE /reviews/:id). Admins may
// delete any review through the admin surface; this route is self-scoped.
func (h *ReviewsHandler) Delete(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	// Verify ownership before deleting
	mine, err := h.reviews.ListByUser(c.Request.Context(), id.UID)
	if err != nil {
		internalError(c, err)
		return
	}
	owned := false
	for _, r := range mine {
		if r.ID == oid {
			owned = true
			break
		}
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if _, err := h.reviews.Delete(c.Request.Context(), oid); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDelete removes any review (DELETE /admin/reviews/:id)
func (h *ReviewsHandler) AdminDelete(c *gin.Context) {
	oid, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}
	deleted, err := h.reviews.Delete(c.Request.Context(), oid)
	if err != nil {
		internalError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
