package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/auth"
	"home-horizon/internal/workflow"
)

// PaymentEngine is the slice of the workflow engine the payment routes need
type PaymentEngine interface {
	CreateCheckoutSession(ctx context.Context, offerID, callerUID string) (string, error)
	VerifyPayment(ctx context.Context, sessionID string) (*workflow.VerifyResult, error)
}

// PaymentsHandler serves checkout-session creation and payment verification
type PaymentsHandler struct {
	engine PaymentEngine
}

// NewPaymentsHandler creates a payments handler
func NewPaymentsHandler(engine PaymentEngine) *PaymentsHandler {
	return &PaymentsHandler{engine: engine}
}

// CreateCheckoutSession opens a hosted checkout for an accepted offer
// (POST /create-checkout-session)
func (h *PaymentsHandler) CreateCheckoutSession(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	var req struct {
		OfferID string `json:"offerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OfferID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offerId is required"})
		return
	}

	url, err := h.engine.CreateCheckoutSession(c.Request.Context(), req.OfferID, id.UID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// VerifyPayment reconciles a completed checkout session
// (POST /payments/verify)
func (h *PaymentsHandler) VerifyPayment(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	result, err := h.engine.VerifyPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		fail(c, err)
		return
	}

	if result.AlreadyProcessed {
		c.JSON(http.StatusOK, gin.H{"success": true, "alreadyProcessed": true, "offer": result.Offer})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transactionId": result.Offer.TransactionID,
		"offer":         result.Offer,
	})
}
