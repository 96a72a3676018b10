package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"home-horizon/internal/models"
	"home-horizon/internal/workflow"
)

type mockPaymentEngine struct {
	sessionURL string
	sessionErr error

	verifyResult *workflow.VerifyResult
	verifyErr    error

	gotOfferID string
	gotCaller  string
	gotSession string
}

func (m *mockPaymentEngine) CreateCheckoutSession(_ context.Context, offerID, callerUID string) (string, error) {
	m.gotOfferID = offerID
	m.gotCaller = callerUID
	return m.sessionURL, m.sessionErr
}

func (m *mockPaymentEngine) VerifyPayment(_ context.Context, sessionID string) (*workflow.VerifyResult, error) {
	m.gotSession = sessionID
	return m.verifyResult, m.verifyErr
}

func TestCreateCheckoutSessionHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(engine PaymentEngine) *gin.Engine {
		r := gin.New()
		h := NewPaymentsHandler(engine)
		r.POST("/create-checkout-session", withIdentity("buyer-1", "buyer@example.com"), h.CreateCheckoutSession)
		return r
	}

	t.Run("returns the session URL", func(t *testing.T) {
		engine := &mockPaymentEngine{sessionURL: "https://checkout.example/cs_1"}
		w := postJSON(newRouter(engine), "/create-checkout-session", gin.H{"offerId": "abc123"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "https://checkout.example/cs_1")
		assert.Equal(t, "abc123", engine.gotOfferID)
		assert.Equal(t, "buyer-1", engine.gotCaller)
	})

	t.Run("missing offerId", func(t *testing.T) {
		w := postJSON(newRouter(&mockPaymentEngine{}), "/create-checkout-session", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("workflow errors map to status codes", func(t *testing.T) {
		cases := []struct {
			err  error
			want int
		}{
			{workflow.ErrNotFound, http.StatusNotFound},
			{workflow.ErrForbidden, http.StatusForbidden},
			{workflow.ErrInvalidState, http.StatusBadRequest},
			{fmt.Errorf("wrapped: %w", workflow.ErrInvalidInput), http.StatusBadRequest},
		}
		for _, tc := range cases {
			engine := &mockPaymentEngine{sessionErr: tc.err}
			w := postJSON(newRouter(engine), "/create-checkout-session", gin.H{"offerId": "abc123"})
			assert.Equal(t, tc.want, w.Code, "error %v", tc.err)
		}
	})
}

func TestVerifyPaymentHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(engine PaymentEngine) *gin.Engine {
		r := gin.New()
		h := NewPaymentsHandler(engine)
		r.POST("/payments/verify", h.VerifyPayment)
		return r
	}

	t.Run("reports the completed payment", func(t *testing.T) {
		paid := &models.Offer{
			ID:            primitive.NewObjectID(),
			Status:        models.OfferBought,
			IsPaid:        true,
			TransactionID: "pi_123",
		}
		engine := &mockPaymentEngine{verifyResult: &workflow.VerifyResult{Offer: paid}}
		w := postJSON(newRouter(engine), "/payments/verify", gin.H{"sessionId": "cs_1"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pi_123")
		assert.Equal(t, "cs_1", engine.gotSession)
	})

	t.Run("repeat verification is flagged", func(t *testing.T) {
		engine := &mockPaymentEngine{verifyResult: &workflow.VerifyResult{
			Offer:            &models.Offer{Status: models.OfferBought},
			AlreadyProcessed: true,
		}}
		w := postJSON(newRouter(engine), "/payments/verify", gin.H{"sessionId": "cs_1"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alreadyProcessed")
	})

	t.Run("missing sessionId", func(t *testing.T) {
		w := postJSON(newRouter(&mockPaymentEngine{}), "/payments/verify", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("incomplete payment maps to 400", func(t *testing.T) {
		engine := &mockPaymentEngine{verifyErr: workflow.ErrPaymentIncomplete}
		w := postJSON(newRouter(engine), "/payments/verify", gin.H{"sessionId": "cs_1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
