package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"home-horizon/internal/models"
	"home-horizon/internal/workflow"
)

type mockOfferEngine struct {
	createdOffer *models.Offer
	createErr    error
	gotInput     workflow.CreateOfferInput

	decision  *workflow.Decision
	decideErr error
	gotOffer  string
	gotClaim  string
	gotStatus models.OfferStatus
}

func (m *mockOfferEngine) CreateOffer(_ context.Context, in workflow.CreateOfferInput) (*models.Offer, error) {
	m.gotInput = in
	return m.createdOffer, m.createErr
}

func (m *mockOfferEngine) Decide(_ context.Context, offerID, claimedPropertyID string, status models.OfferStatus) (*workflow.Decision, error) {
	m.gotOffer = offerID
	m.gotClaim = claimedPropertyID
	m.gotStatus = status
	return m.decision, m.decideErr
}

func TestCreateOfferHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(engine OfferEngine) *gin.Engine {
		r := gin.New()
		h := NewOffersHandler(engine, nil, nil)
		r.POST("/offers", withIdentity("buyer-1", "buyer@example.com"), h.Create)
		return r
	}

	t.Run("buyer identity comes from the token", func(t *testing.T) {
		engine := &mockOfferEngine{createdOffer: &models.Offer{ID: primitive.NewObjectID()}}
		w := postJSON(newRouter(engine), "/offers", gin.H{
			"propertyId":  primitive.NewObjectID().Hex(),
			"offerAmount": 150000,
			"buyerId":     "spoofed",
			"buyerEmail":  "spoofed@example.com",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "buyer-1", engine.gotInput.BuyerID)
		assert.Equal(t, "buyer@example.com", engine.gotInput.BuyerEmail)
	})

	t.Run("duplicate offer maps to 409", func(t *testing.T) {
		engine := &mockOfferEngine{createErr: workflow.ErrConflict}
		w := postJSON(newRouter(engine), "/offers", gin.H{"propertyId": primitive.NewObjectID().Hex()})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation failure maps to 400", func(t *testing.T) {
		engine := &mockOfferEngine{createErr: workflow.ErrInvalidInput}
		w := postJSON(newRouter(engine), "/offers", gin.H{"propertyId": primitive.NewObjectID().Hex()})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDecideHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(engine OfferEngine) (*gin.Engine, func(id string, body gin.H) *http.Response) {
		r := gin.New()
		h := NewOffersHandler(engine, nil, nil)
		r.PATCH("/agent/offers/:id/status", h.Decide)
		do := func(id string, body gin.H) *http.Response {
			w := patchJSON(r, "/agent/offers/"+id+"/status", body)
			return w.Result()
		}
		return r, do
	}

	t.Run("passes the decision through", func(t *testing.T) {
		engine := &mockOfferEngine{decision: &workflow.Decision{
			Offer:            &models.Offer{Status: models.OfferAccepted},
			RejectedSiblings: 2,
		}}
		_, do := newRouter(engine)

		resp := do("abc", gin.H{"status": "accepted", "propertyId": "prop-1"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "abc", engine.gotOffer)
		assert.Equal(t, "prop-1", engine.gotClaim)
		assert.Equal(t, models.OfferAccepted, engine.gotStatus)
	})

	t.Run("unknown offer maps to 404", func(t *testing.T) {
		engine := &mockOfferEngine{decideErr: workflow.ErrNotFound}
		_, do := newRouter(engine)
		resp := do("abc", gin.H{"status": "accepted"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
