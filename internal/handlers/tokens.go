package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/auth"
)

// TokensHandler issues bearer tokens after the client has signed in with the
// identity provider
type TokensHandler struct {
	secret string
	ttl    time.Duration
}

// NewTokensHandler creates a token issuer
func NewTokensHandler(secret string, ttl time.Duration) *TokensHandler {
	return &TokensHandler{secret: secret, ttl: ttl}
}

// Issue signs a token for the presented identity (POST /jwt)
func (h *TokensHandler) Issue(c *gin.Context) {
	var req struct {
		UID   string `json:"uid"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UID == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid and email are required"})
		return
	}

	token, err := auth.GenerateToken(h.secret, auth.Identity{UID: req.UID, Email: req.Email}, h.ttl)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
