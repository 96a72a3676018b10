package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"home-horizon/internal/auth"
	"home-horizon/internal/database"
	"home-horizon/internal/models"
)

// UsersHandler serves account endpoints
type UsersHandler struct {
	users *database.UserStore
}

// NewUsersHandler creates a users handler
func NewUsersHandler(users *database.UserStore) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create upserts a user record after login (POST /users)
func (h *UsersHandler) Create(c *gin.Context) {
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if u.UID == "" || u.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UID is required OR email required"})
		return
	}

	if err := h.users.Upsert(c.Request.Context(), &u); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Role returns the stored role looked up by email or uid (GET /users/role)
func (h *UsersHandler) Role(c *gin.Context) {
	email := c.Query("email")
	uid := c.Query("uid")
	if email == "" && uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or UID required"})
		return
	}

	var user *models.User
	var err error
	if email != "" {
		user, err = h.users.ByEmail(c.Request.Context(), email)
		if err != nil {
			internalError(c, err)
			return
		}
	}
	// Fall back to uid if email didn't find the user
	if user == nil && uid != "" {
		user, err = h.users.ByUID(c.Request.Context(), uid)
		if err != nil {
			internalError(c, err)
			return
		}
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.RoleOrDefault()})
}

// Get returns the caller's own profile (GET /users/:uid)
func (h *UsersHandler) Get(c *gin.Context) {
	uid := c.Param("uid")
	id, _ := auth.IdentityFrom(c)
	if id.UID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: You can only access your own profile"})
		return
	}

	user, err := h.users.ByUID(c.Request.Context(), uid)
	if err != nil {
		internalError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update applies profile edits to the caller's own record (PUT /users/:uid)
func (h *UsersHandler) Update(c *gin.Context) {
	uid := c.Param("uid")
	id, _ := auth.IdentityFrom(c)
	if id.UID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: You can only access your own profile"})
		return
	}

	var fields bson.M
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	matched, err := h.users.UpdateProfile(c.Request.Context(), uid, fields)
	if err != nil {
		internalError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
