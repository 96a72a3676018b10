package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/media"
)

// 10 MB, enough for listing photos
const maxUploadBytes = 10 << 20

// UploadsHandler serves listing image upload and deletion
type UploadsHandler struct {
	store media.Store // nil when no media backend is configured
}

// NewUploadsHandler creates an uploads handler
func NewUploadsHandler(store media.Store) *UploadsHandler {
	return &UploadsHandler{store: store}
}

// Upload stores a listing image and returns its URL and public id
// (POST /api/v1/upload)
func (h *UploadsHandler) Upload(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		internalError(c, err)
		return
	}
	defer file.Close()

	upload, err := h.store.Upload(c.Request.Context(), file)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// Delete removes a previously uploaded image (POST /api/v1/delete-image)
func (h *UploadsHandler) Delete(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	var req struct {
		PublicID string `json:"public_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PublicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "public_id is required"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), req.PublicID); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
