package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-horizon/internal/media"
)

type fakeMediaStore struct {
	uploaded []byte
	deleted  []string
}

func (f *fakeMediaStore) Upload(_ context.Context, file io.Reader) (*media.Upload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.uploaded = data
	return &media.Upload{URL: "https://cdn.example/img.jpg", PublicID: "folder/img"}, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func multipartImage(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(store media.Store) *gin.Engine {
		r := gin.New()
		h := NewUploadsHandler(store)
		r.POST("/api/v1/upload", h.Upload)
		r.POST("/api/v1/delete-image", h.Delete)
		return r
	}

	t.Run("stores the image and returns the reference", func(t *testing.T) {
		store := &fakeMediaStore{}
		body, contentType := multipartImage(t, "image", []byte("jpeg-bytes"))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "folder/img")
		assert.Equal(t, []byte("jpeg-bytes"), store.uploaded)
	})

	t.Run("missing file field", func(t *testing.T) {
		store := &fakeMediaStore{}
		body, contentType := multipartImage(t, "wrong-field", []byte("jpeg-bytes"))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no backend configured", func(t *testing.T) {
		w := postJSON(newRouter(nil), "/api/v1/delete-image", gin.H{"public_id": "x"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("delete passes the public id through", func(t *testing.T) {
		store := &fakeMediaStore{}
		w := postJSON(newRouter(store), "/api/v1/delete-image", gin.H{"public_id": "folder/img"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"folder/img"}, store.deleted)
	})
}
