package media

import (
	"context"
	"io"
)

// Upload is a stored image reference
type Upload struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Store uploads and deletes images in the media backend
type Store interface {
	Upload(ctx context.Context, file io.Reader) (*Upload, error)
	Delete(ctx context.Context, publicID string) error
}
