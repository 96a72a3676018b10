package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"home-horizon/internal/config"
)

// CloudinaryStore implements Store against Cloudinary
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a media store from the configured credentials
func NewCloudinaryStore(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

// Upload stores an image and returns its URL and public id
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader) (*Upload, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}
	return &Upload{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Delete removes an image by public id
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("image delete failed: %w", err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("image delete failed: %s", res.Result)
	}
	return nil
}
