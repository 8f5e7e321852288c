package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MediaService validates, resizes and stores listing images.
// Returned values are storage keys; the DB keeps the key, templates call URL.
type MediaService struct {
	store  Storage
	images *ImageProcessor
}

func NewMediaService(store Storage, images *ImageProcessor) *MediaService {
	return &MediaService{store: store, images: images}
}

func (m *MediaService) SaveLogo(ctx context.Context, data []byte) (string, error) {
	return m.save(ctx, "logos", data, LogoSize)
}

func (m *MediaService) SaveFeaturedImage(ctx context.Context, data []byte) (string, error) {
	return m.save(ctx, "images", data, FeaturedSize)
}

func (m *MediaService) save(ctx context.Context, dir string, data []byte, size int) (string, error) {
	if err := m.images.ValidateImage(data); err != nil {
		return "", err
	}

	resized, err := m.images.Fit(data, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	key := fmt.Sprintf("%s/%s.jpg", dir, uuid.NewString())
	if err := m.store.Upload(ctx, key, resized, "image/jpeg"); err != nil {
		return "", err
	}
	return key, nil
}

// Delete removes a previously stored key. Empty keys are ignored.
func (m *MediaService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return m.store.Delete(ctx, key)
}

func (m *MediaService) URL(key string) string {
	return m.store.URL(key)
}
