package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage wraps every rejection from ValidateImage.
var ErrInvalidImage = errors.New("invalid image")

const (
	LogoSize     = 400
	FeaturedSize = 1200
)

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024} // 5MB
}

// ValidateImage chỉ nhận JPEG/PNG và không vượt quá MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: image exceeds %dMB", ErrInvalidImage, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: not an image", ErrInvalidImage)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: format %s not allowed (only jpeg/png)", ErrInvalidImage, format)
	}
}

// Fit resizes to fit within size x size and re-encodes as JPEG quality 90.
func (p *ImageProcessor) Fit(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, size, size, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode image: %w", err)
	}
	return b.Bytes(), nil
}
