package usecase

import (
	"context"
	"io"
)

// UploadImageInput carries an uploaded cover image stream.
type UploadImageInput struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadImageOutput returns the public URL of the stored image.
type UploadImageOutput struct {
	URL string
}

// MediaUsecase defines the interface for media upload operations.
type MediaUsecase interface {
	// UploadImage validates and stores a cover image, returning its URL.
	UploadImage(ctx context.Context, input *UploadImageInput) (*UploadImageOutput, error)
}
