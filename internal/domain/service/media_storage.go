package service

import (
	"context"
	"io"
)

// MediaStorage defines the interface for storing uploaded media, such as
// book cover images. Implementations return a URL usable as a listing's
// imageUrl field.
type MediaStorage interface {
	// Save streams the content to the backing bucket under the given name
	// and returns the public URL of the stored object.
	Save(ctx context.Context, name, contentType string, content io.Reader) (string, error)

	// Delete removes a previously stored object by its name.
	Delete(ctx context.Context, name string) error
}
