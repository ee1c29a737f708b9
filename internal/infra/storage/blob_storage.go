// Package storage stores uploaded media in a blob bucket. The bucket is
// addressed by URL so local disk and cloud providers are interchangeable.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"booknest/config"
	"booknest/internal/domain/service"
	"booknest/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobStorage opens the bucket named by cfg.Media.BucketURL and closes it
// when the application stops.
func NewBlobStorage(lc fx.Lifecycle, cfg *config.Config) (service.MediaStorage, error) {
	if cfg.Media == nil {
		return nil, errors.New("media config is required to open the media bucket")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.Media.PublicBaseURL, "/"),
	}, nil
}

// Save streams the content into the bucket and returns the public URL.
func (s *blobStorage) Save(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	w, err := s.bucket.NewWriter(ctx, name, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(w, content); err != nil {
		_ = w.Close()

		return "", errors.Wrap(err, "failed to write media content")
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize media write")
	}

	return fmt.Sprintf("%s/%s", s.publicBaseURL, name), nil
}

// Delete removes the object. Missing objects are not an error so repeated
// deletes stay idempotent.
func (s *blobStorage) Delete(ctx context.Context, name string) error {
	exists, err := s.bucket.Exists(ctx, name)
	if err != nil {
		return errors.Wrap(err, "failed to check media object")
	}
	if !exists {
		return nil
	}

	if err := s.bucket.Delete(ctx, name); err != nil {
		return errors.Wrap(err, "failed to delete media object")
	}

	return nil
}
