package impl

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"booknest/config"
	deliverycontext "booknest/internal/delivery/context"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/service"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// allowedImageTypes are the content types accepted for cover uploads.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// mediaService implements the MediaUsecase interface.
type mediaService struct {
	storage       service.MediaStorage
	maxUploadSize int64
	logger        *slog.Logger
}

// MediaServiceParams holds dependencies for mediaService, injected by Fx.
type MediaServiceParams struct {
	fx.In

	Storage service.MediaStorage
	Config  *config.Config
	Logger  *slog.Logger
}

// NewMediaService is the constructor for mediaService.
func NewMediaService(params MediaServiceParams) usecase.MediaUsecase {
	var maxUploadSize int64
	if params.Config != nil && params.Config.Media != nil {
		maxUploadSize = params.Config.Media.MaxUploadSize
	}

	return &mediaService{
		storage:       params.Storage,
		maxUploadSize: maxUploadSize,
		logger:        params.Logger,
	}
}

func (srv *mediaService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UploadImage validates and stores a cover image, returning its public URL.
// The stored name is generated server-side so uploads never collide and
// client-supplied names never reach the bucket.
func (srv *mediaService) UploadImage(ctx context.Context, input *usecase.UploadImageInput) (*usecase.UploadImageOutput, error) {
	srv.log(ctx).Info("Uploading image", slog.String("fileName", input.FileName), slog.Int64("size", input.Size))

	ext, ok := allowedImageTypes[strings.ToLower(input.ContentType)]
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unsupported image content type")
	}
	if srv.maxUploadSize > 0 && input.Size > srv.maxUploadSize {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "image exceeds the upload size limit")
	}

	// Keep the original extension only when it agrees with the content type.
	if clientExt := strings.ToLower(filepath.Ext(input.FileName)); clientExt == ".jpeg" && ext == ".jpg" {
		ext = clientExt
	}

	name := "covers/" + time.Now().UTC().Format("2006/01/02") + "/" + uuid.New().String() + ext

	url, err := srv.storage.Save(ctx, name, input.ContentType, input.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to store image", slog.String("name", name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store image")
	}

	srv.log(ctx).Debug("Image stored", slog.String("name", name))

	return &usecase.UploadImageOutput{URL: url}, nil
}
