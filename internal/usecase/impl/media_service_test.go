package impl

import (
	"context"
	"strings"
	"testing"

	"booknest/config"
	domainerrors "booknest/internal/domain/errors"
	mockSvc "booknest/internal/mocks/service"
	"booknest/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestMediaService(t *testing.T, maxUploadSize int64) (usecase.MediaUsecase, *mockSvc.MockMediaStorage) {
	t.Helper()

	storage := new(mockSvc.MockMediaStorage)
	service := NewMediaService(MediaServiceParams{
		Storage: storage,
		Config:  &config.Config{Media: &config.MediaConfig{MaxUploadSize: maxUploadSize}},
		Logger:  newDiscardLogger(),
	})

	return service, storage
}

func TestMediaService_UploadImage_Success(t *testing.T) {
	service, storage := createTestMediaService(t, 1<<20)

	var storedName string
	storage.On("Save", mock.Anything, mock.AnythingOfType("string"), "image/png", mock.Anything).
		Run(func(args mock.Arguments) {
			storedName = args.String(1)
		}).
		Return("https://cdn.example.com/some-name.png", nil)

	out, err := service.UploadImage(context.Background(), &usecase.UploadImageInput{
		FileName:    "cover.png",
		ContentType: "image/png",
		Size:        1024,
		Content:     strings.NewReader("not a real png"),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/some-name.png", out.URL)
	assert.True(t, strings.HasPrefix(storedName, "covers/"))
	assert.True(t, strings.HasSuffix(storedName, ".png"))
	assert.NotContains(t, storedName, "cover.png")
}

func TestMediaService_UploadImage_UnsupportedType(t *testing.T) {
	service, storage := createTestMediaService(t, 1<<20)

	_, err := service.UploadImage(context.Background(), &usecase.UploadImageInput{
		FileName:    "payload.svg",
		ContentType: "image/svg+xml",
		Size:        512,
		Content:     strings.NewReader("<svg/>"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaService_UploadImage_TooLarge(t *testing.T) {
	service, storage := createTestMediaService(t, 100)

	_, err := service.UploadImage(context.Background(), &usecase.UploadImageInput{
		FileName:    "cover.jpg",
		ContentType: "image/jpeg",
		Size:        101,
		Content:     strings.NewReader("oversized"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaService_UploadImage_KeepsJpegExtension(t *testing.T) {
	service, storage := createTestMediaService(t, 1<<20)

	var storedName string
	storage.On("Save", mock.Anything, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Run(func(args mock.Arguments) {
			storedName = args.String(1)
		}).
		Return("https://cdn.example.com/some-name.jpeg", nil)

	_, err := service.UploadImage(context.Background(), &usecase.UploadImageInput{
		FileName:    "cover.JPEG",
		ContentType: "image/jpeg",
		Size:        2048,
		Content:     strings.NewReader("not a real jpeg"),
	})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(storedName, ".jpeg"))
}
