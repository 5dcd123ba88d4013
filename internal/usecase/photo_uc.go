package usecase

import (
	"context"
	"fmt"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// MaxPhotoSizeBytes caps uploaded images at 5 MB.
const MaxPhotoSizeBytes = 5 * 1024 * 1024

// PhotoUsecase uploads ad and chat images to object storage.
type PhotoUsecase struct {
	storage domain.PhotoStorage
	logger  *logger.Logger
}

// NewPhotoUsecase creates a new PhotoUsecase.
func NewPhotoUsecase(storage domain.PhotoStorage, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{
		storage: storage,
		logger:  log.Named("PhotoUsecase"),
	}
}

// Upload stores the image and returns its public URL.
func (uc *PhotoUsecase) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if len(data) > MaxPhotoSizeBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxPhotoSizeBytes)
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Photo upload failed", zap.Error(err), zap.String("file_name", fileName))
		return "", err
	}
	return url, nil
}
