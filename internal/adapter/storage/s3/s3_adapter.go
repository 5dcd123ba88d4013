package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// PhotoStorage stores ad and chat images in a MinIO bucket and serves them by
// public URL. Implements domain.PhotoStorage.
type PhotoStorage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewPhotoStorage connects to MinIO and ensures the bucket exists.
func NewPhotoStorage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*PhotoStorage, error) {
	log = log.Named("PhotoStorage")
	log.Info("Initializing MinIO storage", zap.String("endpoint", endpoint), zap.String("bucket", bucketName), zap.Bool("use_ssl", useSSL))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			log.Error("Failed to make or verify bucket", zap.String("bucket", bucketName), zap.Error(err))
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucketName, err)
		}
		log.Info("Bucket already exists", zap.String("bucket", bucketName))
	}

	return &PhotoStorage{
		client: client,
		bucket: bucketName,
		logger: log,
	}, nil
}

// Upload stores data under a fresh UUID key, keeping the original extension,
// and returns the public URL.
func (s *PhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("bucket", s.bucket), zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("File uploaded", zap.String("key", objectKey), zap.Int("size_bytes", len(data)))
	return fileURL, nil
}
