package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ArtifactStorage keeps assignment delivery files, one object per
// filename under the assignment's prefix.
type ArtifactStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewArtifactStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*ArtifactStorage, error) {
	if err := storage.ensureBucket(context.Background(), bucketName); err != nil {
		return nil, err
	}
	return &ArtifactStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

func (s *ArtifactStorage) UploadArtifact(
	ctx context.Context,
	assignmentID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (objectKey string, err error) {
	objectKey = fmt.Sprintf("assignments/%s/%s", assignmentID.String(), filepath.Base(filename))

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err = s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *ArtifactStorage) ArtifactURL(ctx context.Context, objectKey string) (string, error) {
	presignedURL, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignedTTL,
		make(url.Values),
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}
