package storage

import (
	"context"
	"io"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadObject(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	return objectName, nil
}

func (m *minioStorage) UploadFile(ctx context.Context, objectName, contentType, filePath string) (string, error) {
	_, err := m.MinioClient.FPutObject(ctx, m.BucketName, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	return objectName, nil
}
