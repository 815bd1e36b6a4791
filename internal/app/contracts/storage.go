package contracts

import (
	"context"
	"io"
)

type Storage interface {
	UploadObject(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error)
	UploadFile(ctx context.Context, objectName, contentType, filePath string) (string, error)
}
