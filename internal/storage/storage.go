package storage

import (
	"context"
)

// ObjectStorage defines the interface for object storage operations. The app
// uses it as the backup target: full database exports are written as JSON
// objects.
type ObjectStorage interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, objectKey string, contentType string, body []byte) error

	// Delete removes an object from the storage provider.
	Delete(ctx context.Context, objectKey string) error
}
