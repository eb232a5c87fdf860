// Package storage abstracts where uploaded bytes live. The rest of the app
// only ever saves, opens and deletes objects by key
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"
)

type Storage interface {
	// Save writes size bytes from r under the given key
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Open returns a reader over the object's bytes. The caller closes it
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// New returns the storage backend selected by storage.type
func New() (Storage, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		return NewS3()
	case "local":
		return NewLocal(viper.GetString("storage.path"))
	default:
		return nil, fmt.Errorf("unknown storage type %q", viper.GetString("storage.type"))
	}
}
