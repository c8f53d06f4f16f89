package export

import (
	"context"
	"io"
)

// Storage persists export bundles outside the request lifecycle so a
// client can fetch a produced archive again later.
type Storage interface {
	// SaveBundle stores data under the given name and returns a
	// location string (path or URL) for retrieving it.
	SaveBundle(ctx context.Context, name string, data []byte) (string, error)

	// GetBundle opens a previously stored bundle.
	GetBundle(ctx context.Context, name string) (io.ReadCloser, error)

	// ListBundles names all stored bundles.
	ListBundles(ctx context.Context) ([]string, error)
}
