package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStorage stores export bundles in a Google Cloud Storage bucket.
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
}

// NewGCSStorage creates a GCS-backed bundle store. With an empty
// credentialsFile the client uses application default credentials.
func NewGCSStorage(ctx context.Context, bucket, objectPrefix, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucket,
		objectPrefix: objectPrefix,
	}, nil
}

func (s *GCSStorage) objectName(name string) string {
	object := SanitizeFilename(name)
	if s.objectPrefix != "" {
		object = strings.TrimSuffix(s.objectPrefix, "/") + "/" + object
	}
	return object
}

func (s *GCSStorage) SaveBundle(ctx context.Context, name string, data []byte) (string, error) {
	object := s.objectName(name)
	writer := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	writer.ContentType = "application/zip"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload bundle %s: %w", object, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload %s: %w", object, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}

func (s *GCSStorage) GetBundle(ctx context.Context, name string) (io.ReadCloser, error) {
	object := s.objectName(name)
	reader, err := s.client.Bucket(s.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle %s: %w", object, err)
	}
	return reader, nil
}

func (s *GCSStorage) ListBundles(ctx context.Context) ([]string, error) {
	var names []string
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.objectPrefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list bundles: %w", err)
		}
		name := attrs.Name
		if s.objectPrefix != "" {
			name = strings.TrimPrefix(name, strings.TrimSuffix(s.objectPrefix, "/")+"/")
		}
		names = append(names, name)
	}
	return names, nil
}

// Close releases the underlying GCS client.
func (s *GCSStorage) Close() error {
	return s.client.Close()
}
