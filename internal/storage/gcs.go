package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gcs "cloud.google.com/go/storage"
	"github.com/charmbracelet/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

// GCS stores objects in a Google Cloud Storage bucket. A single object put
// is already atomic, and CreateExclusive maps onto the DoesNotExist
// generation precondition, so the lock token works without any filesystem
// semantics.
type GCS struct {
	bucket *gcs.BucketHandle
}

// NewGCS creates a GCS backend for the given bucket.
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCS{bucket: client.Bucket(bucket)}, nil
}

func (g *GCS) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	it := g.bucket.Objects(ctx, &gcs.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		objects = append(objects, ObjectInfo{Key: attrs.Name, ModTime: attrs.Updated})
	}
	return objects, nil
}

func (g *GCS) Read(ctx context.Context, key string) ([]byte, error) {
	r, err := g.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (g *GCS) Write(ctx context.Context, key string, data []byte) error {
	w := g.bucket.Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	log.Debug("Wrote object", "backend", "gcs", "key", key, "bytes", len(data))
	return nil
}

func (g *GCS) CreateExclusive(ctx context.Context, key string, data []byte) error {
	w := g.bucket.Object(key).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, key)
		}
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
