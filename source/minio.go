package source

import (
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
)

// Minio implements Fetcher for MinIO and other S3-compatible stores.
type Minio struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinio creates a MinIO fetcher. prefix is prepended to all keys.
func NewMinio(client *minio.Client, bucket, prefix string) *Minio {
	return &Minio{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Fetch downloads the named object.
func (m *Minio) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(m.prefix, name)

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioErr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// GetObject defers missing-key errors to the first read.
		return nil, minioErr(err)
	}
	return data, nil
}

var _ Fetcher = (*Minio)(nil)

func minioErr(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
		return ErrNotFound
	}
	return err
}
