package source

import (
	"context"
	"errors"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 implements Fetcher for datasets stored in an S3 bucket.
type S3 struct {
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

// NewS3 creates an S3 fetcher. prefix is prepended to all keys (e.g.
// "datasets/").
func NewS3(client *s3.Client, bucket, prefix string) *S3 {
	return &S3{
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		prefix:     prefix,
	}
}

// NewS3FromDefaultConfig creates an S3 fetcher using the default AWS
// credential/region chain (env, shared config, IMDS).
func NewS3FromDefaultConfig(ctx context.Context, bucket, prefix string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Fetch downloads the named object.
func (s *S3) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(s.prefix, name)

	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ Fetcher = (*S3)(nil)
