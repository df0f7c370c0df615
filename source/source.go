// Package source abstracts where raw dataset bytes come from: a local
// directory, an S3 bucket, or any S3-compatible store. Fetched files may be
// transparently decompressed via Decompressing.
package source

import (
	"context"
	"os"
)

// ErrNotFound is returned when a dataset file does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Fetcher fetches the raw bytes of a named dataset file.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, name string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}
