package source

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression magic bytes. Sniffing the content beats trusting file
// extensions: exported datasets get renamed.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Decompress inflates gzip, zstd, or lz4 framed data, detected by magic
// bytes. Uncompressed data passes through unchanged.
func Decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, magicGzip):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("source: gzip: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("source: gzip: %w", err)
		}
		return out, nil

	case bytes.HasPrefix(data, magicZstd):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("source: zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("source: zstd: %w", err)
		}
		return out, nil

	case bytes.HasPrefix(data, magicLZ4):
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("source: lz4: %w", err)
		}
		return out, nil

	default:
		return data, nil
	}
}

// Decompressing wraps a Fetcher so fetched files are transparently inflated.
type Decompressing struct {
	Fetcher
}

// Fetch fetches and inflates the named file.
func (d Decompressing) Fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := d.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decompress(data)
}

var _ Fetcher = Decompressing{}
