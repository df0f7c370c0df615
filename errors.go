package tabgo

import (
	"errors"

	"github.com/hupe1980/tabgo/charset"
	"github.com/hupe1980/tabgo/neighbor"
)

var (
	// ErrUnreadableEncoding is returned when no candidate encoding could
	// decode the raw dataset. The load fails with no partial result.
	ErrUnreadableEncoding = charset.ErrUnreadableEncoding

	// ErrInsufficientData is returned by similarity lookups on a filtered
	// set with fewer than two records.
	ErrInsufficientData = neighbor.ErrInsufficientData

	// ErrInvalidK is returned when a neighbor count is not positive.
	ErrInvalidK = neighbor.ErrInvalidK

	// ErrNoFiles is returned when a multi-file load is given no file names.
	ErrNoFiles = errors.New("tabgo: no dataset files given")
)

// ErrAnchorNotFound indicates a similarity anchor that is not present in the
// filtered set.
type ErrAnchorNotFound = neighbor.ErrAnchorNotFound
