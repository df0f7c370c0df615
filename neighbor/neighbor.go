// Package neighbor implements the brute-force nearest-neighbor lookup used by
// the "similar records" feature.
//
// The scan is O(n·d) over the filtered set. No indexing structure is built:
// the one-hot feature space is redefined every time the filtered set changes,
// so recomputation beats incremental index maintenance at this scale
// (hundreds to low thousands of rows).
package neighbor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hupe1980/tabgo/distance"
	"github.com/hupe1980/tabgo/feature"
	"github.com/hupe1980/tabgo/model"
)

// DefaultK is the default neighbor count, excluding the anchor.
const DefaultK = 5

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("neighbor: k must be positive")

	// ErrInsufficientData is returned when the filtered set holds fewer than
	// two records; there is no other record to compare the anchor against.
	ErrInsufficientData = errors.New("neighbor: need at least two records")
)

// ErrAnchorNotFound indicates the anchor identifier is not present in the
// filtered set.
type ErrAnchorNotFound struct {
	Anchor string
}

func (e *ErrAnchorNotFound) Error() string {
	return fmt.Sprintf("neighbor: anchor %q not found in filtered set", e.Anchor)
}

// Result is one ranked neighbor.
type Result struct {
	// Index is the record's position within the filtered set.
	Index int
	// Record is the matched record.
	Record model.Record
	// Distance is the Euclidean distance to the anchor's feature vector.
	Distance float32
}

// Find returns the k records closest to the anchor under Euclidean distance,
// ascending, excluding the anchor itself. The anchor resolves to the first
// record whose Name equals anchor. Ties rank by original row order.
// If fewer than k other records exist, all of them are returned.
func Find(space *feature.Space, recs []model.Record, anchor string, k int) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(recs) < 2 {
		return nil, ErrInsufficientData
	}
	if space.Len() != len(recs) {
		return nil, fmt.Errorf("neighbor: space has %d vectors for %d records", space.Len(), len(recs))
	}

	anchorIdx := -1
	for i, r := range recs {
		if r.Name == anchor {
			anchorIdx = i
			break
		}
	}
	if anchorIdx < 0 {
		return nil, &ErrAnchorNotFound{Anchor: anchor}
	}

	return FindByIndex(space, recs, anchorIdx, k)
}

// FindByIndex is Find with the anchor given as a row index into the filtered
// set.
func FindByIndex(space *feature.Space, recs []model.Record, anchorIdx, k int) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(recs) < 2 {
		return nil, ErrInsufficientData
	}
	if anchorIdx < 0 || anchorIdx >= len(recs) {
		return nil, &ErrAnchorNotFound{Anchor: fmt.Sprintf("#%d", anchorIdx)}
	}

	q := space.Vectors[anchorIdx]

	results := make([]Result, 0, len(recs)-1)
	for i := range recs {
		if i == anchorIdx {
			continue
		}
		results = append(results, Result{
			Index:    i,
			Record:   recs[i],
			Distance: distance.L2(q, space.Vectors[i]),
		})
	}

	// Stable sort keeps ties in original row order.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Distance < results[b].Distance
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}
