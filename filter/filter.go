// Package filter selects the current filtered set from the base record set.
//
// Categorical membership is evaluated against prebuilt posting bitmaps (one
// roaring bitmap per distinct category/subcategory value); numeric ranges are
// evaluated by a scan. The result is a bitmap of surviving row indices whose
// ascending iteration order preserves the original row order, so filtering
// only removes rows and never reorders them.
package filter

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tabgo/model"
)

// Filter is the user-selected predicate set. Nil slices and nil bounds mean
// "no restriction" for that field.
type Filter struct {
	// Categories restricts to records whose Category is in the list.
	Categories []string
	// Subcategories restricts to records whose Subcategory is in the list.
	Subcategories []string

	// YearMin/YearMax bound the Year field (inclusive).
	YearMin *int
	YearMax *int

	// ScoreMin/ScoreMax bound the Score field (inclusive).
	ScoreMin *float64
	ScoreMax *float64
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.Categories == nil && f.Subcategories == nil &&
		f.YearMin == nil && f.YearMax == nil &&
		f.ScoreMin == nil && f.ScoreMax == nil
}

// Index holds per-value posting bitmaps for the categorical fields of a base
// record set. Build it once per dataset; it is immutable afterwards.
type Index struct {
	n           int
	categories  map[string]*roaring.Bitmap
	subcategory map[string]*roaring.Bitmap
}

// NewIndex builds the posting bitmaps for the record set.
func NewIndex(recs []model.Record) *Index {
	idx := &Index{
		n:           len(recs),
		categories:  make(map[string]*roaring.Bitmap),
		subcategory: make(map[string]*roaring.Bitmap),
	}
	for i, r := range recs {
		posting(idx.categories, r.Category).Add(uint32(i))
		posting(idx.subcategory, r.Subcategory).Add(uint32(i))
	}
	return idx
}

func posting(m map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	return bm
}

// Categories returns the distinct category values present in the base set.
func (idx *Index) Categories() []string { return keys(idx.categories) }

// Subcategories returns the distinct subcategory values present in the base set.
func (idx *Index) Subcategories() []string { return keys(idx.subcategory) }

func keys(m map[string]*roaring.Bitmap) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Apply evaluates the filter against the record set and returns the bitmap of
// surviving row indices.
//
// A record with a null numeric field fails any bound set on that field: a
// missing year cannot satisfy a year range.
func (idx *Index) Apply(recs []model.Record, f Filter) *roaring.Bitmap {
	rows := roaring.New()
	rows.AddRange(0, uint64(idx.n))

	if f.Categories != nil {
		rows.And(union(idx.categories, f.Categories))
	}
	if f.Subcategories != nil {
		rows.And(union(idx.subcategory, f.Subcategories))
	}

	if f.YearMin != nil || f.YearMax != nil || f.ScoreMin != nil || f.ScoreMax != nil {
		ranged := roaring.New()
		it := rows.Iterator()
		for it.HasNext() {
			i := it.Next()
			if matchesRanges(recs[i], f) {
				ranged.Add(i)
			}
		}
		rows = ranged
	}

	return rows
}

func union(postings map[string]*roaring.Bitmap, values []string) *roaring.Bitmap {
	parts := make([]*roaring.Bitmap, 0, len(values))
	for _, v := range values {
		if bm, ok := postings[v]; ok {
			parts = append(parts, bm)
		}
	}
	return roaring.FastOr(parts...)
}

func matchesRanges(r model.Record, f Filter) bool {
	if f.YearMin != nil || f.YearMax != nil {
		year, ok := r.Year.AsInt64()
		if !ok {
			return false
		}
		if f.YearMin != nil && year < int64(*f.YearMin) {
			return false
		}
		if f.YearMax != nil && year > int64(*f.YearMax) {
			return false
		}
	}

	if f.ScoreMin != nil || f.ScoreMax != nil {
		score, ok := r.Score.AsFloat64()
		if !ok {
			return false
		}
		if f.ScoreMin != nil && score < *f.ScoreMin {
			return false
		}
		if f.ScoreMax != nil && score > *f.ScoreMax {
			return false
		}
	}

	return true
}

// Materialize returns the records selected by the bitmap, in ascending row
// order (a stable subsequence of the base set).
func Materialize(recs []model.Record, rows *roaring.Bitmap) []model.Record {
	out := make([]model.Record, 0, rows.GetCardinality())
	it := rows.Iterator()
	for it.HasNext() {
		out = append(out, recs[it.Next()])
	}
	return out
}
