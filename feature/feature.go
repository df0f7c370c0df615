// Package feature encodes records into numeric vectors for similarity search.
//
// The feature space is redefined from scratch for every filtered set: one
// binary one-hot dimension per distinct category and subcategory value, plus
// one z-normalized score dimension. Recomputation is deliberately preferred
// over incremental index maintenance; the dimensions themselves change
// whenever the filtered set changes.
package feature

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/tabgo/model"
)

// Unknown is the category value that stands in for a null category or
// subcategory, so absent values still occupy a one-hot dimension.
const Unknown = "Unknown"

// Epsilon guards the score standard deviation against a division by zero when
// all scores in the filtered set are equal.
const Epsilon = 1e-9

// Space holds the feature vectors for one filtered record set. It is
// ephemeral: rebuilt on every filter change, never persisted.
type Space struct {
	// Dims labels each dimension ("category:Action", "subcategory:PC",
	// "score"). Dimension order is deterministic for a given record set.
	Dims []string
	// Vectors holds one row-aligned feature vector per record.
	Vectors [][]float32
	// ScoreMean and ScoreStd are the normalization parameters computed over
	// the non-null scores of the set.
	ScoreMean float64
	ScoreStd  float64
}

// Dimension returns the dimensionality of the space.
func (s *Space) Dimension() int { return len(s.Dims) }

// Len returns the number of encoded records.
func (s *Space) Len() int { return len(s.Vectors) }

// Build encodes the record set into a feature space.
//
// Scores are z-normalized as (score - mean) / (std + Epsilon); null scores
// are imputed to the mean first, so they contribute a zero-valued dimension.
func Build(recs []model.Record) *Space {
	catDim := oneHotDims(recs, func(r model.Record) string { return r.Category })
	subDim := oneHotDims(recs, func(r model.Record) string { return r.Subcategory })

	dims := make([]string, 0, len(catDim)+len(subDim)+1)
	for _, c := range sortedKeys(catDim) {
		dims = append(dims, "category:"+c)
	}
	for _, s := range sortedKeys(subDim) {
		dims = append(dims, "subcategory:"+s)
	}
	dims = append(dims, "score")

	mean, std := scoreMoments(recs)

	catBase := 0
	subBase := len(catDim)
	scoreIdx := len(catDim) + len(subDim)

	vectors := make([][]float32, len(recs))
	for i, r := range recs {
		v := make([]float32, len(dims))
		v[catBase+catDim[categoryOf(r.Category)]] = 1
		v[subBase+subDim[categoryOf(r.Subcategory)]] = 1

		score := mean
		if f, ok := r.Score.AsFloat64(); ok {
			score = f
		}
		v[scoreIdx] = float32((score - mean) / (std + Epsilon))

		vectors[i] = v
	}

	return &Space{
		Dims:      dims,
		Vectors:   vectors,
		ScoreMean: mean,
		ScoreStd:  std,
	}
}

func categoryOf(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// oneHotDims assigns each distinct value a dimension offset, ordered by the
// sorted value list so the layout is deterministic.
func oneHotDims(recs []model.Record, get func(model.Record) string) map[string]int {
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		seen[categoryOf(get(r))] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	dims := make(map[string]int, len(values))
	for i, v := range values {
		dims[v] = i
	}
	return dims
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, len(m))
	for k, i := range m {
		keys[i] = k
	}
	return keys
}

// scoreMoments computes mean and standard deviation over the non-null scores.
// An empty or all-null set yields (0, 0); Epsilon keeps the division defined.
func scoreMoments(recs []model.Record) (mean, std float64) {
	scores := make([]float64, 0, len(recs))
	for _, r := range recs {
		if f, ok := r.Score.AsFloat64(); ok {
			scores = append(scores, f)
		}
	}
	switch len(scores) {
	case 0:
		return 0, 0
	case 1:
		return scores[0], 0
	}
	mean, std = stat.MeanStdDev(scores, nil)
	return mean, std
}
