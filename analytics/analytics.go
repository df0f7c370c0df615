// Package analytics computes the derived views a dashboard renders from a
// filtered record set: KPI summary, top-N ranking, per-year trend, category
// composition, and numeric correlations.
//
// All computations are full recomputations over the given set; aggregates
// over all-null inputs yield null rather than raising.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/tabgo/model"
)

// Summary is the KPI row of a dashboard.
type Summary struct {
	// Rows is the filtered row count.
	Rows int `json:"rows"`
	// UniqueNames is the count of distinct identifiers.
	UniqueNames int `json:"unique_names"`
	// MeanScore is the average of non-null scores, null if none.
	MeanScore model.Value `json:"mean_score"`
	// YearMin and YearMax bound the non-null years, null if none.
	YearMin model.Value `json:"year_min"`
	YearMax model.Value `json:"year_max"`
}

// Summarize computes the KPI summary for the record set.
func Summarize(recs []model.Record) Summary {
	s := Summary{Rows: len(recs)}

	names := make(map[string]struct{}, len(recs))
	var scores []float64
	var yearMin, yearMax int64
	haveYear := false

	for _, r := range recs {
		names[r.Name] = struct{}{}
		if f, ok := r.Score.AsFloat64(); ok {
			scores = append(scores, f)
		}
		if y, ok := r.Year.AsInt64(); ok {
			if !haveYear || y < yearMin {
				yearMin = y
			}
			if !haveYear || y > yearMax {
				yearMax = y
			}
			haveYear = true
		}
	}

	s.UniqueNames = len(names)
	s.MeanScore = model.Null()
	if len(scores) > 0 {
		s.MeanScore = model.Float(stat.Mean(scores, nil))
	}
	s.YearMin, s.YearMax = model.Null(), model.Null()
	if haveYear {
		s.YearMin, s.YearMax = model.Int(yearMin), model.Int(yearMax)
	}
	return s
}

// TopByScore returns the n highest-scoring records, descending. Records with
// a null score rank below all scored records; ties keep original row order.
func TopByScore(recs []model.Record, n int) []model.Record {
	out := make([]model.Record, len(recs))
	copy(out, recs)

	sort.SliceStable(out, func(a, b int) bool {
		fa, oka := out[a].Score.AsFloat64()
		fb, okb := out[b].Score.AsFloat64()
		if oka != okb {
			return oka
		}
		return fa > fb
	})

	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// YearMean is the average score of the records sharing one year.
type YearMean struct {
	Year      int     `json:"year"`
	MeanScore float64 `json:"mean_score"`
	Count     int     `json:"count"`
}

// MeanScoreByYear computes the per-year score trend. Rows with a null year or
// null score are dropped; the result is sorted ascending by year.
func MeanScoreByYear(recs []model.Record) []YearMean {
	sums := make(map[int]*YearMean)
	for _, r := range recs {
		y, ok := r.Year.AsInt64()
		if !ok {
			continue
		}
		f, ok := r.Score.AsFloat64()
		if !ok {
			continue
		}
		ym, ok := sums[int(y)]
		if !ok {
			ym = &YearMean{Year: int(y)}
			sums[int(y)] = ym
		}
		ym.MeanScore += f
		ym.Count++
	}

	out := make([]YearMean, 0, len(sums))
	for _, ym := range sums {
		ym.MeanScore /= float64(ym.Count)
		out = append(out, *ym)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Year < out[b].Year })
	return out
}

// CompositionEntry is one category/subcategory bucket.
type CompositionEntry struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Count       int    `json:"count"`
}

// Composition counts records per (category, subcategory) pair, sorted by
// category then subcategory. Absent values bucket under the empty string.
func Composition(recs []model.Record) []CompositionEntry {
	type key struct{ cat, sub string }
	counts := make(map[key]int)
	for _, r := range recs {
		counts[key{r.Category, r.Subcategory}]++
	}

	out := make([]CompositionEntry, 0, len(counts))
	for k, c := range counts {
		out = append(out, CompositionEntry{Category: k.cat, Subcategory: k.sub, Count: c})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Category != out[b].Category {
			return out[a].Category < out[b].Category
		}
		return out[a].Subcategory < out[b].Subcategory
	})
	return out
}

// CorrelationMatrix is a symmetric Pearson correlation matrix over the
// numeric fields of a record set.
type CorrelationMatrix struct {
	// Labels names the matrix axes, in order.
	Labels []string `json:"labels"`
	// R holds the coefficients; R[i][j] correlates Labels[i] with Labels[j].
	// Entries are null when fewer than two complete pairs exist.
	R [][]model.Value `json:"r"`
}

// Correlation computes pairwise Pearson correlations between the numeric
// fields of the records: year, score, and any extra columns (in extras
// order). Each pair uses only rows where both fields are non-null.
func Correlation(recs []model.Record, extras []string) CorrelationMatrix {
	labels := append([]string{"year", "score"}, extras...)

	get := func(r model.Record, i int) (float64, bool) {
		switch i {
		case 0:
			return r.Year.AsFloat64()
		case 1:
			return r.Score.AsFloat64()
		default:
			return r.ExtraValue(labels[i]).AsFloat64()
		}
	}

	n := len(labels)
	m := CorrelationMatrix{Labels: labels, R: make([][]model.Value, n)}
	for i := range m.R {
		m.R[i] = make([]model.Value, n)
		for j := range m.R[i] {
			m.R[i][j] = model.Null()
		}
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var xs, ys []float64
			for _, r := range recs {
				x, okx := get(r, i)
				y, oky := get(r, j)
				if okx && oky {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}
			if len(xs) < 2 {
				continue
			}
			r := stat.Correlation(xs, ys, nil)
			m.R[i][j] = model.Float(r)
			m.R[j][i] = m.R[i][j]
		}
	}
	return m
}
