package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/model"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func testRecords() []model.Record {
	return []model.Record{
		{Name: "a", Category: "Action", Subcategory: "PC", Year: model.Int(2019), Score: model.Float(9.0)},
		{Name: "b", Category: "RPG", Subcategory: "PC", Year: model.Int(2020), Score: model.Float(8.0)},
		{Name: "c", Category: "Action", Subcategory: "Switch", Year: model.Int(2021), Score: model.Float(7.0)},
		{Name: "d", Category: "Puzzle", Subcategory: "Mobile", Year: model.Null(), Score: model.Float(6.0)},
		{Name: "e", Category: "", Subcategory: "PC", Year: model.Int(2022), Score: model.Null()},
	}
}

func names(recs []model.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func TestIndex(t *testing.T) {
	recs := testRecords()
	idx := NewIndex(recs)

	t.Run("DistinctValuesSorted", func(t *testing.T) {
		assert.Equal(t, []string{"Action", "Puzzle", "RPG"}, idx.Categories())
		assert.Equal(t, []string{"Mobile", "PC", "Switch"}, idx.Subcategories())
	})

	t.Run("NoFilterKeepsAll", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{})
		assert.Equal(t, uint64(len(recs)), rows.GetCardinality())
	})

	t.Run("CategoryMembership", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{Categories: []string{"Action"}})
		assert.Equal(t, []string{"a", "c"}, names(Materialize(recs, rows)))
	})

	t.Run("CategoryAndSubcategory", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{
			Categories:    []string{"Action", "RPG"},
			Subcategories: []string{"PC"},
		})
		assert.Equal(t, []string{"a", "b"}, names(Materialize(recs, rows)))
	})

	t.Run("YearRange", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{YearMin: intp(2020), YearMax: intp(2021)})
		assert.Equal(t, []string{"b", "c"}, names(Materialize(recs, rows)))
	})

	t.Run("NullYearFailsBound", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{YearMin: intp(1900)})
		// "d" has a null year and must not pass any year bound.
		assert.NotContains(t, names(Materialize(recs, rows)), "d")
	})

	t.Run("ScoreRange", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{ScoreMin: floatp(7.5)})
		assert.Equal(t, []string{"a", "b"}, names(Materialize(recs, rows)))
	})

	t.Run("EmptySelectionMatchesNothing", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{Categories: []string{}})
		assert.Equal(t, uint64(0), rows.GetCardinality())
	})

	t.Run("StableSubsequence", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{Subcategories: []string{"PC"}})
		got := names(Materialize(recs, rows))
		// Original order, removal only.
		assert.Equal(t, []string{"a", "b", "e"}, got)
	})

	t.Run("UnknownValueMatchesNothing", func(t *testing.T) {
		rows := idx.Apply(recs, Filter{Categories: []string{"Sports"}})
		assert.Equal(t, uint64(0), rows.GetCardinality())
	})
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Categories: []string{"x"}}.IsZero())
	assert.False(t, Filter{YearMin: intp(2000)}.IsZero())

	require.False(t, Filter{ScoreMax: floatp(1)}.IsZero())
}
