package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/model"
)

func rec(name, cat, sub string, score model.Value) model.Record {
	return model.Record{Name: name, Category: cat, Subcategory: sub, Score: score}
}

func TestBuild(t *testing.T) {
	t.Run("Dimensions", func(t *testing.T) {
		recs := []model.Record{
			rec("a", "Action", "PC", model.Float(9)),
			rec("b", "RPG", "PC", model.Float(8)),
			rec("c", "Action", "Switch", model.Float(7)),
		}
		space := Build(recs)

		// 2 categories + 2 subcategories + score
		assert.Equal(t, 5, space.Dimension())
		assert.Equal(t, 3, space.Len())
		assert.Equal(t, []string{
			"category:Action", "category:RPG",
			"subcategory:PC", "subcategory:Switch",
			"score",
		}, space.Dims)
	})

	t.Run("OneHot", func(t *testing.T) {
		recs := []model.Record{
			rec("a", "Action", "PC", model.Float(1)),
			rec("b", "RPG", "Switch", model.Float(1)),
		}
		space := Build(recs)

		// Exactly one category and one subcategory dimension set per record.
		for _, v := range space.Vectors {
			var catSum, subSum float32
			for i, dim := range space.Dims {
				switch {
				case len(dim) > 9 && dim[:9] == "category:":
					catSum += v[i]
				case len(dim) > 12 && dim[:12] == "subcategory:":
					subSum += v[i]
				}
			}
			assert.Equal(t, float32(1), catSum)
			assert.Equal(t, float32(1), subSum)
		}
	})

	t.Run("NullCategoryIsUnknownDimension", func(t *testing.T) {
		recs := []model.Record{
			rec("a", "", "", model.Float(1)),
			rec("b", "Action", "PC", model.Float(2)),
		}
		space := Build(recs)
		assert.Contains(t, space.Dims, "category:"+Unknown)
		assert.Contains(t, space.Dims, "subcategory:"+Unknown)
	})

	t.Run("ScoreZNormalized", func(t *testing.T) {
		recs := []model.Record{
			rec("a", "X", "Y", model.Float(1)),
			rec("b", "X", "Y", model.Float(3)),
		}
		space := Build(recs)

		scoreIdx := space.Dimension() - 1
		assert.InDelta(t, 2.0, space.ScoreMean, 1e-9)
		// Symmetric around the mean.
		assert.InDelta(t, -space.Vectors[0][scoreIdx], space.Vectors[1][scoreIdx], 1e-6)
		assert.Less(t, space.Vectors[0][scoreIdx], float32(0))
	})

	t.Run("EqualScoresYieldZeroDimension", func(t *testing.T) {
		recs := []model.Record{
			rec("a", "X", "Y", model.Float(5)),
			rec("b", "X", "Y", model.Float(5)),
			rec("c", "X", "Y", model.Float(5)),
		}
		space := Build(recs)

		scoreIdx := space.Dimension() - 1
		for _, v := range space.Vectors {
			// Epsilon keeps the division defined; 0/eps = 0.
			assert.Equal(t, float32(0), v[scoreIdx])
		}
	})

	t.Run("NullScoreImputedToMean", func(t *testing.T) {
		recs := []model.Record{
			rec("a", "X", "Y", model.Float(1)),
			rec("b", "X", "Y", model.Float(3)),
			rec("c", "X", "Y", model.Null()),
		}
		space := Build(recs)

		scoreIdx := space.Dimension() - 1
		// Imputed to mean, so the normalized dimension is zero.
		assert.InDelta(t, 0, space.Vectors[2][scoreIdx], 1e-6)
	})

	t.Run("EmptySet", func(t *testing.T) {
		space := Build(nil)
		require.Equal(t, 0, space.Len())
		assert.Equal(t, []string{"score"}, space.Dims)
	})
}
