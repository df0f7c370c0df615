package tabgo

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/charset"
	"github.com/hupe1980/tabgo/filter"
	"github.com/hupe1980/tabgo/model"
	"github.com/hupe1980/tabgo/neighbor"
	"github.com/hupe1980/tabgo/source"
)

var gamesCSV = []byte(`Game Name,Genre,Platform,Release Year,User Rating
Zelda,Action,Switch,2017,9.5
Mario,Platform,Switch,2017,9.0
Doom,Action,PC,2016,8.5
Stardew,Sim,PC,2016,8.9
,Action,PC,2015,7.0
Tetris,Puzzle,Mobile,1984,8.0
Witcher,RPG,PC,2015,9.3
Hades,Action,PC,2020,9.1
`)

func loadGames(t *testing.T, optFns ...Option) *Dataset {
	t.Helper()
	ds, err := Load(context.Background(), gamesCSV, GamesSchema(), model.GamesMapping, optFns...)
	require.NoError(t, err)
	return ds
}

func TestLoad(t *testing.T) {
	t.Run("DropsBlankNames", func(t *testing.T) {
		ds := loadGames(t)
		assert.Equal(t, 7, ds.Len())
		for _, r := range ds.Records() {
			assert.NotEmpty(t, r.Name)
		}
	})

	t.Run("Encoding", func(t *testing.T) {
		ds := loadGames(t)
		assert.Equal(t, "utf-8", ds.Encoding())
	})

	t.Run("DistinctValues", func(t *testing.T) {
		ds := loadGames(t)
		assert.Equal(t, []string{"Action", "Platform", "Puzzle", "RPG", "Sim"}, ds.Categories())
		assert.Equal(t, []string{"Mobile", "PC", "Switch"}, ds.Subcategories())
	})

	t.Run("UnreadableEncoding", func(t *testing.T) {
		schema := GamesSchema()
		schema.Encodings = []string{"utf-8"}
		_, err := Load(context.Background(), []byte{0xff, 0xfe}, schema, model.GamesMapping)
		assert.ErrorIs(t, err, ErrUnreadableEncoding)
	})
}

func TestFilterAndSimilar(t *testing.T) {
	ds := loadGames(t)

	t.Run("FilteredView", func(t *testing.T) {
		view := ds.Filter(filter.Filter{Subcategories: []string{"PC"}})
		assert.Equal(t, 4, view.Len())
	})

	t.Run("SimilarExcludesAnchor", func(t *testing.T) {
		view := ds.All()
		results, err := view.Similar(context.Background(), "Zelda", 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.NotEqual(t, "Zelda", r.Record.Name)
		}
		// Hades shares the genre and nearly the rating.
		assert.Equal(t, "Hades", results[0].Record.Name)
	})

	t.Run("DefaultK", func(t *testing.T) {
		results, err := ds.All().Similar(context.Background(), "Zelda", 0)
		require.NoError(t, err)
		assert.Len(t, results, neighbor.DefaultK)
	})

	t.Run("AnchorOutsideFilteredSet", func(t *testing.T) {
		view := ds.Filter(filter.Filter{Subcategories: []string{"PC"}})
		_, err := view.Similar(context.Background(), "Zelda", 3)

		var anf *ErrAnchorNotFound
		require.ErrorAs(t, err, &anf)
		assert.Equal(t, "Zelda", anf.Anchor)
	})

	t.Run("SingleRecordView", func(t *testing.T) {
		view := ds.Filter(filter.Filter{Subcategories: []string{"Mobile"}})
		require.Equal(t, 1, view.Len())

		_, err := view.Similar(context.Background(), "Tetris", 5)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("Analytics", func(t *testing.T) {
		view := ds.All()

		s := view.Summary()
		assert.Equal(t, 7, s.Rows)
		assert.Equal(t, 7, s.UniqueNames)

		top := view.TopByScore(3)
		require.Len(t, top, 3)
		assert.Equal(t, "Zelda", top[0].Name)

		trend := view.MeanScoreByYear()
		require.NotEmpty(t, trend)
		assert.Equal(t, 1984, trend[0].Year)

		comp := view.Composition()
		assert.NotEmpty(t, comp)

		corr := view.Correlation()
		assert.Equal(t, []string{"year", "score"}, corr.Labels)
	})
}

func TestExportRoundTrip(t *testing.T) {
	t.Run("CleanIsIdempotent", func(t *testing.T) {
		ds := loadGames(t)

		var buf bytes.Buffer
		require.NoError(t, ds.All().ExportCSV(&buf))

		ds2, err := Load(context.Background(), buf.Bytes(), GamesSchema(), model.GamesMapping)
		require.NoError(t, err)
		assert.Equal(t, ds.Records(), ds2.Records())
	})

	t.Run("BOM", func(t *testing.T) {
		ds := loadGames(t)

		var buf bytes.Buffer
		require.NoError(t, ds.All().ExportCSV(&buf, WithBOM()))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), charset.BOM))

		// BOM-prefixed exports load back unchanged.
		ds2, err := Load(context.Background(), buf.Bytes(), GamesSchema(), model.GamesMapping)
		require.NoError(t, err)
		assert.Equal(t, ds.Records(), ds2.Records())
	})

	t.Run("EUCKRRoundTrip", func(t *testing.T) {
		raw := []byte("Game Name,Genre,Platform,Release Year,User Rating\n" +
			"젤다,액션,Switch,2017,9.5\n" +
			"마리오,플랫폼,Switch,2017,9.0\n")
		ds, err := Load(context.Background(), raw, GamesSchema(), model.GamesMapping)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, ds.All().ExportCSV(&buf, WithEncoding("euc-kr")))

		ds2, err := Load(context.Background(), buf.Bytes(), GamesSchema(), model.GamesMapping)
		require.NoError(t, err)
		assert.NotEqual(t, "utf-8", ds2.Encoding())
		assert.Equal(t, ds.Records(), ds2.Records())
	})

	t.Run("ExportJSON", func(t *testing.T) {
		ds := loadGames(t)

		var buf bytes.Buffer
		require.NoError(t, ds.All().ExportJSON(&buf))
		assert.Contains(t, buf.String(), `"Zelda"`)
	})
}

func TestSnapshot(t *testing.T) {
	ds := loadGames(t)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteSnapshot(&buf))

	ds2, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds.Records(), ds2.Records())
	assert.Equal(t, ds.Mapping(), ds2.Mapping())
	assert.Equal(t, ds.Encoding(), ds2.Encoding())

	t.Run("RejectsGarbage", func(t *testing.T) {
		_, err := ReadSnapshot(bytes.NewReader([]byte("not a snapshot\n{}")))
		assert.Error(t, err)
	})
}

func TestLoadFetcher(t *testing.T) {
	dir := t.TempDir()

	part1 := []byte("Game Name,Genre,Platform,Release Year,User Rating\nZelda,Action,Switch,2017,9.5\n")
	part2 := []byte("Game Name,Genre,Platform,Release Year,User Rating\nDoom,Action,PC,2016,8.5\n")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "part1.csv"), part1, 0o600))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(part2)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "part2.csv.gz"), buf.Bytes(), 0o600))

	fetcher := source.Decompressing{Fetcher: source.NewDir(dir)}

	t.Run("ConcatenatesInNameOrder", func(t *testing.T) {
		ds, err := LoadFetcher(context.Background(), fetcher,
			[]string{"part1.csv", "part2.csv.gz"}, GamesSchema(), model.GamesMapping)
		require.NoError(t, err)

		require.Equal(t, 2, ds.Len())
		assert.Equal(t, "Zelda", ds.Records()[0].Name)
		assert.Equal(t, "Doom", ds.Records()[1].Name)
	})

	t.Run("MissingFileFails", func(t *testing.T) {
		_, err := LoadFetcher(context.Background(), fetcher,
			[]string{"part1.csv", "missing.csv"}, GamesSchema(), model.GamesMapping)
		require.Error(t, err)
		assert.ErrorIs(t, err, source.ErrNotFound)
	})

	t.Run("NoFiles", func(t *testing.T) {
		_, err := LoadFetcher(context.Background(), fetcher, nil, GamesSchema(), model.GamesMapping)
		assert.ErrorIs(t, err, ErrNoFiles)
	})
}

func TestMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	ds := loadGames(t, WithMetricsCollector(metrics))

	view := ds.All()
	_, err := view.Similar(context.Background(), "Zelda", 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, view.ExportCSV(&buf))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(1), stats.FilterCount)
	assert.Equal(t, int64(1), stats.SimilarCount)
	assert.Equal(t, int64(1), stats.ExportCount)
	assert.Equal(t, int64(0), stats.LoadErrors)
}
