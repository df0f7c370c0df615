package tabgo

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tabgo/analytics"
	"github.com/hupe1980/tabgo/feature"
	"github.com/hupe1980/tabgo/filter"
	"github.com/hupe1980/tabgo/model"
	"github.com/hupe1980/tabgo/neighbor"
	"github.com/hupe1980/tabgo/normalize"
	"github.com/hupe1980/tabgo/source"
)

// GamesSchema returns the cleaning schema for the games-catalog dataset
// variant (columns per model.GamesMapping).
func GamesSchema() normalize.Schema {
	s := normalize.DefaultSchema(model.GamesMapping.NameColumn)
	s.Columns = map[string]normalize.ColumnType{
		model.GamesMapping.YearColumn:  normalize.TypeInt,
		model.GamesMapping.ScoreColumn: normalize.TypeFloat,
	}
	return s
}

// RegistrySchema returns the cleaning schema for the population/household
// registry dataset variant (columns per model.RegistryMapping).
func RegistrySchema() normalize.Schema {
	s := normalize.DefaultSchema(model.RegistryMapping.NameColumn)
	s.Columns = map[string]normalize.ColumnType{
		model.RegistryMapping.YearColumn:  normalize.TypeInt,
		model.RegistryMapping.ScoreColumn: normalize.TypeInt,
	}
	for _, c := range model.RegistryMapping.ExtraColumns {
		s.Columns[c] = normalize.TypeInt
	}
	return s
}

// Dataset is an immutable cleaned dataset. It is loaded once and never
// mutated; all filtering and derived computation produces new views.
type Dataset struct {
	recs     []model.Record
	idx      *filter.Index
	schema   normalize.Schema
	mapping  model.Mapping
	encoding string
	opts     options
}

// Load cleans raw delimited text into a Dataset.
func Load(ctx context.Context, raw []byte, schema normalize.Schema, mapping model.Mapping, optFns ...Option) (*Dataset, error) {
	opts := applyOptions(optFns)

	start := time.Now()
	table, encName, err := normalize.Clean(raw, schema)
	if err != nil {
		opts.metricsCollector.RecordLoad(0, time.Since(start), err)
		opts.logger.LogLoad(ctx, 0, "", err)
		return nil, err
	}

	recs := table.Records(mapping)
	ds := &Dataset{
		recs:     recs,
		idx:      filter.NewIndex(recs),
		schema:   schema,
		mapping:  mapping,
		encoding: encName,
		opts:     opts,
	}

	opts.metricsCollector.RecordLoad(len(recs), time.Since(start), nil)
	opts.logger.LogLoad(ctx, len(recs), encName, nil)
	return ds, nil
}

// LoadFile loads a dataset file from the local file system. Compressed files
// (gzip/zstd/lz4) are inflated transparently.
func LoadFile(ctx context.Context, path string, schema normalize.Schema, mapping model.Mapping, optFns ...Option) (*Dataset, error) {
	f := source.Decompressing{Fetcher: source.NewDir(filepath.Dir(path))}
	return LoadFetcher(ctx, f, []string{filepath.Base(path)}, schema, mapping, optFns...)
}

// LoadFetcher fetches the named dataset files, cleans each one, and
// concatenates the surviving rows in the declared name order. Files are
// fetched concurrently, bounded by the configured resource controller; each
// file gets its own encoding probe.
func LoadFetcher(ctx context.Context, f source.Fetcher, names []string, schema normalize.Schema, mapping model.Mapping, optFns ...Option) (*Dataset, error) {
	opts := applyOptions(optFns)
	if len(names) == 0 {
		return nil, ErrNoFiles
	}

	start := time.Now()

	type part struct {
		recs     []model.Record
		encoding string
	}
	parts := make([]part, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := opts.controller.AcquireFetch(gctx); err != nil {
				return err
			}
			defer opts.controller.ReleaseFetch()

			raw, err := f.Fetch(gctx, name)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", name, err)
			}
			if err := opts.controller.WaitIO(gctx, len(raw)); err != nil {
				return err
			}

			table, encName, err := normalize.Clean(raw, schema)
			if err != nil {
				return fmt.Errorf("clean %s: %w", name, err)
			}
			parts[i] = part{recs: table.Records(mapping), encoding: encName}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		opts.metricsCollector.RecordLoad(0, time.Since(start), err)
		opts.logger.LogLoad(ctx, 0, "", err)
		return nil, err
	}

	var recs []model.Record
	for _, p := range parts {
		recs = append(recs, p.recs...)
	}

	ds := &Dataset{
		recs:     recs,
		idx:      filter.NewIndex(recs),
		schema:   schema,
		mapping:  mapping,
		encoding: parts[0].encoding,
		opts:     opts,
	}

	opts.metricsCollector.RecordLoad(len(recs), time.Since(start), nil)
	opts.logger.LogLoad(ctx, len(recs), ds.encoding, nil)
	return ds, nil
}

// Len returns the number of records in the base dataset.
func (d *Dataset) Len() int { return len(d.recs) }

// Records returns the base record set. Callers must treat it as read-only.
func (d *Dataset) Records() []model.Record { return d.recs }

// Encoding returns the name of the encoding that decoded the dataset (the
// first file, for multi-file loads).
func (d *Dataset) Encoding() string { return d.encoding }

// Mapping returns the column mapping the dataset was loaded with.
func (d *Dataset) Mapping() model.Mapping { return d.mapping }

// Categories returns the distinct category values in the base dataset,
// sorted. Useful for populating filter widgets.
func (d *Dataset) Categories() []string { return d.idx.Categories() }

// Subcategories returns the distinct subcategory values in the base dataset,
// sorted.
func (d *Dataset) Subcategories() []string { return d.idx.Subcategories() }

// Filter applies the predicate set and returns the resulting view. The view's
// records are a stable subsequence of the base set.
func (d *Dataset) Filter(f filter.Filter) *View {
	start := time.Now()
	rows := d.idx.Apply(d.recs, f)
	v := &View{
		ds:   d,
		rows: rows,
		recs: filter.Materialize(d.recs, rows),
	}
	d.opts.metricsCollector.RecordFilter(v.Len(), time.Since(start))
	d.opts.logger.LogFilter(context.Background(), len(d.recs), v.Len())
	return v
}

// All returns the unfiltered view over the whole dataset.
func (d *Dataset) All() *View {
	return d.Filter(filter.Filter{})
}

// View is one filtered set: the subset of the base dataset currently selected
// by active filter predicates. Derived computations (feature vectors,
// neighbors, aggregates) are recomputed from the view on every call.
type View struct {
	ds   *Dataset
	rows *roaring.Bitmap
	recs []model.Record
}

// Len returns the number of records in the view.
func (v *View) Len() int { return len(v.recs) }

// Records returns the view's records in base-dataset order. Callers must
// treat the slice as read-only.
func (v *View) Records() []model.Record { return v.recs }

// Rows returns the bitmap of base-dataset row indices backing the view.
func (v *View) Rows() *roaring.Bitmap { return v.rows }

// Similar returns the k records most similar to the named anchor record,
// ascending by Euclidean distance over one-hot category/subcategory features
// plus the z-normalized score. If k is zero, neighbor.DefaultK is used.
//
// The feature space is built from scratch for the current view on every call.
func (v *View) Similar(ctx context.Context, anchor string, k int) ([]neighbor.Result, error) {
	if k == 0 {
		k = neighbor.DefaultK
	}

	start := time.Now()
	space := feature.Build(v.recs)
	results, err := neighbor.Find(space, v.recs, anchor, k)

	v.ds.opts.metricsCollector.RecordSimilar(k, time.Since(start), err)
	v.ds.opts.logger.LogSimilar(ctx, anchor, k, len(results), err)
	return results, err
}

// FeatureSpace builds and returns the view's feature space. Mostly useful for
// diagnostics; Similar builds its own.
func (v *View) FeatureSpace() *feature.Space {
	return feature.Build(v.recs)
}

// Summary computes the KPI summary of the view.
func (v *View) Summary() analytics.Summary {
	return analytics.Summarize(v.recs)
}

// TopByScore returns the view's n highest-scoring records, descending.
func (v *View) TopByScore(n int) []model.Record {
	return analytics.TopByScore(v.recs, n)
}

// MeanScoreByYear computes the per-year score trend of the view.
func (v *View) MeanScoreByYear() []analytics.YearMean {
	return analytics.MeanScoreByYear(v.recs)
}

// Composition counts the view's records per category/subcategory pair.
func (v *View) Composition() []analytics.CompositionEntry {
	return analytics.Composition(v.recs)
}

// Correlation computes the Pearson correlation matrix over the view's numeric
// fields.
func (v *View) Correlation() analytics.CorrelationMatrix {
	return analytics.Correlation(v.recs, v.ds.mapping.ExtraColumns)
}
