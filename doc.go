// Package tabgo cleans, filters, and analyzes small tabular datasets for
// interactive dashboards.
//
// The library is the computation layer behind a dashboard UI: it owns the
// load → clean → filter → derive pipeline and leaves all rendering and widget
// state to the caller.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	schema := tabgo.GamesSchema()
//	ds, _ := tabgo.LoadFile(ctx, "games_dataset.csv", schema, model.GamesMapping)
//
//	view := ds.Filter(filter.Filter{Categories: []string{"RPG", "Action"}})
//	fmt.Println(view.Summary())
//
//	similar, _ := view.Similar(ctx, "Elden Ring", 5)
//	for _, r := range similar {
//	    fmt.Println(r.Record.Name, r.Distance)
//	}
//
//	_ = view.ExportCSV(os.Stdout, tabgo.WithBOM())
//
// # Model
//
// The base dataset is loaded once and is immutable; every filter produces a
// new derived View, and every derived computation (feature vectors, neighbor
// results, aggregates) is recomputed from scratch on demand. There is no
// incremental state to invalidate.
//
// # Key Features
//
//   - Tolerant loading: multi-encoding probe (UTF-8 / CP949 / EUC-KR /
//     Latin-1), thousands separators, placeholder dashes, absent columns
//   - Explicit column mapping instead of header-substring guessing
//   - Brute-force nearest-neighbor "similar records" lookup
//   - Dashboard aggregates: KPI summary, top-N, trend, composition,
//     correlation matrix
//   - Local, S3, and MinIO dataset sources with gzip/zstd/lz4 support
//   - CSV (optionally BOM-prefixed) and JSON export, codec-based snapshots
package tabgo
