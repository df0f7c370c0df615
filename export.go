package tabgo

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/hupe1980/tabgo/charset"
	"github.com/hupe1980/tabgo/model"
)

type exportOptions struct {
	bom      bool
	encoding string
}

// ExportOption configures CSV export.
type ExportOption func(*exportOptions)

// WithBOM prefixes the output with a UTF-8 byte order mark so spreadsheet
// tools detect the encoding and locale-specific characters round-trip.
func WithBOM() ExportOption {
	return func(o *exportOptions) {
		o.bom = true
	}
}

// WithEncoding re-encodes the output into the named codepage (e.g. "euc-kr")
// instead of UTF-8.
func WithEncoding(name string) ExportOption {
	return func(o *exportOptions) {
		o.encoding = name
	}
}

// ExportCSV serializes the view back to delimited text, one row per record in
// view order, with the mapped column names as the header. Null cells render
// as empty fields, so cleaning the export again reproduces the same records.
func (v *View) ExportCSV(w io.Writer, optFns ...ExportOption) error {
	var opts exportOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	err := v.exportCSV(w, opts)
	v.ds.opts.metricsCollector.RecordExport(v.Len(), time.Since(start), err)
	v.ds.opts.logger.LogExport(context.Background(), "csv", v.Len(), err)
	return err
}

func (v *View) exportCSV(w io.Writer, opts exportOptions) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	m := v.ds.mapping
	if err := cw.Write(m.Columns()); err != nil {
		return err
	}
	for _, r := range v.recs {
		if err := cw.Write(exportRow(m, r)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	out := buf.Bytes()
	if opts.encoding != "" {
		encoded, err := charset.EncodeTo(buf.String(), opts.encoding)
		if err != nil {
			return err
		}
		out = encoded
	}

	if opts.bom {
		if _, err := w.Write(charset.BOM); err != nil {
			return err
		}
	}
	_, err := w.Write(out)
	return err
}

func exportRow(m model.Mapping, r model.Record) []string {
	row := make([]string, 0, 5+len(m.ExtraColumns))
	row = append(row, r.Name)
	if m.CategoryColumn != "" {
		row = append(row, r.Category)
	}
	if m.SubcategoryColumn != "" {
		row = append(row, r.Subcategory)
	}
	if m.YearColumn != "" {
		row = append(row, r.Year.Text())
	}
	if m.ScoreColumn != "" {
		row = append(row, r.Score.Text())
	}
	for _, name := range m.ExtraColumns {
		row = append(row, r.ExtraValue(name).Text())
	}
	return row
}

// ExportJSON serializes the view's records with the dataset's codec.
func (v *View) ExportJSON(w io.Writer) error {
	start := time.Now()

	data, err := v.ds.opts.codec.Marshal(v.recs)
	if err == nil {
		_, err = w.Write(data)
	}

	v.ds.opts.metricsCollector.RecordExport(v.Len(), time.Since(start), err)
	v.ds.opts.logger.LogExport(context.Background(), "json", v.Len(), err)
	return err
}
