package tabgo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/tabgo/codec"
	"github.com/hupe1980/tabgo/filter"
	"github.com/hupe1980/tabgo/model"
)

// snapshotMagic heads every snapshot, followed by the codec name. The header
// makes snapshots self-describing so older files decode with the codec they
// were written with.
const snapshotMagic = "tabgo-snapshot"

type snapshotBody struct {
	Mapping  snapshotMapping `json:"mapping"`
	Encoding string          `json:"encoding,omitempty"`
	Records  []model.Record  `json:"records"`
}

// snapshotMapping mirrors model.Mapping with stable field names.
type snapshotMapping struct {
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	Year        string   `json:"year,omitempty"`
	Score       string   `json:"score,omitempty"`
	Extras      []string `json:"extras,omitempty"`
}

// WriteSnapshot persists the cleaned record set so a later process can skip
// decoding and re-cleaning the raw CSV.
func (d *Dataset) WriteSnapshot(w io.Writer) error {
	c := d.opts.codec

	body := snapshotBody{
		Mapping: snapshotMapping{
			Name:        d.mapping.NameColumn,
			Category:    d.mapping.CategoryColumn,
			Subcategory: d.mapping.SubcategoryColumn,
			Year:        d.mapping.YearColumn,
			Score:       d.mapping.ScoreColumn,
			Extras:      d.mapping.ExtraColumns,
		},
		Encoding: d.encoding,
		Records:  d.recs,
	}

	data, err := c.Marshal(body)
	if err != nil {
		return fmt.Errorf("tabgo: snapshot marshal: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s %s\n", snapshotMagic, c.Name()); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadSnapshot restores a Dataset written by WriteSnapshot. The codec is
// selected from the snapshot header.
func ReadSnapshot(r io.Reader, optFns ...Option) (*Dataset, error) {
	opts := applyOptions(optFns)

	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("tabgo: snapshot header: %w", err)
	}

	fields := strings.Fields(strings.TrimSpace(header))
	if len(fields) != 2 || fields[0] != snapshotMagic {
		return nil, fmt.Errorf("tabgo: not a snapshot (header %q)", strings.TrimSpace(header))
	}
	c, ok := codec.ByName(fields[1])
	if !ok {
		return nil, fmt.Errorf("tabgo: unknown snapshot codec %q", fields[1])
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}

	var body snapshotBody
	if err := c.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("tabgo: snapshot decode: %w", err)
	}

	ds := &Dataset{
		recs: body.Records,
		idx:  filter.NewIndex(body.Records),
		mapping: model.Mapping{
			NameColumn:        body.Mapping.Name,
			CategoryColumn:    body.Mapping.Category,
			SubcategoryColumn: body.Mapping.Subcategory,
			YearColumn:        body.Mapping.Year,
			ScoreColumn:       body.Mapping.Score,
			ExtraColumns:      body.Mapping.Extras,
		},
		encoding: body.Encoding,
		opts:     opts,
	}
	return ds, nil
}
