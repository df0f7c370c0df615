// Package normalize implements the tabular cleaning stage: decode raw
// delimited text, trim headers and cells, coerce locale-formatted numeric
// columns, and drop rows missing required identifying fields.
//
// The cleaning stage favors silent local recovery over failure: an
// unparseable numeric cell becomes null, a declared-but-absent column becomes
// an all-null column. Only an unreadable encoding is fatal.
package normalize

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/tabgo/charset"
	"github.com/hupe1980/tabgo/model"
)

// ColumnType declares how a column's cells are coerced.
type ColumnType uint8

const (
	// TypeString keeps cells as trimmed strings; empty cells become null.
	TypeString ColumnType = iota
	// TypeInt coerces cells to integers.
	TypeInt
	// TypeFloat coerces cells to floats.
	TypeFloat
)

// Schema declares the cleaning contract for one dataset.
//
// Column binding is explicit: columns not listed in Columns are kept as
// strings, and a declared column absent from the source is synthesized as an
// all-null column rather than failing the load.
type Schema struct {
	// Identifier is the required identifying column. Rows with a blank
	// identifier are dropped.
	Identifier string

	// Required lists additional columns whose absence in a row drops the row.
	Required []string

	// Columns declares per-column coercion. Unlisted columns default to
	// TypeString.
	Columns map[string]ColumnType

	// NullToken is the placeholder that numeric columns map to zero, not
	// null (registry exports use a bare dash for "no count"). Default "-".
	NullToken string

	// ThousandsSep is the grouping separator stripped from numeric cells
	// before parsing. Default ','.
	ThousandsSep string

	// Encodings is the candidate encoding probe list, tried in order.
	// Default: utf-8, cp949, euc-kr, latin1.
	Encodings []string
}

// DefaultSchema returns a Schema with the default tokens and probe list set.
func DefaultSchema(identifier string) Schema {
	return Schema{
		Identifier:   identifier,
		NullToken:    "-",
		ThousandsSep: ",",
		Encodings:    charset.DefaultCandidates,
	}
}

func (s Schema) nullToken() string {
	if s.NullToken == "" {
		return "-"
	}
	return s.NullToken
}

func (s Schema) thousandsSep() string {
	if s.ThousandsSep == "" {
		return ","
	}
	return s.ThousandsSep
}

// Table is a cleaned row-oriented dataset.
type Table struct {
	Header []string
	Rows   [][]model.Value
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	if name == "" {
		return -1
	}
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Clean decodes and cleans raw delimited text according to the schema.
// It returns the cleaned table and the name of the encoding that decoded the
// input. Entirely empty input produces an empty table without error.
//
// Surviving rows keep their input order: cleaning only removes rows, it never
// reorders them.
func Clean(raw []byte, schema Schema) (*Table, string, error) {
	if len(raw) == 0 {
		return &Table{}, "", nil
	}

	text, encName, err := charset.Decode(raw, schema.Encodings)
	if err != nil {
		return nil, "", err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // tolerate ragged rows; short rows pad with nulls
	records, err := r.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("normalize: parse csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, encName, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	// Declared columns absent from the source become all-null columns.
	for name := range schema.Columns {
		if indexOf(header, name) < 0 {
			header = append(header, name)
		}
	}
	if schema.Identifier != "" && indexOf(header, schema.Identifier) < 0 {
		header = append(header, schema.Identifier)
	}

	t := &Table{Header: header}
	for _, rec := range records[1:] {
		row := make([]model.Value, len(header))
		for i := range header {
			var cell string
			if i < len(rec) {
				cell = strings.TrimSpace(rec[i])
			}
			row[i] = schema.coerce(header[i], cell)
		}
		if !t.rowComplete(schema, row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t, encName, nil
}

// rowComplete reports whether the row has its identifier and all required
// fields present.
func (t *Table) rowComplete(schema Schema, row []model.Value) bool {
	required := schema.Required
	if schema.Identifier != "" {
		required = append([]string{schema.Identifier}, required...)
	}
	for _, name := range required {
		i := t.Column(name)
		if i < 0 {
			return false
		}
		v := row[i]
		if v.IsNull() {
			return false
		}
		if v.Kind == model.KindString && v.S == "" {
			return false
		}
	}
	return true
}

// coerce converts one trimmed cell according to the column's declared type.
func (s Schema) coerce(column, cell string) model.Value {
	typ := TypeString
	if s.Columns != nil {
		typ = s.Columns[column]
	}

	switch typ {
	case TypeInt, TypeFloat:
		return s.coerceNumeric(cell, typ)
	default:
		if cell == "" {
			return model.Null()
		}
		return model.String(cell)
	}
}

func (s Schema) coerceNumeric(cell string, typ ColumnType) model.Value {
	if cell == "" {
		return model.Null()
	}
	// The bare placeholder means "counted as zero", not "unknown". This is a
	// business rule distinct from unparseable-becomes-null.
	if cell == s.nullToken() {
		if typ == TypeInt {
			return model.Int(0)
		}
		return model.Float(0)
	}

	cell = strings.ReplaceAll(cell, s.thousandsSep(), "")

	if typ == TypeInt {
		if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return model.Int(i)
		}
		// "2,020.0" style exports: accept a float that is an exact integer.
		if f, err := strconv.ParseFloat(cell, 64); err == nil && f == float64(int64(f)) {
			return model.Int(int64(f))
		}
		return model.Null()
	}

	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return model.Null()
	}
	return model.Float(f)
}

// Records projects the table into records using the given column mapping.
// Unknown mapped columns yield null/empty fields.
func (t *Table) Records(m model.Mapping) []model.Record {
	nameIdx := t.Column(m.NameColumn)
	catIdx := t.Column(m.CategoryColumn)
	subIdx := t.Column(m.SubcategoryColumn)
	yearIdx := t.Column(m.YearColumn)
	scoreIdx := t.Column(m.ScoreColumn)

	extraIdx := make([]int, len(m.ExtraColumns))
	for i, name := range m.ExtraColumns {
		extraIdx[i] = t.Column(name)
	}

	recs := make([]model.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := model.Record{
			Name:        cellString(row, nameIdx),
			Category:    cellString(row, catIdx),
			Subcategory: cellString(row, subIdx),
			Year:        cell(row, yearIdx),
			Score:       cell(row, scoreIdx),
		}
		if len(m.ExtraColumns) > 0 {
			rec.Extra = make(map[string]model.Value, len(m.ExtraColumns))
			for i, name := range m.ExtraColumns {
				rec.Extra[name] = cell(row, extraIdx[i])
			}
		}
		recs = append(recs, rec)
	}
	return recs
}

func cell(row []model.Value, i int) model.Value {
	if i < 0 || i >= len(row) {
		return model.Null()
	}
	return row[i]
}

func cellString(row []model.Value, i int) string {
	return cell(row, i).StringValue()
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
