// Copyright 2025 S&P Global Commodity Insights

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table normalizes decoded JSON records into a columnar table with
// typed date coercion, and writes tables as CSV or readable text.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spgci/spgci-go/dates"
	"github.com/stockparfait/errors"
)

// Value is a single cell value, as decoded from JSON or coerced by a Schema.
type Value = interface{}

// Record is a single decoded JSON record, possibly with nested objects.
type Record = map[string]interface{}

// Type of a column value.
type Type string

// Values of Type.
const (
	String   Type = "String"
	Integer  Type = "Integer"
	Double   Type = "Double"
	Boolean  Type = "Boolean"
	Date     Type = "Date"
	DateTime Type = "DateTime"
)

// Field of a schema: column name and type.
type Field struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Schema of a dataset: the columns whose values need coercion, in the
// preferred display order. Columns absent from the schema pass through
// unchanged.
type Schema []Field

// MapFields converts Schema to a map {field name -> Field}.
func (s Schema) MapFields() map[string]Field {
	m := make(map[string]Field)
	for _, f := range s {
		m[f.Name] = f
	}
	return m
}

// String representation of the Schema, for debugging.
func (s Schema) String() string {
	fields := make([]string, len(s))
	for i, f := range s {
		fields[i] = f.Name + " " + string(f.Type)
	}
	return "[" + strings.Join(fields, ", ") + "]"
}

// Flatten converts nested JSON objects into dotted keys: {"a": {"b": 1}}
// becomes {"a.b": 1}. Non-object values, including arrays, are kept as is.
func Flatten(r Record) Record {
	flat := make(Record)
	flattenInto(flat, "", r)
	return flat
}

func flattenInto(flat Record, prefix string, r Record) {
	for k, v := range r {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flattenInto(flat, key, nested)
		} else {
			flat[key] = v
		}
	}
}

// Table is a columnar container of normalized records.
type Table struct {
	Header []string
	Rows   [][]Value
}

// New creates an empty Table with the given column headers.
func New(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow adds one or more rows to the table. Each row is expected to have as
// many elements as the header.
func (t *Table) AddRow(rows ...[]Value) {
	t.Rows = append(t.Rows, rows...)
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int { return len(t.Rows) }

// Column returns the values of the named column, and whether it exists.
func (t *Table) Column(name string) ([]Value, bool) {
	for i, h := range t.Header {
		if h != name {
			continue
		}
		col := make([]Value, len(t.Rows))
		for j, row := range t.Rows {
			col[j] = row[i]
		}
		return col, true
	}
	return nil, false
}

func coerce(v Value, tp Type) Value {
	switch tp {
	case Date:
		if s, ok := v.(string); ok {
			if d, err := dates.NewDateFromString(s); err == nil {
				return d
			}
		}
	case DateTime:
		if tm, ok := dates.TimeFromValue(v); ok {
			return tm
		}
	}
	return v
}

// FromRecords builds a Table from decoded JSON records. Nested objects are
// flattened to dotted keys. Column order is the schema order for columns that
// occur in the data, followed by the remaining columns sorted alphabetically
// (JSON decoding does not preserve key order). Values in Date and DateTime
// schema columns are coerced to dates.Date and dates.Time; values that fail
// to parse are kept as is.
func FromRecords(records []Record, schema Schema) *Table {
	flat := make([]Record, len(records))
	seen := make(map[string]bool)
	for i, r := range records {
		flat[i] = Flatten(r)
		for k := range flat[i] {
			seen[k] = true
		}
	}

	var header []string
	inSchema := make(map[string]bool)
	for _, f := range schema {
		inSchema[f.Name] = true
		if seen[f.Name] {
			header = append(header, f.Name)
		}
	}
	var extra []string
	for k := range seen {
		if !inSchema[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	header = append(header, extra...)

	fields := schema.MapFields()
	t := New(header...)
	for _, r := range flat {
		row := make([]Value, len(header))
		for i, h := range header {
			v, ok := r[h]
			if !ok {
				continue
			}
			if f, ok := fields[h]; ok {
				v = coerce(v, f.Type)
			}
			row[i] = v
		}
		t.AddRow(row)
	}
	return t
}

func formatValue(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

func (t *Table) csvRow(row []Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = formatValue(v)
	}
	return out
}

// Params are parameters for pretty-printing or CSV export of Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

// WriteCSV writes the entire table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader && len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for i, r := range t.Rows {
		if p.Rows > 0 && i >= p.Rows {
			break
		}
		if err := cw.Write(t.csvRow(r)); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// WriteText writes the table as a text formatted for ease of reading.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	var widths []int
	update := func(row []string) error {
		if len(row) == 0 {
			return errors.Reason("row size = 0")
		}
		if len(widths) == 0 {
			widths = make([]int, len(row))
		}
		if len(row) != len(widths) {
			return errors.Reason("row size [%d] != expected size [%d]",
				len(row), len(widths))
		}
		for i := range widths {
			if widths[i] < len(row[i]) {
				widths[i] = len(row[i])
				if p.MaxColWidth > 0 && widths[i] > p.MaxColWidth {
					widths[i] = p.MaxColWidth
				}
			}
		}
		return nil
	}

	write := func(row []string) error {
		trimmed := make([]string, len(row))
		for i, s := range row {
			trimmed[i] = s
			if len([]rune(s)) > widths[i] {
				r := []rune(s)[:widths[i]-2]
				trimmed[i] = string(r) + ".."
			}
			trimmed[i] = fmt.Sprintf("%[2]*[1]s", trimmed[i], widths[i])
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(trimmed, " | "))
		return err
	}

	dashes := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte('-')
		}
		return string(b)
	}

	dashedRow := func() []string {
		row := make([]string, len(widths))
		for i, w := range widths {
			row[i] = dashes(w)
		}
		return row
	}

	if !p.NoHeader && len(t.Header) > 0 {
		if err := update(t.Header); err != nil {
			return errors.Annotate(err, "failed to update header widths")
		}
	}
	for i, r := range t.Rows {
		if p.Rows > 0 && i >= p.Rows {
			break
		}
		if err := update(t.csvRow(r)); err != nil {
			return errors.Annotate(err, "failed to update row widths")
		}
	}

	if !p.NoHeader && len(t.Header) > 0 {
		if err := write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
		if err := write(dashedRow()); err != nil {
			return errors.Annotate(err, "failed to write header separator")
		}
	}
	for i, r := range t.Rows {
		if p.Rows > 0 && i >= p.Rows {
			break
		}
		if err := write(t.csvRow(r)); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	return nil
}
