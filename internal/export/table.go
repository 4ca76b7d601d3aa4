// Package export writes grid snapshots to files and object storage.
package export

import (
	"fmt"
	"strings"

	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/model1"
)

// Format names an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatXLSX, FormatJSON, FormatYAML}

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case "yml":
		return FormatYAML, nil
	case FormatYAML, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/yaml"
	}
}

// Table is a rectangular export of the visible data columns.
type Table struct {
	Title   string
	Headers []string
	Kinds   []model1.Kind
	Rows    [][]string
}

// FromView extracts the data columns of a grid snapshot.
func FromView(v grid.View) Table {
	cols := v.DataColumns()
	t := Table{
		Title:   v.Title,
		Headers: make([]string, 0, len(cols)),
		Kinds:   make([]model1.Kind, 0, len(cols)),
		Rows:    make([][]string, 0, len(v.Rows)),
	}
	for _, i := range cols {
		t.Headers = append(t.Headers, v.Columns[i].Header)
		t.Kinds = append(t.Kinds, v.Columns[i].Attrs.Kind)
	}
	for _, r := range v.Rows {
		row := make([]string, 0, len(cols))
		for _, i := range cols {
			if i < len(r.Fields) {
				row = append(row, r.Fields[i])
				continue
			}
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// Records returns the rows as header keyed pairs, in column order.
func (t Table) Records() [][]Pair {
	rr := make([][]Pair, 0, len(t.Rows))
	for _, row := range t.Rows {
		pp := make([]Pair, 0, len(t.Headers))
		for i, h := range t.Headers {
			var v string
			if i < len(row) {
				v = row[i]
			}
			pp = append(pp, Pair{Key: h, Value: v})
		}
		rr = append(rr, pp)
	}

	return rr
}

// Pair is one cell of a record.
type Pair struct {
	Key   string
	Value string
}
