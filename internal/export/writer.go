package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppanel/ppadmin/internal/model1"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

const maxSheetName = 31

// Write encodes the table in the given format.
func Write(w io.Writer, t Table, f Format) error {
	switch f {
	case FormatYAML:
		return writeYAML(w, t)
	case FormatJSON:
		return writeJSON(w, t)
	case FormatCSV:
		return writeCSV(w, t)
	case FormatXLSX:
		return writeXLSX(w, t)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// Encode returns the table encoded in the given format.
func Encode(t Table, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeYAML(w io.Writer, t Table) error {
	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range t.Records() {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range rec {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: p.Key},
				&yaml.Node{Kind: yaml.ScalarNode, Value: p.Value, Tag: "!!str"},
			)
		}
		list.Content = append(list.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, t Table) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, rec := range t.Records() {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for j, p := range rec {
			if j > 0 {
				buf.WriteString(", ")
			}
			k, _ := json.Marshal(p.Key)
			v, _ := json.Marshal(p.Value)
			buf.Write(k)
			buf.WriteString(": ")
			buf.Write(v)
		}
		buf.WriteString("}")
	}
	if len(t.Rows) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, t Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	sheet := SheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, cellValue(t, c, v)); err != nil {
				return err
			}
		}
	}

	if len(t.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(len(t.Headers), len(t.Rows)+1)
		if err := f.AutoFilter(sheet, first+":"+end, nil); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// cellValue keeps numeric columns numeric in spreadsheets.
func cellValue(t Table, col int, v string) any {
	if col >= len(t.Kinds) || t.Kinds[col] != model1.KindNumber {
		return v
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return v
	}
	return n
}

// SheetName turns a title into a valid worksheet name.
func SheetName(title string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if s == "" {
		return "Export"
	}
	if rr := []rune(s); len(rr) > maxSheetName {
		s = string(rr[:maxSheetName])
	}
	return s
}
