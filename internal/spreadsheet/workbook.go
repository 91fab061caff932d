package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const columnWidth = 22

// WriteTo encodes the sheet as an xlsx workbook with a single worksheet named
// after the export type.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := string(s.Kind)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(s.Headers))
	for i, h := range s.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return 0, fmt.Errorf("style header: %w", err)
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return 0, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(s.Headers))
	if err != nil {
		return 0, err
	}
	if err := f.SetColWidth(name, "A", last, columnWidth); err != nil {
		return 0, fmt.Errorf("set column width: %w", err)
	}

	return f.WriteTo(w)
}

// ReadRows reads the first worksheet of an xlsx workbook. The first row is the
// header; blank rows are skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrInvalidFile(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Row{}, nil
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrInvalidFile(err)
	}
	if len(raw) == 0 {
		return []Row{}, nil
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for i, values := range raw[1:] {
		cells := make(map[string]string, len(header))
		blank := true
		for j, v := range values {
			if j >= len(header) || header[j] == "" {
				continue
			}
			cells[header[j]] = v
			if strings.TrimSpace(v) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, Row{Line: i + 2, cells: cells})
	}
	return rows, nil
}
