package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// XLSX renders one or more tables as sheets of a workbook. Numeric-looking
// cells in amount columns are written as numbers so totals work in Excel.
func XLSX(tables ...Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#2F855A"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("xlsx money style: %w", err)
	}

	for i, t := range tables {
		sheet := t.Sheet
		if sheet == "" {
			sheet = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("xlsx rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("xlsx new sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, t, headerStyle, moneyStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, t Table, headerStyle, moneyStyle int) error {
	header := make([]any, len(t.Header))
	amountCol := -1
	for i, h := range t.Header {
		header[i] = h
		if h == "Số tiền" {
			amountCol = i
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(len(t.Header), 1), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for c, v := range row {
			cells[c] = v
			if c == amountCol {
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					cells[c] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("xlsx row %d: %w", r+2, err)
		}
	}

	if amountCol >= 0 && len(t.Rows) > 0 {
		top, _ := excelize.CoordinatesToCellName(amountCol+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(amountCol+1, len(t.Rows)+1)
		if err := f.SetCellStyle(sheet, top, bottom, moneyStyle); err != nil {
			return fmt.Errorf("xlsx money style: %w", err)
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}
