package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Overview sheet layout.
const (
	headerFill          = "366092"
	overviewLabelWidth  = 20
	overviewValueWidth  = 50
	overviewTitleRow    = 1
	overviewSummaryRow  = 7
	overviewFirstLabels = 3
)

// XLSXWriter outputs the report as an Excel workbook with the sheets
// Overview, Plugins and Themes.
type XLSXWriter struct {
	baseWriter
}

// NewXLSXWriter creates an XLSXWriter that outputs to the given writer.
func NewXLSXWriter(output io.Writer) *XLSXWriter {
	return &XLSXWriter{
		baseWriter: newBaseWriter(output),
	}
}

// xlsxStyles holds the style IDs registered in one workbook.
type xlsxStyles struct {
	header  int
	cell    int
	title   int
	summary int
	label   int
}

// Write builds the workbook and streams it to the output.
func (w *XLSXWriter) Write(report *Report) (int, error) {
	f, err := Workbook(report)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := f.WriteTo(w.output)
	if err != nil {
		return int(n), fmt.Errorf("failed to write workbook: %w", err)
	}
	return int(n), nil
}

// Workbook builds the excelize workbook for report. The caller must Close it.
func Workbook(report *Report) (*excelize.File, error) {
	f := excelize.NewFile()

	styles, err := newXLSXStyles(f)
	if err != nil {
		_ = f.Close() //nolint:errcheck // Returning the style error
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		_ = f.Close() //nolint:errcheck // Returning the rename error
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeOverview(f, report, styles); err != nil {
		_ = f.Close() //nolint:errcheck // Returning the overview error
		return nil, err
	}
	for _, s := range report.Sheets {
		if err := writeSheet(f, s, styles); err != nil {
			_ = f.Close() //nolint:errcheck // Returning the sheet error
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func newXLSXStyles(f *excelize.File) (*xlsxStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	s := &xlsxStyles{}
	defs := []struct {
		id    *int
		style *excelize.Style
	}{
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		}},
		{&s.cell, &excelize.Style{Border: border}},
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.summary, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
		{&s.label, &excelize.Style{Font: &excelize.Font{Bold: true}}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		*d.id = id
	}
	return s, nil
}

func writeOverview(f *excelize.File, report *Report, styles *xlsxStyles) error {
	for r, row := range report.OverviewRows() {
		rowNum := r + 1
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
			if err != nil {
				return err
			}
			if s, ok := value.(string); ok && s == "" {
				continue
			}
			if err := f.SetCellValue(SheetOverview, cell, value); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", SheetOverview, cell, err)
			}

			style := -1
			switch {
			case rowNum == overviewTitleRow:
				style = styles.title
			case rowNum == overviewSummaryRow:
				style = styles.summary
			case c == 0 && rowNum >= overviewFirstLabels:
				style = styles.label
			}
			if style >= 0 {
				if err := f.SetCellStyle(SheetOverview, cell, cell, style); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetColWidth(SheetOverview, "A", "A", overviewLabelWidth); err != nil {
		return err
	}
	return f.SetColWidth(SheetOverview, "B", "B", overviewValueWidth)
}

func writeSheet(f *excelize.File, s Sheet, styles *xlsxStyles) error {
	if _, err := f.NewSheet(s.Name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", s.Name, err)
	}

	if err := setRow(f, s.Name, 1, s.Header, styles.header); err != nil {
		return err
	}
	for i, row := range s.Rows {
		if err := setRow(f, s.Name, i+2, row, styles.cell); err != nil {
			return err
		}
	}

	for i, width := range s.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, col, col, float64(width)); err != nil {
			return fmt.Errorf("failed to set width of %s!%s: %w", s.Name, col, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string, style int) error {
	if len(values) == 0 {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(values), rowNum)
	if err != nil {
		return err
	}

	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, start, &row); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
	}
	return f.SetCellStyle(sheet, start, end, style)
}
