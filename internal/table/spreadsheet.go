package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/wpkit/internal/model"
)

// spreadsheetCloser closes the row iterator and the workbook together.
type spreadsheetCloser struct {
	rows *excelize.Rows
	file *excelize.File
}

func (c spreadsheetCloser) Close() error {
	return errors.Join(c.rows.Close(), c.file.Close())
}

// openSpreadsheet opens an .xlsx workbook and streams rows of its first sheet.
func openSpreadsheet(path string) (*Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w: %w", path, model.ErrRead, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close() //nolint:errcheck // Already failing
		return nil, fmt.Errorf("workbook %s has no sheets: %w", path, model.ErrRead)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close() //nolint:errcheck // Already failing
		return nil, fmt.Errorf("read sheet %q of %s: %w: %w", sheets[0], path, model.ErrRead, err)
	}

	rowNum := 0
	next := func() ([]string, int, error) {
		if !rows.Next() {
			if err := rows.Error(); err != nil {
				return nil, 0, err
			}
			return nil, 0, io.EOF
		}
		rowNum++
		cols, err := rows.Columns()
		if err != nil {
			return nil, 0, err
		}
		return cols, rowNum, nil
	}

	r := &Reader{
		path:   path,
		next:   next,
		closer: spreadsheetCloser{rows: rows, file: f},
	}
	if err := r.readHeader(); err != nil {
		_ = r.Close() //nolint:errcheck // Already failing
		return nil, err
	}
	return r, nil
}
