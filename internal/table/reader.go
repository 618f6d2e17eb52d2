package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/wpkit/internal/model"
)

// SampleSize is the number of leading bytes inspected to choose a delimiter.
const SampleSize = 1024

// Record is one data row keyed by column name.
type Record struct {
	// Line is the 1-based line (or spreadsheet row) the record started on.
	Line int

	// Values maps header names to trimmed cell values. Cells missing from a
	// short row read as the empty string.
	Values map[string]string
}

// Get returns the trimmed value of column, or "" when absent.
func (r Record) Get(column string) string {
	return r.Values[column]
}

// rowSource yields raw rows with their starting line. It returns io.EOF when
// the input is exhausted.
type rowSource func() ([]string, int, error)

// Reader iterates over the records of one table file.
// A Reader holds its file open until Close is called.
type Reader struct {
	path      string
	delimiter rune
	header    []string
	next      rowSource
	closer    io.Closer
}

// Open opens path and reads its header row. Files ending in .xlsx are read as
// spreadsheets; everything else is treated as delimited UTF-8 text.
//
// A missing file yields an error wrapping model.ErrNotFound; an undecodable
// header yields an error wrapping model.ErrRead.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("table file %s: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("table file %s: %w: %w", path, model.ErrRead, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return openSpreadsheet(path)
	}
	return openDelimited(path)
}

// openDelimited opens a comma- or tab-separated text file.
func openDelimited(path string) (*Reader, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, model.ErrRead, err)
	}

	// Drop a leading UTF-8 byte order mark so it does not end up in the first
	// header name. Other bytes pass through untouched.
	br := bufio.NewReaderSize(transform.NewReader(f, unicode.BOMOverride(transform.Nop)), 4*SampleSize)
	sample, err := br.Peek(SampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		_ = f.Close() //nolint:errcheck // Already failing
		return nil, fmt.Errorf("read %s: %w: %w", path, model.ErrRead, err)
	}

	delimiter := DetectDelimiter(sample)
	cr := csv.NewReader(br)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	next := func() ([]string, int, error) {
		row, err := cr.Read()
		if err != nil {
			return nil, 0, err
		}
		line, _ := cr.FieldPos(0)
		return row, line, nil
	}

	r := &Reader{
		path:      path,
		delimiter: delimiter,
		next:      next,
		closer:    f,
	}
	if err := r.readHeader(); err != nil {
		_ = f.Close() //nolint:errcheck // Already failing
		return nil, err
	}
	return r, nil
}

// DetectDelimiter returns '\t' when sample contains a tab and ',' otherwise.
func DetectDelimiter(sample []byte) rune {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	if bytes.IndexByte(sample, '\t') >= 0 {
		return '\t'
	}
	return ','
}

// readHeader consumes the first row as the header.
// An empty input leaves the header empty; Require then reports every
// requested column as missing.
func (r *Reader) readHeader() error {
	row, _, err := r.next()
	if errors.Is(err, io.EOF) {
		r.header = []string{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header of %s: %w: %w", r.path, model.ErrRead, err)
	}

	r.header = make([]string, len(row))
	for i, name := range row {
		if !utf8.ValidString(name) {
			return fmt.Errorf("read header of %s: %w: invalid UTF-8", r.path, model.ErrRead)
		}
		r.header[i] = strings.TrimSpace(name)
	}
	return nil
}

// Path returns the file the Reader was opened on.
func (r *Reader) Path() string {
	return r.path
}

// Delimiter returns the detected field delimiter. Spreadsheets report 0.
func (r *Reader) Delimiter() rune {
	return r.delimiter
}

// Header returns a copy of the trimmed header names.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Require checks that every named column is present in the header.
// It returns a *model.MissingColumnsError listing the absent ones.
func (r *Reader) Require(columns ...string) error {
	present := make(map[string]bool, len(r.header))
	for _, h := range r.header {
		present[h] = true
	}

	var missing []string
	for _, c := range columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &model.MissingColumnsError{Missing: missing, Available: r.Header()}
}

// Records returns a lazy sequence of data rows. Iteration stops after the
// first error, which wraps model.ErrRead.
func (r *Reader) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			row, line, err := r.next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Record{}, fmt.Errorf("read %s: %w: %w", r.path, model.ErrRead, err))
				return
			}

			rec, err := r.record(row, line)
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// record maps a raw row onto the header.
func (r *Reader) record(row []string, line int) (Record, error) {
	values := make(map[string]string, len(r.header))
	for i, name := range r.header {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		if !utf8.ValidString(cell) {
			return Record{}, fmt.Errorf("read %s line %d: %w: invalid UTF-8", r.path, line, model.ErrRead)
		}
		values[name] = strings.TrimSpace(cell)
	}
	return Record{Line: line, Values: values}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
