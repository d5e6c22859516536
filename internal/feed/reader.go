package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"

	"github.com/supplyhub/supplyhub/pkg/storage"
)

// ErrFileNotStaged marks a pass whose input file is absent from staging. The
// runner skips the pass instead of failing the run.
var ErrFileNotStaged = errors.New("feed: file not staged")

// Row is one data record of a feed file, addressed by header name.
type Row struct {
	Line   int // 1-based line number in the file, header included
	header map[string]int
	fields []string
}

// Get returns the value of the named column. A header the file does not carry
// is a hard error: it means the vendor changed their export format and silent
// empty values would corrupt the catalog.
func (r Row) Get(column string) (string, error) {
	idx, ok := r.header[column]
	if !ok {
		return "", fmt.Errorf("feed: line %d: missing column %q", r.Line, column)
	}
	if idx >= len(r.fields) {
		return "", nil
	}
	return r.fields[idx], nil
}

// FileReader streams rows from a staged delimiter-separated file. Vendor
// exports arrive in ISO-8859-1; the reader transcodes to UTF-8.
type FileReader struct {
	src  io.ReadCloser
	csv  *csv.Reader
	line int
	head map[string]int
}

// OpenFile opens a staged file for reading. Returns ErrFileNotStaged when the
// file is absent so callers can distinguish "vendor has no such pass this run"
// from a real read failure.
func OpenFile(disk storage.Disk, path string, delimiter rune) (*FileReader, error) {
	if !disk.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotStaged, path)
	}
	src, err := disk.GetStream(path)
	if err != nil {
		return nil, fmt.Errorf("feed: open %s: %w", path, err)
	}

	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(src))
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	headerFields, err := cr.Read()
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("feed: read header %s: %w", path, err)
	}
	head := make(map[string]int, len(headerFields))
	for i, name := range headerFields {
		head[name] = i
	}

	return &FileReader{src: src, csv: cr, line: 1, head: head}, nil
}

// Next returns the next data row. io.EOF ends the stream.
func (f *FileReader) Next() (Row, error) {
	fields, err := f.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("feed: line %d: %w", f.line+1, err)
	}
	f.line++
	return Row{Line: f.line, header: f.head, fields: fields}, nil
}

func (f *FileReader) Close() error {
	return f.src.Close()
}
