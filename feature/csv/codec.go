package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// Export writes rows as CSV, header first.
func Export[T any](w io.Writer, rows []T) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("exporting csv: %w", err)
	}
	return nil
}

// ExportFile writes rows as CSV to a file, creating or truncating it.
func ExportFile[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := Export(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// Import reads CSV rows into a slice of T. Rows with unparseable cells
// abort the import with a row-numbered error.
func Import[T any](r io.Reader) ([]T, error) {
	var rows []T
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("importing csv: %w", err)
	}
	return rows, nil
}

// ImportFile reads CSV rows from a file into a slice of T.
func ImportFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Import[T](f)
}

// ExpectHeaders verifies that the CSV's header row is exactly want, in
// order. It consumes the header from r.
func ExpectHeaders(r io.Reader, want []string) error {
	// gocsv builds on the standard csv reader; the same reader serves for
	// the header probe.
	header, err := stdcsv.NewReader(r).Read()
	if err == io.EOF {
		return fmt.Errorf("csv is empty, expected headers %v", want)
	}
	if err != nil {
		return fmt.Errorf("reading csv header: %w", err)
	}

	if len(header) != len(want) {
		return fmt.Errorf("expected %d headers, got %d (%v)", len(want), len(header), header)
	}
	for i, name := range want {
		if header[i] != name {
			return fmt.Errorf("header %d: expected %q, got %q", i, name, header[i])
		}
	}
	return nil
}
