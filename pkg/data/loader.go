package data

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source formats understood by Load.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

// Source names where a dataset comes from.
type Source struct {
	Path   string
	Format string // csv, xlsx or sqlite; inferred from the extension when empty
	Sheet  string // xlsx only
	Query  string // sqlite only
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// Load reads the dataset described by src.
func Load(ctx context.Context, src Source, opts Options) (*Dataset, error) {
	format := src.Format
	if format == "" {
		format = DetectFormat(src.Path)
	}
	switch format {
	case FormatCSV:
		return LoadCSV(src.Path, opts)
	case FormatXLSX:
		return LoadXLSX(src.Path, src.Sheet, opts)
	case FormatSQLite:
		return LoadSQLite(ctx, src.Path, src.Query, opts)
	}
	return nil, fmt.Errorf("unknown source format %q", format)
}

// LoadCSV reads a CSV file whose first record is the header.
func LoadCSV(path string, opts Options) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ds, err := ReadCSV(bufio.NewReader(file), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV reads CSV records from r; the first record is the header.
func ReadCSV(r io.Reader, opts Options) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return FromRecords(header, records, opts)
}
