package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// ErrSchemaMismatch is returned when a dataset's columns differ from a saved
// header manifest.
var ErrSchemaMismatch = errors.New("columns do not match header schema")

// WriteHeader writes the column names as a single CSV header row with no
// data rows.
func WriteHeader(path string, names []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(names); err != nil {
		_ = file.Close()
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadHeader returns the column names stored by WriteHeader.
func ReadHeader(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	names, err := csv.NewReader(file).Read()
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header %s: %w", path, err)
	}
	return names, nil
}

// ValidateHeader checks that names equal the manifest at path, in order.
func ValidateHeader(path string, names []string) error {
	want, err := ReadHeader(path)
	if err != nil {
		return err
	}
	if !slices.Equal(want, names) {
		return fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, names, want)
	}
	return nil
}
