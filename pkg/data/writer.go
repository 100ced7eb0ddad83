package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// WriteCSV writes the dataset with a header row. Missing cells are empty.
func WriteCSV(w io.Writer, ds *Dataset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Names()); err != nil {
		return fmt.Errorf("error writing headers: %w", err)
	}
	for i := range ds.NumRows() {
		if err := writer.Write(ds.Row(i)); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMatrixCSV writes a numeric matrix with the given header.
func WriteMatrixCSV(w io.Writer, names []string, m mat.Matrix) error {
	r, c := m.Dims()
	if len(names) != c {
		return fmt.Errorf("%d names for %d columns", len(names), c)
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("error writing headers: %w", err)
	}
	row := make([]string, c)
	for i := range r {
		for j := range c {
			row[j] = strconv.FormatFloat(m.At(i, j), 'f', 6, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the dataset to path.
func SaveCSV(path string, ds *Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, ds); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// SaveMatrixCSV writes the matrix to path.
func SaveMatrixCSV(path string, names []string, m mat.Matrix) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMatrixCSV(file, names, m); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
