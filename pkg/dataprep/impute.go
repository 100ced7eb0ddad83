package dataprep

import (
	"errors"
	"fmt"
	"math"

	"tabprep/pkg/data"
	"tabprep/pkg/stats"
)

// ErrAllMissing is returned when a column has no value to derive a fill from.
var ErrAllMissing = errors.New("column has no non-missing values")

// MeanOf returns the mean of the non-missing values of a numeric column.
func MeanOf(values []float64) (float64, error) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			nums = append(nums, v)
		}
	}
	if len(nums) == 0 {
		return 0, ErrAllMissing
	}
	return stats.Mean(nums), nil
}

// ModeOf returns the most frequent non-missing value; ties go to the value
// encountered first.
func ModeOf(values []string, missing []bool) (string, error) {
	present := make([]string, 0, len(values))
	for i, v := range values {
		if !missing[i] {
			present = append(present, v)
		}
	}
	mode, ok := stats.ModeString(present)
	if !ok {
		return "", ErrAllMissing
	}
	return mode, nil
}

// ImputeMean replaces missing cells of a numeric column with the column mean
// and returns the fill value.
func ImputeMean(col *data.Column) (float64, error) {
	mean, err := MeanOf(col.Floats)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col.Name, err)
	}
	for i, v := range col.Floats {
		if math.IsNaN(v) {
			col.Floats[i] = mean
		}
	}
	return mean, nil
}

// ImputeMode replaces missing cells of a categorical column with its most
// frequent value and returns the fill value.
func ImputeMode(col *data.Column) (string, error) {
	mode, err := ModeOf(col.Strings, col.Missing)
	if err != nil {
		return "", fmt.Errorf("column %q: %w", col.Name, err)
	}
	for i, m := range col.Missing {
		if m {
			col.Strings[i] = mode
			col.Missing[i] = false
		}
	}
	return mode, nil
}

// ImputeDataset fills every partitioned column in place, one column at a
// time. Unsupported columns are left as they are.
func ImputeDataset(ds *data.Dataset, p Partition) error {
	for _, name := range p.Numeric {
		col, ok := ds.Column(name)
		if !ok {
			return fmt.Errorf("column %q not found", name)
		}
		if _, err := ImputeMean(col); err != nil {
			return err
		}
	}
	for _, name := range p.Categorical {
		col, ok := ds.Column(name)
		if !ok {
			return fmt.Errorf("column %q not found", name)
		}
		if _, err := ImputeMode(col); err != nil {
			return err
		}
	}
	return nil
}
