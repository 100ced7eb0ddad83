package dataprep

import (
	"fmt"

	"tabprep/pkg/data"
	"tabprep/pkg/stats"
)

// RemoveOutliers drops every row where any numeric column falls outside its
// [Q1-k*IQR, Q3+k*IQR] fence and returns the filtered dataset with rows
// renumbered from zero, plus the number of rows dropped. With no numeric
// columns the dataset is returned unfiltered.
func RemoveOutliers(ds *data.Dataset, numeric []string, k float64) (*data.Dataset, int, error) {
	if len(numeric) == 0 {
		return ds, 0, nil
	}
	cols := make([][]float64, len(numeric))
	for j, name := range numeric {
		col, ok := ds.Column(name)
		if !ok {
			return nil, 0, fmt.Errorf("column %q not found", name)
		}
		if col.Kind != data.Numeric {
			return nil, 0, fmt.Errorf("column %q is %s, not numeric", name, col.Kind)
		}
		cols[j] = col.Floats
	}

	keep := stats.InlierMask(cols, k)
	dropped := 0
	for _, kept := range keep {
		if !kept {
			dropped++
		}
	}
	return ds.SelectRows(keep), dropped, nil
}
