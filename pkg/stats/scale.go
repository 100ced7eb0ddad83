package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrNotFitted is returned when a scaler is used before Fit.
var ErrNotFitted = errors.New("scaler is not fitted")

// StandardScaler standardizes each column to zero mean and unit variance.
// Fields are exported so a fitted scaler survives gob encoding.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fitted reports whether Fit has run.
func (s *StandardScaler) Fitted() bool { return s.Mean != nil }

// Fit learns the per-column mean and population standard deviation from
// column-major data. A constant column gets scale 1.
func (s *StandardScaler) Fit(cols [][]float64) error {
	s.Mean = make([]float64, len(cols))
	s.Scale = make([]float64, len(cols))
	for j, col := range cols {
		if len(col) == 0 {
			return fmt.Errorf("column %d: no values to fit", j)
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		s.Mean[j] = mean
		s.Scale[j] = std
		if std == 0 {
			s.Scale[j] = 1
		}
	}
	return nil
}

// Transform returns standardized copies of the columns.
func (s *StandardScaler) Transform(cols [][]float64) ([][]float64, error) {
	if !s.Fitted() {
		return nil, ErrNotFitted
	}
	if len(cols) != len(s.Mean) {
		return nil, fmt.Errorf("scaler fitted on %d columns, got %d", len(s.Mean), len(cols))
	}
	out := make([][]float64, len(cols))
	for j, col := range cols {
		y := make([]float64, len(col))
		for i, v := range col {
			y[i] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[j] = y
	}
	return out, nil
}

// FitTransform fits on cols and transforms them.
func (s *StandardScaler) FitTransform(cols [][]float64) ([][]float64, error) {
	if err := s.Fit(cols); err != nil {
		return nil, err
	}
	return s.Transform(cols)
}
