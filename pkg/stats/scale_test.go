package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardScaler(t *testing.T) {
	cols := [][]float64{
		{1, 2, 3, 4, 5},
		{10, 10, 10, 10, 10},
	}
	s := NewStandardScaler()
	out, err := s.FitTransform(cols)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, s.Mean[0], 1e-12)
	assert.InDelta(t, Std(cols[0]), s.Scale[0], 1e-12)
	assert.InDelta(t, 0.0, Mean(out[0]), 1e-12)
	assert.InDelta(t, 1.0, Std(out[0]), 1e-12)

	// constant column: scale falls back to 1, output is all zero
	assert.Equal(t, 1.0, s.Scale[1])
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, out[1])

	assert.Equal(t, []float64{1, 2, 3, 4, 5}, cols[0], "input must not be modified")
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScaler()
	_, err := s.Transform([][]float64{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	require.NoError(t, s.Fit([][]float64{{1, 2}}))
	_, err = s.Transform([][]float64{{1}, {2}})
	assert.Error(t, err)

	assert.Error(t, s.Fit([][]float64{{}}))
}
