package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	x := []float64{5, 1, 100, 3, 2, 4}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 2.25},
		{50, 3.5},
		{75, 4.75},
		{100, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(x, tt.p), 1e-12, "p=%v", tt.p)
	}
	assert.Equal(t, []float64{5, 1, 100, 3, 2, 4}, x, "input must not be reordered")
}

func TestMeanVarianceStd(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 5.0, Mean(x))
	assert.Equal(t, 4.0, Variance(x))
	assert.Equal(t, 2.0, Std(x))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestModeString(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"single winner", []string{"a", "b", "b", "c"}, "b"},
		{"tie goes to first seen", []string{"b", "a", "a", "b"}, "b"},
		{"all distinct", []string{"z", "y"}, "z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ModeString(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ModeString(nil)
	assert.False(t, ok)
}

func TestIQRBounds(t *testing.T) {
	b := IQRBounds([]float64{1, 2, 3, 4, 5, 100}, DefaultIQRFactor)
	assert.InDelta(t, 2.25, b.Q1, 1e-12)
	assert.InDelta(t, 4.75, b.Q3, 1e-12)
	assert.InDelta(t, -1.5, b.Lower, 1e-12)
	assert.InDelta(t, 8.5, b.Upper, 1e-12)
	assert.True(t, b.Contains(8.5))
	assert.False(t, b.Contains(100))
}

func TestInlierMask(t *testing.T) {
	cols := [][]float64{
		{1, 2, 3, 4, 5, 100},
		{10, 11, 12, 13, 14, 15},
	}
	assert.Equal(t, []bool{true, true, true, true, true, false}, InlierMask(cols, DefaultIQRFactor))

	// one column out of range is enough to drop the row
	cols = [][]float64{
		{1, 2, 3, 4, 5, 6},
		{10, 11, -500, 13, 14, 15},
	}
	assert.Equal(t, []bool{true, true, false, true, true, true}, InlierMask(cols, DefaultIQRFactor))

	assert.Nil(t, InlierMask(nil, DefaultIQRFactor))
}
