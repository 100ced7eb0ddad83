package stats

// DefaultIQRFactor is the Tukey fence multiplier.
const DefaultIQRFactor = 1.5

// Bounds is the closed acceptance interval of one column.
type Bounds struct {
	Q1, Q3       float64
	Lower, Upper float64
}

// Contains reports whether v lies within [Lower, Upper].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// IQRBounds returns Q1 - k*IQR and Q3 + k*IQR for the values of x.
func IQRBounds(x []float64, k float64) Bounds {
	q1 := Percentile(x, 25)
	q3 := Percentile(x, 75)
	iqr := q3 - q1
	return Bounds{Q1: q1, Q3: q3, Lower: q1 - k*iqr, Upper: q3 + k*iqr}
}

// InlierMask marks the rows whose value lies inside the bounds of every
// column. cols holds one slice per column, all of the same length.
func InlierMask(cols [][]float64, k float64) []bool {
	if len(cols) == 0 {
		return nil
	}
	keep := make([]bool, len(cols[0]))
	for i := range keep {
		keep[i] = true
	}
	for _, col := range cols {
		b := IQRBounds(col, k)
		for i, v := range col {
			if !b.Contains(v) {
				keep[i] = false
			}
		}
	}
	return keep
}
