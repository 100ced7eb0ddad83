package pipeline

import (
	"encoding/gob"
	"fmt"
	"math"
	"strings"
	"sync"

	"tabprep/pkg/dataprep"
	"tabprep/pkg/stats"
)

func init() {
	gob.Register(&MeanImputer{})
	gob.Register(&ModeImputer{})
	gob.Register(&OrdinalEncoder{})
	gob.Register(&Scaler{})
}

// MeanImputer fills missing numbers with the fitted column means.
type MeanImputer struct {
	Means []float64
}

// FitMeanImputer learns the mean of every column.
func FitMeanImputer(b Block) (Step, error) {
	cols, err := b.Numbers()
	if err != nil {
		return nil, err
	}
	s := &MeanImputer{Means: make([]float64, len(cols))}
	for j, col := range cols {
		mean, err := dataprep.MeanOf(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", b.Names[j], err)
		}
		s.Means[j] = mean
	}
	return s, nil
}

func (s *MeanImputer) Apply(b Block) (Block, error) {
	cols, err := b.Numbers()
	if err != nil {
		return Block{}, err
	}
	if len(cols) != len(s.Means) {
		return Block{}, fmt.Errorf("imputer fitted on %d columns, got %d", len(s.Means), len(cols))
	}
	out := make([][]float64, len(cols))
	for j, col := range cols {
		y := make([]float64, len(col))
		for i, v := range col {
			if math.IsNaN(v) {
				v = s.Means[j]
			}
			y[i] = v
		}
		out[j] = y
	}
	return Block{Names: b.Names, Floats: out}, nil
}

func (s *MeanImputer) Describe() string {
	return fmt.Sprintf("mean %v", s.Means)
}

// ModeImputer fills missing text with the fitted most frequent values.
type ModeImputer struct {
	Fills []string
}

// FitModeImputer learns the most frequent value of every column.
func FitModeImputer(b Block) (Step, error) {
	if b.IsNumeric() {
		return nil, fmt.Errorf("most_frequent imputer expects categorical columns")
	}
	s := &ModeImputer{Fills: make([]string, len(b.Strings))}
	for j, col := range b.Strings {
		mode, err := dataprep.ModeOf(col, b.Missing[j])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", b.Names[j], err)
		}
		s.Fills[j] = mode
	}
	return s, nil
}

func (s *ModeImputer) Apply(b Block) (Block, error) {
	if b.IsNumeric() {
		return Block{}, fmt.Errorf("most_frequent imputer expects categorical columns")
	}
	if len(b.Strings) != len(s.Fills) {
		return Block{}, fmt.Errorf("imputer fitted on %d columns, got %d", len(s.Fills), len(b.Strings))
	}
	out := Block{Names: b.Names, Strings: make([][]string, len(b.Strings)), Missing: make([][]bool, len(b.Strings))}
	for j, col := range b.Strings {
		vals := make([]string, len(col))
		copy(vals, col)
		for i, m := range b.Missing[j] {
			if m {
				vals[i] = s.Fills[j]
			}
		}
		out.Strings[j] = vals
		out.Missing[j] = make([]bool, len(col))
	}
	return out, nil
}

func (s *ModeImputer) Describe() string {
	return fmt.Sprintf("most_frequent %q", s.Fills)
}

// OrdinalEncoder maps each category to its index in Categories.
// The lookup index is built once, on first use, so a fitted or decoded
// encoder may be shared between goroutines.
type OrdinalEncoder struct {
	Categories [][]string

	once  sync.Once
	index []map[string]int
}

// OrdinalFitter returns a fit function assigning codes in the given order.
func OrdinalFitter(order dataprep.CategoryOrder) func(Block) (Step, error) {
	return func(b Block) (Step, error) {
		if b.IsNumeric() {
			return nil, fmt.Errorf("ordinal encoder expects categorical columns")
		}
		s := &OrdinalEncoder{Categories: make([][]string, len(b.Strings))}
		for j, col := range b.Strings {
			for i, m := range b.Missing[j] {
				if m {
					return nil, fmt.Errorf("column %q row %d: missing value reached encoder", b.Names[j], i)
				}
			}
			s.Categories[j] = dataprep.FitCategories(col, order)
		}
		return s, nil
	}
}

func (s *OrdinalEncoder) lookup() []map[string]int {
	s.once.Do(func() {
		s.index = make([]map[string]int, len(s.Categories))
		for j, cats := range s.Categories {
			m := make(map[string]int, len(cats))
			for code, c := range cats {
				m[c] = code
			}
			s.index[j] = m
		}
	})
	return s.index
}

func (s *OrdinalEncoder) Apply(b Block) (Block, error) {
	if b.IsNumeric() {
		return Block{}, fmt.Errorf("ordinal encoder expects categorical columns")
	}
	if len(b.Strings) != len(s.Categories) {
		return Block{}, fmt.Errorf("encoder fitted on %d columns, got %d", len(s.Categories), len(b.Strings))
	}
	index := s.lookup()
	out := make([][]float64, len(b.Strings))
	for j, col := range b.Strings {
		codes := make([]float64, len(col))
		for i, v := range col {
			if b.Missing[j][i] {
				codes[i] = math.NaN()
				continue
			}
			code, ok := index[j][v]
			if !ok {
				return Block{}, fmt.Errorf("column %q row %d: %w %q", b.Names[j], i, ErrUnknownCategory, v)
			}
			codes[i] = float64(code)
		}
		out[j] = codes
	}
	return Block{Names: b.Names, Floats: out}, nil
}

func (s *OrdinalEncoder) Describe() string {
	parts := make([]string, len(s.Categories))
	for j, cats := range s.Categories {
		parts[j] = fmt.Sprintf("%q", cats)
	}
	return "categories " + strings.Join(parts, " ")
}

// Scaler standardizes numeric columns.
type Scaler struct {
	stats.StandardScaler
}

// FitScaler learns the per-column mean and standard deviation.
func FitScaler(b Block) (Step, error) {
	cols, err := b.Numbers()
	if err != nil {
		return nil, err
	}
	s := &Scaler{}
	if err := s.Fit(cols); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scaler) Apply(b Block) (Block, error) {
	cols, err := b.Numbers()
	if err != nil {
		return Block{}, err
	}
	out, err := s.Transform(cols)
	if err != nil {
		return Block{}, err
	}
	return Block{Names: b.Names, Floats: out}, nil
}

func (s *Scaler) Describe() string {
	return fmt.Sprintf("mean %v scale %v", s.Mean, s.Scale)
}

// NumericFitters is the numeric sub-pipeline: mean imputation, then scaling.
func NumericFitters() []Fitter {
	return []Fitter{
		{Name: "imputer", Fit: FitMeanImputer},
		{Name: "scaler", Fit: FitScaler},
	}
}

// CategoricalFitters is the categorical sub-pipeline: most-frequent
// imputation, ordinal encoding, then scaling of the codes.
func CategoricalFitters(order dataprep.CategoryOrder) []Fitter {
	return []Fitter{
		{Name: "imputer", Fit: FitModeImputer},
		{Name: "encoder", Fit: OrdinalFitter(order)},
		{Name: "scaler", Fit: FitScaler},
	}
}
