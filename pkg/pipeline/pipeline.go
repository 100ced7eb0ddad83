package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tabprep/pkg/data"
)

var (
	// ErrNotNumeric is returned when text that does not parse as a number
	// reaches a numeric step.
	ErrNotNumeric = errors.New("value is not numeric")
	// ErrUnknownCategory is returned when a value was not seen during fit.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrMissingColumn is returned when a dataset lacks a fitted column.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoColumns is returned when there is nothing to transform.
	ErrNoColumns = errors.New("no numeric or categorical columns to transform")
	// ErrNoRows is returned when the dataset to transform is empty.
	ErrNoRows = errors.New("no rows to transform")
)

// Block is the column-major working data of one sub-pipeline. Exactly one of
// Floats or Strings is set: a block starts as text or numbers and may turn
// numeric along the way, as after an encoder.
type Block struct {
	Names   []string
	Floats  [][]float64 // NaN marks a missing cell
	Strings [][]string
	Missing [][]bool
}

// IsNumeric reports whether the block holds numbers.
func (b Block) IsNumeric() bool { return b.Floats != nil }

// Rows returns the number of rows in the block.
func (b Block) Rows() int {
	if b.IsNumeric() {
		if len(b.Floats) == 0 {
			return 0
		}
		return len(b.Floats[0])
	}
	if len(b.Strings) == 0 {
		return 0
	}
	return len(b.Strings[0])
}

// Numbers returns the block as floats, parsing text cells when needed.
// Missing text cells become NaN.
func (b Block) Numbers() ([][]float64, error) {
	if b.IsNumeric() {
		return b.Floats, nil
	}
	out := make([][]float64, len(b.Strings))
	for j, col := range b.Strings {
		vals := make([]float64, len(col))
		for i, s := range col {
			if b.Missing[j][i] {
				vals[i] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %q: %w", b.Names[j], i, s, ErrNotNumeric)
			}
			vals[i] = f
		}
		out[j] = vals
	}
	return out, nil
}

// BlockFromDataset copies the named columns into a block. All-numeric
// columns yield a numeric block unless text is set; otherwise every cell is
// rendered as text.
func BlockFromDataset(ds *data.Dataset, names []string, text bool) (Block, error) {
	cols := make([]*data.Column, len(names))
	allNumeric := true
	for j, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			return Block{}, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		cols[j] = col
		if col.Kind != data.Numeric {
			allNumeric = false
		}
	}

	b := Block{Names: append([]string(nil), names...)}
	if allNumeric && !text {
		b.Floats = make([][]float64, len(cols))
		for j, col := range cols {
			b.Floats[j] = append([]float64(nil), col.Floats...)
		}
		return b, nil
	}

	b.Strings = make([][]string, len(cols))
	b.Missing = make([][]bool, len(cols))
	for j, col := range cols {
		n := col.Len()
		b.Strings[j] = make([]string, n)
		b.Missing[j] = make([]bool, n)
		for i := range n {
			b.Missing[j][i] = col.IsMissing(i)
			b.Strings[j][i] = col.Cell(i)
		}
	}
	return b, nil
}

// Step is a fitted transform: its fields are the parameters learned by the
// Fitter that produced it.
type Step interface {
	Apply(b Block) (Block, error)
	// Describe summarizes the fitted parameters.
	Describe() string
}

// Fitter learns a Step from a block.
type Fitter struct {
	Name string
	Fit  func(b Block) (Step, error)
}

// Stage is a named fitted step.
type Stage struct {
	Name string
	Step Step
}

// Pipeline chains fitted steps.
type Pipeline struct {
	Name   string
	Stages []Stage
}

// Fit runs each fitter on the output of the previous step and returns the
// fitted pipeline together with the transformed block.
func Fit(name string, fitters []Fitter, b Block) (*Pipeline, Block, error) {
	p := &Pipeline{Name: name}
	for _, f := range fitters {
		step, err := f.Fit(b)
		if err != nil {
			return nil, Block{}, fmt.Errorf("%s/%s: fit: %w", name, f.Name, err)
		}
		b, err = step.Apply(b)
		if err != nil {
			return nil, Block{}, fmt.Errorf("%s/%s: %w", name, f.Name, err)
		}
		p.Stages = append(p.Stages, Stage{Name: f.Name, Step: step})
	}
	return p, b, nil
}

// Transform applies every stage in order.
func (p *Pipeline) Transform(b Block) (Block, error) {
	var err error
	for _, st := range p.Stages {
		b, err = st.Step.Apply(b)
		if err != nil {
			return Block{}, fmt.Errorf("%s/%s: %w", p.Name, st.Name, err)
		}
	}
	return b, nil
}

// StageNames lists the stage names in order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.Stages))
	for i, st := range p.Stages {
		names[i] = st.Name
	}
	return names
}
