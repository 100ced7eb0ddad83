package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/data"
	"tabprep/pkg/dataprep"
)

// ColumnTransformer routes the numeric and categorical columns through their
// own sub-pipelines and concatenates the results, numeric columns first.
type ColumnTransformer struct {
	ID        string
	CreatedAt time.Time

	Numeric     []string
	Categorical []string
	// Unsupported lists the columns seen at fit time that were left out.
	Unsupported []string

	NumericPipe     *Pipeline
	CategoricalPipe *Pipeline
}

// FitColumnTransformer fits fresh sub-pipelines on ds and returns the fitted
// transformer with the transformed matrix.
func FitColumnTransformer(ds *data.Dataset, p dataprep.Partition, order dataprep.CategoryOrder) (*ColumnTransformer, *mat.Dense, error) {
	ct := &ColumnTransformer{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Numeric:     append([]string(nil), p.Numeric...),
		Categorical: append([]string(nil), p.Categorical...),
		Unsupported: append([]string(nil), p.Unsupported...),
	}
	if p.Width() == 0 {
		return nil, nil, ErrNoColumns
	}

	var blocks []Block
	if len(ct.Numeric) > 0 {
		b, err := BlockFromDataset(ds, ct.Numeric, false)
		if err != nil {
			return nil, nil, err
		}
		pipe, out, err := Fit("num", NumericFitters(), b)
		if err != nil {
			return nil, nil, err
		}
		ct.NumericPipe = pipe
		blocks = append(blocks, out)
	}
	if len(ct.Categorical) > 0 {
		b, err := BlockFromDataset(ds, ct.Categorical, true)
		if err != nil {
			return nil, nil, err
		}
		pipe, out, err := Fit("cat", CategoricalFitters(order), b)
		if err != nil {
			return nil, nil, err
		}
		ct.CategoricalPipe = pipe
		blocks = append(blocks, out)
	}

	m, err := assemble(ds.NumRows(), blocks)
	if err != nil {
		return nil, nil, err
	}
	return ct, m, nil
}

// Transform applies the fitted sub-pipelines to ds. Columns are looked up by
// name, so ds may carry extra columns in any order.
func (ct *ColumnTransformer) Transform(ds *data.Dataset) (*mat.Dense, error) {
	if len(ct.Numeric)+len(ct.Categorical) == 0 {
		return nil, ErrNoColumns
	}
	var blocks []Block
	if ct.NumericPipe != nil {
		b, err := BlockFromDataset(ds, ct.Numeric, false)
		if err != nil {
			return nil, err
		}
		out, err := ct.NumericPipe.Transform(b)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, out)
	}
	if ct.CategoricalPipe != nil {
		b, err := BlockFromDataset(ds, ct.Categorical, true)
		if err != nil {
			return nil, err
		}
		out, err := ct.CategoricalPipe.Transform(b)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, out)
	}
	return assemble(ds.NumRows(), blocks)
}

// OutputNames names the output columns in matrix order.
func (ct *ColumnTransformer) OutputNames() []string {
	names := make([]string, 0, len(ct.Numeric)+len(ct.Categorical))
	names = append(names, ct.Numeric...)
	return append(names, ct.Categorical...)
}

// assemble lays the numeric blocks side by side in a row-major matrix.
func assemble(rows int, blocks []Block) (*mat.Dense, error) {
	width := 0
	for _, b := range blocks {
		if !b.IsNumeric() {
			return nil, fmt.Errorf("sub-pipeline output is not numeric: %w", ErrNotNumeric)
		}
		if b.Rows() != rows {
			return nil, fmt.Errorf("sub-pipeline produced %d rows, want %d", b.Rows(), rows)
		}
		width += len(b.Floats)
	}
	if width == 0 {
		return nil, ErrNoColumns
	}
	if rows == 0 {
		return nil, ErrNoRows
	}

	buf := make([]float64, rows*width)
	offset := 0
	for _, b := range blocks {
		for j, col := range b.Floats {
			for i, v := range col {
				buf[i*width+offset+j] = v
			}
		}
		offset += len(b.Floats)
	}
	return mat.NewDense(rows, width, buf), nil
}
