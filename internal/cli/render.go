package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/data"
	"tabprep/pkg/pipeline"
)

func newTable(w io.Writer, header ...string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	row := make(table.Row, len(header))
	for i, h := range header {
		row[i] = h
	}
	t.AppendHeader(row)
	return t
}

// renderMatrix prints the first n rows of m.
func renderMatrix(w io.Writer, names []string, m mat.Matrix, n int) {
	r, c := m.Dims()
	if n > r {
		n = r
	}
	t := newTable(w, names...)
	for i := range n {
		row := make(table.Row, c)
		for j := range c {
			row[j] = fmt.Sprintf("%.6f", m.At(i, j))
		}
		t.AppendRow(row)
	}
	if n < r {
		t.AppendFooter(table.Row{fmt.Sprintf("... %d more rows", r-n)})
	}
	t.Render()
}

// renderDataset prints one line per column: kind and missing count.
func renderDataset(w io.Writer, ds *data.Dataset) {
	t := newTable(w, "Column", "Kind", "Missing")
	for _, c := range ds.Columns {
		t.AppendRow(table.Row{c.Name, c.Kind.String(), c.MissingCount()})
	}
	t.AppendFooter(table.Row{"rows", ds.NumRows(), ""})
	t.Render()
}

// renderTransformer prints each fitted stage with its parameters.
func renderTransformer(w io.Writer, ct *pipeline.ColumnTransformer) {
	_, _ = fmt.Fprintf(w, "Transformer %s (fitted %s)\n", ct.ID, ct.CreatedAt.Format("2006-01-02 15:04:05"))
	t := newTable(w, "Pipeline", "Columns", "Stage", "Parameters")
	for _, part := range []struct {
		pipe *pipeline.Pipeline
		cols []string
	}{
		{ct.NumericPipe, ct.Numeric},
		{ct.CategoricalPipe, ct.Categorical},
	} {
		if part.pipe == nil {
			continue
		}
		for _, st := range part.pipe.Stages {
			t.AppendRow(table.Row{part.pipe.Name, strings.Join(part.cols, ","), st.Name, st.Step.Describe()})
		}
	}
	t.Render()
	if len(ct.Unsupported) > 0 {
		_, _ = fmt.Fprintf(w, "Excluded columns: %s\n", strings.Join(ct.Unsupported, ", "))
	}
}
