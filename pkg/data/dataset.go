package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the value type of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
	// Unsupported columns (dates, booleans, blobs) are carried through cleaning
	// but belong to no feature partition.
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unsupported"
	}
}

// ParseKind maps a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "number", "float":
		return Numeric, nil
	case "categorical", "category", "text":
		return Categorical, nil
	case "unsupported", "other":
		return Unsupported, nil
	}
	return 0, fmt.Errorf("unknown column kind %q", s)
}

// Column is a single named, homogeneously typed column.
// Numeric values live in Floats with NaN marking a missing cell; every other
// kind keeps its text in Strings and flags missing cells in Missing.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Missing []bool
}

// NewNumericColumn builds a numeric column. NaN entries are missing.
func NewNumericColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: Numeric, Floats: values}
}

// NewTextColumn builds a categorical or unsupported column. A nil missing
// mask means no cell is missing.
func NewTextColumn(name string, kind Kind, values []string, missing []bool) *Column {
	if missing == nil {
		missing = make([]bool, len(values))
	}
	return &Column{Name: name, Kind: kind, Strings: values, Missing: missing}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsMissing reports whether row i holds no value.
func (c *Column) IsMissing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Missing[i]
}

// MissingCount returns how many cells are missing.
func (c *Column) MissingCount() int {
	n := 0
	for i := range c.Len() {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Cell renders row i as text; missing cells render empty.
func (c *Column) Cell(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.Kind == Numeric {
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	}
	return c.Strings[i]
}

// Clone deep copies the column.
func (c *Column) Clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Missing != nil {
		out.Missing = append([]bool(nil), c.Missing...)
	}
	return out
}

// Schema describes the structure of a dataset.
type Schema struct {
	Names []string
	Kinds []Kind
}

// Dataset is an ordered collection of equal-length named columns.
type Dataset struct {
	Columns []*Column
}

// New builds a dataset and checks that every column has the same length and a
// unique name.
func New(cols ...*Column) (*Dataset, error) {
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if c.Kind != Numeric && len(c.Missing) != len(c.Strings) {
			return nil, fmt.Errorf("column %q: missing mask has %d entries, want %d", c.Name, len(c.Missing), len(c.Strings))
		}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), cols[0].Len())
		}
	}
	return &Dataset{Columns: cols}, nil
}

// NumRows returns the row count.
func (d *Dataset) NumRows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].Len()
}

// NumCols returns the column count.
func (d *Dataset) NumCols() int { return len(d.Columns) }

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Schema returns the names and kinds of the columns.
func (d *Dataset) Schema() Schema {
	s := Schema{Names: d.Names(), Kinds: make([]Kind, len(d.Columns))}
	for i, c := range d.Columns {
		s.Kinds[i] = c.Kind
	}
	return s
}

// Clone deep copies the dataset so the copy shares no backing arrays.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{Columns: make([]*Column, len(d.Columns))}
	for i, c := range d.Columns {
		out.Columns[i] = c.Clone()
	}
	return out
}

// SelectRows returns a new dataset holding the rows where keep is true,
// renumbered contiguously from zero.
func (d *Dataset) SelectRows(keep []bool) *Dataset {
	out := &Dataset{Columns: make([]*Column, len(d.Columns))}
	for j, c := range d.Columns {
		nc := &Column{Name: c.Name, Kind: c.Kind}
		for i, k := range keep {
			if !k {
				continue
			}
			if c.Kind == Numeric {
				nc.Floats = append(nc.Floats, c.Floats[i])
			} else {
				nc.Strings = append(nc.Strings, c.Strings[i])
				nc.Missing = append(nc.Missing, c.Missing[i])
			}
		}
		out.Columns[j] = nc
	}
	return out
}

// Row renders row i as text cells.
func (d *Dataset) Row(i int) []string {
	row := make([]string, len(d.Columns))
	for j, c := range d.Columns {
		row[j] = c.Cell(i)
	}
	return row
}
