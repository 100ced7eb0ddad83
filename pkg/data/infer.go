package data

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// DefaultMissingTokens are the cell values read as missing.
var DefaultMissingTokens = []string{"", "NA", "NaN", "nan", "null", "NULL", "N/A"}

// Options control how raw text records become a typed Dataset.
type Options struct {
	// Kinds forces the kind of the named columns instead of scanning them.
	Kinds map[string]Kind
	// MissingTokens overrides DefaultMissingTokens when non-nil.
	MissingTokens []string
}

func (o Options) missingSet() map[string]struct{} {
	tokens := o.MissingTokens
	if tokens == nil {
		tokens = DefaultMissingTokens
	}
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// BoolTokens are the cell values read as booleans. A column holding only
// these is Unsupported: booleans belong to neither feature partition.
var BoolTokens = []string{"True", "TRUE", "true", "False", "FALSE", "false"}

// InferKind scans the non-missing values once: if all of them parse as
// floats the column is Numeric, if all are boolean tokens it is Unsupported,
// otherwise Categorical. A column with no values is Numeric.
func InferKind(values []string, missing map[string]struct{}) Kind {
	numeric, boolean, present := true, true, false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if _, ok := missing[v]; ok {
			continue
		}
		present = true
		if numeric {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
			}
		}
		if boolean && !slices.Contains(BoolTokens, v) {
			boolean = false
		}
		if !numeric && !boolean {
			return Categorical
		}
	}
	if boolean && present && !numeric {
		return Unsupported
	}
	return Numeric
}

// FromRecords builds a Dataset from a header and row-major text records.
func FromRecords(header []string, records [][]string, opts Options) (*Dataset, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no columns in header")
	}
	missing := opts.missingSet()
	cols := make([]*Column, len(header))
	for j, name := range header {
		raw := make([]string, len(records))
		for i, rec := range records {
			if j >= len(rec) {
				return nil, fmt.Errorf("row %d has %d fields, want %d", i+1, len(rec), len(header))
			}
			raw[i] = rec[j]
		}

		kind, forced := opts.Kinds[name]
		if !forced {
			kind = InferKind(raw, missing)
		}
		col, err := buildColumn(name, kind, raw, nil, missing)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	return New(cols...)
}

// buildColumn converts raw text into a typed column. null, when non-nil,
// marks cells that are missing regardless of their text.
func buildColumn(name string, kind Kind, raw []string, null []bool, missing map[string]struct{}) (*Column, error) {
	isNull := func(i int) bool { return null != nil && null[i] }
	if kind != Numeric {
		vals := make([]string, len(raw))
		mask := make([]bool, len(raw))
		for i, v := range raw {
			if _, ok := missing[strings.TrimSpace(v)]; ok || isNull(i) {
				mask[i] = true
				continue
			}
			vals[i] = v
		}
		return NewTextColumn(name, kind, vals, mask), nil
	}

	vals := make([]float64, len(raw))
	for i, v := range raw {
		v = strings.TrimSpace(v)
		if _, ok := missing[v]; ok || isNull(i) {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %q is not numeric", name, i+1, v)
		}
		vals[i] = f
	}
	return NewNumericColumn(name, vals), nil
}
