package dataprep

import "tabprep/pkg/data"

// Partition splits column names by kind, each list in original column order.
type Partition struct {
	Numeric     []string
	Categorical []string
	// Unsupported columns are excluded from both feature lists and from the
	// transformed output.
	Unsupported []string
}

// PartitionColumns derives the partition from the dataset's column kinds.
func PartitionColumns(ds *data.Dataset) Partition {
	var p Partition
	for _, c := range ds.Columns {
		switch c.Kind {
		case data.Numeric:
			p.Numeric = append(p.Numeric, c.Name)
		case data.Categorical:
			p.Categorical = append(p.Categorical, c.Name)
		default:
			p.Unsupported = append(p.Unsupported, c.Name)
		}
	}
	return p
}

// Width is the number of transformed output columns.
func (p Partition) Width() int { return len(p.Numeric) + len(p.Categorical) }
