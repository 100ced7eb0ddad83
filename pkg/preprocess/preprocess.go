// Package preprocess cleans a tabular dataset and fits the reusable column
// transformer used to scale and encode it.
package preprocess

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/data"
	"tabprep/pkg/dataprep"
	"tabprep/pkg/pipeline"
	"tabprep/pkg/stats"
)

// Result is everything Run produces.
type Result struct {
	// Transformed is rows x (numeric + categorical) scaled output.
	Transformed *mat.Dense
	// Cleaned is the imputed, outlier-free dataset with its original names.
	Cleaned     *data.Dataset
	Transformer *pipeline.ColumnTransformer
	Partition   dataprep.Partition
	// Dropped counts the rows removed as outliers.
	Dropped int
}

// OutlierHook observes the dataset right before and after outlier removal.
type OutlierHook func(before, after *data.Dataset, p dataprep.Partition)

type options struct {
	logger    *slog.Logger
	iqrFactor float64
	order     dataprep.CategoryOrder
	hook      OutlierHook
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIQRFactor sets the fence multiplier applied to the interquartile range.
func WithIQRFactor(k float64) Option {
	return func(o *options) { o.iqrFactor = k }
}

// WithCategoryOrder sets how ordinal codes are assigned.
func WithCategoryOrder(order dataprep.CategoryOrder) Option {
	return func(o *options) { o.order = order }
}

// WithOutlierHook registers a hook called around outlier removal.
func WithOutlierHook(h OutlierHook) Option {
	return func(o *options) { o.hook = h }
}

// Preprocess runs the routine with default options and returns the
// transformed matrix and the cleaned dataset.
func Preprocess(ds *data.Dataset, savePath, headerPath string) (*mat.Dense, *data.Dataset, error) {
	res, err := Run(ds, savePath, headerPath)
	if err != nil {
		return nil, nil, err
	}
	return res.Transformed, res.Cleaned, nil
}

// Run imputes, filters outliers, fits the column transformer and writes the
// header manifest to headerPath and the fitted transformer to savePath. The
// input dataset is not modified. Failures are returned as they occur; the
// header may already be written when a later step fails.
func Run(ds *data.Dataset, savePath, headerPath string, opts ...Option) (*Result, error) {
	o := options{
		logger:    slog.New(slog.DiscardHandler),
		iqrFactor: stats.DefaultIQRFactor,
		order:     dataprep.OrderAppearance,
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	clean := ds.Clone()

	p := dataprep.PartitionColumns(clean)
	log.Debug("partitioned columns",
		slog.Any("numeric", p.Numeric),
		slog.Any("categorical", p.Categorical))
	if len(p.Unsupported) > 0 {
		log.Warn("columns of unsupported kind are excluded from the transform",
			slog.Any("columns", p.Unsupported))
	}

	if err := pipeline.WriteHeader(headerPath, clean.Names()); err != nil {
		return nil, fmt.Errorf("writing header schema: %w", err)
	}

	if err := dataprep.ImputeDataset(clean, p); err != nil {
		return nil, fmt.Errorf("imputing missing values: %w", err)
	}

	before := clean
	clean, dropped, err := dataprep.RemoveOutliers(clean, p.Numeric, o.iqrFactor)
	if err != nil {
		return nil, fmt.Errorf("removing outliers: %w", err)
	}
	log.Info("removed outliers",
		slog.Int("rows_before", before.NumRows()),
		slog.Int("rows_after", clean.NumRows()),
		slog.Int("dropped", dropped))
	if o.hook != nil {
		o.hook(before, clean, p)
	}

	ct, m, err := pipeline.FitColumnTransformer(clean, p, o.order)
	if err != nil {
		return nil, fmt.Errorf("fitting transformer: %w", err)
	}

	if err := pipeline.Save(savePath, ct); err != nil {
		return nil, fmt.Errorf("saving transformer: %w", err)
	}
	rows, cols := m.Dims()
	log.Info("saved artifacts",
		slog.String("transformer", savePath),
		slog.String("header", headerPath),
		slog.String("transformer_id", ct.ID),
		slog.Int("rows", rows),
		slog.Int("cols", cols))

	return &Result{
		Transformed: m,
		Cleaned:     clean,
		Transformer: ct,
		Partition:   p,
		Dropped:     dropped,
	}, nil
}
