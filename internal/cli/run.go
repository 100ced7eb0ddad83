package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tabprep/internal/config"
	"tabprep/pkg/data"
	"tabprep/pkg/dataprep"
	"tabprep/pkg/preprocess"
	"tabprep/pkg/report"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Clean a dataset and fit the transformer",
		Long: `Load a dataset, impute missing values (mean for numeric, mode for categorical
columns), drop rows outside the interquartile-range fences, then fit and apply
the column transformer. The fitted transformer and the header manifest are
written to --save-path and --header-path.`,
		Example: `  # Preprocess a CSV file with default artifact paths
  tabprep run data.csv

  # Read a worksheet and keep the cleaned rows and a box plot
  tabprep run data.xlsx --sheet Sheet1 --cleaned-output clean.csv --plot outliers.png

  # Select the dataset from SQLite
  tabprep run app.db --query "SELECT age, city FROM people"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}

	cmd.Flags().String("cleaned-output", "", "Write the cleaned dataset as CSV to this path")
	cmd.Flags().String("plot", "", "Write a PNG box plot of numeric columns before/after outlier removal")
	cmd.Flags().Float64("iqr-factor", config.DefaultIQRFactor, "IQR multiplier for the outlier fences")
	cmd.Flags().String("category-order", config.DefaultCategoryOrder, "Ordinal code order: appearance or sorted")
	cmd.Flags().StringToString("kinds", nil, "Force column kinds, e.g. zip=categorical,joined=unsupported")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	logger := GetLogger(ctx)
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input dataset given")
	}

	loadOpts, err := cfg.LoadOptions()
	if err != nil {
		return err
	}
	ds, err := data.Load(ctx, cfg.Source(), loadOpts)
	if err != nil {
		return err
	}
	logger.Info("loaded dataset",
		slog.String("input", cfg.Input),
		slog.Int("rows", ds.NumRows()),
		slog.Int("columns", ds.NumCols()))

	opts := []preprocess.Option{
		preprocess.WithLogger(logger),
		preprocess.WithIQRFactor(cfg.IQRFactor),
		preprocess.WithCategoryOrder(cfg.Order()),
	}
	var plotErr error
	if cfg.Plot != "" {
		opts = append(opts, preprocess.WithOutlierHook(func(before, after *data.Dataset, p dataprep.Partition) {
			if len(p.Numeric) == 0 {
				logger.Warn("no numeric columns, skipping plot")
				return
			}
			plotErr = report.OutlierBoxPlots(before, after, p.Numeric, cfg.Plot)
		}))
	}

	res, err := preprocess.Run(ds, cfg.SavePath, cfg.HeaderPath, opts...)
	if err != nil {
		return err
	}
	if plotErr != nil {
		return fmt.Errorf("plotting outliers: %w", plotErr)
	}

	names := res.Transformer.OutputNames()
	if cfg.Output != "" {
		if err := data.SaveMatrixCSV(cfg.Output, names, res.Transformed); err != nil {
			return err
		}
	}
	if cfg.CleanedOutput != "" {
		if err := data.SaveCSV(cfg.CleanedOutput, res.Cleaned); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	rows, cols := res.Transformed.Dims()
	_, _ = fmt.Fprintf(out, "Preprocessed %d rows (%d dropped as outliers) into %d columns\n", rows, res.Dropped, cols)
	_, _ = fmt.Fprintf(out, "Artifacts saved: %s & %s\n", cfg.SavePath, cfg.HeaderPath)
	if cfg.Preview > 0 {
		renderMatrix(out, names, res.Transformed, cfg.Preview)
	}
	return nil
}
