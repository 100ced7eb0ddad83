package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tabprep/pkg/data"
	"tabprep/pkg/pipeline"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <input>",
		Short: "Transform new data with a saved transformer",
		Long: `Load the transformer from --save-path, check the dataset's columns against the
header manifest at --header-path and transform it. Missing values are filled
with the fitted means and modes; rows are not filtered.`,
		Example: `  tabprep apply new.csv --save-path preprocessor.gob --header-path header.csv -o out.csv`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runApply,
	}
	cmd.Flags().StringToString("kinds", nil, "Force column kinds, e.g. zip=categorical")
	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	logger := GetLogger(ctx)
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input dataset given")
	}

	ct, err := pipeline.Load(cfg.SavePath)
	if err != nil {
		return fmt.Errorf("loading transformer: %w", err)
	}

	loadOpts, err := cfg.LoadOptions()
	if err != nil {
		return err
	}
	loadOpts.Kinds = kindsFromTransformer(ct, loadOpts.Kinds)

	ds, err := data.Load(ctx, cfg.Source(), loadOpts)
	if err != nil {
		return err
	}
	if err := pipeline.ValidateHeader(cfg.HeaderPath, ds.Names()); err != nil {
		return err
	}

	m, err := ct.Transform(ds)
	if err != nil {
		return err
	}
	rows, cols := m.Dims()
	logger.Info("applied transformer",
		slog.String("transformer_id", ct.ID),
		slog.Int("rows", rows),
		slog.Int("cols", cols))

	names := ct.OutputNames()
	if cfg.Output != "" {
		if err := data.SaveMatrixCSV(cfg.Output, names, m); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Transformed %d rows into %d columns\n", rows, cols)
	if cfg.Preview > 0 {
		renderMatrix(out, names, m, cfg.Preview)
	}
	return nil
}

// kindsFromTransformer pins the kinds of fitted columns so new data is read
// the way the training data was; explicit overrides win.
func kindsFromTransformer(ct *pipeline.ColumnTransformer, overrides map[string]data.Kind) map[string]data.Kind {
	kinds := make(map[string]data.Kind, len(ct.Numeric)+len(ct.Categorical)+len(ct.Unsupported))
	for _, name := range ct.Numeric {
		kinds[name] = data.Numeric
	}
	for _, name := range ct.Categorical {
		kinds[name] = data.Categorical
	}
	for _, name := range ct.Unsupported {
		kinds[name] = data.Unsupported
	}
	for name, k := range overrides {
		kinds[name] = k
	}
	return kinds
}
