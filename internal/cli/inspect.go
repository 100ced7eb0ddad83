package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"tabprep/pkg/data"
	"tabprep/pkg/pipeline"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "Show column kinds of a dataset and the saved transformer",
		Long: `Print the detected kind and missing-value count of every column of the input
dataset, and the fitted stages of the transformer at --save-path when it exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().StringToString("kinds", nil, "Force column kinds, e.g. zip=categorical")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	out := cmd.OutOrStdout()
	if len(args) == 1 {
		cfg.Input = args[0]
	}

	shown := false
	if cfg.Input != "" {
		opts, err := cfg.LoadOptions()
		if err != nil {
			return err
		}
		ds, err := data.Load(ctx, cfg.Source(), opts)
		if err != nil {
			return err
		}
		renderDataset(out, ds)
		shown = true
	}

	if _, err := os.Stat(cfg.SavePath); err == nil {
		ct, err := pipeline.Load(cfg.SavePath)
		if err != nil {
			return err
		}
		renderTransformer(out, ct)
		shown = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if !shown {
		return fmt.Errorf("nothing to inspect: give an input dataset or an existing --save-path")
	}
	return nil
}
