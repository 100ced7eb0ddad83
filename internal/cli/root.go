// Package cli provides the tabprep command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tabprep/internal/config"
)

// Version information (set at build time).
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

var cfgFile string

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabprep",
		Short: "Clean tabular data and fit a reusable scaling/encoding transformer",
		Long: `tabprep imputes missing values, removes interquartile-range outliers and fits a
column transformer (standard scaling for numeric columns, ordinal encoding plus
scaling for categorical columns). The fitted transformer and a header manifest
are saved so new data can be transformed the same way later.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tabprep.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("format", "", "Input format: csv, xlsx or sqlite (default: from extension)")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read from an xlsx input")
	rootCmd.PersistentFlags().String("query", "", "SQL query selecting the dataset from a sqlite input")
	rootCmd.PersistentFlags().String("save-path", "", "Path of the fitted transformer artifact")
	rootCmd.PersistentFlags().String("header-path", "", "Path of the header schema manifest")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write the transformed matrix as CSV to this path")
	rootCmd.PersistentFlags().Int("preview", 0, "Rows of transformed output to print")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewApplyCommand())
	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		SavePath:      config.DefaultSavePath,
		HeaderPath:    config.DefaultHeaderPath,
		IQRFactor:     config.DefaultIQRFactor,
		CategoryOrder: config.DefaultCategoryOrder,
		Preview:       config.DefaultPreview,
	}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
