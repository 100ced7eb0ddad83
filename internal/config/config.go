// Package config loads tabprep settings from defaults, a YAML file, the
// environment and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"tabprep/pkg/data"
	"tabprep/pkg/dataprep"
)

// ConfigFileName is the config file looked up in the working directory.
const ConfigFileName = "tabprep.yaml"

// EnvPrefix prefixes environment overrides, e.g. TABPREP_SAVE_PATH.
const EnvPrefix = "TABPREP_"

// keyDelim separates nested koanf keys. Column names under kinds may contain
// dots, so the delimiter is a byte no column name carries.
const keyDelim = "\x00"

// Default configuration values.
const (
	DefaultSavePath      = "preprocessor.gob"
	DefaultHeaderPath    = "header.csv"
	DefaultIQRFactor     = 1.5
	DefaultCategoryOrder = "appearance"
	DefaultPreview       = 5
)

// Config holds all settings.
type Config struct {
	Input  string `koanf:"input"`
	Format string `koanf:"format" validate:"omitempty,oneof=csv xlsx sqlite"`
	Sheet  string `koanf:"sheet"`
	Query  string `koanf:"query" validate:"required_if=Format sqlite"`

	SavePath      string `koanf:"save_path" validate:"required"`
	HeaderPath    string `koanf:"header_path" validate:"required"`
	Output        string `koanf:"output"`
	CleanedOutput string `koanf:"cleaned_output"`
	Plot          string `koanf:"plot"`

	IQRFactor     float64 `koanf:"iqr_factor" validate:"gte=0"`
	CategoryOrder string  `koanf:"category_order" validate:"oneof=appearance sorted"`
	Preview       int     `koanf:"preview" validate:"gte=0"`
	Verbose       bool    `koanf:"verbose"`

	// Kinds forces column kinds: column name -> numeric|categorical|unsupported.
	Kinds map[string]string `koanf:"kinds" validate:"dive,oneof=numeric categorical unsupported"`
}

// Load reads configuration with precedence flags > env > file > defaults.
// cfgFile may be empty, in which case ./tabprep.yaml is used when present.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(keyDelim)

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"save_path":      DefaultSavePath,
		"header_path":    DefaultHeaderPath,
		"iqr_factor":     DefaultIQRFactor,
		"category_order": DefaultCategoryOrder,
		"preview":        DefaultPreview,
		"verbose":        false,
	}, keyDelim), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			cfgFile = ConfigFileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// TABPREP_SAVE_PATH -> save_path
	if err := k.Load(env.Provider(EnvPrefix, keyDelim, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, keyDelim, k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Source describes the dataset input.
func (c *Config) Source() data.Source {
	return data.Source{Path: c.Input, Format: c.Format, Sheet: c.Sheet, Query: c.Query}
}

// LoadOptions converts the kind overrides for the data loaders.
func (c *Config) LoadOptions() (data.Options, error) {
	opts := data.Options{}
	if len(c.Kinds) == 0 {
		return opts, nil
	}
	opts.Kinds = make(map[string]data.Kind, len(c.Kinds))
	for name, s := range c.Kinds {
		kind, err := data.ParseKind(s)
		if err != nil {
			return opts, fmt.Errorf("kinds.%s: %w", name, err)
		}
		opts.Kinds[name] = kind
	}
	return opts, nil
}

// Order returns the configured category order.
func (c *Config) Order() dataprep.CategoryOrder {
	order, err := dataprep.ParseCategoryOrder(c.CategoryOrder)
	if err != nil {
		return dataprep.OrderAppearance
	}
	return order
}
