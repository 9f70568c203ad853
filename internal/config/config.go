// Package config loads linv settings from a YAML file and LINV_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/RichardEWillis/pi-label-inventory/internal/atomicfile"
	"github.com/RichardEWillis/pi-label-inventory/internal/labels"
)

// FileName is the config file name without extension.
const FileName = "linv"

// EnvPrefix prefixes environment overrides, e.g. LINV_LABELS_PREFIX.
const EnvPrefix = "LINV"

// Config holds every linv setting. Keys in the YAML file and in LINV_*
// variables follow the yaml tags.
type Config struct {
	Inventory     string       `yaml:"inventory" mapstructure:"inventory"`
	Verbose       bool         `yaml:"verbose" mapstructure:"verbose"`
	UniqueSerials bool         `yaml:"unique_serials" mapstructure:"unique_serials"`
	Labels        LabelsConfig `yaml:"labels" mapstructure:"labels"`
}

// LabelsConfig controls label text and the sheet layout.
type LabelsConfig struct {
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
	Border bool   `yaml:"border" mapstructure:"border"`
	// OverwriteExisting removes an existing PDF before printing. When false
	// printing to an existing file fails.
	OverwriteExisting bool        `yaml:"overwrite_existing" mapstructure:"overwrite_existing"`
	Sheet             SheetConfig `yaml:"sheet" mapstructure:"sheet"`
}

// SheetConfig mirrors labels.Spec. Sizes are in millimetres.
type SheetConfig struct {
	Width        float64 `yaml:"width" mapstructure:"width"`
	Height       float64 `yaml:"height" mapstructure:"height"`
	Columns      int     `yaml:"columns" mapstructure:"columns"`
	Rows         int     `yaml:"rows" mapstructure:"rows"`
	LabelWidth   float64 `yaml:"label_width" mapstructure:"label_width"`
	LabelHeight  float64 `yaml:"label_height" mapstructure:"label_height"`
	CornerRadius float64 `yaml:"corner_radius" mapstructure:"corner_radius"`
}

// DefaultConfig returns the settings used when no file or variable overrides them.
func DefaultConfig() *Config {
	spec := labels.DefaultSpec()
	return &Config{
		Inventory:     "inventory.csv",
		UniqueSerials: true,
		Labels: LabelsConfig{
			Prefix:            labels.DefaultPrefix,
			Border:            true,
			OverwriteExisting: true,
			Sheet: SheetConfig{
				Width:        spec.SheetWidth,
				Height:       spec.SheetHeight,
				Columns:      spec.Columns,
				Rows:         spec.Rows,
				LabelWidth:   spec.LabelWidth,
				LabelHeight:  spec.LabelHeight,
				CornerRadius: spec.CornerRadius,
			},
		},
	}
}

// Spec converts the sheet settings to a label grid.
func (c SheetConfig) Spec() labels.Spec {
	return labels.Spec{
		SheetWidth:   c.Width,
		SheetHeight:  c.Height,
		Columns:      c.Columns,
		Rows:         c.Rows,
		LabelWidth:   c.LabelWidth,
		LabelHeight:  c.LabelHeight,
		CornerRadius: c.CornerRadius,
	}
}

// Dir returns the per-user config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "linv")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "linv")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), FileName+".yaml")
}

// Load reads the config. If path is empty, linv.yaml is searched for in
// the working directory and then Dir(); a missing file there is not an
// error. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Labels.Sheet.Spec().Validate(); err != nil {
		return fmt.Errorf("config: labels.sheet: %w", err)
	}
	return nil
}

// Write saves cfg as YAML at path, creating parent directories.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	f, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Cancel()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return f.Close()
}

// setDefaults registers every key so that environment overrides apply to
// settings absent from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("inventory", d.Inventory)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("unique_serials", d.UniqueSerials)
	v.SetDefault("labels.prefix", d.Labels.Prefix)
	v.SetDefault("labels.border", d.Labels.Border)
	v.SetDefault("labels.overwrite_existing", d.Labels.OverwriteExisting)
	s := d.Labels.Sheet
	v.SetDefault("labels.sheet.width", s.Width)
	v.SetDefault("labels.sheet.height", s.Height)
	v.SetDefault("labels.sheet.columns", s.Columns)
	v.SetDefault("labels.sheet.rows", s.Rows)
	v.SetDefault("labels.sheet.label_width", s.LabelWidth)
	v.SetDefault("labels.sheet.label_height", s.LabelHeight)
	v.SetDefault("labels.sheet.corner_radius", s.CornerRadius)
}
