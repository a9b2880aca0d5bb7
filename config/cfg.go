// Package config holds the settings shared by the richtext programs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

type (
	FontsConfig struct {
		// Size is the body text size in points. Headlines scale from it.
		Size float64 `yaml:"size"`
	}

	LayoutConfig struct {
		MaxWidth   int `yaml:"max_width"`
		TabWidth   int `yaml:"tab_width"`
		ListIndent int `yaml:"list_indent"`
	}

	AssetsConfig struct {
		MaxFrameWidth  int           `yaml:"max_frame_width"`
		MaxFrameHeight int           `yaml:"max_frame_height"`
		Timeout        time.Duration `yaml:"timeout"`
	}

	Config struct {
		Version int           `yaml:"version"`
		Fonts   FontsConfig   `yaml:"fonts"`
		Layout  LayoutConfig  `yaml:"layout"`
		Assets  AssetsConfig  `yaml:"assets"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// ErrInvalid is wrapped by errors reporting out of range values.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: 1,
		Fonts:   FontsConfig{Size: 12},
		Layout:  LayoutConfig{MaxWidth: 600, TabWidth: 4, ListIndent: 16},
		Assets:  AssetsConfig{MaxFrameWidth: 1024, MaxFrameHeight: 1024},
		Logging: LoggingConfig{ConsoleLogger: LoggerConfig{Level: "normal"}},
	}
}

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// Unknown keys are errors.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Version != 1:
		return fmt.Errorf("%w: version %d", ErrInvalid, cfg.Version)
	case cfg.Fonts.Size <= 0:
		return fmt.Errorf("%w: font size %v", ErrInvalid, cfg.Fonts.Size)
	case cfg.Layout.MaxWidth < 0:
		return fmt.Errorf("%w: max width %d", ErrInvalid, cfg.Layout.MaxWidth)
	case cfg.Layout.TabWidth < 1:
		return fmt.Errorf("%w: tab width %d", ErrInvalid, cfg.Layout.TabWidth)
	case cfg.Layout.ListIndent < 0:
		return fmt.Errorf("%w: list indent %d", ErrInvalid, cfg.Layout.ListIndent)
	case cfg.Assets.MaxFrameWidth < 0 || cfg.Assets.MaxFrameHeight < 0:
		return fmt.Errorf("%w: frame box %dx%d", ErrInvalid, cfg.Assets.MaxFrameWidth, cfg.Assets.MaxFrameHeight)
	}
	return cfg.Logging.validate()
}

// LoadConfiguration reads the file at path over the defaults. An empty path
// returns the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if len(path) == 0 {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
