package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"slapimage/draw"
)

const configFileName = ".slapimagerc"

type Config struct {
	FontDir     string  `toml:"font_dir"`
	DefaultFont string  `toml:"default_font"`
	MaxFontSize int     `toml:"max_font_size"`
	LineHeight  float64 `toml:"line_height"`
	OutputDir   string  `toml:"output_dir"`
}

func defaultConfig() *Config {
	return &Config{
		FontDir:     draw.DefaultFontDir,
		DefaultFont: draw.DefaultFont,
		MaxFontSize: draw.DefaultMaxFontSize,
		LineHeight:  draw.DefaultLineHeight,
	}
}

// loadConfig reads the TOML config at path, or ~/.slapimagerc when path is
// empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}
	if path == "" {
		if homeDir == "" {
			return config, nil
		}
		path = filepath.Join(homeDir, configFileName)
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	config.FontDir = expandPath(config.FontDir, homeDir)
	config.OutputDir = expandPath(config.OutputDir, homeDir)
	if config.DefaultFont == "" {
		config.DefaultFont = draw.DefaultFont
	}
	if config.MaxFontSize < draw.MinFontSize {
		return nil, fmt.Errorf("config %s: max_font_size must be at least %d", path, draw.MinFontSize)
	}
	if config.LineHeight <= 0 {
		return nil, fmt.Errorf("config %s: line_height must be positive", path)
	}
	return config, nil
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.OutputDir == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.OutputDir, filename)
}
