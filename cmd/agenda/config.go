package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"pkt.systems/agenda/pdf"
)

// maxConfigSize caps config files at 1 MiB.
const maxConfigSize = 1 << 20

var errConfigTooLarge = errors.New("config file exceeds maximum size")

// fileConfig mirrors the command line flags. Pointer fields distinguish an
// unset key from an explicit zero, which validation then rejects.
type fileConfig struct {
	Output      string       `yaml:"output"`
	Start       string       `yaml:"start"`
	Timezone    string       `yaml:"timezone"`
	Spacing     *float64     `yaml:"spacing"`
	HeaderSize  *float64     `yaml:"header_size"`
	TopMargin   *float64     `yaml:"top_margin"`
	PageNumbers *bool        `yaml:"page_numbers"`
	GridLayer   *bool        `yaml:"grid_layer"`
	Theme       string       `yaml:"theme"`
	Title       string       `yaml:"title"`
	Fonts       []fontEntry  `yaml:"fonts"`
	Logging     loggingEntry `yaml:"logging"`
}

type fontEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type loggingEntry struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// loadConfigFile reads a YAML config, rejecting unknown keys.
func loadConfigFile(path string) (*fileConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", errConfigTooLarge, info.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if len(data) == 0 {
		return &cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func applyFileConfig(dst *pdf.Config, src *fileConfig) {
	if src.Timezone != "" {
		dst.Timezone = src.Timezone
	}
	if src.Spacing != nil {
		dst.GridSpacing = *src.Spacing
	}
	if src.HeaderSize != nil {
		dst.HeaderFontSize = *src.HeaderSize
	}
	if src.TopMargin != nil {
		dst.TopMargin = *src.TopMargin
	}
	if src.PageNumbers != nil {
		dst.PageNumbers = *src.PageNumbers
	}
	if src.GridLayer != nil {
		dst.GridLayer = *src.GridLayer
		dst.OpenLayerPane = *src.GridLayer
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
}
