package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"textpager/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	MarginsConfig struct {
		Top    int `yaml:"top" validate:"gte=0"`
		Right  int `yaml:"right" validate:"gte=0"`
		Bottom int `yaml:"bottom" validate:"gte=0"`
		Left   int `yaml:"left" validate:"gte=0"`
	}

	LayoutConfig struct {
		PageWidth  int                  `yaml:"page_width" validate:"min=50"`
		PageHeight int                  `yaml:"page_height" validate:"min=50"`
		Margins    MarginsConfig        `yaml:"margins"`
		Mode       common.FormatMode    `yaml:"mode" validate:"gte=0"`
		Columns    int                  `yaml:"columns" validate:"min=1,max=8"`
		ColumnGap  int                  `yaml:"column_gap" validate:"gte=0"`
		Direction  common.FlowDirection `yaml:"direction" validate:"gte=0"`
		FontSize   int                  `yaml:"font_size" validate:"min=4"`
		LineHeight int                  `yaml:"line_height" validate:"min=1"`
		CharWidth  int                  `yaml:"char_width" validate:"min=1"`
	}

	PaginationConfig struct {
		CacheSize      int           `yaml:"cache_size" validate:"min=1"`
		ThrottleWindow time.Duration `yaml:"throttle_window" validate:"min=0s"`
		StopTimeDelta  time.Duration `yaml:"stop_time_delta" validate:"min=1ms"`
		MaxPages       int           `yaml:"max_pages" validate:"gte=0"`
	}

	OutputConfig struct {
		NameTemplate  string `yaml:"name_template"`
		Transliterate bool   `yaml:"transliterate"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Layout     LayoutConfig     `yaml:"layout"`
		Pagination PaginationConfig `yaml:"pagination"`
		Output     OutputConfig     `yaml:"output"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

// ContentSize returns page area left after margins are taken out. Content
// width never goes below 1.
func (l *LayoutConfig) ContentSize() (width, height int) {
	width = max(l.PageWidth-l.Margins.Left-l.Margins.Right, 1)
	height = max(l.PageHeight-l.Margins.Top-l.Margins.Bottom, 1)
	return width, height
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
