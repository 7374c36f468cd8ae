package convert

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/words"
)

// yamlConfig mirrors the tunables of Config. Absent keys leave the current
// value alone, so a file only needs the settings it changes.
type yamlConfig struct {
	Scale           *float64         `yaml:"scale"`
	DarkThreshold   *uint8           `yaml:"dark_threshold"`
	HeaderThreshold *float64         `yaml:"header_threshold"`
	Workers         *int             `yaml:"workers"`
	RasterDir       *string          `yaml:"raster_dir"`
	RasterPattern   *string          `yaml:"raster_pattern"`
	Masks           *[]raster.Region `yaml:"masks"`
	Ignore          *[][]float64     `yaml:"ignore"`
	Languages       []string         `yaml:"languages"`
	SummaryWords    *int             `yaml:"summary_words"`
}

// LoadConfig overlays the YAML file at path onto cfg.
func LoadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := applyYAML(data, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func applyYAML(data []byte, cfg *Config) error {
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return err
	}

	if yc.Scale != nil {
		if *yc.Scale <= 0 {
			return fmt.Errorf("scale must be positive, got %g", *yc.Scale)
		}
		cfg.Scale = *yc.Scale
	}
	if yc.DarkThreshold != nil {
		cfg.DarkThreshold = *yc.DarkThreshold
	}
	if yc.HeaderThreshold != nil {
		cfg.HeaderThreshold = *yc.HeaderThreshold
	}
	if yc.Workers != nil {
		cfg.Workers = *yc.Workers
	}
	if yc.RasterDir != nil {
		cfg.Rasters.Dir = *yc.RasterDir
	}
	if yc.RasterPattern != nil {
		cfg.Rasters.Pattern = *yc.RasterPattern
	}
	if yc.Masks != nil {
		cfg.Masks = *yc.Masks
	}
	if yc.Ignore != nil {
		boxes := make([]words.Box, 0, len(*yc.Ignore))
		for i, b := range *yc.Ignore {
			if len(b) != 4 {
				return fmt.Errorf("ignore[%d]: want [x1, y1, x2, y2], got %d numbers", i, len(b))
			}
			boxes = append(boxes, words.Box{X1: b[0], Y1: b[1], X2: b[2], Y2: b[3]})
		}
		cfg.Ignore = boxes
	}
	if len(yc.Languages) > 0 {
		cfg.Languages = yc.Languages
	}
	if yc.SummaryWords != nil {
		cfg.SummaryWords = *yc.SummaryWords
	}
	return nil
}
