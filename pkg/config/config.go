// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/scene"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// MinPaletteSize is the smallest accepted palette
const MinPaletteSize = 6

// Window backends
const (
	BackendEngo     = "engo"
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
	BackendNull     = "null"
)

// Config contains the full vecpad configuration
type Config struct {
	Window   WindowConfig `json:"window" yaml:"window"`
	Canvas   CanvasConfig `json:"canvas" yaml:"canvas"`
	Arrow    ArrowConfig  `json:"arrow" yaml:"arrow"`
	Palette  []string     `json:"palette" yaml:"palette"`
	LogLevel string       `json:"logLevel" yaml:"logLevel"`
}

// WindowConfig contains window and host loop settings
type WindowConfig struct {
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	Title   string  `json:"title" yaml:"title"`
	Backend string  `json:"backend" yaml:"backend"`
	FPS     int     `json:"fps" yaml:"fps"`
}

// CanvasConfig contains vector and hit testing settings
type CanvasConfig struct {
	DisplayFactor    float64           `json:"displayFactor" yaml:"displayFactor"`
	DefaultDirection geometry.Vector2D `json:"defaultDirection" yaml:"defaultDirection"`
	BodyThreshold    float64           `json:"bodyThreshold" yaml:"bodyThreshold"`
	TipThreshold     float64           `json:"tipThreshold" yaml:"tipThreshold"`
	InitialVectors   int               `json:"initialVectors" yaml:"initialVectors"`
}

// ArrowConfig contains arrow drawing settings
type ArrowConfig struct {
	LineWidth float64 `json:"lineWidth" yaml:"lineWidth"`
	HeadSize  float64 `json:"headSize" yaml:"headSize"`
	HeadAngle float64 `json:"headAngle" yaml:"headAngle"`
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON. Fields missing from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, logging.WrapError(err, "failed to open config file")
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, logging.WrapError(err, "failed to parse config file %s", filepath.Base(path))
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, in YAML or JSON by extension
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: %w", ErrInvalidConfig)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return logging.WrapError(err, "failed to write config file")
	}

	return nil
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:   900,
			Height:  650,
			Title:   "Multi-Vector Tool",
			Backend: BackendEngo,
			FPS:     60,
		},
		Canvas: CanvasConfig{
			DisplayFactor:    10,
			DefaultDirection: geometry.Vector2D{X: 150, Y: 80},
			BodyThreshold:    entity.DefaultBodyThreshold,
			TipThreshold:     entity.DefaultTipThreshold,
			InitialVectors:   1,
		},
		Arrow: ArrowConfig{
			LineWidth: entity.DefaultArrowStyle.LineWidth,
			HeadSize:  entity.DefaultArrowStyle.HeadSize,
			HeadAngle: entity.DefaultArrowStyle.HeadAngle,
		},
		Palette: []string{
			"rgb(0, 200, 255)",
			"rgb(255, 120, 120)",
			"rgb(120, 255, 120)",
			"rgb(255, 255, 120)",
			"rgb(255, 150, 255)",
			"rgb(255, 180, 80)",
		},
		LogLevel: "INFO",
	}
}

// Validate reports the first invalid field
func (c *Config) Validate() error {
	switch {
	case !(c.Window.Width > 0) || !(c.Window.Height > 0):
		return fmt.Errorf("%w: window size %vx%v must be positive", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalidConfig, c.Window.FPS)
	case !(c.Canvas.DisplayFactor > 0) || math.IsInf(c.Canvas.DisplayFactor, 0):
		return fmt.Errorf("%w: display factor %v must be positive and finite", ErrInvalidConfig, c.Canvas.DisplayFactor)
	case !c.Canvas.DefaultDirection.IsFinite() || c.Canvas.DefaultDirection.LengthSquared() == 0:
		return fmt.Errorf("%w: default direction must be non-zero and finite", ErrInvalidConfig)
	case !(c.Canvas.BodyThreshold > 0) || !(c.Canvas.TipThreshold > 0):
		return fmt.Errorf("%w: hit thresholds must be positive", ErrInvalidConfig)
	case c.Canvas.InitialVectors < 0:
		return fmt.Errorf("%w: initial vectors %d must not be negative", ErrInvalidConfig, c.Canvas.InitialVectors)
	case !(c.Arrow.LineWidth > 0) || !(c.Arrow.HeadSize > 0):
		return fmt.Errorf("%w: arrow line width and head size must be positive", ErrInvalidConfig)
	}

	switch c.Window.Backend {
	case BackendEngo, BackendEbiten, BackendTerminal, BackendNull:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Window.Backend)
	}

	_, err := c.ParsePalette()
	return err
}

// ParsePalette converts the CSS color strings to RGBA
func (c *Config) ParsePalette() ([]color.RGBA, error) {
	if len(c.Palette) < MinPaletteSize {
		return nil, fmt.Errorf("%w: palette has %d colors, need at least %d", ErrInvalidConfig, len(c.Palette), MinPaletteSize)
	}

	out := make([]color.RGBA, len(c.Palette))
	for i, s := range c.Palette {
		parsed, err := csscolorparser.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: palette[%d] %q: %v", ErrInvalidConfig, i, s, err)
		}
		out[i] = color.RGBA{
			R: channel(parsed.R),
			G: channel(parsed.G),
			B: channel(parsed.B),
			A: channel(parsed.A),
		}
	}
	return out, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// SceneOptions converts the config into scene settings
func (c *Config) SceneOptions() (scene.Options, error) {
	palette, err := c.ParsePalette()
	if err != nil {
		return scene.Options{}, err
	}
	return scene.Options{
		Width:            c.Window.Width,
		Height:           c.Window.Height,
		DisplayFactor:    c.Canvas.DisplayFactor,
		DefaultDirection: c.Canvas.DefaultDirection,
		Palette:          palette,
		BodyThreshold:    c.Canvas.BodyThreshold,
		TipThreshold:     c.Canvas.TipThreshold,
	}, nil
}

// ArrowStyle converts the arrow settings
func (c *Config) ArrowStyle() entity.ArrowStyle {
	return entity.ArrowStyle{
		LineWidth: c.Arrow.LineWidth,
		HeadSize:  c.Arrow.HeadSize,
		HeadAngle: c.Arrow.HeadAngle,
	}
}
