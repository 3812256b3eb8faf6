package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks a configuration rejected by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Renderer names accepted in Config.Renderer
const (
	RendererTerminal = "terminal"
	RendererPlain    = "plain"
	RendererTUI      = "tui"
	RendererWindow   = "window"
	RendererHeadless = "headless"
)

// Renderers lists every renderer name
var Renderers = []string{RendererTerminal, RendererPlain, RendererTUI, RendererWindow, RendererHeadless}

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width" yaml:"width"`
	Height              int           `json:"height" yaml:"height"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	Bounded             bool          `json:"bounded" yaml:"bounded"`
	TrackAges           bool          `json:"track_ages" yaml:"track_ages"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
	RandomDensity       float64       `json:"random_density" yaml:"random_density"`
	InjectionCount      int           `json:"injection_count" yaml:"injection_count"`
	Pattern             string        `json:"pattern" yaml:"pattern"`
	Screen              int           `json:"screen" yaml:"screen"` // index into ScreenSizes, -1 keeps Width and Height
	Seed                int64         `json:"seed" yaml:"seed"`     // 0 picks a time-derived seed
	Renderer            string        `json:"renderer" yaml:"renderer"`
	Interactive         bool          `json:"interactive" yaml:"interactive"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               40,
		Height:              20,
		FrameRate:           300 * time.Millisecond,
		AutoRestart:         false,
		StagnationThreshold: 5,
		Bounded:             false,
		TrackAges:           true,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		Pattern:             "",
		Screen:              -1,
		Seed:                0,
		Renderer:            RendererTerminal,
		Interactive:         false,
	}
}

// LoadConfig loads configuration from a JSON or YAML file on top of the defaults.
// ${VAR} references are expanded from the environment before parsing.
// frame_rate is a duration string in both formats; JSON also takes integer nanoseconds.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var raw yamlConfig
		if err = yaml.Unmarshal(expanded, &raw); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal yaml from file: %+v", filename)
		}
		if err = raw.apply(&config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] bad value in file: %+v", filename)
		}
	default:
		if err = json.Unmarshal(expanded, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
		}
	}

	return config, nil
}

// UnmarshalJSON accepts frame_rate as a duration string ("150ms") or as integer nanoseconds
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	raw := struct {
		*plain
		FrameRate json.RawMessage `json:"frame_rate"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.FrameRate) == 0 || string(raw.FrameRate) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(raw.FrameRate, &text); err == nil {
		d, err := time.ParseDuration(text)
		if err != nil {
			return errors.Wrapf(err, "[Config.UnmarshalJSON] frame_rate %q", text)
		}
		c.FrameRate = d
		return nil
	}
	var nanos int64
	if err := json.Unmarshal(raw.FrameRate, &nanos); err != nil {
		return errors.Wrapf(err, "[Config.UnmarshalJSON] frame_rate %s", raw.FrameRate)
	}
	c.FrameRate = time.Duration(nanos)
	return nil
}

// yamlConfig mirrors Config with optional fields so unset keys keep their defaults
// and frame_rate can be written as a duration string.
type yamlConfig struct {
	Width               *int     `yaml:"width"`
	Height              *int     `yaml:"height"`
	FrameRate           *string  `yaml:"frame_rate"`
	AutoRestart         *bool    `yaml:"auto_restart"`
	StagnationThreshold *int     `yaml:"stagnation_threshold"`
	Bounded             *bool    `yaml:"bounded"`
	TrackAges           *bool    `yaml:"track_ages"`
	MaxGenerations      *int     `yaml:"max_generations"`
	RandomDensity       *float64 `yaml:"random_density"`
	InjectionCount      *int     `yaml:"injection_count"`
	Pattern             *string  `yaml:"pattern"`
	Screen              *int     `yaml:"screen"`
	Seed                *int64   `yaml:"seed"`
	Renderer            *string  `yaml:"renderer"`
	Interactive         *bool    `yaml:"interactive"`
}

func (y yamlConfig) apply(c *Config) error {
	if y.FrameRate != nil {
		d, err := time.ParseDuration(*y.FrameRate)
		if err != nil {
			return errors.Wrapf(err, "[yamlConfig.apply] frame_rate %q", *y.FrameRate)
		}
		c.FrameRate = d
	}
	setIf(&c.Width, y.Width)
	setIf(&c.Height, y.Height)
	setIf(&c.AutoRestart, y.AutoRestart)
	setIf(&c.StagnationThreshold, y.StagnationThreshold)
	setIf(&c.Bounded, y.Bounded)
	setIf(&c.TrackAges, y.TrackAges)
	setIf(&c.MaxGenerations, y.MaxGenerations)
	setIf(&c.RandomDensity, y.RandomDensity)
	setIf(&c.InjectionCount, y.InjectionCount)
	setIf(&c.Pattern, y.Pattern)
	setIf(&c.Screen, y.Screen)
	setIf(&c.Seed, y.Seed)
	setIf(&c.Renderer, y.Renderer)
	setIf(&c.Interactive, y.Interactive)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks that the configuration can drive a run
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be positive, got %dx%d", c.Width, c.Height)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0,1], got %v", c.RandomDensity)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must not be negative, got %v", c.FrameRate)
	case c.StagnationThreshold < 0 || c.InjectionCount < 0 || c.MaxGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "stagnation_threshold, injection_count and max_generations must not be negative")
	case c.Screen < -1 || c.Screen >= len(ScreenSizes):
		return errors.Wrapf(ErrInvalidConfig, "screen index %d out of range", c.Screen)
	case !slices.Contains(Renderers, c.Renderer):
		return errors.Wrapf(ErrInvalidConfig, "unknown renderer %q", c.Renderer)
	case c.Renderer == RendererHeadless && c.MaxGenerations == 0:
		return errors.Wrap(ErrInvalidConfig, "headless renderer needs max_generations")
	}
	return nil
}
