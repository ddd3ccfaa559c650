package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMode          = "gradient"
	DefaultThreshold     = 1.0
	DefaultBlobs         = 5
	DefaultFPS           = 30
	DefaultDt            = 0.05
	DefaultWidth         = 80
	DefaultHeight        = 35
	DefaultMotion        = "bounce"
	DefaultCycleInterval = 5.0
	DefaultEdgePolicy    = "ignore"
	DefaultTheme         = "ocean"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Mode          string      `yaml:"mode"`
	Threshold     float64     `yaml:"threshold"`
	Blobs         int         `yaml:"blobs"`
	Seed          int64       `yaml:"seed"`
	FPS           int         `yaml:"fps"`
	Dt            float64     `yaml:"dt"`
	Width         int         `yaml:"width"`
	Height        int         `yaml:"height"`
	Motion        string      `yaml:"motion"`
	CycleModes    bool        `yaml:"cycle_modes"`
	CycleInterval float64     `yaml:"cycle_interval"`
	EdgePolicy    string      `yaml:"edge_policy"`
	Workers       int         `yaml:"workers"`
	Radius        RangeConfig `yaml:"radius"`
	Speed         RangeConfig `yaml:"speed"`
	Theme         string      `yaml:"theme"`
	Log           LogConfig   `yaml:"log"`
}

type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Format     string `yaml:"format"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:          DefaultMode,
		Threshold:     DefaultThreshold,
		Blobs:         DefaultBlobs,
		FPS:           DefaultFPS,
		Dt:            DefaultDt,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Motion:        DefaultMotion,
		CycleInterval: DefaultCycleInterval,
		EdgePolicy:    DefaultEdgePolicy,
		Radius:        RangeConfig{Min: 2.5, Max: 4.0},
		Speed:         RangeConfig{Min: 4.0, Max: 12.0},
		Theme:         DefaultTheme,
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the file
// keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the renderer cannot run with.
func (c *Config) Validate() error {
	switch {
	case !(c.Threshold > 0) || math.IsInf(c.Threshold, 0):
		return fmt.Errorf("threshold %v: %w", c.Threshold, ErrInvalidConfig)
	case c.Blobs <= 0:
		return fmt.Errorf("blobs %d: %w", c.Blobs, ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("size %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.FPS <= 0:
		return fmt.Errorf("fps %d: %w", c.FPS, ErrInvalidConfig)
	case !(c.Dt >= 0) || math.IsInf(c.Dt, 0):
		return fmt.Errorf("dt %v: %w", c.Dt, ErrInvalidConfig)
	case !(c.Radius.Min > 0) || c.Radius.Max < c.Radius.Min:
		return fmt.Errorf("radius [%v, %v]: %w", c.Radius.Min, c.Radius.Max, ErrInvalidConfig)
	case c.Speed.Min < 0 || c.Speed.Max < c.Speed.Min:
		return fmt.Errorf("speed [%v, %v]: %w", c.Speed.Min, c.Speed.Max, ErrInvalidConfig)
	case c.Motion != "bounce" && c.Motion != "orbit":
		return fmt.Errorf("motion %q: %w", c.Motion, ErrInvalidConfig)
	case c.EdgePolicy != "ignore" && c.EdgePolicy != "outside":
		return fmt.Errorf("edge_policy %q: %w", c.EdgePolicy, ErrInvalidConfig)
	}
	return nil
}
