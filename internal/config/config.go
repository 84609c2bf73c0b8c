// Package config carries the runtime settings shared by the CLI, the
// renderer, and the capture pipeline.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Zero values are filled in by
// Default; the merge order is defaults, yaml file, environment, flags.
type Config struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	FPS     int    `yaml:"fps"`
	Quality int    `yaml:"quality"`
	Encoder string `yaml:"encoder"` // empty = probe ffmpeg for the best one
	Output  string `yaml:"output"`
	Workers int    `yaml:"workers"` // 0 = derive from the machine

	DefaultKeyframeMS int64 `yaml:"default_keyframe_ms"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Width:             1280,
		Height:            720,
		FPS:               30,
		Quality:           23,
		Output:            "output/animation.mp4",
		DefaultKeyframeMS: 1000,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load reads a yaml config file over cfg. A missing file is not an
// error: the defaults simply stand.
func Load(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv loads .env if present and overrides cfg from STICKMAN_*
// environment variables.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.Width = envInt("STICKMAN_WIDTH", cfg.Width)
	cfg.Height = envInt("STICKMAN_HEIGHT", cfg.Height)
	cfg.FPS = envInt("STICKMAN_FPS", cfg.FPS)
	cfg.Quality = envInt("STICKMAN_QUALITY", cfg.Quality)
	cfg.Workers = envInt("STICKMAN_WORKERS", cfg.Workers)
	cfg.Encoder = env("STICKMAN_ENCODER", cfg.Encoder)
	cfg.Output = env("STICKMAN_OUTPUT", cfg.Output)
	cfg.LogLevel = env("STICKMAN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = env("STICKMAN_LOG_FORMAT", cfg.LogFormat)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.DefaultKeyframeMS <= 0 {
		return fmt.Errorf("invalid default keyframe duration %dms", c.DefaultKeyframeMS)
	}
	return nil
}

func env(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
