package actiontrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidConfig is returned when a configuration value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the pipeline settings
type Config struct {
	// MinArea is the minimum box area in pixels for a full body detection.
	// Face and upper body detections use a third of it
	MinArea int
	// History is the number of frames kept for action classification
	History int
	// SmoothAlpha is the EMA weight of the newest box, clamped to [0,1]
	SmoothAlpha float64
	// DetectInterval re-runs the detector bank every N frames while
	// tracking, 0 disables periodic re-detection
	DetectInterval int
	// FullBody skips the face and upper body strategies
	FullBody bool
	// Debug enables debug level logging
	Debug bool
}

// DefaultConfig returns the default pipeline settings
func DefaultConfig() Config {
	return Config{
		MinArea:        12000,
		History:        10,
		SmoothAlpha:    0.45,
		DetectInterval: 6,
		FullBody:       false,
	}
}

// Validate checks the configuration values are usable
func (c Config) Validate() error {

	if c.MinArea <= 0 {
		return fmt.Errorf("%w: min_area must be positive, got %d", ErrInvalidConfig, c.MinArea)
	}

	if c.History <= 0 {
		return fmt.Errorf("%w: history must be positive, got %d", ErrInvalidConfig, c.History)
	}

	if math.IsNaN(c.SmoothAlpha) || c.SmoothAlpha < 0 || c.SmoothAlpha > 1 {
		return fmt.Errorf("%w: smooth_alpha must be within [0,1], got %v",
			ErrInvalidConfig, c.SmoothAlpha)
	}

	if c.DetectInterval < 0 {
		return fmt.Errorf("%w: detect_interval must be non-negative, got %d",
			ErrInvalidConfig, c.DetectInterval)
	}

	return nil
}

// FileConfig is the JSON form of Config.  Fields omitted from the file keep
// their default values
type FileConfig struct {
	MinArea        *int     `json:"min_area,omitempty"`
	History        *int     `json:"history,omitempty"`
	SmoothAlpha    *float64 `json:"smooth_alpha,omitempty"`
	DetectInterval *int     `json:"detect_interval,omitempty"`
	FullBody       *bool    `json:"full_body,omitempty"`
	Debug          *bool    `json:"debug,omitempty"`
}

// Apply overlays the set fields onto cfg
func (f *FileConfig) Apply(cfg Config) Config {

	if f.MinArea != nil {
		cfg.MinArea = *f.MinArea
	}

	if f.History != nil {
		cfg.History = *f.History
	}

	if f.SmoothAlpha != nil {
		cfg.SmoothAlpha = *f.SmoothAlpha
	}

	if f.DetectInterval != nil {
		cfg.DetectInterval = *f.DetectInterval
	}

	if f.FullBody != nil {
		cfg.FullBody = *f.FullBody
	}

	if f.Debug != nil {
		cfg.Debug = *f.Debug
	}

	return cfg
}

// maxConfigSize is the largest config file accepted
const maxConfigSize = 1 * 1024 * 1024

// LoadConfig reads a JSON config file and overlays it on DefaultConfig.
// The file must have a .json extension and be under 1MB
func LoadConfig(path string) (Config, error) {

	cleanPath := filepath.Clean(path)

	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)

	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}

	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)",
			info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(cleanPath)

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig

	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := fc.Apply(DefaultConfig())

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseResolution parses a resolution string in the form WxH, eg: 1280x720
func ParseResolution(s string) (int, int, error) {

	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")

	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid resolution %q, expected WxH", s)
	}

	w, err := strconv.Atoi(parts[0])

	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution width %q: %w", parts[0], err)
	}

	h, err := strconv.Atoi(parts[1])

	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution height %q: %w", parts[1], err)
	}

	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid resolution %q, width and height must be positive", s)
	}

	return w, h, nil
}
