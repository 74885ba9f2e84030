package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateKeyframes(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.MaxDurationSeconds <= 0 {
		return errors.New("video.max_duration_seconds must be positive")
	}
	if c.Video.MaxSizeMB <= 0 {
		return errors.New("video.max_size_mb must be positive")
	}
	return nil
}

func (c *Config) validateKeyframes() error {
	if c.Keyframes.Min > c.Keyframes.Max {
		return fmt.Errorf("keyframes.min (%d) must not exceed keyframes.max (%d)", c.Keyframes.Min, c.Keyframes.Max)
	}
	if c.Keyframes.PriorityThreshold < 0 || c.Keyframes.PriorityThreshold > 1 {
		return errors.New("keyframes.priority_threshold must be between 0 and 1")
	}
	if c.Matching.MinMatchScore < 0 || c.Matching.MinMatchScore > 1 {
		return errors.New("matching.min_match_score must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
