package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeKeyframes()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.KeyframeDir) == "" {
		c.Paths.KeyframeDir = defaultKeyframeDir
	}
	if c.Paths.KeyframeDir, err = expandPath(c.Paths.KeyframeDir); err != nil {
		return fmt.Errorf("paths.keyframe_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BaselineDB) == "" {
		c.Paths.BaselineDB = defaultBaselineDB
	}
	if c.Paths.BaselineDB, err = expandPath(c.Paths.BaselineDB); err != nil {
		return fmt.Errorf("paths.baseline_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeKeyframes() {
	if c.Keyframes.Max <= 0 {
		c.Keyframes.Max = defaultMaxKeyframes
	}
	if c.Keyframes.Min <= 0 {
		c.Keyframes.Min = defaultMinKeyframes
	}
	if c.Keyframes.UniformSampleCount <= 0 {
		c.Keyframes.UniformSampleCount = defaultUniformSampleCount
	}
	if c.Keyframes.PriorityThreshold <= 0 || c.Keyframes.PriorityThreshold >= 1 {
		c.Keyframes.PriorityThreshold = defaultPriorityThreshold
	}
	if c.Keyframes.ScanSamplesPerSecond <= 0 {
		c.Keyframes.ScanSamplesPerSecond = defaultScanSamplesPerSecond
	}
	if c.Keyframes.ProximityWindow <= 0 {
		c.Keyframes.ProximityWindow = defaultProximityWindow
	}
	if c.Keyframes.JPEGQuality <= 0 || c.Keyframes.JPEGQuality > 100 {
		c.Keyframes.JPEGQuality = defaultJPEGQuality
	}
	if c.Matching.MinMatchScore <= 0 || c.Matching.MinMatchScore >= 1 {
		c.Matching.MinMatchScore = defaultMinMatchScore
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
