package config

const (
	defaultStagingDir  = "~/.local/share/oralscan/staging"
	defaultKeyframeDir = "~/.local/share/oralscan/keyframes"
	defaultLogDir      = "~/.local/share/oralscan/logs"
	defaultBaselineDB  = "~/.local/share/oralscan/baseline.db"

	defaultMaxDurationSeconds = 30
	defaultMaxSizeMB          = 100

	defaultMaxKeyframes         = 25
	defaultMinKeyframes         = 5
	defaultUniformSampleCount   = 20
	defaultPriorityThreshold    = 0.5
	defaultScanSamplesPerSecond = 1.0
	defaultProximityWindow      = 5
	defaultJPEGQuality          = 85

	defaultMinMatchScore = 0.5

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir:  defaultStagingDir,
			KeyframeDir: defaultKeyframeDir,
			LogDir:      defaultLogDir,
			BaselineDB:  defaultBaselineDB,
		},
		Video: Video{
			MaxDurationSeconds: defaultMaxDurationSeconds,
			MaxSizeMB:          defaultMaxSizeMB,
		},
		Keyframes: Keyframes{
			Max:                  defaultMaxKeyframes,
			Min:                  defaultMinKeyframes,
			UniformSampleCount:   defaultUniformSampleCount,
			PriorityThreshold:    defaultPriorityThreshold,
			ScanSamplesPerSecond: defaultScanSamplesPerSecond,
			ProximityWindow:      defaultProximityWindow,
			JPEGQuality:          defaultJPEGQuality,
		},
		Matching: Matching{
			MinMatchScore: defaultMinMatchScore,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
