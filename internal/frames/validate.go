package frames

import (
	"fmt"
	"os"

	"oralscan/internal/services"
)

// Limits bounds what the pipeline will accept before scanning a source.
type Limits struct {
	MaxDurationSeconds int
	MaxSizeMB          int
}

// Validate checks the file at path against the configured upload limits and
// confirms the container is decodable. It opens and closes a throwaway Source.
func Validate(path string, limits Limits) error {
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "frames", "validate", "stat video", err)
	}
	if limits.MaxSizeMB > 0 {
		sizeMB := float64(info.Size()) / (1024 * 1024)
		if sizeMB > float64(limits.MaxSizeMB) {
			return services.Wrap(services.ErrValidation, "frames", "validate",
				fmt.Sprintf("video too large (%.1f MB > %d MB)", sizeMB, limits.MaxSizeMB), nil)
		}
	}

	src, err := Open(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "frames", "validate", "open video", err)
	}
	defer src.Close()

	if limits.MaxDurationSeconds > 0 {
		if seconds := src.Duration().Seconds(); seconds > float64(limits.MaxDurationSeconds) {
			return services.Wrap(services.ErrValidation, "frames", "validate",
				fmt.Sprintf("video too long (%.1fs > %ds)", seconds, limits.MaxDurationSeconds), nil)
		}
	}
	return nil
}
