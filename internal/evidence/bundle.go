package evidence

import (
	"encoding/json"
	"time"

	"oralscan/internal/baseline"
	"oralscan/internal/semantics"
)

// Session types a bundle can describe.
const (
	SessionQuickCheck = "quick_check"
	SessionBaseline   = "baseline"
)

// Keyframe is one extracted frame with everything known about it. It is the
// assembler's input; the pipeline produces these.
type Keyframe struct {
	ID           string
	Index        int
	Timestamp    string // MM:SS.mm position in the source video
	Seconds      float64
	Tags         semantics.Tags
	ImagePath    string
	AnomalyScore float64
	Strategy     string
	Quality      float64
}

// FrameRecord is the serialized form of one keyframe inside a bundle.
type FrameRecord struct {
	FrameID            string          `json:"frame_id"`
	FrameIndex         int             `json:"frame_index"`
	Timestamp          string          `json:"timestamp"`
	MetaTags           semantics.Tags  `json:"meta_tags"`
	ImageURL           string          `json:"image_url"`
	ImageBase64        string          `json:"image_base64,omitempty"`
	AnomalyScore       float64         `json:"anomaly_score"`
	ExtractionStrategy string          `json:"extraction_strategy"`
	Quality            float64         `json:"quality"`
}

// MatchRecord links one keyframe to its best baseline reference frame.
type MatchRecord struct {
	FrameID           string  `json:"frame_id"`
	BaselineFrameID   int64   `json:"baseline_frame_id"`
	BaselineSessionID string  `json:"baseline_session_id"`
	ZoneID            int     `json:"zone_id"`
	ZoneName          string  `json:"zone_name"`
	BaselineTimestamp float64 `json:"baseline_timestamp"`
	BaselineImageURL  string  `json:"baseline_image_url"`
	BaselineCreatedAt string  `json:"baseline_created_at"`
	MatchScore        float64 `json:"match_score"`
}

// Reference summarizes how the session compares to the user's baseline.
type Reference struct {
	HasBaseline    bool                    `json:"has_baseline"`
	ComparisonMode baseline.ComparisonMode `json:"comparison_mode"`
	Matches        []MatchRecord           `json:"matched_baseline_frames,omitempty"`
}

// Bundle is a complete evidence pack for one session.
type Bundle struct {
	SessionID   string        `json:"session_id"`
	UserID      string        `json:"user_id"`
	SessionType string        `json:"session_type"`
	ZoneID      int           `json:"zone_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	TotalFrames int           `json:"total_frames"`
	Frames      []FrameRecord `json:"frames"`
	Baseline    *Reference    `json:"baseline_reference,omitempty"`
}

// JSON renders the bundle as indented JSON.
func (b *Bundle) JSON() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}
