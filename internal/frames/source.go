package frames

import (
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// ErrSourceUnreadable indicates the video container could not be opened at all.
var ErrSourceUnreadable = errors.New("video source unreadable")

// Provider is the read surface the sampler and pipeline consume. Frame returns
// a decoded frame and true, or a zero Mat and false when the frame is absent
// or corrupt. The returned Mat is owned by the caller and must be closed.
type Provider interface {
	Frame(index int) (gocv.Mat, bool)
	Count() int
	FPS() float64
}

// Source is a Provider backed by an on-disk video file.
type Source struct {
	path  string
	cap   *gocv.VideoCapture
	fps   float64
	count int
}

var _ Provider = (*Source)(nil)

// Open opens the video at path and reads its stream properties.
func Open(path string) (*Source, error) {
	cap, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	if !cap.IsOpened() {
		_ = cap.Close()
		return nil, fmt.Errorf("%w: %s", ErrSourceUnreadable, path)
	}

	src := &Source{
		path:  path,
		cap:   cap,
		fps:   cap.Get(gocv.VideoCaptureFPS),
		count: int(cap.Get(gocv.VideoCaptureFrameCount)),
	}
	if src.count <= 0 {
		_ = cap.Close()
		return nil, fmt.Errorf("%w: %s: no frames reported", ErrSourceUnreadable, path)
	}
	return src, nil
}

// Frame seeks to index and decodes one frame. Absent or corrupt frames return
// ok=false; the scan continues from any subsequent index.
func (s *Source) Frame(index int) (gocv.Mat, bool) {
	if index < 0 || index >= s.count {
		return gocv.Mat{}, false
	}
	s.cap.Set(gocv.VideoCapturePosFrames, float64(index))
	mat := gocv.NewMat()
	if !s.cap.Read(&mat) || mat.Empty() {
		mat.Close()
		return gocv.Mat{}, false
	}
	return mat, true
}

// Count returns the reported number of frames in the stream.
func (s *Source) Count() int { return s.count }

// FPS returns the stream frame rate.
func (s *Source) FPS() float64 { return s.fps }

// Duration returns the stream duration derived from frame count and rate.
func (s *Source) Duration() time.Duration {
	if s.fps <= 0 {
		return 0
	}
	return time.Duration(float64(s.count) / s.fps * float64(time.Second))
}

// Path returns the file the source was opened from.
func (s *Source) Path() string { return s.path }

// Close releases the decoder.
func (s *Source) Close() error {
	if s.cap == nil {
		return nil
	}
	err := s.cap.Close()
	s.cap = nil
	return err
}

// Timestamp converts a frame index into its position in the stream.
func Timestamp(index int, fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(index) / fps * float64(time.Second))
}

// FormatTimestamp renders d as MM:SS.mm for display and stored metadata.
func FormatTimestamp(d time.Duration) string {
	total := d.Seconds()
	minutes := int(total) / 60
	seconds := total - float64(minutes*60)
	return fmt.Sprintf("%02d:%05.2f", minutes, seconds)
}
