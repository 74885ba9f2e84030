package testsupport

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

// Common BGR colors whose HSV projections land inside the classifier masks.
var (
	// ColorToothWhite has low saturation and high value.
	ColorToothWhite = BGR{255, 255, 255}
	// ColorGumPink lands in the high-hue pink band with moderate saturation.
	ColorGumPink = BGR{180, 130, 255}
	// ColorInflamedRed is fully saturated red.
	ColorInflamedRed = BGR{0, 0, 255}
	// ColorPlaqueYellow is saturated yellow.
	ColorPlaqueYellow = BGR{0, 255, 255}
	// ColorCavityDark is near-black.
	ColorCavityDark = BGR{8, 8, 8}
	// ColorBlack is exactly zero.
	ColorBlack = BGR{0, 0, 0}
)

// BGR is a pixel color in OpenCV channel order.
type BGR struct {
	B, G, R float64
}

// SolidFrame builds a rows×cols frame filled with a single color. The caller
// owns the returned Mat; Close is registered on the test for convenience.
func SolidFrame(t testing.TB, rows, cols int, color BGR) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(color.B, color.G, color.R, 0), rows, cols, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return mat
}

// PaintRegion overwrites a rectangular region of frame with the given color.
func PaintRegion(t testing.TB, frame gocv.Mat, region image.Rectangle, color BGR) {
	t.Helper()
	roi := frame.Region(region)
	defer roi.Close()
	fill := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(color.B, color.G, color.R, 0), roi.Rows(), roi.Cols(), gocv.MatTypeCV8UC3)
	defer fill.Close()
	fill.CopyTo(&roi)
}

// SplitFrame builds a frame whose top half is one color and bottom half another.
func SplitFrame(t testing.TB, rows, cols int, top, bottom BGR) gocv.Mat {
	t.Helper()
	mat := SolidFrame(t, rows, cols, bottom)
	PaintRegion(t, mat, image.Rect(0, 0, cols, rows/2), top)
	return mat
}
