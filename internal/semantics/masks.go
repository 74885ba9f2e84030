package semantics

import (
	"image"

	"gocv.io/x/gocv"
)

// maskSet holds the binary color masks derived from one HSV frame. All masks
// share the frame's dimensions and must be released with Close.
type maskSet struct {
	toothWhite   gocv.Mat
	gumPink      gocv.Mat
	darkDeposit  gocv.Mat
	yellowPlaque gocv.Mat
	gumRed       gocv.Mat
	oralCavity   gocv.Mat
}

func (m *maskSet) Close() {
	_ = m.toothWhite.Close()
	_ = m.gumPink.Close()
	_ = m.darkDeposit.Close()
	_ = m.yellowPlaque.Close()
	_ = m.gumRed.Close()
	_ = m.oralCavity.Close()
}

// extractMasks builds the color masks the classifier reads. The tooth and gum
// masks are opened then closed with a small ellipse to drop speckle noise.
func extractMasks(hsv gocv.Mat, p Policy) *maskSet {
	m := &maskSet{
		toothWhite:   gocv.NewMat(),
		gumPink:      gocv.NewMat(),
		darkDeposit:  gocv.NewMat(),
		yellowPlaque: gocv.NewMat(),
		gumRed:       gocv.NewMat(),
		oralCavity:   gocv.NewMat(),
	}

	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(0, 0, p.ToothValMin, 0),
		gocv.NewScalar(180, p.ToothSatMax, 255, 0),
		&m.toothWhite)

	inRangeUnion(hsv, &m.gumPink,
		gocv.NewScalar(p.GumPinkLow[0], p.GumSatMin, p.GumValMin, 0),
		gocv.NewScalar(p.GumPinkLow[1], p.GumSatMax, 255, 0),
		gocv.NewScalar(p.GumPinkHigh[0], p.GumSatMin, p.GumValMin, 0),
		gocv.NewScalar(p.GumPinkHigh[1], p.GumSatMax, 255, 0))

	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(0, 0, 0, 0),
		gocv.NewScalar(180, 255, p.DarkValMax, 0),
		&m.darkDeposit)

	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(p.YellowHue[0], p.YellowSatMin, p.YellowValMin, 0),
		gocv.NewScalar(p.YellowHue[1], 255, 255, 0),
		&m.yellowPlaque)

	inRangeUnion(hsv, &m.gumRed,
		gocv.NewScalar(0, p.RedSatMin, p.RedValMin, 0),
		gocv.NewScalar(p.RedHueMax, 255, 255, 0),
		gocv.NewScalar(p.RedHueMin, p.RedSatMin, p.RedValMin, 0),
		gocv.NewScalar(180, 255, 255, 0))

	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(0, 0, 0, 0),
		gocv.NewScalar(180, 255, p.CavityValMax, 0),
		&m.oralCavity)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(3, 3))
	defer kernel.Close()
	gocv.MorphologyEx(m.toothWhite, &m.toothWhite, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(m.toothWhite, &m.toothWhite, gocv.MorphClose, kernel)
	gocv.MorphologyEx(m.gumPink, &m.gumPink, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(m.gumPink, &m.gumPink, gocv.MorphClose, kernel)

	return m
}

// inRangeUnion masks two disjoint HSV bands and ORs them, for hue ranges that
// wrap around zero (pink and red both do).
func inRangeUnion(hsv gocv.Mat, dst *gocv.Mat, lo1, hi1, lo2, hi2 gocv.Scalar) {
	band := gocv.NewMat()
	defer band.Close()
	gocv.InRangeWithScalar(hsv, lo1, hi1, dst)
	gocv.InRangeWithScalar(hsv, lo2, hi2, &band)
	gocv.BitwiseOr(*dst, band, dst)
}

// ratio returns the fraction of nonzero pixels in a binary mask.
func ratio(mask gocv.Mat) float64 {
	total := mask.Rows() * mask.Cols()
	if total == 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

// regionRatio returns the nonzero fraction of a sub-rectangle of mask.
func regionRatio(mask gocv.Mat, rect image.Rectangle) float64 {
	roi := mask.Region(rect)
	defer roi.Close()
	total := roi.Rows() * roi.Cols()
	if total == 0 {
		return 0
	}
	return float64(gocv.CountNonZero(roi)) / float64(total)
}

// topDominance returns the fraction of the mask's nonzero pixels that lie in
// the top half, or -1 when the mask is empty.
func topDominance(mask gocv.Mat) float64 {
	h := mask.Rows()
	top := regionCount(mask, image.Rect(0, 0, mask.Cols(), h/2))
	bottom := regionCount(mask, image.Rect(0, h/2, mask.Cols(), h))
	if top+bottom == 0 {
		return -1
	}
	return float64(top) / float64(top+bottom)
}

func leftDominance(mask gocv.Mat) float64 {
	w := mask.Cols()
	left := regionCount(mask, image.Rect(0, 0, w/2, mask.Rows()))
	right := regionCount(mask, image.Rect(w/2, 0, w, mask.Rows()))
	if left+right == 0 {
		return -1
	}
	return float64(left) / float64(left+right)
}

func regionCount(mask gocv.Mat, rect image.Rectangle) int {
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return 0
	}
	roi := mask.Region(rect)
	defer roi.Close()
	return gocv.CountNonZero(roi)
}
