package semantics

import (
	"image"

	"gocv.io/x/gocv"
)

// Classifier derives Tags from single BGR frames. It is stateless and safe
// for concurrent use.
type Classifier struct {
	policy Policy
}

// NewClassifier builds a classifier with the given policy. Zero-valued policy
// fields fall back to the defaults.
func NewClassifier(policy Policy) *Classifier {
	return &Classifier{policy: policy.normalized()}
}

// Classify tags one frame. An empty frame, or one without enough tooth- or
// gum-colored coverage to be oral content, yields all-unknown tags with zero
// confidence. The same pixels always produce the same tags.
func (c *Classifier) Classify(frame gocv.Mat) Tags {
	if frame.Empty() {
		return unknownTags()
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	masks := extractMasks(hsv, c.policy)
	defer masks.Close()

	toothRatio := ratio(masks.toothWhite)
	gumRatio := ratio(masks.gumPink)
	if toothRatio < c.policy.ToothVisibleMin && gumRatio < c.policy.GumVisibleMin {
		return unknownTags()
	}

	side, sideConf := c.classifySide(masks)
	toothType, typeConf, shapes := c.classifyToothType(masks.toothWhite)
	region, regionConf := c.classifyRegion(gray, masks, toothRatio, gumRatio)
	issues := c.detectIssues(masks, toothRatio, gumRatio, shapes)

	base := 0.3*sideConf + 0.3*typeConf + 0.4*regionConf
	quality := toothRatio / 0.3
	if quality > 1 {
		quality = 1
	}
	confidence := clamp01(base * (0.7 + 0.3*quality))

	return Tags{
		Side:       side,
		ToothType:  toothType,
		Region:     region,
		Issues:     issues,
		Confidence: confidence,
	}
}

// classifySide reads vertical gum dominance first (gums frame the arch, so
// their position separates upper from lower), then lateral tooth dominance.
func (c *Classifier) classifySide(masks *maskSet) (Side, float64) {
	if r := topDominance(masks.gumPink); r >= 0 {
		if r > c.policy.GumVerticalSplit {
			return SideUpper, min64(0.5+(r-0.5)*0.8, 0.9)
		}
		if 1-r > c.policy.GumVerticalSplit {
			return SideLower, min64(0.5+(0.5-r)*0.8, 0.9)
		}
	}
	if l := leftDominance(masks.toothWhite); l >= 0 {
		if l > c.policy.ToothLateralSplit {
			return SideLeft, min64(0.5+(l-0.5)*0.6, 0.8)
		}
		if 1-l > c.policy.ToothLateralSplit {
			return SideRight, min64(0.5+(0.5-l)*0.6, 0.8)
		}
	}
	return SideUnknown, 0.5
}

// classifyToothType separates tall narrow incisor contours from wide
// cuspy molar contours. The measured shapes are returned so issue detection
// can reuse them.
func (c *Classifier) classifyToothType(toothMask gocv.Mat) (ToothType, float64, []contourShape) {
	if gocv.CountNonZero(toothMask) < c.policy.MinToothPixels {
		return ToothUnknown, 0.3, nil
	}
	shapes := toothContours(toothMask, c.policy)
	if len(shapes) == 0 {
		return ToothUnknown, 0.5, nil
	}

	aspect := meanAspect(shapes)
	solidity := meanSolidity(shapes)
	switch {
	case aspect < c.policy.AnteriorAspectMax && solidity > c.policy.AnteriorSolidityMin:
		return ToothAnterior, min64(0.6+(c.policy.AnteriorAspectMax-aspect)*0.3, 0.85), shapes
	case aspect > c.policy.PosteriorAspectMin:
		return ToothPosterior, min64(0.6+(aspect-1.0)*0.2, 0.85), shapes
	case solidity < c.policy.PosteriorSolidityMax:
		// Ragged low-solidity outline reads as a multi-cusp chewing surface.
		return ToothPosterior, 0.6, shapes
	default:
		return ToothUnknown, 0.5, shapes
	}
}

// classifyRegion runs the surface cascade in priority order: dominant gum
// tissue, then occlusal texture, then interproximal valleys, then cavity
// position for lingual versus buccal.
func (c *Classifier) classifyRegion(gray gocv.Mat, masks *maskSet, toothRatio, gumRatio float64) (Region, float64) {
	if gumRatio > c.policy.GumRegionMin {
		return RegionGum, min64(0.5+gumRatio*1.5, 0.85)
	}

	if toothRatio > c.policy.OcclusalToothMin {
		if texture := maskedTextureVariance(gray, masks.toothWhite); texture > c.policy.OcclusalTextureMin {
			return RegionOcclusal, min64(0.5+texture/5000, 0.8)
		}
	}

	if valleys := countValleys(columnProjection(masks.toothWhite), c.policy.ValleyDepthRatio); valleys >= c.policy.ValleyMinCount {
		return RegionInterproximal, min64(0.5+0.1*float64(valleys), 0.8)
	}

	if cavityRatio := ratio(masks.oralCavity); cavityRatio > c.policy.CavityRegionMin {
		if c.cavityCentered(masks.oralCavity) {
			if c.gumAboveBelow(masks.gumPink) {
				return RegionLingual, 0.55
			}
			return RegionBuccal, 0.55
		}
	}

	return RegionUnknown, 0.5
}

// cavityCentered reports whether most dark-cavity pixels sit in the central
// third of the frame, meaning the camera is looking into the mouth opening.
func (c *Classifier) cavityCentered(cavity gocv.Mat) bool {
	total := gocv.CountNonZero(cavity)
	if total == 0 {
		return false
	}
	w, h := cavity.Cols(), cavity.Rows()
	center := regionCount(cavity, image.Rect(w/3, h/3, 2*w/3, 2*h/3))
	return float64(center)/float64(total) > c.policy.CavityCenterMin
}

// gumAboveBelow reports whether gum pixels above the midline clearly outweigh
// those below, which happens when the tongue-facing surface is in view.
func (c *Classifier) gumAboveBelow(gum gocv.Mat) bool {
	h := gum.Rows()
	upper := regionCount(gum, image.Rect(0, 0, gum.Cols(), h/2))
	lower := regionCount(gum, image.Rect(0, h/2, gum.Cols(), h))
	return float64(upper) > float64(lower)*c.policy.LingualGumRatio
}

// detectIssues runs the independent condition checks. Issues are additive: a
// frame can carry several, and a clean frame carries the single marker "none".
func (c *Classifier) detectIssues(masks *maskSet, toothRatio, gumRatio float64, shapes []contourShape) []Issue {
	var issues []Issue

	if toothRatio > c.policy.ToothVisibleMin && c.darkDepositOnTooth(masks) {
		issues = append(issues, IssueDarkDeposit)
	}
	if ratio(masks.yellowPlaque) > c.policy.YellowPlaqueMin {
		issues = append(issues, IssueYellowPlaque)
	}
	if c.gumInflamed(masks, gumRatio) {
		issues = append(issues, IssueGumIssue)
	}
	if c.structuralDefect(shapes) {
		issues = append(issues, IssueStructuralDefect)
	}

	if len(issues) == 0 {
		return []Issue{IssueNone}
	}
	return issues
}

// darkDepositOnTooth checks whether dark pixels overlap the dilated tooth
// area. Dilation pulls in the tooth margin, where deposits accumulate.
func (c *Classifier) darkDepositOnTooth(masks *maskSet) bool {
	size := c.policy.DepositDilateSize
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(size, size))
	defer kernel.Close()

	dilated := gocv.NewMat()
	defer dilated.Close()
	gocv.Dilate(masks.toothWhite, &dilated, kernel)

	overlap := gocv.NewMat()
	defer overlap.Close()
	gocv.BitwiseAnd(masks.darkDeposit, dilated, &overlap)

	area := gocv.CountNonZero(dilated)
	if area == 0 {
		return false
	}
	return float64(gocv.CountNonZero(overlap))/float64(area) > c.policy.DarkDepositMin
}

// gumInflamed flags gum tissue that has shifted from pink toward red.
func (c *Classifier) gumInflamed(masks *maskSet, gumRatio float64) bool {
	if gumRatio < c.policy.PinkPresenceMin {
		return false
	}
	redRatio := ratio(masks.gumRed)
	redness := redRatio / (redRatio + gumRatio + 1e-6)
	return redness > c.policy.RednessRatioMin || redRatio > c.policy.RedAbsoluteMin
}

// structuralDefect flags a large tooth contour whose outline caves in: low
// solidity plus repeated deep convexity defects reads as chipping or caries.
func (c *Classifier) structuralDefect(shapes []contourShape) bool {
	for _, s := range shapes {
		if s.area >= c.policy.DefectMinArea &&
			s.solidity < c.policy.DefectSolidityMax &&
			s.deepDefects >= c.policy.DefectMinCount {
			return true
		}
	}
	return false
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
