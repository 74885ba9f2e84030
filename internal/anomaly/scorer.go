package anomaly

import (
	"gocv.io/x/gocv"
)

// Reason names a heuristic class that contributed materially to a frame score.
type Reason string

const (
	ReasonDarkDeposit     Reason = "dark_deposit"
	ReasonYellowPlaque    Reason = "yellow_plaque"
	ReasonGumInflammation Reason = "gum_inflammation"
	// ReasonAnomalyDetected marks a positive score with no single material class.
	ReasonAnomalyDetected Reason = "anomaly_detected"
	ReasonNone            Reason = "none"
)

// Scorer computes per-frame anomaly scores.
type Scorer struct {
	policy Policy
}

// NewScorer builds a Scorer; zero-valued policy fields fall back to defaults.
func NewScorer(policy Policy) *Scorer {
	return &Scorer{policy: policy.normalized()}
}

// Score rates frame in [0,1] and reports the contributing classes in a fixed
// order (dark, yellow, red). Degenerate frames score 0.0 with no reasons.
func (s *Scorer) Score(frame gocv.Mat) (float64, []Reason) {
	if frame.Empty() || frame.Rows() == 0 || frame.Cols() == 0 {
		return 0, nil
	}
	if mean := frame.Mean(); maxChannel(mean) < s.policy.DegenerateMeanMax {
		return 0, nil
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	total := float64(frame.Rows() * frame.Cols())
	p := s.policy

	darkRatio := maskRatio(hsv, total,
		gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(180, 255, p.DarkValueMax, 0))
	yellowRatio := maskRatio(hsv, total,
		gocv.NewScalar(p.YellowHueMin, p.YellowSatMin, p.YellowValMin, 0),
		gocv.NewScalar(p.YellowHueMax, 255, 255, 0))
	redRatio := maskRatio(hsv, total,
		gocv.NewScalar(0, p.RedSatMin, p.RedValMin, 0), gocv.NewScalar(p.RedLowHueMax, 255, 255, 0)) +
		maskRatio(hsv, total,
			gocv.NewScalar(p.RedHighHueMin, p.RedSatMin, p.RedValMin, 0), gocv.NewScalar(180, 255, 255, 0))

	var score float64
	var reasons []Reason

	if term := s.term(darkRatio, p.DarkFloor, p.DarkScale); term > 0 {
		score += term
		if term > p.Materiality {
			reasons = append(reasons, ReasonDarkDeposit)
		}
	}
	if term := s.term(yellowRatio, p.YellowFloor, p.YellowScale); term > 0 {
		score += term
		if term > p.Materiality {
			reasons = append(reasons, ReasonYellowPlaque)
		}
	}
	if term := s.term(redRatio, p.RedFloor, p.RedScale); term > 0 {
		score += term
		if term > p.Materiality {
			reasons = append(reasons, ReasonGumInflammation)
		}
	}

	if score > 1 {
		score = 1
	}
	if score > 0 && len(reasons) == 0 {
		reasons = []Reason{ReasonAnomalyDetected}
	}
	if score == 0 {
		reasons = []Reason{ReasonNone}
	}
	return score, reasons
}

// term converts a coverage ratio into a capped score contribution, or 0 when
// the ratio is within the noise floor.
func (s *Scorer) term(ratio, floor, scale float64) float64 {
	if ratio <= floor {
		return 0
	}
	term := ratio * scale
	if term > s.policy.TermCap {
		term = s.policy.TermCap
	}
	return term
}

func maxChannel(s gocv.Scalar) float64 {
	max := s.Val1
	if s.Val2 > max {
		max = s.Val2
	}
	if s.Val3 > max {
		max = s.Val3
	}
	return max
}

func maskRatio(hsv gocv.Mat, totalPixels float64, lower, upper gocv.Scalar) float64 {
	if totalPixels <= 0 {
		return 0
	}
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)
	return float64(gocv.CountNonZero(mask)) / totalPixels
}
