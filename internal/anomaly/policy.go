package anomaly

// Policy centralizes the coverage thresholds and weights for anomaly scoring.
// HSV bounds follow the OpenCV convention (hue 0..180).
type Policy struct {
	// DarkValueMax caps the V channel for the dark-deposit mask.
	DarkValueMax float64
	// DarkFloor is the coverage ratio below which dark pixels read as noise.
	DarkFloor float64
	// DarkScale multiplies dark coverage into a score term, capped at TermCap.
	DarkScale float64

	YellowHueMin float64
	YellowHueMax float64
	YellowSatMin float64
	YellowValMin float64
	YellowFloor  float64
	YellowScale  float64

	// Red spans two hue bands at the ends of the hue circle.
	RedLowHueMax  float64
	RedHighHueMin float64
	RedSatMin     float64
	RedValMin     float64
	RedFloor      float64
	RedScale      float64

	// TermCap bounds each class contribution; the total is capped at 1.0.
	TermCap float64
	// Materiality is the minimum contribution for a class to appear as a reason.
	Materiality float64

	// DegenerateMeanMax marks frames whose mean brightness falls below this
	// as carrying no signal; they score 0 with no reasons.
	DegenerateMeanMax float64
}

// DefaultPolicy returns thresholds tuned against handheld oral-cavity footage.
func DefaultPolicy() Policy {
	return Policy{
		DarkValueMax: 60,
		DarkFloor:    0.05,
		DarkScale:    3.0,

		YellowHueMin: 20,
		YellowHueMax: 35,
		YellowSatMin: 40,
		YellowValMin: 40,
		YellowFloor:  0.03,
		YellowScale:  3.0,

		RedLowHueMax:  10,
		RedHighHueMin: 160,
		RedSatMin:     100,
		RedValMin:     50,
		RedFloor:      0.10,
		RedScale:      2.0,

		TermCap:     0.6,
		Materiality: 0.1,

		DegenerateMeanMax: 10,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()

	if p.DarkValueMax <= 0 || p.DarkValueMax > 255 {
		p.DarkValueMax = d.DarkValueMax
	}
	if p.DarkFloor <= 0 || p.DarkFloor >= 1 {
		p.DarkFloor = d.DarkFloor
	}
	if p.DarkScale <= 0 {
		p.DarkScale = d.DarkScale
	}
	if p.YellowHueMin < 0 || p.YellowHueMax <= p.YellowHueMin {
		p.YellowHueMin = d.YellowHueMin
		p.YellowHueMax = d.YellowHueMax
	}
	if p.YellowSatMin <= 0 {
		p.YellowSatMin = d.YellowSatMin
	}
	if p.YellowValMin <= 0 {
		p.YellowValMin = d.YellowValMin
	}
	if p.YellowFloor <= 0 || p.YellowFloor >= 1 {
		p.YellowFloor = d.YellowFloor
	}
	if p.YellowScale <= 0 {
		p.YellowScale = d.YellowScale
	}
	if p.RedLowHueMax <= 0 || p.RedLowHueMax >= 90 {
		p.RedLowHueMax = d.RedLowHueMax
	}
	if p.RedHighHueMin <= 90 || p.RedHighHueMin >= 180 {
		p.RedHighHueMin = d.RedHighHueMin
	}
	if p.RedSatMin <= 0 {
		p.RedSatMin = d.RedSatMin
	}
	if p.RedValMin <= 0 {
		p.RedValMin = d.RedValMin
	}
	if p.RedFloor <= 0 || p.RedFloor >= 1 {
		p.RedFloor = d.RedFloor
	}
	if p.RedScale <= 0 {
		p.RedScale = d.RedScale
	}
	if p.TermCap <= 0 || p.TermCap > 1 {
		p.TermCap = d.TermCap
	}
	if p.Materiality <= 0 || p.Materiality >= 1 {
		p.Materiality = d.Materiality
	}
	if p.DegenerateMeanMax <= 0 || p.DegenerateMeanMax > 255 {
		p.DegenerateMeanMax = d.DegenerateMeanMax
	}
	return p
}
