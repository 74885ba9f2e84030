package semantics

// Policy carries every threshold the classifier branches on. The zero value
// is normalized to the defaults, so callers can set only the fields they care
// about.
type Policy struct {
	// Color gates, all in OpenCV HSV space (H 0-180, S/V 0-255).
	ToothSatMax  float64
	ToothValMin  float64
	GumPinkLow   [2]float64 // hue band 1 low/high
	GumPinkHigh  [2]float64 // hue band 2 low/high
	GumSatMin    float64
	GumSatMax    float64
	GumValMin    float64
	DarkValMax   float64
	YellowHue    [2]float64
	YellowSatMin float64
	YellowValMin float64
	RedSatMin    float64
	RedValMin    float64
	RedHueMax    float64 // band 1 upper bound
	RedHueMin    float64 // band 2 lower bound
	CavityValMax float64

	// Validity gate: below both floors the frame is not oral content.
	ToothVisibleMin float64
	GumVisibleMin   float64

	// Side decisions.
	GumVerticalSplit  float64 // upper/lower dominance ratio
	ToothLateralSplit float64 // left/right dominance ratio

	// Tooth type morphology.
	ContourMinArea       float64
	ContourTopCount      int
	MinToothPixels       int
	AnteriorAspectMax    float64
	AnteriorSolidityMin  float64
	PosteriorAspectMin   float64
	PosteriorSolidityMax float64

	// Region cascade.
	GumRegionMin       float64
	OcclusalToothMin   float64
	OcclusalTextureMin float64
	ValleyDepthRatio   float64
	ValleyMinCount     int
	CavityRegionMin    float64
	CavityCenterMin    float64
	LingualGumRatio    float64

	// Issue detection.
	DarkDepositMin    float64
	DepositDilateSize int
	YellowPlaqueMin   float64
	RednessRatioMin   float64
	RedAbsoluteMin    float64
	PinkPresenceMin   float64
	DefectSolidityMax float64
	DefectMinArea     float64
	DefectDepthMin    float64
	DefectMinCount    int
}

// DefaultPolicy returns the tuned thresholds.
func DefaultPolicy() Policy {
	return Policy{}.normalized()
}

func (p Policy) normalized() Policy {
	if p.ToothSatMax <= 0 {
		p.ToothSatMax = 40
	}
	if p.ToothValMin <= 0 {
		p.ToothValMin = 180
	}
	if p.GumPinkLow == ([2]float64{}) {
		p.GumPinkLow = [2]float64{0, 20}
	}
	if p.GumPinkHigh == ([2]float64{}) {
		p.GumPinkHigh = [2]float64{160, 180}
	}
	if p.GumSatMin <= 0 {
		p.GumSatMin = 30
	}
	if p.GumSatMax <= 0 {
		p.GumSatMax = 180
	}
	if p.GumValMin <= 0 {
		p.GumValMin = 80
	}
	if p.DarkValMax <= 0 {
		p.DarkValMax = 60
	}
	if p.YellowHue == ([2]float64{}) {
		p.YellowHue = [2]float64{15, 35}
	}
	if p.YellowSatMin <= 0 {
		p.YellowSatMin = 40
	}
	if p.YellowValMin <= 0 {
		p.YellowValMin = 80
	}
	if p.RedSatMin <= 0 {
		p.RedSatMin = 120
	}
	if p.RedValMin <= 0 {
		p.RedValMin = 50
	}
	if p.RedHueMax <= 0 {
		p.RedHueMax = 10
	}
	if p.RedHueMin <= 0 {
		p.RedHueMin = 160
	}
	if p.CavityValMax <= 0 {
		p.CavityValMax = 40
	}
	if p.ToothVisibleMin <= 0 {
		p.ToothVisibleMin = 0.10
	}
	if p.GumVisibleMin <= 0 {
		p.GumVisibleMin = 0.05
	}
	if p.GumVerticalSplit <= 0 {
		p.GumVerticalSplit = 0.65
	}
	if p.ToothLateralSplit <= 0 {
		p.ToothLateralSplit = 0.7
	}
	if p.ContourMinArea <= 0 {
		p.ContourMinArea = 500
	}
	if p.ContourTopCount <= 0 {
		p.ContourTopCount = 5
	}
	if p.MinToothPixels <= 0 {
		p.MinToothPixels = 100
	}
	if p.AnteriorAspectMax <= 0 {
		p.AnteriorAspectMax = 0.8
	}
	if p.AnteriorSolidityMin <= 0 {
		p.AnteriorSolidityMin = 0.85
	}
	if p.PosteriorAspectMin <= 0 {
		p.PosteriorAspectMin = 1.2
	}
	if p.PosteriorSolidityMax <= 0 {
		p.PosteriorSolidityMax = 0.8
	}
	if p.GumRegionMin <= 0 {
		p.GumRegionMin = 0.15
	}
	if p.OcclusalToothMin <= 0 {
		p.OcclusalToothMin = 0.25
	}
	if p.OcclusalTextureMin <= 0 {
		p.OcclusalTextureMin = 500
	}
	if p.ValleyDepthRatio <= 0 {
		p.ValleyDepthRatio = 0.3
	}
	if p.ValleyMinCount <= 0 {
		p.ValleyMinCount = 2
	}
	if p.CavityRegionMin <= 0 {
		p.CavityRegionMin = 0.1
	}
	if p.CavityCenterMin <= 0 {
		p.CavityCenterMin = 0.5
	}
	if p.LingualGumRatio <= 0 {
		p.LingualGumRatio = 1.5
	}
	if p.DarkDepositMin <= 0 {
		p.DarkDepositMin = 0.02
	}
	if p.DepositDilateSize <= 0 {
		p.DepositDilateSize = 15
	}
	if p.YellowPlaqueMin <= 0 {
		p.YellowPlaqueMin = 0.015
	}
	if p.RednessRatioMin <= 0 {
		p.RednessRatioMin = 0.3
	}
	if p.RedAbsoluteMin <= 0 {
		p.RedAbsoluteMin = 0.08
	}
	if p.PinkPresenceMin <= 0 {
		p.PinkPresenceMin = 0.05
	}
	if p.DefectSolidityMax <= 0 {
		p.DefectSolidityMax = 0.75
	}
	if p.DefectMinArea <= 0 {
		p.DefectMinArea = 1000
	}
	if p.DefectDepthMin <= 0 {
		p.DefectDepthMin = 5000
	}
	if p.DefectMinCount <= 0 {
		p.DefectMinCount = 2
	}
	return p
}
