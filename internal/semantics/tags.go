package semantics

// Side identifies where in the mouth a frame is oriented.
type Side string

const (
	SideUpper   Side = "upper"
	SideLower   Side = "lower"
	SideLeft    Side = "left"
	SideRight   Side = "right"
	SideUnknown Side = "unknown"
)

// ToothType distinguishes incisor from molar morphology.
type ToothType string

const (
	ToothAnterior  ToothType = "anterior"
	ToothPosterior ToothType = "posterior"
	ToothUnknown   ToothType = "unknown"
)

// Region identifies the visible tooth surface or surrounding tissue.
type Region string

const (
	RegionOcclusal      Region = "occlusal"
	RegionInterproximal Region = "interproximal"
	RegionGum           Region = "gum"
	RegionLingual       Region = "lingual"
	RegionBuccal        Region = "buccal"
	RegionUnknown       Region = "unknown"
)

// Issue is one detected condition. A frame can carry several at once, so
// issues are reported as a list rather than a single value.
type Issue string

const (
	IssueDarkDeposit      Issue = "dark_deposit"
	IssueYellowPlaque     Issue = "yellow_plaque"
	IssueGumIssue         Issue = "gum_issue"
	IssueStructuralDefect Issue = "structural_defect"
	IssueNone             Issue = "none"
	IssueUnknown          Issue = "unknown"
)

// Tags is the structured classification of one frame.
type Tags struct {
	Side       Side      `json:"side"`
	ToothType  ToothType `json:"tooth_type"`
	Region     Region    `json:"region"`
	Issues     []Issue   `json:"issues"`
	Confidence float64   `json:"confidence"`
	Verified   bool      `json:"verified"`
}

// Unknown reports whether every categorical axis is unknown.
func (t Tags) Unknown() bool {
	return t.Side == SideUnknown && t.ToothType == ToothUnknown && t.Region == RegionUnknown
}

// HasIssue reports whether the given issue was detected.
func (t Tags) HasIssue(issue Issue) bool {
	for _, i := range t.Issues {
		if i == issue {
			return true
		}
	}
	return false
}

func unknownTags() Tags {
	return Tags{
		Side:      SideUnknown,
		ToothType: ToothUnknown,
		Region:    RegionUnknown,
		Issues:    []Issue{IssueUnknown},
	}
}

// ParseSide validates a stored side value.
func ParseSide(raw string) (Side, bool) {
	switch Side(raw) {
	case SideUpper, SideLower, SideLeft, SideRight, SideUnknown:
		return Side(raw), true
	}
	return SideUnknown, false
}

// ParseToothType validates a stored tooth type value.
func ParseToothType(raw string) (ToothType, bool) {
	switch ToothType(raw) {
	case ToothAnterior, ToothPosterior, ToothUnknown:
		return ToothType(raw), true
	}
	return ToothUnknown, false
}

// ParseRegion validates a stored region value.
func ParseRegion(raw string) (Region, bool) {
	switch Region(raw) {
	case RegionOcclusal, RegionInterproximal, RegionGum, RegionLingual, RegionBuccal, RegionUnknown:
		return Region(raw), true
	}
	return RegionUnknown, false
}

// ParseIssue validates a stored issue value.
func ParseIssue(raw string) (Issue, bool) {
	switch Issue(raw) {
	case IssueDarkDeposit, IssueYellowPlaque, IssueGumIssue, IssueStructuralDefect, IssueNone, IssueUnknown:
		return Issue(raw), true
	}
	return IssueUnknown, false
}
