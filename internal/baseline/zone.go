package baseline

import "fmt"

// Zone identifies one of the seven mouth regions a baseline session covers.
type Zone int

const (
	ZoneUpperRight Zone = 1
	ZoneUpperFront Zone = 2
	ZoneUpperLeft  Zone = 3
	ZoneLowerRight Zone = 4
	ZoneLowerFront Zone = 5
	ZoneLowerLeft  Zone = 6
	ZoneOcclusal   Zone = 7

	// ZoneCount is the number of zones a complete baseline covers.
	ZoneCount = 7
)

var zoneNames = map[Zone]string{
	ZoneUpperRight: "upper right",
	ZoneUpperFront: "upper front",
	ZoneUpperLeft:  "upper left",
	ZoneLowerRight: "lower right",
	ZoneLowerFront: "lower front",
	ZoneLowerLeft:  "lower left",
	ZoneOcclusal:   "occlusal overview",
}

// Valid reports whether z is inside the 1..7 range.
func (z Zone) Valid() bool {
	return z >= ZoneUpperRight && z <= ZoneOcclusal
}

// DisplayName returns a human-readable zone label.
func (z Zone) DisplayName() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("zone %d", int(z))
}

// AllZones lists every zone in order.
func AllZones() []Zone {
	zones := make([]Zone, 0, ZoneCount)
	for z := ZoneUpperRight; z <= ZoneOcclusal; z++ {
		zones = append(zones, z)
	}
	return zones
}

// ParseZone validates an integer zone identifier.
func ParseZone(raw int) (Zone, error) {
	z := Zone(raw)
	if !z.Valid() {
		return 0, fmt.Errorf("zone %d outside valid range 1-%d", raw, ZoneCount)
	}
	return z, nil
}
