package baseline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseZone(t *testing.T) {
	zone, err := ParseZone(3)
	require.NoError(t, err)
	require.Equal(t, ZoneUpperLeft, zone)

	for _, raw := range []int{0, 8, -1} {
		_, err := ParseZone(raw)
		require.Error(t, err)
	}
}

func TestZoneDisplayName(t *testing.T) {
	require.Equal(t, "lower front", ZoneLowerFront.DisplayName())
	require.Equal(t, "zone 12", Zone(12).DisplayName())
	require.Len(t, AllZones(), ZoneCount)
}
