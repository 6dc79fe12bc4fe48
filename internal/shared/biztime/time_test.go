package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	require.NoError(t, Init("America/Mexico_City"))
	t.Cleanup(func() { _ = Init("UTC") })

	ts, dateOnly, err := ParseTimestamp("2025-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), ts)

	ts, dateOnly, err = ParseTimestamp("2025-01-01")
	require.NoError(t, err)
	assert.True(t, dateOnly)
	// Mexico City is UTC-6 in January
	assert.Equal(t, time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC), ts)

	_, _, err = ParseTimestamp("last tuesday")
	assert.Error(t, err)
}

func TestStartOfDayUsesBusinessDay(t *testing.T) {
	require.NoError(t, Init("America/Mexico_City"))
	t.Cleanup(func() { _ = Init("UTC") })

	// 03:00 UTC on Jan 2 is still Jan 1 in Mexico City
	assert.Equal(t, time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC),
		StartOfDayUTC(time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)))
}

func TestInitRejectsUnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus_Mons"))
}
