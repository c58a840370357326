package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30", tod.String())

	_, err = ParseTimeOfDay("8:30")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("")
	assert.Error(t, err)
}

func TestTimeOfDay_Before(t *testing.T) {
	open, _ := ParseTimeOfDay("08:00")
	close, _ := ParseTimeOfDay("22:00")

	assert.True(t, open.Before(close))
	assert.False(t, close.Before(open))
	assert.False(t, open.Before(open))
}

func TestTimeOfDay_Minutes(t *testing.T) {
	tod, _ := ParseTimeOfDay("08:30")
	assert.Equal(t, 510, tod.Minutes())

	midnight, _ := ParseTimeOfDay("00:00")
	assert.Equal(t, 0, midnight.Minutes())
}

func TestTimeOfDay_At(t *testing.T) {
	tod, _ := ParseTimeOfDay("09:15")
	date := time.Date(2026, time.September, 7, 23, 59, 0, 0, time.UTC)

	at := tod.At(date, time.UTC)

	assert.Equal(t, time.Date(2026, time.September, 7, 9, 15, 0, 0, time.UTC), at)
}

func TestTimeOfDay_Value(t *testing.T) {
	tod, _ := ParseTimeOfDay("08:00")

	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", v)

	_, err = TimeOfDay("bogus").Value()
	assert.Error(t, err)
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	// pq отдает TIME как строку с секундами
	require.NoError(t, tod.Scan("08:00:00"))
	assert.Equal(t, "08:00", tod.String())

	require.NoError(t, tod.Scan([]byte("22:30:00")))
	assert.Equal(t, "22:30", tod.String())

	require.NoError(t, tod.Scan(time.Date(2026, 1, 1, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, "14:45", tod.String())

	require.NoError(t, tod.Scan(nil))
	assert.True(t, tod.IsZero())

	assert.Error(t, tod.Scan(42))
}
