package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldn/ArenaBookingService/pkg/types"
)

func TestDayOfWeekFromWeekday(t *testing.T) {
	assert.Equal(t, 0, DayOfWeekFromWeekday(time.Monday))
	assert.Equal(t, 4, DayOfWeekFromWeekday(time.Friday))
	assert.Equal(t, 5, DayOfWeekFromWeekday(time.Saturday))
	assert.Equal(t, 6, DayOfWeekFromWeekday(time.Sunday))
}

func TestWeeklyHours_ForWeekday(t *testing.T) {
	open, err := types.ParseTimeOfDay("08:00")
	require.NoError(t, err)
	close, err := types.ParseTimeOfDay("22:00")
	require.NoError(t, err)

	hours := WeeklyHours{
		{SiteID: 1, DayOfWeek: 0, OpenTime: open, CloseTime: close},
		{SiteID: 1, DayOfWeek: 4, OpenTime: open, CloseTime: close},
	}

	entry := hours.ForWeekday(time.Monday)
	require.NotNil(t, entry)
	assert.Equal(t, 0, entry.DayOfWeek)

	// День без записи - выходной
	assert.Nil(t, hours.ForWeekday(time.Sunday))
}

func TestOpeningHours_IsValid(t *testing.T) {
	open, _ := types.ParseTimeOfDay("08:00")
	close, _ := types.ParseTimeOfDay("22:00")

	valid := OpeningHours{DayOfWeek: 2, OpenTime: open, CloseTime: close}
	assert.True(t, valid.IsValid())

	// Открытие должно быть строго раньше закрытия
	inverted := OpeningHours{DayOfWeek: 2, OpenTime: close, CloseTime: open}
	assert.False(t, inverted.IsValid())

	sameTime := OpeningHours{DayOfWeek: 2, OpenTime: open, CloseTime: open}
	assert.False(t, sameTime.IsValid())

	badDay := OpeningHours{DayOfWeek: 7, OpenTime: open, CloseTime: close}
	assert.False(t, badDay.IsValid())
}
