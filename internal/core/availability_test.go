package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.January, 5, hour, min, 0, 0, time.UTC)
}

func TestFindFreeSlotsEmptyCalendar(t *testing.T) {
	engine := NewAvailabilityEngine(time.UTC, zap.NewNop())

	slots := engine.FindFreeSlots(day(t, 9, 0), day(t, 17, 0), 60, DefaultWorkingHours, nil)

	// 09:00 through 16:00 on a 30-minute grid
	require.Len(t, slots, 15)
	assert.Equal(t, day(t, 9, 0), slots[0].Start)
	assert.Equal(t, day(t, 10, 0), slots[0].End)
	assert.Equal(t, day(t, 16, 0), slots[len(slots)-1].Start)
	for _, slot := range slots {
		assert.Equal(t, 60, slot.DurationMinutes)
		assert.False(t, slot.End.After(day(t, 17, 0)))
	}
}

func TestFindFreeSlotsSkipsBusyIntervals(t *testing.T) {
	engine := NewAvailabilityEngine(time.UTC, zap.NewNop())
	busy := []BusyInterval{{Start: day(t, 10, 0), End: day(t, 10, 30)}}

	slots := engine.FindFreeSlots(day(t, 9, 0), day(t, 17, 0), 60, DefaultWorkingHours, busy)

	starts := make(map[time.Time]bool)
	for _, slot := range slots {
		starts[slot.Start] = true
		// No slot may overlap the busy interval
		assert.False(t, slot.Start.Before(busy[0].End) && slot.End.After(busy[0].Start),
			"slot %v overlaps busy interval", slot.Start)
	}

	// 09:00-10:00 ends exactly when the busy interval begins
	assert.True(t, starts[day(t, 9, 0)])
	// 09:30 would overlap; the scan resumes at the busy interval's end
	assert.False(t, starts[day(t, 9, 30)])
	assert.True(t, starts[day(t, 10, 30)])
}

func TestFindFreeSlotsSnapsToWorkingHours(t *testing.T) {
	engine := NewAvailabilityEngine(time.UTC, zap.NewNop())

	slots := engine.FindFreeSlots(day(t, 6, 0), day(t, 17, 0), 60, DefaultWorkingHours, nil)

	require.NotEmpty(t, slots)
	assert.Equal(t, day(t, 9, 0), slots[0].Start)
	for _, slot := range slots {
		assert.GreaterOrEqual(t, slot.Start.Hour(), 9)
		assert.LessOrEqual(t, slot.End.Hour(), 17)
	}
}

func TestFindFreeSlotsAfterHoursMovesToNextDay(t *testing.T) {
	engine := NewAvailabilityEngine(time.UTC, zap.NewNop())

	start := day(t, 18, 0)
	end := start.AddDate(0, 0, 2)
	slots := engine.FindFreeSlots(start, end, 30, DefaultWorkingHours, nil)

	require.NotEmpty(t, slots)
	next := day(t, 9, 0).AddDate(0, 0, 1)
	assert.Equal(t, next, slots[0].Start)
}

func TestFindFreeSlotsTooShortWindow(t *testing.T) {
	engine := NewAvailabilityEngine(time.UTC, zap.NewNop())

	// A 90-minute meeting cannot fit into a one-hour window
	slots := engine.FindFreeSlots(day(t, 16, 0), day(t, 17, 0), 90, DefaultWorkingHours, nil)

	assert.Empty(t, slots)
}

func TestFindFreeSlotsNilLocationDefaultsToUTC(t *testing.T) {
	engine := NewAvailabilityEngine(nil, zap.NewNop())

	slots := engine.FindFreeSlots(day(t, 9, 0), day(t, 12, 0), 60, DefaultWorkingHours, nil)
	assert.NotEmpty(t, slots)
}

func TestCheckAvailability(t *testing.T) {
	engine := NewAvailabilityEngine(time.UTC, zap.NewNop())
	busy := []BusyInterval{{Start: day(t, 10, 0), End: day(t, 11, 0)}}

	assert.True(t, engine.CheckAvailability(day(t, 9, 0), day(t, 10, 0), busy))
	assert.True(t, engine.CheckAvailability(day(t, 11, 0), day(t, 12, 0), busy))
	assert.False(t, engine.CheckAvailability(day(t, 10, 30), day(t, 11, 30), busy))
	assert.False(t, engine.CheckAvailability(day(t, 9, 30), day(t, 10, 30), busy))
	assert.True(t, engine.CheckAvailability(day(t, 9, 0), day(t, 10, 0), nil))
}
