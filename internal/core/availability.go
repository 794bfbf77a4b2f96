package core

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// scanStep is the fixed cursor advance between candidate slots. It
// balances slot density against scan cost and matches common meeting
// granularity.
const scanStep = 30 * time.Minute

// WorkingHours is the daily window during which slots may be proposed
type WorkingHours struct {
	Start int
	End   int
}

// DefaultWorkingHours is 09:00-17:00
var DefaultWorkingHours = WorkingHours{Start: 9, End: 17}

// AvailabilityEngine computes free meeting slots against a calendar's
// busy intervals. All methods are pure given their inputs.
type AvailabilityEngine struct {
	location *time.Location
	logger   *zap.Logger
}

// NewAvailabilityEngine creates an engine that evaluates working hours
// in the given location
func NewAvailabilityEngine(location *time.Location, logger *zap.Logger) *AvailabilityEngine {
	if location == nil {
		location = time.UTC
	}
	return &AvailabilityEngine{location: location, logger: logger}
}

// FindFreeSlots scans [startDate, endDate) for free slots of at least
// durationMinutes within working hours. The scan is a greedy forward
// pass: overlapping a busy interval jumps the cursor to that
// interval's end, a successful slot advances it by a fixed 30-minute
// step. Slots clipped short by the end of the working day are not
// emitted.
func (e *AvailabilityEngine) FindFreeSlots(
	startDate, endDate time.Time,
	durationMinutes int,
	hours WorkingHours,
	busy []BusyInterval,
) []TimeSlot {
	sorted := make([]BusyInterval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	duration := time.Duration(durationMinutes) * time.Minute
	var slots []TimeSlot

	current := startDate.In(e.location)
	end := endDate.In(e.location)

	for current.Before(end) {
		if current.Hour() < hours.Start {
			current = e.atHour(current, hours.Start)
		} else if current.Hour() >= hours.End {
			current = e.atHour(current.AddDate(0, 0, 1), hours.Start)
			continue
		}

		dayEnd := e.atHour(current, hours.End)
		slotEnd := current.Add(duration)
		if slotEnd.After(dayEnd) {
			slotEnd = dayEnd
		}

		if slotEnd.After(end) {
			break
		}

		overlapped := false
		for _, interval := range sorted {
			if current.Before(interval.End) && slotEnd.After(interval.Start) {
				current = interval.End.In(e.location)
				overlapped = true
				break
			}
		}
		if overlapped {
			continue
		}

		if slotEnd.Sub(current) >= duration {
			slots = append(slots, TimeSlot{
				Start:           current,
				End:             slotEnd,
				DurationMinutes: durationMinutes,
			})
		}
		current = current.Add(scanStep)
	}

	if e.logger != nil {
		e.logger.Debug("Computed free slots",
			zap.Int("busy_intervals", len(busy)),
			zap.Int("slots", len(slots)))
	}

	return slots
}

// CheckAvailability reports whether [start, end) overlaps none of the
// busy intervals
func (e *AvailabilityEngine) CheckAvailability(start, end time.Time, busy []BusyInterval) bool {
	for _, interval := range busy {
		if start.Before(interval.End) && end.After(interval.Start) {
			return false
		}
	}
	return true
}

// atHour returns t's calendar day at the given whole hour
func (e *AvailabilityEngine) atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, e.location)
}
