package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikey/llm-mail-agent/internal/core"
)

// StaticProvider is an in-memory implementation of the
// core.CalendarProvider interface, used when no external calendar is
// configured and in tests
type StaticProvider struct {
	mu        sync.Mutex
	intervals []core.BusyInterval
	events    map[string]core.MeetingDetails
	nextID    int
}

// NewStaticProvider creates a provider pre-loaded with busy intervals
func NewStaticProvider(intervals []core.BusyInterval) *StaticProvider {
	return &StaticProvider{
		intervals: intervals,
		events:    make(map[string]core.MeetingDetails),
	}
}

// BusyIntervals returns the loaded intervals overlapping [start, end)
func (p *StaticProvider) BusyIntervals(ctx context.Context, start, end time.Time) ([]core.BusyInterval, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []core.BusyInterval
	for _, interval := range p.intervals {
		if start.Before(interval.End) && end.After(interval.Start) {
			out = append(out, interval)
		}
	}
	return out, nil
}

// CreateEvent records the meeting and marks its range busy
func (p *StaticProvider) CreateEvent(ctx context.Context, details core.MeetingDetails) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := fmt.Sprintf("event-%d", p.nextID)
	p.events[id] = details
	p.intervals = append(p.intervals, core.BusyInterval{Start: details.Start, End: details.End})
	return id, nil
}

// Event returns a created event by ID
func (p *StaticProvider) Event(id string) (core.MeetingDetails, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	details, ok := p.events[id]
	return details, ok
}
