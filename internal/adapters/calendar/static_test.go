package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/mikey/llm-mail-agent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2026, time.January, 5, hour, 0, 0, 0, time.UTC)
}

func TestStaticProviderBusyIntervalsFiltersRange(t *testing.T) {
	provider := NewStaticProvider([]core.BusyInterval{
		{Start: at(9), End: at(10)},
		{Start: at(14), End: at(15)},
	})

	busy, err := provider.BusyIntervals(context.Background(), at(8), at(11))
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, at(9), busy[0].Start)
}

func TestStaticProviderCreateEventMarksBusy(t *testing.T) {
	provider := NewStaticProvider(nil)
	ctx := context.Background()

	id, err := provider.CreateEvent(ctx, core.MeetingDetails{
		Summary: "Planning",
		Start:   at(10),
		End:     at(11),
	})
	require.NoError(t, err)
	assert.Equal(t, "event-1", id)

	stored, ok := provider.Event(id)
	require.True(t, ok)
	assert.Equal(t, "Planning", stored.Summary)

	busy, err := provider.BusyIntervals(ctx, at(9), at(12))
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, at(10), busy[0].Start)
}

func TestStaticProviderEventIDsIncrement(t *testing.T) {
	provider := NewStaticProvider(nil)
	ctx := context.Background()

	first, err := provider.CreateEvent(ctx, core.MeetingDetails{Summary: "One", Start: at(9), End: at(10)})
	require.NoError(t, err)
	second, err := provider.CreateEvent(ctx, core.MeetingDetails{Summary: "Two", Start: at(11), End: at(12)})
	require.NoError(t, err)

	assert.Equal(t, "event-1", first)
	assert.Equal(t, "event-2", second)

	_, ok := provider.Event("event-3")
	assert.False(t, ok)
}
