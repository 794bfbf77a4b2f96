package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleProvider implements the core.CalendarProvider interface over
// the Google Calendar API
type GoogleProvider struct {
	service    *gcal.Service
	calendarID string
	logger     *zap.Logger
}

// NewGoogleProvider creates a provider authenticated with the given
// token source
func NewGoogleProvider(ctx context.Context, tokenSource oauth2.TokenSource, calendarID string, logger *zap.Logger) (*GoogleProvider, error) {
	service, err := gcal.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleProvider{
		service:    service,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// NewGoogleProviderWithCredentials creates a provider from a service
// account credentials file
func NewGoogleProviderWithCredentials(ctx context.Context, credentialsFile, calendarID string, logger *zap.Logger) (*GoogleProvider, error) {
	service, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleProvider{
		service:    service,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// BusyIntervals returns the busy ranges within [start, end), excluding
// all-day events
func (p *GoogleProvider) BusyIntervals(ctx context.Context, start, end time.Time) ([]core.BusyInterval, error) {
	events, err := p.service.Events.List(p.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var intervals []core.BusyInterval
	for _, event := range events.Items {
		if event.Start == nil || event.End == nil {
			continue
		}
		// All-day events carry Date instead of DateTime
		if event.Start.DateTime == "" {
			continue
		}
		eventStart, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			p.logger.Warn("Skipping event with unparseable start",
				zap.String("event_id", event.Id),
				zap.Error(err))
			continue
		}
		eventEnd, err := time.Parse(time.RFC3339, event.End.DateTime)
		if err != nil {
			p.logger.Warn("Skipping event with unparseable end",
				zap.String("event_id", event.Id),
				zap.Error(err))
			continue
		}
		intervals = append(intervals, core.BusyInterval{Start: eventStart, End: eventEnd})
	}

	return intervals, nil
}

// CreateEvent places a meeting on the calendar and returns its event ID
func (p *GoogleProvider) CreateEvent(ctx context.Context, details core.MeetingDetails) (string, error) {
	event := &gcal.Event{
		Summary:     details.Summary,
		Description: details.Description,
		Location:    details.Location,
		Start: &gcal.EventDateTime{
			DateTime: details.Start.Format(time.RFC3339),
			TimeZone: details.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: details.End.Format(time.RFC3339),
			TimeZone: details.Timezone,
		},
	}
	for _, attendee := range details.Attendees {
		event.Attendees = append(event.Attendees, &gcal.EventAttendee{Email: attendee})
	}

	created, err := p.service.Events.Insert(p.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	p.logger.Info("Created calendar event",
		zap.String("event_id", created.Id),
		zap.String("summary", details.Summary))

	return created.Id, nil
}
