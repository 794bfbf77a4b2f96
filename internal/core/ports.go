package core

import (
	"context"
	"time"
)

// TextGenerator defines the interface for interacting with LLM services
type TextGenerator interface {
	// Generate produces raw text for a prompt
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// SenderDirectory defines the interface for the known-sender store
type SenderDirectory interface {
	// IsKnown reports whether an address has been recorded as trusted
	IsKnown(ctx context.Context, email string) (bool, error)

	// Add records a sender. Adding an existing address is a no-op that
	// returns the stored record unchanged.
	Add(ctx context.Context, email, name string) (*KnownSender, error)

	// List returns all recorded senders
	List(ctx context.Context) ([]*KnownSender, error)
}

// CalendarProvider defines the interface for calendar access
type CalendarProvider interface {
	// BusyIntervals returns the busy ranges within [start, end),
	// excluding all-day events
	BusyIntervals(ctx context.Context, start, end time.Time) ([]BusyInterval, error)

	// CreateEvent places a meeting on the calendar and returns its ID
	CreateEvent(ctx context.Context, details MeetingDetails) (string, error)
}
