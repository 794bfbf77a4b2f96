package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const extractionPrompt = `Extract meeting details from this email. If no meeting is requested, set has_meeting_request to false.

Email:
From: %s
Subject: %s
Content: %s

Respond in this exact JSON format:
{
    "has_meeting_request": true/false,
    "title": "meeting title or empty",
    "proposed_times": ["time1", "time2"],
    "duration_minutes": 60,
    "attendees": ["email1", "email2"],
    "location": "location or empty",
    "notes": "any additional notes"
}

JSON response:`

// proposalWindow bounds how far ahead scheduling proposals look
const proposalWindow = 14 * 24 * time.Hour

// ErrNoStartTime is returned when a meeting is scheduled without any
// usable start time
var ErrNoStartTime = errors.New("no start time provided for meeting")

// SchedulerService extracts meeting requests from email and builds
// scheduling proposals against the calendar
type SchedulerService struct {
	generator    TextGenerator
	calendar     CalendarProvider
	availability *AvailabilityEngine
	hours        WorkingHours
	location     *time.Location
	logger       *zap.Logger
	maxBodySize  int
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(
	generator TextGenerator,
	calendar CalendarProvider,
	availability *AvailabilityEngine,
	hours WorkingHours,
	location *time.Location,
	maxBodySize int,
	logger *zap.Logger,
) *SchedulerService {
	if location == nil {
		location = time.UTC
	}
	return &SchedulerService{
		generator:    generator,
		calendar:     calendar,
		availability: availability,
		hours:        hours,
		location:     location,
		logger:       logger,
		maxBodySize:  maxBodySize,
	}
}

// ExtractMeetingDetails extracts meeting details from an email,
// degrading to heuristics when the LLM call fails
func (s *SchedulerService) ExtractMeetingDetails(ctx context.Context, email *Email) MeetingExtraction {
	body := truncate(email.BestBody(), s.maxBodySize)
	prompt := fmt.Sprintf(extractionPrompt, email.From, email.Subject, body)

	response, err := s.generator.Generate(ctx, prompt, 300, 0.1)
	if err != nil {
		s.logger.Warn("Meeting extraction call failed, using fallback",
			zap.String("email_id", email.ID),
			zap.Error(err))
		return FallbackExtraction(email)
	}

	extraction := ParseMeetingExtractionResponse(response)
	if extraction.Title == "" {
		extraction.Title = email.Subject
	}
	return extraction
}

// CreateProposal builds a scheduling proposal from an extraction:
// free slots over the next two weeks, conflicts on any parseable
// proposed times, and a suggested reply
func (s *SchedulerService) CreateProposal(ctx context.Context, extraction MeetingExtraction, email *Email) SchedulingProposal {
	now := time.Now().In(s.location)
	end := now.Add(proposalWindow)

	busy, err := s.calendar.BusyIntervals(ctx, now, end)
	if err != nil {
		s.logger.Warn("Busy interval fetch failed, proposing without calendar data", zap.Error(err))
		busy = nil
	}

	slots := s.availability.FindFreeSlots(now, end, extraction.DurationMinutes, s.hours, busy)
	conflicts := s.checkProposedTimes(extraction.ProposedTimes, busy)

	attendees := append([]string(nil), extraction.Attendees...)
	if email.FromAddress != "" && !containsString(attendees, email.FromAddress) {
		attendees = append(attendees, email.FromAddress)
	}

	title := extraction.Title
	if title == "" {
		title = "Meeting: " + email.Subject
	}

	meeting := MeetingDetails{
		Summary:         title,
		Description:     extraction.Notes,
		DurationMinutes: extraction.DurationMinutes,
		Attendees:       attendees,
		Location:        extraction.Location,
		Timezone:        s.location.String(),
	}

	replySlots := slots
	if len(replySlots) > 5 {
		replySlots = replySlots[:5]
	}
	if len(slots) > 10 {
		slots = slots[:10]
	}

	return SchedulingProposal{
		Meeting:        meeting,
		AvailableSlots: slots,
		Conflicts:      conflicts,
		SuggestedReply: s.schedulingReply(replySlots, conflicts),
	}
}

// ScheduleMeeting places a meeting on the calendar using a chosen
// slot, an explicit start time, or the meeting's own start
func (s *SchedulerService) ScheduleMeeting(ctx context.Context, meeting MeetingDetails, slot *TimeSlot, startTime *time.Time) (string, error) {
	switch {
	case slot != nil:
		meeting.Start = slot.Start
		meeting.End = slot.End
	case startTime != nil:
		meeting.Start = *startTime
		meeting.End = startTime.Add(time.Duration(meeting.DurationMinutes) * time.Minute)
	case meeting.Start.IsZero():
		return "", ErrNoStartTime
	}

	if meeting.End.IsZero() {
		meeting.End = meeting.Start.Add(time.Duration(meeting.DurationMinutes) * time.Minute)
	}

	eventID, err := s.calendar.CreateEvent(ctx, meeting)
	if err != nil {
		s.logger.Error("Failed to create calendar event",
			zap.String("summary", meeting.Summary),
			zap.Error(err))
		return "", err
	}
	return eventID, nil
}

// checkProposedTimes flags proposed free-text times that conflict with
// the calendar. Unparseable times are skipped rather than flagged.
func (s *SchedulerService) checkProposedTimes(proposed []string, busy []BusyInterval) []string {
	var conflicts []string
	for _, timeStr := range proposed {
		start, end, ok := s.parseTimeString(timeStr)
		if !ok {
			continue
		}
		if !s.availability.CheckAvailability(start, end, busy) {
			conflicts = append(conflicts, timeStr+" - conflict detected")
		}
	}
	return conflicts
}

var clockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`),
	regexp.MustCompile(`(\d{1,2})\s*(am|pm)`),
}

// parseTimeString parses simple clock expressions ("3pm", "10:30 am")
// into a one-hour window at the next occurrence of that time
func (s *SchedulerService) parseTimeString(timeStr string) (time.Time, time.Time, bool) {
	lower := strings.ToLower(timeStr)
	now := time.Now().In(s.location)

	for _, pattern := range clockPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}

		hour, err := strconv.Atoi(match[1])
		if err != nil || hour > 23 {
			continue
		}
		minute := 0
		if len(match) > 3 {
			if m, err := strconv.Atoi(match[2]); err == nil {
				minute = m
			}
		}
		period := match[len(match)-1]
		if period == "pm" && hour < 12 {
			hour += 12
		} else if period == "am" && hour == 12 {
			hour = 0
		}
		if minute > 59 {
			continue
		}

		start := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.location)
		if start.Before(now) {
			start = start.AddDate(0, 0, 1)
		}
		return start, start.Add(time.Hour), true
	}

	return time.Time{}, time.Time{}, false
}

// schedulingReply renders a suggested reply from available slots and
// detected conflicts
func (s *SchedulerService) schedulingReply(slots []TimeSlot, conflicts []string) string {
	if len(conflicts) > 0 {
		var lines []string
		for _, c := range conflicts {
			lines = append(lines, "- "+c)
		}
		return fmt.Sprintf(`Thank you for reaching out about scheduling a meeting.

Unfortunately, some of the proposed times have conflicts:
%s

Here are some alternative times that work for me:
%s

Please let me know which of these works best for you.

Best regards`, strings.Join(lines, "\n"), formatSlots(firstSlots(slots, 3)))
	}

	if len(slots) > 0 {
		return fmt.Sprintf(`Thank you for reaching out about scheduling a meeting.

I'm available at the following times:
%s

Please let me know which works best for you, and I'll send a calendar invite.

Best regards`, formatSlots(firstSlots(slots, 3)))
	}

	return `Thank you for reaching out about scheduling a meeting.

I'll check my calendar and get back to you with some available times.

Best regards`
}

func firstSlots(slots []TimeSlot, n int) []TimeSlot {
	if len(slots) > n {
		return slots[:n]
	}
	return slots
}

func formatSlots(slots []TimeSlot) string {
	var lines []string
	for _, slot := range slots {
		lines = append(lines, fmt.Sprintf("- %s at %s",
			slot.Start.Format("Monday, January 02"),
			slot.Start.Format("03:04 PM")))
	}
	return strings.Join(lines, "\n")
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
