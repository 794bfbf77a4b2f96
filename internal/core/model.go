package core

import (
	"time"
)

// Email represents an email message
type Email struct {
	ID          string
	ThreadID    string
	From        string
	FromAddress string
	To          []string
	Subject     string
	Snippet     string
	Body        string
	Date        time.Time
	Headers     map[string][]string
}

// BestBody returns the full body if present, falling back to the snippet
func (e *Email) BestBody() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Snippet
}

// Category is an email classification category
type Category string

const (
	CategoryNeedsReply     Category = "NEEDS_REPLY"
	CategoryFYIOnly        Category = "FYI_ONLY"
	CategoryMeetingRequest Category = "MEETING_REQUEST"
	CategoryTaskAction     Category = "TASK_ACTION"
)

// ValidCategories lists every recognized classification category
var ValidCategories = []Category{
	CategoryNeedsReply,
	CategoryFYIOnly,
	CategoryMeetingRequest,
	CategoryTaskAction,
}

// Classification represents the result of email classification
type Classification struct {
	Category   Category
	Confidence float64
	Reasoning  string
}

// RiskLevel represents the severity of an approval check
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) rank() int {
	switch r {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return 0
	}
}

// Max returns the more severe of two risk levels. Escalation is
// monotonic: a triggered rule can raise the level but never lower it.
func (r RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.rank() > r.rank() {
		return other
	}
	return r
}

// Approval reason codes
const (
	ReasonUnknownSender         = "unknown_sender"
	ReasonSensitiveContent      = "sensitive_content"
	ReasonLowConfidence         = "low_confidence"
	ReasonDraftSensitive        = "draft_contains_sensitive_keywords"
	ReasonCommitments           = "contains_commitments"
	ReasonReplyUnknownSender    = "replying_to_unknown_sender"
	ReasonExternalAttendees     = "external_attendees"
	ReasonUnknownAttendees      = "unknown_attendees"
	ReasonSensitiveMeetingTopic = "sensitive_meeting_topic"
)

// ApprovalCheck is the result of a risk rule evaluation
type ApprovalCheck struct {
	RequiresApproval bool
	Reasons          []string
	RiskLevel        RiskLevel
}

// MeetingExtraction holds meeting details extracted from an email
type MeetingExtraction struct {
	HasMeetingRequest bool
	Title             string
	ProposedTimes     []string
	DurationMinutes   int
	Attendees         []string
	Location          string
	Notes             string
}

// TimeSlot represents an available time slot. End is Start plus the
// requested duration, clipped to the working-hours boundary of its day.
type TimeSlot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// BusyInterval is a calendar event's time range, unavailable for scheduling
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// MeetingDetails describes a meeting to be placed on the calendar
type MeetingDetails struct {
	Summary         string
	Description     string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Attendees       []string
	Location        string
	Timezone        string
}

// SchedulingProposal is a proposed meeting schedule
type SchedulingProposal struct {
	Meeting        MeetingDetails
	AvailableSlots []TimeSlot
	Conflicts      []string
	SuggestedReply string
}

// KnownSender is a persisted trusted sender record
type KnownSender struct {
	Email      string
	Name       string
	TrustLevel string
	CreatedAt  time.Time
}

// AgentResult is the outcome of running the full pipeline on one email
type AgentResult struct {
	Classification Classification
	Approval       ApprovalCheck
	AutoApproved   bool
	Draft          string
	DraftCheck     *ApprovalCheck
	Proposal       *SchedulingProposal
	AnalyzedAt     time.Time
}
