package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// maxAttendeeReasons caps how many unknown attendees are enumerated
// as parameterized reasons on a calendar check.
const maxAttendeeReasons = 3

// ApprovalChecker decides whether emails and agent actions require
// human approval. It is stateless beyond its configuration and safe
// for concurrent use as long as the sender directory is.
type ApprovalChecker struct {
	senders               SenderDirectory
	matcher               *KeywordMatcher
	confidenceThreshold   float64
	autoApproveConfidence float64
	logger                *zap.Logger
}

// NewApprovalChecker creates a new approval checker
func NewApprovalChecker(
	senders SenderDirectory,
	sensitiveKeywords []string,
	confidenceThreshold float64,
	autoApproveConfidence float64,
	logger *zap.Logger,
) *ApprovalChecker {
	return &ApprovalChecker{
		senders:               senders,
		matcher:               NewKeywordMatcher(sensitiveKeywords),
		confidenceThreshold:   confidenceThreshold,
		autoApproveConfidence: autoApproveConfidence,
		logger:                logger,
	}
}

// CheckEmail checks whether an email requires human approval.
// classification may be nil when the email has not been classified yet.
func (c *ApprovalChecker) CheckEmail(ctx context.Context, email *Email, classification *Classification) ApprovalCheck {
	var reasons []string
	risk := RiskLow

	if !c.isKnownSender(ctx, email.FromAddress) {
		reasons = append(reasons, ReasonUnknownSender)
		risk = risk.Max(RiskMedium)
	}

	combined := strings.ToLower(email.Subject + " " + email.BestBody())
	if found := c.matcher.FindMatches(combined); len(found) > 0 {
		reasons = append(reasons, ReasonSensitiveContent)
		for _, kw := range found {
			reasons = append(reasons, "keyword:"+kw)
		}
		risk = risk.Max(RiskHigh)
	}

	if classification != nil && classification.Confidence < c.confidenceThreshold {
		reasons = append(reasons, ReasonLowConfidence)
		risk = risk.Max(RiskMedium)
	}

	return ApprovalCheck{
		RequiresApproval: len(reasons) > 0,
		Reasons:          reasons,
		RiskLevel:        risk,
	}
}

// CheckDraft checks whether a drafted reply requires approval before
// it can be sent
func (c *ApprovalChecker) CheckDraft(ctx context.Context, draftBody string, original *Email) ApprovalCheck {
	var reasons []string
	risk := RiskLow

	if found := c.matcher.FindMatches(draftBody); len(found) > 0 {
		reasons = append(reasons, ReasonDraftSensitive)
		for _, kw := range found {
			reasons = append(reasons, "keyword:"+kw)
		}
		risk = risk.Max(RiskMedium)
	}

	if ContainsCommitments(draftBody) {
		reasons = append(reasons, ReasonCommitments)
		risk = risk.Max(RiskHigh)
	}

	if !c.isKnownSender(ctx, original.FromAddress) {
		reasons = append(reasons, ReasonReplyUnknownSender)
		risk = risk.Max(RiskMedium)
	}

	return ApprovalCheck{
		RequiresApproval: len(reasons) > 0,
		Reasons:          reasons,
		RiskLevel:        risk,
	}
}

// CheckCalendarAction checks whether a calendar action requires approval
func (c *ApprovalChecker) CheckCalendarAction(ctx context.Context, summary string, attendees []string, isExternal bool) ApprovalCheck {
	var reasons []string
	risk := RiskLow

	if isExternal {
		reasons = append(reasons, ReasonExternalAttendees)
		risk = risk.Max(RiskMedium)
	}

	var unknown []string
	for _, attendee := range attendees {
		if !c.isKnownSender(ctx, attendee) {
			unknown = append(unknown, attendee)
		}
	}
	if len(unknown) > 0 {
		reasons = append(reasons, ReasonUnknownAttendees)
		for i, attendee := range unknown {
			if i == maxAttendeeReasons {
				break
			}
			reasons = append(reasons, "attendee:"+attendee)
		}
		risk = risk.Max(RiskMedium)
	}

	if found := c.matcher.FindMatches(summary); len(found) > 0 {
		reasons = append(reasons, ReasonSensitiveMeetingTopic)
		risk = risk.Max(RiskHigh)
	}

	return ApprovalCheck{
		RequiresApproval: len(reasons) > 0,
		Reasons:          reasons,
		RiskLevel:        risk,
	}
}

// ShouldAutoApprove reports whether an email can be handled without a
// human in the loop
func (c *ApprovalChecker) ShouldAutoApprove(ctx context.Context, email *Email, classification *Classification) bool {
	check := c.CheckEmail(ctx, email, classification)
	if check.RequiresApproval {
		return false
	}

	if classification.Category == CategoryFYIOnly {
		return true
	}

	return classification.Confidence >= c.autoApproveConfidence && c.isKnownSender(ctx, email.FromAddress)
}

// AddKnownSender records a sender as trusted. Idempotent.
func (c *ApprovalChecker) AddKnownSender(ctx context.Context, email, name string) bool {
	if _, err := c.senders.Add(ctx, email, name); err != nil {
		c.logger.Error("Failed to add known sender",
			zap.String("email", email),
			zap.Error(err))
		return false
	}
	return true
}

// isKnownSender wraps the directory lookup fail-closed: an empty
// address or a lookup error is treated as "not known", never as
// "known". Approval must not be skipped because of an infrastructure
// error.
func (c *ApprovalChecker) isKnownSender(ctx context.Context, email string) bool {
	if email == "" {
		return false
	}
	known, err := c.senders.IsKnown(ctx, email)
	if err != nil {
		c.logger.Warn("Sender lookup failed, treating as unknown",
			zap.String("email", email),
			zap.Error(err))
		return false
	}
	return known
}

// reasonDescriptions maps reason codes to human-readable text
var reasonDescriptions = map[string]string{
	ReasonUnknownSender:         "Unknown sender",
	ReasonSensitiveContent:      "Sensitive content detected",
	ReasonLowConfidence:         "Low classification confidence",
	ReasonDraftSensitive:        "Draft contains sensitive keywords",
	ReasonCommitments:           "Draft contains commitments",
	ReasonReplyUnknownSender:    "Replying to unknown sender",
	ReasonExternalAttendees:     "Meeting includes external attendees",
	ReasonUnknownAttendees:      "Meeting includes unknown attendees",
	ReasonSensitiveMeetingTopic: "Sensitive meeting topic",
}

// RiskSummary renders a one-line human-readable summary of a check.
// Parameterized keyword:/attendee: reasons stay in Reasons for
// programmatic use but are left out of the text.
func RiskSummary(check ApprovalCheck) string {
	if !check.RequiresApproval {
		return "No approval required"
	}

	var summaries []string
	for _, reason := range check.Reasons {
		if strings.HasPrefix(reason, "keyword:") || strings.HasPrefix(reason, "attendee:") {
			continue
		}
		desc, ok := reasonDescriptions[reason]
		if !ok {
			desc = reason
		}
		summaries = append(summaries, desc)
	}

	return fmt.Sprintf("%s risk: %s", strings.ToUpper(string(check.RiskLevel)), strings.Join(summaries, ", "))
}
