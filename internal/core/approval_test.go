package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDirectory is an in-memory SenderDirectory for tests
type fakeDirectory struct {
	known     map[string]bool
	lookupErr error
}

func (d *fakeDirectory) IsKnown(_ context.Context, email string) (bool, error) {
	if d.lookupErr != nil {
		return false, d.lookupErr
	}
	return d.known[email], nil
}

func (d *fakeDirectory) Add(_ context.Context, email, name string) (*KnownSender, error) {
	if d.known == nil {
		d.known = make(map[string]bool)
	}
	d.known[email] = true
	return &KnownSender{Email: email, Name: name}, nil
}

func (d *fakeDirectory) List(_ context.Context) ([]*KnownSender, error) {
	return nil, nil
}

func newTestChecker(dir *fakeDirectory, keywords []string) *ApprovalChecker {
	if keywords == nil {
		keywords = []string{"urgent", "payment", "contract"}
	}
	return NewApprovalChecker(dir, keywords, 0.7, 0.9, zap.NewNop())
}

func TestCheckEmailUnknownSender(t *testing.T) {
	checker := newTestChecker(&fakeDirectory{}, nil)

	check := checker.CheckEmail(context.Background(), &Email{
		FromAddress: "stranger@example.com",
		Subject:     "Hello",
		Body:        "Just saying hi",
	}, nil)

	assert.True(t, check.RequiresApproval)
	assert.Contains(t, check.Reasons, ReasonUnknownSender)
	assert.Equal(t, RiskMedium, check.RiskLevel)
}

func TestCheckEmailKnownSenderClean(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)

	check := checker.CheckEmail(context.Background(), &Email{
		FromAddress: "alice@example.com",
		Subject:     "Lunch",
		Body:        "Want to grab lunch?",
	}, &Classification{Category: CategoryNeedsReply, Confidence: 0.95})

	assert.False(t, check.RequiresApproval)
	assert.Empty(t, check.Reasons)
	assert.Equal(t, RiskLow, check.RiskLevel)
}

func TestCheckEmailSensitiveKeywordsForceHighRisk(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)

	check := checker.CheckEmail(context.Background(), &Email{
		FromAddress: "alice@example.com",
		Subject:     "URGENT: contract review",
		Body:        "Please review before the payment goes out",
	}, &Classification{Category: CategoryNeedsReply, Confidence: 0.95})

	assert.True(t, check.RequiresApproval)
	assert.Equal(t, RiskHigh, check.RiskLevel)
	assert.Contains(t, check.Reasons, ReasonSensitiveContent)
	assert.Contains(t, check.Reasons, "keyword:urgent")
	assert.Contains(t, check.Reasons, "keyword:payment")
	assert.Contains(t, check.Reasons, "keyword:contract")
}

func TestCheckEmailLowConfidence(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)

	check := checker.CheckEmail(context.Background(), &Email{
		FromAddress: "alice@example.com",
		Subject:     "Hello",
		Body:        "A perfectly ordinary note",
	}, &Classification{Category: CategoryFYIOnly, Confidence: 0.4})

	assert.True(t, check.RequiresApproval)
	assert.Equal(t, []string{ReasonLowConfidence}, check.Reasons)
	assert.Equal(t, RiskMedium, check.RiskLevel)
}

func TestCheckEmailLookupErrorFailsClosed(t *testing.T) {
	dir := &fakeDirectory{
		known:     map[string]bool{"alice@example.com": true},
		lookupErr: errors.New("directory unavailable"),
	}
	checker := newTestChecker(dir, nil)

	check := checker.CheckEmail(context.Background(), &Email{
		FromAddress: "alice@example.com",
		Subject:     "Hello",
		Body:        "Hi",
	}, nil)

	assert.True(t, check.RequiresApproval)
	assert.Contains(t, check.Reasons, ReasonUnknownSender)
}

func TestCheckEmailEmptyAddressIsUnknown(t *testing.T) {
	checker := newTestChecker(&fakeDirectory{}, nil)

	check := checker.CheckEmail(context.Background(), &Email{Subject: "no sender"}, nil)

	assert.Contains(t, check.Reasons, ReasonUnknownSender)
}

func TestCheckEmailApprovalMatchesReasons(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)

	emails := []*Email{
		{FromAddress: "alice@example.com", Subject: "Hello", Body: "hi"},
		{FromAddress: "bob@example.com", Subject: "urgent payment", Body: "now"},
		{FromAddress: "", Subject: "", Body: ""},
	}
	for _, email := range emails {
		check := checker.CheckEmail(context.Background(), email, nil)
		assert.Equal(t, len(check.Reasons) > 0, check.RequiresApproval)
	}
}

func TestCheckDraftCommitments(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)

	check := checker.CheckDraft(context.Background(),
		"I will deliver the report on Friday. I guarantee it.",
		&Email{FromAddress: "alice@example.com"})

	assert.True(t, check.RequiresApproval)
	assert.Equal(t, []string{ReasonCommitments}, check.Reasons)
	assert.Equal(t, RiskHigh, check.RiskLevel)
}

func TestCheckDraftSensitiveKeywordsAndUnknownRecipient(t *testing.T) {
	checker := newTestChecker(&fakeDirectory{}, nil)

	check := checker.CheckDraft(context.Background(),
		"The payment details are attached.",
		&Email{FromAddress: "stranger@example.com"})

	assert.True(t, check.RequiresApproval)
	assert.Contains(t, check.Reasons, ReasonDraftSensitive)
	assert.Contains(t, check.Reasons, "keyword:payment")
	assert.Contains(t, check.Reasons, ReasonReplyUnknownSender)
	assert.Equal(t, RiskMedium, check.RiskLevel)
}

func TestCheckDraftCleanForKnownRecipient(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)

	check := checker.CheckDraft(context.Background(),
		"Sounds good, see you then.",
		&Email{FromAddress: "alice@example.com"})

	assert.False(t, check.RequiresApproval)
	assert.Equal(t, RiskLow, check.RiskLevel)
}

func TestCheckCalendarActionCapsAttendeeReasons(t *testing.T) {
	checker := newTestChecker(&fakeDirectory{}, nil)

	var attendees []string
	for i := 0; i < 5; i++ {
		attendees = append(attendees, fmt.Sprintf("person%d@example.com", i))
	}

	check := checker.CheckCalendarAction(context.Background(), "Planning sync", attendees, false)

	require.True(t, check.RequiresApproval)
	assert.Contains(t, check.Reasons, ReasonUnknownAttendees)
	var attendeeReasons int
	for _, reason := range check.Reasons {
		if len(reason) > 9 && reason[:9] == "attendee:" {
			attendeeReasons++
		}
	}
	assert.Equal(t, 3, attendeeReasons)
}

func TestCheckCalendarActionSensitiveTopic(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)

	check := checker.CheckCalendarAction(context.Background(),
		"Contract negotiation", []string{"alice@example.com"}, true)

	assert.Equal(t, RiskHigh, check.RiskLevel)
	assert.Contains(t, check.Reasons, ReasonExternalAttendees)
	assert.Contains(t, check.Reasons, ReasonSensitiveMeetingTopic)
}

func TestShouldAutoApprove(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	checker := newTestChecker(dir, nil)
	ctx := context.Background()

	clean := &Email{FromAddress: "alice@example.com", Subject: "Notes", Body: "FYI"}

	// FYI from a known sender auto-approves even at modest confidence
	assert.True(t, checker.ShouldAutoApprove(ctx, clean,
		&Classification{Category: CategoryFYIOnly, Confidence: 0.75}))

	// Non-FYI needs high confidence
	assert.True(t, checker.ShouldAutoApprove(ctx, clean,
		&Classification{Category: CategoryNeedsReply, Confidence: 0.95}))
	assert.False(t, checker.ShouldAutoApprove(ctx, clean,
		&Classification{Category: CategoryNeedsReply, Confidence: 0.85}))

	// Anything that requires approval never auto-approves
	urgent := &Email{FromAddress: "alice@example.com", Subject: "urgent", Body: "now"}
	assert.False(t, checker.ShouldAutoApprove(ctx, urgent,
		&Classification{Category: CategoryFYIOnly, Confidence: 0.99}))

	// Unknown senders never auto-approve
	stranger := &Email{FromAddress: "bob@example.com", Subject: "Notes", Body: "FYI"}
	assert.False(t, checker.ShouldAutoApprove(ctx, stranger,
		&Classification{Category: CategoryNeedsReply, Confidence: 0.99}))
}

func TestShouldAutoApproveConfigurableConfidence(t *testing.T) {
	dir := &fakeDirectory{known: map[string]bool{"alice@example.com": true}}
	strict := NewApprovalChecker(dir, []string{"urgent"}, 0.7, 0.99, zap.NewNop())
	ctx := context.Background()

	clean := &Email{FromAddress: "alice@example.com", Subject: "Notes", Body: "FYI"}

	// 0.95 clears the default bar but not a stricter one
	assert.False(t, strict.ShouldAutoApprove(ctx, clean,
		&Classification{Category: CategoryNeedsReply, Confidence: 0.95}))
	assert.True(t, strict.ShouldAutoApprove(ctx, clean,
		&Classification{Category: CategoryNeedsReply, Confidence: 0.99}))

	lenient := NewApprovalChecker(dir, []string{"urgent"}, 0.7, 0.8, zap.NewNop())
	assert.True(t, lenient.ShouldAutoApprove(ctx, clean,
		&Classification{Category: CategoryNeedsReply, Confidence: 0.85}))
}

func TestAddKnownSender(t *testing.T) {
	dir := &fakeDirectory{}
	checker := newTestChecker(dir, nil)
	ctx := context.Background()

	require.True(t, checker.AddKnownSender(ctx, "carol@example.com", "Carol"))

	check := checker.CheckEmail(ctx, &Email{
		FromAddress: "carol@example.com",
		Subject:     "Hello",
		Body:        "hi there",
	}, nil)
	assert.False(t, check.RequiresApproval)
}

func TestRiskSummary(t *testing.T) {
	assert.Equal(t, "No approval required", RiskSummary(ApprovalCheck{}))

	summary := RiskSummary(ApprovalCheck{
		RequiresApproval: true,
		Reasons:          []string{ReasonUnknownSender, ReasonSensitiveContent, "keyword:urgent"},
		RiskLevel:        RiskHigh,
	})
	assert.Equal(t, "HIGH risk: Unknown sender, Sensitive content detected", summary)
	assert.NotContains(t, summary, "keyword:")
}
