package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAgent(gen TextGenerator, dir SenderDirectory) *MailAgentService {
	logger := zap.NewNop()
	engine := NewAvailabilityEngine(time.UTC, logger)
	classifier := NewClassifierService(gen, 2000, logger)
	approval := NewApprovalChecker(dir, []string{"urgent", "payment"}, 0.7, 0.9, logger)
	drafter := NewDrafterService(gen, 2000, logger)
	scheduler := NewSchedulerService(gen, &fakeCalendar{}, engine, DefaultWorkingHours, time.UTC, 2000, logger)
	return NewMailAgentService(classifier, approval, drafter, scheduler, "professional", logger)
}

func TestProcessMeetingRequestBuildsProposal(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"category": "MEETING_REQUEST", "confidence": 0.95, "reasoning": "proposes a time"}`,
		`{"has_meeting_request": true, "title": "Planning", "duration_minutes": 30, "attendees": ["bob@example.com"]}`,
	}}
	dir := &fakeDirectory{known: map[string]bool{"bob@example.com": true}}
	agent := newTestAgent(gen, dir)

	result := agent.Process(context.Background(), &Email{
		ID:          "msg-1",
		From:        "Bob <bob@example.com>",
		FromAddress: "bob@example.com",
		Subject:     "Planning session",
		Body:        "Can we meet Tuesday?",
	})

	assert.Equal(t, CategoryMeetingRequest, result.Classification.Category)
	assert.False(t, result.Approval.RequiresApproval)
	assert.True(t, result.AutoApproved)
	require.NotNil(t, result.Proposal)
	assert.Equal(t, "Planning", result.Proposal.Meeting.Summary)
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestProcessNeedsReplyDraftsReply(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"category": "NEEDS_REPLY", "confidence": 0.95, "reasoning": "direct question"}`,
		"Hi Bob,\n\nYes, the report is ready.\n\nBest",
	}}
	dir := &fakeDirectory{known: map[string]bool{"bob@example.com": true}}
	agent := newTestAgent(gen, dir)

	result := agent.Process(context.Background(), &Email{
		FromAddress: "bob@example.com",
		Subject:     "Report status",
		Body:        "Is the report ready?",
	})

	assert.Equal(t, CategoryNeedsReply, result.Classification.Category)
	require.NotEmpty(t, result.Draft)
	require.NotNil(t, result.DraftCheck)
	assert.False(t, result.DraftCheck.RequiresApproval)
	assert.Nil(t, result.Proposal)
}

func TestProcessDraftWithCommitmentsFlagged(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"category": "NEEDS_REPLY", "confidence": 0.95, "reasoning": "direct question"}`,
		"Hi Bob,\n\nI will deliver the report on Friday.\n\nBest",
	}}
	dir := &fakeDirectory{known: map[string]bool{"bob@example.com": true}}
	agent := newTestAgent(gen, dir)

	result := agent.Process(context.Background(), &Email{
		FromAddress: "bob@example.com",
		Subject:     "Report status",
		Body:        "When will the report be ready?",
	})

	require.NotNil(t, result.DraftCheck)
	assert.True(t, result.DraftCheck.RequiresApproval)
	assert.Contains(t, result.DraftCheck.Reasons, ReasonCommitments)
	assert.Equal(t, RiskHigh, result.DraftCheck.RiskLevel)
}

func TestProcessUnknownSenderNotAutoApproved(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"category": "FYI_ONLY", "confidence": 0.95, "reasoning": "newsletter"}`,
	}}
	agent := newTestAgent(gen, &fakeDirectory{})

	result := agent.Process(context.Background(), &Email{
		FromAddress: "stranger@example.com",
		Subject:     "Weekly digest",
		Body:        "News of the week",
	})

	assert.True(t, result.Approval.RequiresApproval)
	assert.False(t, result.AutoApproved)
	assert.Nil(t, result.Proposal)
}

func TestProcessFYIDoesNotDraft(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"category": "FYI_ONLY", "confidence": 0.95, "reasoning": "newsletter"}`,
	}}
	dir := &fakeDirectory{known: map[string]bool{"news@example.com": true}}
	agent := newTestAgent(gen, dir)

	result := agent.Process(context.Background(), &Email{
		FromAddress: "news@example.com",
		Subject:     "Weekly digest",
		Body:        "News of the week",
	})

	assert.True(t, result.AutoApproved)
	assert.Empty(t, result.Draft)
	assert.Equal(t, 1, gen.calls)
}
