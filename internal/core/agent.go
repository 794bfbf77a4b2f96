package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// MailAgentService runs the full pipeline on an inbound email:
// classification, approval check, auto-approve decision, and a
// scheduling proposal for meeting requests.
type MailAgentService struct {
	classifier *ClassifierService
	approval   *ApprovalChecker
	drafter    *DrafterService
	scheduler  *SchedulerService
	replyTone  string
	logger     *zap.Logger
}

// NewMailAgentService creates the agent pipeline service
func NewMailAgentService(
	classifier *ClassifierService,
	approval *ApprovalChecker,
	drafter *DrafterService,
	scheduler *SchedulerService,
	replyTone string,
	logger *zap.Logger,
) *MailAgentService {
	return &MailAgentService{
		classifier: classifier,
		approval:   approval,
		drafter:    drafter,
		scheduler:  scheduler,
		replyTone:  replyTone,
		logger:     logger,
	}
}

// Process analyzes one email end to end
func (s *MailAgentService) Process(ctx context.Context, email *Email) *AgentResult {
	classification := s.classifier.Classify(ctx, email)
	check := s.approval.CheckEmail(ctx, email, &classification)
	autoApproved := s.approval.ShouldAutoApprove(ctx, email, &classification)

	result := &AgentResult{
		Classification: classification,
		Approval:       check,
		AutoApproved:   autoApproved,
		AnalyzedAt:     time.Now(),
	}

	if classification.Category == CategoryNeedsReply {
		if draft := s.drafter.DraftReply(ctx, email, s.replyTone, "", nil); draft != "" {
			draftCheck := s.approval.CheckDraft(ctx, draft, email)
			result.Draft = draft
			result.DraftCheck = &draftCheck
		}
	}

	if classification.Category == CategoryMeetingRequest {
		extraction := s.scheduler.ExtractMeetingDetails(ctx, email)
		if extraction.HasMeetingRequest {
			proposal := s.scheduler.CreateProposal(ctx, extraction, email)
			result.Proposal = &proposal
		}
	}

	s.logger.Info("Processed email",
		zap.String("email_id", email.ID),
		zap.String("sender", email.FromAddress),
		zap.String("category", string(classification.Category)),
		zap.Float64("confidence", classification.Confidence),
		zap.Bool("requires_approval", check.RequiresApproval),
		zap.String("risk", string(check.RiskLevel)),
		zap.Bool("auto_approved", autoApproved))

	return result
}
