package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const draftingPrompt = `Write a %s email reply to the following email.
Keep it concise and helpful. Do not include a subject line.

Original email:
From: %s
Subject: %s
Content: %s

%s
Reply (do not include subject line, start with greeting):`

const improvePrompt = `Improve the following email draft based on the feedback provided.

Current draft:
%s

Feedback:
%s

Improved draft:`

const summaryPrompt = `Summarize this email in %d words or less:

%s

Summary:`

// maxThreadHistory is how many prior messages are included as context
// when drafting a reply within a thread.
const maxThreadHistory = 3

// DrafterService generates reply drafts and summaries through the LLM
type DrafterService struct {
	generator   TextGenerator
	logger      *zap.Logger
	maxBodySize int
}

// NewDrafterService creates a new drafter service
func NewDrafterService(generator TextGenerator, maxBodySize int, logger *zap.Logger) *DrafterService {
	return &DrafterService{
		generator:   generator,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

// DraftReply generates a reply draft for an email. tone selects the
// register ("professional", "friendly", "formal"); extra is optional
// additional guidance for the model; history holds earlier messages in
// the thread, newest last. A generation failure falls back to a canned
// acknowledgement so the caller always has something to review.
func (s *DrafterService) DraftReply(ctx context.Context, email *Email, tone, extra string, history []*Email) string {
	if tone == "" {
		tone = "professional"
	}
	contextSection := ""
	if extra != "" {
		contextSection = "Additional context: " + extra + "\n"
	}
	if len(history) > 0 {
		contextSection += "\nThread history:\n" + formatThreadHistory(history) + "\n"
	}

	body := truncate(email.BestBody(), s.maxBodySize)
	prompt := fmt.Sprintf(draftingPrompt, tone, email.From, email.Subject, body, contextSection)

	response, err := s.generator.Generate(ctx, prompt, 500, 0.7)
	if err != nil {
		s.logger.Warn("Draft generation failed, using fallback draft",
			zap.String("email_id", email.ID),
			zap.Error(err))
		return fallbackDraft(email)
	}

	return cleanReply(response)
}

// ImproveDraft revises a draft against user feedback. On failure the
// original draft is returned unchanged.
func (s *DrafterService) ImproveDraft(ctx context.Context, draft, feedback string) string {
	prompt := fmt.Sprintf(improvePrompt, draft, feedback)

	response, err := s.generator.Generate(ctx, prompt, 500, 0.7)
	if err != nil {
		s.logger.Warn("Draft improvement failed", zap.Error(err))
		return draft
	}

	return cleanReply(response)
}

// Summarize produces a brief summary of an email body, or "" on failure
func (s *DrafterService) Summarize(ctx context.Context, email *Email, maxWords int) string {
	if maxWords <= 0 {
		maxWords = 50
	}
	prompt := fmt.Sprintf(summaryPrompt, maxWords, truncate(email.BestBody(), s.maxBodySize))

	response, err := s.generator.Generate(ctx, prompt, 100, 0.3)
	if err != nil {
		s.logger.Warn("Summarization failed",
			zap.String("email_id", email.ID),
			zap.Error(err))
		return ""
	}

	return strings.TrimSpace(response)
}

// cleanReply strips subject lines and prompt-label echoes the model
// sometimes emits despite the prompt instructions
func cleanReply(response string) string {
	var cleaned []string
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(lower, "subject:") || strings.HasPrefix(lower, "re:") {
			continue
		}
		if strings.HasPrefix(lower, "draft reply:") || strings.HasPrefix(lower, "improved draft:") {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// formatThreadHistory renders the most recent thread messages as
// context for the drafting prompt.
func formatThreadHistory(history []*Email) string {
	if len(history) > maxThreadHistory {
		history = history[len(history)-maxThreadHistory:]
	}
	parts := make([]string, 0, len(history))
	for _, msg := range history {
		parts = append(parts, fmt.Sprintf("---\nFrom: %s\nDate: %s\n%s",
			msg.From, msg.Date.Format("2006-01-02 15:04"), truncate(msg.BestBody(), 200)))
	}
	return strings.Join(parts, "\n")
}

// fallbackDraft is the canned acknowledgement used when generation
// fails. Drafting a reply should never leave the user with nothing.
func fallbackDraft(email *Email) string {
	name := "there"
	if fields := strings.Fields(email.From); len(fields) > 0 {
		name = fields[0]
	}
	return fmt.Sprintf(`Hi %s,

Thank you for your email regarding "%s".

I've received your message and will review it carefully. I'll get back to you with a detailed response shortly.

Best regards`, name, email.Subject)
}
