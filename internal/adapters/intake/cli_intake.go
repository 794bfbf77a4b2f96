package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
)

// CliIntake implements a command-line interface for the mail agent
type CliIntake struct {
	agent   *core.MailAgentService
	logger  *zap.Logger
	verbose bool
}

// NewCliIntake creates a new CLI intake
func NewCliIntake(agent *core.MailAgentService, logger *zap.Logger, verbose bool) (*CliIntake, error) {
	return &CliIntake{
		agent:   agent,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessEmail processes an email and displays the results
func (f *CliIntake) ProcessEmail(ctx context.Context, email *core.Email) (*core.AgentResult, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.From))

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("To: %s\n", strings.Join(email.To, ", "))
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))

	// Print body preview if verbose
	if f.verbose {
		preview := email.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n")

	// Run the pipeline
	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Classifying email with LLM...\n")
	startTime := time.Now()
	result := f.agent.Process(ctx, email)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Category: %s\n", result.Classification.Category)
	fmt.Printf("Confidence: %.4f\n", result.Classification.Confidence)
	fmt.Printf("Reasoning: %s\n", result.Classification.Reasoning)
	fmt.Printf("Risk: %s\n", core.RiskSummary(result.Approval))
	fmt.Printf("Auto-approved: %t\n", result.AutoApproved)
	fmt.Printf("Processing time: %v\n", duration)

	if result.Draft != "" {
		fmt.Printf("\n=== Draft Reply ===\n")
		fmt.Printf("%s\n", result.Draft)
		if result.DraftCheck != nil && result.DraftCheck.RequiresApproval {
			fmt.Printf("Draft requires approval: %s\n", core.RiskSummary(*result.DraftCheck))
		}
	}

	if result.Proposal != nil {
		fmt.Printf("\n=== Scheduling Proposal ===\n")
		fmt.Printf("Title: %s\n", result.Proposal.Meeting.Summary)
		fmt.Printf("Duration: %d minutes\n", result.Proposal.Meeting.DurationMinutes)
		if len(result.Proposal.AvailableSlots) > 0 {
			fmt.Printf("Suggested times:\n")
			for _, slot := range result.Proposal.AvailableSlots {
				fmt.Printf("  - %s\n", slot.Start.Format("Monday, January 02 at 03:04 PM"))
			}
		}
		if result.Proposal.SuggestedReply != "" {
			fmt.Printf("\nDraft reply:\n%s\n", result.Proposal.SuggestedReply)
		}
	}

	return result, nil
}

// Start is a no-op for the CLI intake
func (f *CliIntake) Start() error {
	return nil
}

// Stop is a no-op for the CLI intake
func (f *CliIntake) Stop() error {
	return nil
}
