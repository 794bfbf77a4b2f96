package ports

import (
	"context"

	"github.com/mikey/llm-mail-agent/internal/core"
)

// MailIntake defines the interface for receiving email into the agent
type MailIntake interface {
	// ProcessEmail runs the agent pipeline on one email
	ProcessEmail(ctx context.Context, email *core.Email) (*core.AgentResult, error)

	// Start starts the intake
	Start() error

	// Stop stops the intake
	Stop() error
}
