package factory

import (
	"fmt"

	"github.com/mikey/llm-mail-agent/internal/adapters/intake"
	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/mikey/llm-mail-agent/internal/core"
	"github.com/mikey/llm-mail-agent/internal/ports"
	"go.uber.org/zap"
)

// IntakeFactory creates mail intakes based on configuration
type IntakeFactory struct {
	cfg    *config.Config
	logger *zap.Logger
	agent  *core.MailAgentService
}

// NewIntakeFactory creates a new intake factory
func NewIntakeFactory(cfg *config.Config, logger *zap.Logger, agent *core.MailAgentService) *IntakeFactory {
	return &IntakeFactory{
		cfg:    cfg,
		logger: logger,
		agent:  agent,
	}
}

// CreateMailIntake creates a mail intake based on the configuration
func (f *IntakeFactory) CreateMailIntake() (ports.MailIntake, error) {
	intakeType := f.cfg.GetString("server.intake_type")

	switch intakeType {
	case "smtp":
		return intake.NewSMTPIntake(
			f.agent,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			intake.HeaderNames{
				Category:   f.cfg.GetString("server.headers.category"),
				Confidence: f.cfg.GetString("server.headers.confidence"),
				Risk:       f.cfg.GetString("server.headers.risk"),
				Approval:   f.cfg.GetString("server.headers.approval"),
			},
			f.cfg.GetString("server.upstream_addr"),
			f.cfg.GetInt("server.upstream_port"),
			f.cfg.GetBool("server.upstream_enabled"),
		), nil
	case "cli":
		return intake.NewCliIntake(
			f.agent,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported intake type: %s", intakeType)
	}
}
