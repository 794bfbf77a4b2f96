package di

import (
	"context"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/mikey/llm-mail-agent/internal/core"
	"github.com/mikey/llm-mail-agent/internal/factory"
	"github.com/mikey/llm-mail-agent/internal/logging"
	"github.com/mikey/llm-mail-agent/internal/ports"
	"github.com/mikey/llm-mail-agent/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSenderFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCalendarFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewIntakeFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.TextGenerator, error) {
		return f.CreateTextGenerator()
	}); err != nil {
		return nil, err
	}

	// Register sender directory
	if err := container.Provide(func(f *factory.SenderFactory) (core.SenderDirectory, error) {
		return f.CreateSenderDirectory()
	}); err != nil {
		return nil, err
	}

	// Register calendar provider
	if err := container.Provide(func(f *factory.CalendarFactory) (core.CalendarProvider, error) {
		return f.CreateCalendarProvider(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register timezone
	if err := container.Provide(func(cfg *config.Config) (*time.Location, error) {
		return time.LoadLocation(cfg.GetAgent().Timezone)
	}); err != nil {
		return nil, err
	}

	// Register core services
	if err := container.Provide(func(cfg *config.Config, senders core.SenderDirectory, logger *zap.Logger) *core.ApprovalChecker {
		agentCfg := cfg.GetAgent()
		return core.NewApprovalChecker(senders, agentCfg.SensitiveKeywords, agentCfg.ConfidenceThreshold, agentCfg.AutoApproveConfidence, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewAvailabilityEngine); err != nil {
		return nil, err
	}
	if err := container.Provide(func(generator core.TextGenerator, f *factory.TextProcessorFactory, logger *zap.Logger) *core.ClassifierService {
		return core.NewClassifierService(generator, f.BodyLimit(), logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(generator core.TextGenerator, f *factory.TextProcessorFactory, logger *zap.Logger) *core.DrafterService {
		return core.NewDrafterService(generator, f.BodyLimit(), logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		generator core.TextGenerator,
		calendar core.CalendarProvider,
		availability *core.AvailabilityEngine,
		location *time.Location,
		cfg *config.Config,
		f *factory.TextProcessorFactory,
		logger *zap.Logger,
	) *core.SchedulerService {
		agentCfg := cfg.GetAgent()
		hours := core.WorkingHours{Start: agentCfg.WorkingHoursStart, End: agentCfg.WorkingHoursEnd}
		return core.NewSchedulerService(generator, calendar, availability, hours, location, f.BodyLimit(), logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		classifier *core.ClassifierService,
		approval *core.ApprovalChecker,
		drafter *core.DrafterService,
		scheduler *core.SchedulerService,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.MailAgentService {
		return core.NewMailAgentService(classifier, approval, drafter, scheduler, cfg.GetAgent().ReplyTone, logger)
	}); err != nil {
		return nil, err
	}

	// Register mail intake
	if err := container.Provide(func(f *factory.IntakeFactory) (ports.MailIntake, error) {
		return f.CreateMailIntake()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
