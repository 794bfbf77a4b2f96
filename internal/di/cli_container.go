package di

import (
	"flag"
	"strings"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-mail-agent/internal/adapters/calendar"
	"github.com/mikey/llm-mail-agent/internal/adapters/senders"
	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/mikey/llm-mail-agent/internal/core"
	"github.com/mikey/llm-mail-agent/internal/factory"
	"github.com/mikey/llm-mail-agent/internal/logging"
	"github.com/mikey/llm-mail-agent/internal/ports"
	"github.com/mikey/llm-mail-agent/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// LLM provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Agent flags
	ConfidenceThreshold   float64
	AutoApproveConfidence float64
	SensitiveKeywords     string
	Timezone              string
	WorkingHoursStart     int
	WorkingHoursEnd       int
	ReplyTone             string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// LLM provider flags
	flag.StringVar(&flags.Provider, "provider", "openai", "LLM provider (bedrock, gemini, openai)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 1000, "Maximum tokens for LLM response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.1, "Temperature for LLM generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for LLM generation")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 2000, "Maximum email body size to send to LLM")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4", "OpenAI model name")

	// Agent flags
	flag.Float64Var(&flags.ConfidenceThreshold, "confidence-threshold", 0.7, "Minimum classification confidence before flagging for review")
	flag.Float64Var(&flags.AutoApproveConfidence, "auto-approve-confidence", 0.9, "Minimum confidence for auto-approval")
	flag.StringVar(&flags.SensitiveKeywords, "sensitive-keywords", "", "Comma-separated sensitive keywords (overrides defaults)")
	flag.StringVar(&flags.Timezone, "timezone", "UTC", "IANA timezone for scheduling")
	flag.IntVar(&flags.WorkingHoursStart, "working-hours-start", 9, "Working hours start (24h)")
	flag.IntVar(&flags.WorkingHoursEnd, "working-hours-end", 17, "Working hours end (24h)")
	flag.StringVar(&flags.ReplyTone, "reply-tone", "professional", "Tone for drafted replies")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMFactory); err != nil {
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

	// Register an in-memory sender directory for the CLI
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.SenderDirectory {
		return senders.NewMemoryDirectory(cfg.GetSenders().TrustedDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register a static calendar for the CLI
	if err := container.Provide(func() core.CalendarProvider {
		return calendar.NewStaticProvider(nil)
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

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.intake_type", "cli")
	v.Set("cli.verbose", flags.Verbose)

	// Set LLM provider
	v.Set("llm.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
	}

	// Set agent configuration
	v.Set("agent.confidence_threshold", flags.ConfidenceThreshold)
	v.Set("agent.auto_approve_confidence", flags.AutoApproveConfidence)
	if flags.SensitiveKeywords != "" {
		v.Set("agent.sensitive_keywords", strings.Split(flags.SensitiveKeywords, ","))
	}
	v.Set("agent.timezone", flags.Timezone)
	v.Set("agent.working_hours.start", flags.WorkingHoursStart)
	v.Set("agent.working_hours.end", flags.WorkingHoursEnd)
	v.Set("agent.max_body_size", flags.MaxBodySize)
	v.Set("agent.reply_tone", flags.ReplyTone)

	// The CLI never persists senders or talks to a real calendar
	v.Set("senders.type", "memory")
	v.Set("calendar.provider", "none")

	return config.NewFromViper(v)
}
