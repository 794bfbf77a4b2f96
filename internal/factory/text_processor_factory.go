package factory

import (
	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/mikey/llm-mail-agent/internal/utils"
	"go.uber.org/zap"
)

// defaultMaxBodySize bounds the email body bytes included in prompts
// when agent.max_body_size is unset.
const defaultMaxBodySize = 2000

// TextProcessorFactory creates the text processor shared by the LLM
// adapters and resolves the prompt body size limit for the core
// services.
type TextProcessorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTextProcessorFactory creates a new TextProcessorFactory
func NewTextProcessorFactory(cfg *config.Config, logger *zap.Logger) *TextProcessorFactory {
	return &TextProcessorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a new TextProcessor
func (f *TextProcessorFactory) CreateTextProcessor() *utils.TextProcessor {
	return utils.NewTextProcessor(f.logger)
}

// BodyLimit returns how many bytes of an email body may be included
// in a prompt. A zero or negative configured value falls back to the
// default rather than disabling the limit.
func (f *TextProcessorFactory) BodyLimit() int {
	if limit := f.cfg.GetAgent().MaxBodySize; limit > 0 {
		return limit
	}
	return defaultMaxBodySize
}
