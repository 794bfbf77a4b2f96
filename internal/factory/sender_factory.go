package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/llm-mail-agent/internal/adapters/senders"
	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
)

// SenderFactory creates known-sender directories based on configuration
type SenderFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSenderFactory creates a new sender factory
func NewSenderFactory(cfg *config.Config, logger *zap.Logger) *SenderFactory {
	return &SenderFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSenderDirectory creates a sender directory based on the configuration
func (f *SenderFactory) CreateSenderDirectory() (core.SenderDirectory, error) {
	sendersCfg := f.cfg.GetSenders()

	switch sendersCfg.Type {
	case "memory":
		return senders.NewMemoryDirectory(sendersCfg.TrustedDomains, f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sendersCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return senders.NewSQLiteDirectory(sendersCfg.SQLitePath, sendersCfg.TrustedDomains, f.logger)
	case "mysql":
		return senders.NewMySQLDirectory(sendersCfg.MySQLDSN, sendersCfg.TrustedDomains, f.logger)
	default:
		return nil, fmt.Errorf("unsupported sender directory type: %s", sendersCfg.Type)
	}
}
