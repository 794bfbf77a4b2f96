package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/llm-mail-agent/internal/core"
	"github.com/mikey/llm-mail-agent/internal/di"
	"github.com/mikey/llm-mail-agent/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	mailIntake ports.MailIntake,
	generator core.TextGenerator,
	senders core.SenderDirectory,
) error {
	defer logger.Sync()

	// Start the intake
	if err := mailIntake.Start(); err != nil {
		logger.Fatal("Failed to start mail intake", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the intake
	if err := mailIntake.Stop(); err != nil {
		logger.Error("Failed to stop mail intake", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := generator.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if closer, ok := senders.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close sender directory", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
