package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/mikey/llm-mail-agent/internal/core"
	"github.com/mikey/llm-mail-agent/internal/di"
	"github.com/mikey/llm-mail-agent/internal/ports"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run reads one email from the input source and runs it through the agent
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	mailIntake ports.MailIntake,
	generator core.TextGenerator,
) error {
	defer logger.Sync()

	// Read email from file or stdin
	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	email, err := parseEmail(emailReader)
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := mailIntake.ProcessEmail(ctx, email); err != nil {
		logger.Fatal("Failed to process email", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := generator.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}

	return nil
}

// parseEmail reads an RFC 5322 message into the core email model
func parseEmail(r io.Reader) (*core.Email, error) {
	msg, err := mail.ReadMessage(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, err
	}

	from := msg.Header.Get("From")
	email := &core.Email{
		From:        from,
		FromAddress: from,
		Subject:     msg.Header.Get("Subject"),
		Body:        string(bodyBytes),
		Date:        time.Now(),
		Headers:     make(map[string][]string),
	}
	if addr, err := mail.ParseAddress(from); err == nil {
		email.FromAddress = addr.Address
	}
	if to := msg.Header.Get("To"); to != "" {
		recipients := strings.Split(to, ",")
		for i, recipient := range recipients {
			recipients[i] = strings.TrimSpace(recipient)
		}
		email.To = recipients
	}
	if date, err := msg.Header.Date(); err == nil {
		email.Date = date
	}
	for k, v := range msg.Header {
		email.Headers[k] = v
	}

	return email, nil
}
