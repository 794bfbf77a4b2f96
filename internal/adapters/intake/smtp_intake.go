package intake

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
)

// HeaderNames configures the annotation headers added to processed mail
type HeaderNames struct {
	Category   string
	Confidence string
	Risk       string
	Approval   string
}

// SMTPIntake receives email over SMTP, runs the agent pipeline, and
// relays the annotated message upstream
type SMTPIntake struct {
	agent           *core.MailAgentService
	logger          *zap.Logger
	listenAddr      string
	server          *smtp.Server
	headers         HeaderNames
	upstreamAddr    string
	upstreamPort    int
	upstreamEnabled bool
}

// NewSMTPIntake creates a new SMTP intake
func NewSMTPIntake(
	agent *core.MailAgentService,
	logger *zap.Logger,
	listenAddr string,
	headers HeaderNames,
	upstreamAddr string,
	upstreamPort int,
	upstreamEnabled bool,
) *SMTPIntake {
	return &SMTPIntake{
		agent:           agent,
		logger:          logger,
		listenAddr:      listenAddr,
		headers:         headers,
		upstreamAddr:    upstreamAddr,
		upstreamPort:    upstreamPort,
		upstreamEnabled: upstreamEnabled,
	}
}

// Start starts the SMTP server
func (f *SMTPIntake) Start() error {
	f.server = smtp.NewServer(&smtpBackend{intake: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP intake starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (f *SMTPIntake) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail runs the agent pipeline on one email
func (f *SMTPIntake) ProcessEmail(ctx context.Context, email *core.Email) (*core.AgentResult, error) {
	return f.agent.Process(ctx, email), nil
}

// relayUpstream sends the annotated email to the upstream MTA
func (f *SMTPIntake) relayUpstream(sender string, recipients []string, emailData []byte) error {
	upstream := fmt.Sprintf("%s:%d", f.upstreamAddr, f.upstreamPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", upstream, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to upstream: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
		} else {
			recipientOK = true
		}
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(emailData); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	intake *SMTPIntake
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		intake:     b.intake,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	intake     *SMTPIntake
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for the intake)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data receives the message, runs the pipeline, and relays the
// annotated message. Pipeline failures never bounce mail: the message
// is relayed without annotations instead.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.intake.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.intake.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	textContent, err := extractTextFromMessage(msg)
	if err != nil {
		s.intake.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	email := &core.Email{
		Headers:     make(map[string][]string),
		Body:        textContent,
		From:        s.sender,
		FromAddress: addressOf(s.sender),
		To:          s.recipients,
		Date:        time.Now(),
	}
	for key, values := range msg.Header {
		email.Headers[key] = values
		if strings.EqualFold(key, "Subject") && len(values) > 0 {
			if decoded, err := decodeEncodedHeader(values[0]); err == nil {
				email.Subject = decoded
			} else {
				email.Subject = values[0]
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := s.intake.agent.Process(ctx, email)

	var annotated bytes.Buffer
	fmt.Fprintf(&annotated, "%s: %s\r\n", s.intake.headers.Category, result.Classification.Category)
	fmt.Fprintf(&annotated, "%s: %.2f\r\n", s.intake.headers.Confidence, result.Classification.Confidence)
	fmt.Fprintf(&annotated, "%s: %s\r\n", s.intake.headers.Risk, result.Approval.RiskLevel)
	fmt.Fprintf(&annotated, "%s: %s\r\n", s.intake.headers.Approval, approvalHeaderValue(result))

	for key, values := range msg.Header {
		for _, value := range values {
			fmt.Fprintf(&annotated, "%s: %s\r\n", key, value)
		}
	}
	fmt.Fprintf(&annotated, "\r\n")

	annotated.Write(rawBody(rawData, msg))

	if s.intake.upstreamEnabled {
		if err := s.intake.relayUpstream(s.sender, s.recipients, annotated.Bytes()); err != nil {
			s.intake.logger.Error("Failed to relay upstream",
				zap.Error(err),
				zap.String("sender", email.From))
			return err
		}
	}

	return nil
}

// Logout handles session termination
func (s *smtpSession) Logout() error {
	return nil
}

// rawBody returns the body bytes of the raw message, preserving MIME
// parts and attachments
func rawBody(rawData []byte, msg *mail.Message) []byte {
	if idx := bytes.Index(rawData, []byte("\r\n\r\n")); idx != -1 {
		return rawData[idx+4:]
	}
	if idx := bytes.Index(rawData, []byte("\n\n")); idx != -1 {
		return rawData[idx+2:]
	}
	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil
	}
	return bodyBytes
}

func approvalHeaderValue(result *core.AgentResult) string {
	switch {
	case result.AutoApproved:
		return "auto-approved"
	case result.Approval.RequiresApproval:
		return "required"
	default:
		return "not-required"
	}
}
