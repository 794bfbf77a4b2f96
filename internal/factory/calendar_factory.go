package factory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mikey/llm-mail-agent/internal/adapters/calendar"
	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// CalendarFactory creates calendar providers based on configuration
type CalendarFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCalendarFactory creates a new calendar factory
func NewCalendarFactory(cfg *config.Config, logger *zap.Logger) *CalendarFactory {
	return &CalendarFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCalendarProvider creates a calendar provider based on the configuration
func (f *CalendarFactory) CreateCalendarProvider(ctx context.Context) (core.CalendarProvider, error) {
	calendarCfg := f.cfg.GetCalendar()

	switch calendarCfg.Provider {
	case "none":
		return calendar.NewStaticProvider(nil), nil
	case "google":
		return f.createGoogleProvider(ctx, calendarCfg)
	default:
		return nil, fmt.Errorf("unsupported calendar provider: %s", calendarCfg.Provider)
	}
}

func (f *CalendarFactory) createGoogleProvider(ctx context.Context, calendarCfg config.CalendarConfig) (core.CalendarProvider, error) {
	switch calendarCfg.Auth {
	case "", "credentials":
		if calendarCfg.CredentialsFile == "" {
			return nil, fmt.Errorf("google calendar credentials auth requires a credentials file")
		}
		return calendar.NewGoogleProviderWithCredentials(
			ctx,
			calendarCfg.CredentialsFile,
			calendarCfg.CalendarID,
			f.logger,
		)
	case "token":
		if calendarCfg.TokenFile == "" {
			return nil, fmt.Errorf("google calendar token auth requires a token file")
		}
		token, err := loadOAuthToken(calendarCfg.TokenFile)
		if err != nil {
			return nil, err
		}
		return calendar.NewGoogleProvider(
			ctx,
			oauth2.StaticTokenSource(token),
			calendarCfg.CalendarID,
			f.logger,
		)
	default:
		return nil, fmt.Errorf("unsupported calendar auth mode: %s", calendarCfg.Auth)
	}
}

// loadOAuthToken reads a stored OAuth2 token, as written by a prior
// consent flow, from a JSON file.
func loadOAuthToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token file %s has no access token", path)
	}
	return &token, nil
}
