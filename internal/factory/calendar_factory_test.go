package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/llm-mail-agent/internal/adapters/calendar"
	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCalendarFactory(settings map[string]any) *CalendarFactory {
	v := config.NewEmptyViper()
	for key, value := range settings {
		v.Set(key, value)
	}
	return NewCalendarFactory(config.NewFromViper(v), zap.NewNop())
}

func TestCreateCalendarProviderNone(t *testing.T) {
	f := newCalendarFactory(nil)

	provider, err := f.CreateCalendarProvider(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &calendar.StaticProvider{}, provider)
}

func TestCreateCalendarProviderUnsupported(t *testing.T) {
	f := newCalendarFactory(map[string]any{"calendar.provider": "outlook"})

	_, err := f.CreateCalendarProvider(context.Background())
	assert.ErrorContains(t, err, "unsupported calendar provider")
}

func TestCreateGoogleProviderRequiresCredentialsFile(t *testing.T) {
	f := newCalendarFactory(map[string]any{"calendar.provider": "google"})

	_, err := f.CreateCalendarProvider(context.Background())
	assert.ErrorContains(t, err, "credentials file")
}

func TestCreateGoogleProviderTokenAuthRequiresTokenFile(t *testing.T) {
	f := newCalendarFactory(map[string]any{
		"calendar.provider": "google",
		"calendar.auth":     "token",
	})

	_, err := f.CreateCalendarProvider(context.Background())
	assert.ErrorContains(t, err, "token file")
}

func TestCreateGoogleProviderUnsupportedAuth(t *testing.T) {
	f := newCalendarFactory(map[string]any{
		"calendar.provider": "google",
		"calendar.auth":     "device",
	})

	_, err := f.CreateCalendarProvider(context.Background())
	assert.ErrorContains(t, err, "unsupported calendar auth mode")
}

func TestLoadOAuthToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	data := `{"access_token": "ya29.test", "token_type": "Bearer", "refresh_token": "1//refresh"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	token, err := loadOAuthToken(path)
	require.NoError(t, err)
	assert.Equal(t, "ya29.test", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestLoadOAuthTokenRejectsEmptyAccessToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token_type": "Bearer"}`), 0600))

	_, err := loadOAuthToken(path)
	assert.ErrorContains(t, err, "no access token")
}

func TestLoadOAuthTokenMissingFile(t *testing.T) {
	_, err := loadOAuthToken(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "failed to read token file")
}
