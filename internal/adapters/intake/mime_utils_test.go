package intake

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMessage(t *testing.T, raw string) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	return msg
}

func TestExtractTextFromPlainMessage(t *testing.T) {
	msg := parseMessage(t, "From: alice@example.com\r\nSubject: Hello\r\n\r\nJust a plain body.\r\n")

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "Just a plain body.\r\n", text)
}

func TestExtractTextFromMultipartMessage(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"Content-Type: multipart/alternative; boundary=abc123\r\n" +
		"\r\n" +
		"--abc123\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"The plain text part.\r\n" +
		"--abc123\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>The HTML part.</p>\r\n" +
		"--abc123--\r\n"
	msg := parseMessage(t, raw)

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "The plain text part.")
	assert.NotContains(t, text, "HTML part")
}

func TestExtractTextFromMultipartWithoutTextPart(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"Content-Type: multipart/mixed; boundary=xyz\r\n" +
		"\r\n" +
		"--xyz\r\n" +
		"Content-Type: application/pdf\r\n" +
		"\r\n" +
		"%PDF-1.4\r\n" +
		"--xyz--\r\n"
	msg := parseMessage(t, raw)

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "[No text content found in multipart message]", text)
}

func TestDecodeEncodedHeader(t *testing.T) {
	decoded, err := decodeEncodedHeader("=?utf-8?q?Caf=C3=A9_meeting?=")
	require.NoError(t, err)
	assert.Equal(t, "Café meeting", decoded)

	plain, err := decodeEncodedHeader("Regular subject")
	require.NoError(t, err)
	assert.Equal(t, "Regular subject", plain)
}

func TestAddressOf(t *testing.T) {
	assert.Equal(t, "alice@example.com", addressOf("Alice Smith <alice@example.com>"))
	assert.Equal(t, "alice@example.com", addressOf("alice@example.com"))
	assert.Equal(t, "not-an-address", addressOf("  not-an-address  "))
}
