package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/llm-mail-agent/")
	v.AddConfigPath("$HOME/.llm-mail-agent")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAIL_AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "openai")

	// Server defaults
	v.SetDefault("server.intake_type", "smtp")
	v.SetDefault("server.listen_address", "0.0.0.0:10025")
	v.SetDefault("server.upstream_addr", "127.0.0.1")
	v.SetDefault("server.upstream_port", 10026)
	v.SetDefault("server.upstream_enabled", false)
	v.SetDefault("server.headers.category", "X-Agent-Category")
	v.SetDefault("server.headers.confidence", "X-Agent-Confidence")
	v.SetDefault("server.headers.risk", "X-Agent-Risk")
	v.SetDefault("server.headers.approval", "X-Agent-Approval")

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 1000)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 1000)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)

	// Agent defaults
	v.SetDefault("agent.confidence_threshold", 0.7)
	v.SetDefault("agent.auto_approve_confidence", 0.9)
	v.SetDefault("agent.sensitive_keywords", []string{
		"urgent", "deadline", "contract", "payment", "$",
		"invoice", "legal", "confidential", "asap", "immediately",
	})
	v.SetDefault("agent.working_hours.start", 9)
	v.SetDefault("agent.working_hours.end", 17)
	v.SetDefault("agent.timezone", "UTC")
	v.SetDefault("agent.max_body_size", 2000)
	v.SetDefault("agent.reply_tone", "professional")

	// Sender directory defaults
	v.SetDefault("senders.type", "memory")
	v.SetDefault("senders.sqlite_path", "/data/known_senders.db")
	// parseTime is required so created_at scans into time.Time
	v.SetDefault("senders.mysql_dsn", "user:password@tcp(localhost:3306)/mail_agent?parseTime=true")
	v.SetDefault("senders.trusted_domains", []string{})

	// Calendar defaults
	v.SetDefault("calendar.provider", "none")
	v.SetDefault("calendar.calendar_id", "primary")
	v.SetDefault("calendar.auth", "credentials")
	v.SetDefault("calendar.credentials_file", "")
	v.SetDefault("calendar.token_file", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
