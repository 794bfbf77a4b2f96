package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// AgentConfig represents the approval and scheduling configuration
type AgentConfig struct {
	ConfidenceThreshold   float64
	AutoApproveConfidence float64
	SensitiveKeywords     []string
	WorkingHoursStart     int
	WorkingHoursEnd       int
	Timezone              string
	MaxBodySize           int
	ReplyTone             string
}

// SendersConfig represents the known-sender directory configuration
type SendersConfig struct {
	Type           string
	SQLitePath     string
	MySQLDSN       string
	TrustedDomains []string
}

// CalendarConfig represents the calendar provider configuration
type CalendarConfig struct {
	Provider        string
	CalendarID      string
	Auth            string
	CredentialsFile string
	TokenFile       string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetAgent returns the agent configuration
func (c *Config) GetAgent() AgentConfig {
	return AgentConfig{
		ConfidenceThreshold:   c.GetFloat64("agent.confidence_threshold"),
		AutoApproveConfidence: c.GetFloat64("agent.auto_approve_confidence"),
		SensitiveKeywords:     c.GetStringSlice("agent.sensitive_keywords"),
		WorkingHoursStart:     c.GetInt("agent.working_hours.start"),
		WorkingHoursEnd:       c.GetInt("agent.working_hours.end"),
		Timezone:              c.GetString("agent.timezone"),
		MaxBodySize:           c.GetInt("agent.max_body_size"),
		ReplyTone:             c.GetString("agent.reply_tone"),
	}
}

// GetSenders returns the sender directory configuration
func (c *Config) GetSenders() SendersConfig {
	return SendersConfig{
		Type:           c.GetString("senders.type"),
		SQLitePath:     c.GetString("senders.sqlite_path"),
		MySQLDSN:       c.GetString("senders.mysql_dsn"),
		TrustedDomains: c.GetStringSlice("senders.trusted_domains"),
	}
}

// GetCalendar returns the calendar configuration
func (c *Config) GetCalendar() CalendarConfig {
	return CalendarConfig{
		Provider:        c.GetString("calendar.provider"),
		CalendarID:      c.GetString("calendar.calendar_id"),
		Auth:            c.GetString("calendar.auth"),
		CredentialsFile: c.GetString("calendar.credentials_file"),
		TokenFile:       c.GetString("calendar.token_file"),
	}
}
