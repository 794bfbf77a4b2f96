package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "openai", cfg.GetLLM().Provider)
	assert.Equal(t, "smtp", cfg.GetString("server.intake_type"))
	assert.Equal(t, "X-Agent-Category", cfg.GetString("server.headers.category"))

	agent := cfg.GetAgent()
	assert.Equal(t, 0.7, agent.ConfidenceThreshold)
	assert.Equal(t, 0.9, agent.AutoApproveConfidence)
	assert.Contains(t, agent.SensitiveKeywords, "urgent")
	assert.Equal(t, 9, agent.WorkingHoursStart)
	assert.Equal(t, 17, agent.WorkingHoursEnd)
	assert.Equal(t, "UTC", agent.Timezone)
	assert.Equal(t, 2000, agent.MaxBodySize)
	assert.Equal(t, "professional", agent.ReplyTone)

	assert.Equal(t, "memory", cfg.GetSenders().Type)
	assert.Equal(t, "none", cfg.GetCalendar().Provider)
	assert.Equal(t, "primary", cfg.GetCalendar().CalendarID)
	assert.Equal(t, "credentials", cfg.GetCalendar().Auth)
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("llm.provider", "gemini")
	v.Set("agent.working_hours.start", 8)
	v.Set("senders.trusted_domains", []string{"corp.example.com"})
	cfg := NewFromViper(v)

	assert.Equal(t, "gemini", cfg.GetLLM().Provider)
	assert.Equal(t, 8, cfg.GetAgent().WorkingHoursStart)
	assert.Equal(t, []string{"corp.example.com"}, cfg.GetSenders().TrustedDomains)
}
