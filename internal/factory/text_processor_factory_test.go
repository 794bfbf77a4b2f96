package factory

import (
	"testing"

	"github.com/mikey/llm-mail-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBodyLimitFromConfig(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("agent.max_body_size", 500)
	f := NewTextProcessorFactory(config.NewFromViper(v), zap.NewNop())

	assert.Equal(t, 500, f.BodyLimit())
}

func TestBodyLimitFallsBackWhenUnset(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("agent.max_body_size", 0)
	f := NewTextProcessorFactory(config.NewFromViper(v), zap.NewNop())

	assert.Equal(t, defaultMaxBodySize, f.BodyLimit())
}
