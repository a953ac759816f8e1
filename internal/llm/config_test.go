package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
}

func TestDefaultConfig_DetectTimeoutShorterThanGlobal(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 15000, cfg.Tasks[TaskDetectPlans].TimeoutMs)
	assert.Less(t, cfg.Tasks[TaskDetectPlans].TimeoutMs, cfg.TimeoutMs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PROGDECK_LLM_ENABLED", "true")
	t.Setenv("PROGDECK_LLM_ENDPOINT", "http://llm.internal:11434")
	t.Setenv("PROGDECK_LLM_MODEL", "qwen2.5")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://llm.internal:11434", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("PROGDECK_LLM_TIMEOUT_MS", "9000")
	t.Setenv("PROGDECK_LLM_ASK_TIMEOUT_MS", "12000")
	t.Setenv("PROGDECK_LLM_DETECT_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 12000, cfg.TaskTimeout(TaskAsk))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskDetectPlans))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskSummarize))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("PROGDECK_LLM_ASK_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 30000, cfg.TaskTimeout(TaskAsk))
}
