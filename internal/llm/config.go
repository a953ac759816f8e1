package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	// TaskAsk is free-form Q&A grounded in the full program dataset.
	TaskAsk TaskType = "ask"
	// TaskDetectPlans is the structured recovery-plan classification.
	TaskDetectPlans TaskType = "detect_plans"
	// TaskSummarize is scoped executive-summary generation.
	TaskSummarize TaskType = "summarize"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides the global timeout if > 0
}

// Config holds all configuration for the generation subsystem.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. Generation is
// disabled by default; the dashboard works fully without it.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskAsk:         {Temperature: 0.1, MaxTokens: 1024, TimeoutMs: 30000},
			TaskDetectPlans: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 15000},
			TaskSummarize:   {Temperature: 0.3, MaxTokens: 1024, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads configuration from PROGDECK_LLM_* environment variables,
// falling back to defaults for anything unset.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PROGDECK_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PROGDECK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PROGDECK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PROGDECK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PROGDECK_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PROGDECK_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskAsk, "PROGDECK_LLM_ASK_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskDetectPlans, "PROGDECK_LLM_DETECT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSummarize, "PROGDECK_LLM_SUMMARIZE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a task: the task override
// when set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
