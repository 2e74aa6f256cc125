package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskDream   TaskType = "dream"
	TaskJournal TaskType = "journal"
)

// Provider names a text-generation backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultGeminiModel    = "gemini-1.5-flash"
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
)

// TaskConfig holds per-task decoding parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation client.
type LLMConfig struct {
	Provider  Provider
	LogCalls  bool
	Endpoint  string
	Model     string
	APIKey    string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns the Gemini configuration used in production.
// Journal reflection runs slightly cooler than dream interpretation.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:  ProviderGemini,
		Endpoint:  defaultGeminiEndpoint,
		Model:     defaultGeminiModel,
		TimeoutMs: 60000,
		Tasks: map[TaskType]TaskConfig{
			TaskDream:   {Temperature: 0.8, MaxTokens: 1024},
			TaskJournal: {Temperature: 0.75, MaxTokens: 1024},
		},
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for unset or invalid values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("NOCTURNE_LLM_PROVIDER"))); v != "" {
		switch Provider(v) {
		case ProviderOllama:
			cfg.Provider = ProviderOllama
			cfg.Endpoint = defaultOllamaEndpoint
			cfg.Model = defaultOllamaModel
		case ProviderGemini:
			cfg.Provider = ProviderGemini
		}
	}
	if v := os.Getenv("NOCTURNE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NOCTURNE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("NOCTURNE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("NOCTURNE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTemperatureEnv(&cfg, TaskDream, "NOCTURNE_DREAM_TEMPERATURE")
	applyTemperatureEnv(&cfg, TaskJournal, "NOCTURNE_JOURNAL_TEMPERATURE")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTemperatureEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 2 {
		return
	}
	tc := cfg.Tasks[task]
	tc.Temperature = f
	cfg.Tasks[task] = tc
}
