package agent

import (
	"slices"
	"strings"
	"time"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
)

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 2000
	defaultTimeout     = 30 * time.Second
	defaultUserAgent   = "revu/0.1.0 (https://github.com/maxbolgarin/revu)"

	maxTemperature = 2.0
	maxTokensLimit = 32000

	groqKeyPrefix    = "gsk_"
	groqKeyMinLength = 20
)

// AgentType selects the model backend.
type AgentType string

const (
	Groq   AgentType = "groq"
	Gemini AgentType = "gemini"
	OpenAI AgentType = "openai"
	Claude AgentType = "claude"
)

var supportedAgentTypes = []AgentType{Groq, Gemini, OpenAI, Claude}

// Config represents AI agent configuration
type Config struct {
	Type        AgentType `yaml:"type" env:"AGENT_TYPE"` // groq, gemini, openai, claude
	APIKey      string    `yaml:"api_key" env:"AGENT_API_KEY"`
	Model       string    `yaml:"model" env:"AGENT_MODEL"`
	Temperature float32   `yaml:"temperature" env:"AGENT_TEMPERATURE"`
	MaxTokens   int       `yaml:"max_tokens" env:"AGENT_MAX_TOKENS"`

	BaseURL   string        `yaml:"base_url" env:"AGENT_BASE_URL"` // custom API endpoint (Azure OpenAI, local models, etc.)
	ProxyURL  string        `yaml:"proxy_url" env:"AGENT_PROXY_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"AGENT_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"AGENT_USER_AGENT"`
	IsTest    bool          `yaml:"is_test" env:"AGENT_IS_TEST"`
}

func (c *Config) PrepareAndValidate() error {
	if c.APIKey == "" {
		return erro.New("api key is required")
	}
	c.Type = AgentType(lang.Check(string(c.Type), string(Groq)))
	if !slices.Contains(supportedAgentTypes, c.Type) {
		return erro.New("invalid agent type: %s", c.Type)
	}
	if c.Type == Groq {
		if err := ValidateGroqKey(c.APIKey); err != nil {
			return err
		}
	}

	c.Temperature = lang.Check(c.Temperature, defaultTemperature)
	if c.Temperature < 0 || c.Temperature > maxTemperature {
		return erro.New("temperature must be between 0 and %v, got %v", maxTemperature, c.Temperature)
	}
	c.MaxTokens = lang.Check(c.MaxTokens, defaultMaxTokens)
	if c.MaxTokens < 1 || c.MaxTokens > maxTokensLimit {
		return erro.New("max_tokens must be between 1 and %d, got %d", maxTokensLimit, c.MaxTokens)
	}

	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)

	return nil
}

// ValidateGroqKey checks the shape of a Groq API key without calling the
// API: non-empty, long enough to be real, carries the expected prefix.
func ValidateGroqKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return erro.New("api key is required")
	}
	if len(key) < groqKeyMinLength {
		return erro.New("api key is too short to be valid")
	}
	if !strings.HasPrefix(key, groqKeyPrefix) {
		return erro.New("api key must start with %q", groqKeyPrefix)
	}
	return nil
}
