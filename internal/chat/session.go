package chat

import (
	"context"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/revu/internal/agent/prompts"
	"github.com/maxbolgarin/revu/internal/model"
)

const (
	maxMessageLength = 10000

	defaultTemperature = 0.7
	defaultMaxTokens   = 1024

	minTokens      = 256
	maxTokens      = 2048
	maxTemperature = 2.0
)

// Chatter is the capability a session needs from the model backend.
type Chatter interface {
	Chat(ctx context.Context, messages []model.ChatMessage, maxTokens int, temperature float32) (string, error)
}

// Config tunes a chat session.
type Config struct {
	SystemPrompt string  `yaml:"system_prompt" env:"CHAT_SYSTEM_PROMPT"`
	Temperature  float32 `yaml:"temperature" env:"CHAT_TEMPERATURE"`
	MaxTokens    int     `yaml:"max_tokens" env:"CHAT_MAX_TOKENS"`
}

func (c *Config) PrepareAndValidate() error {
	c.SystemPrompt = lang.Check(c.SystemPrompt, prompts.ChatSystemPrompt())
	c.Temperature = lang.Check(c.Temperature, defaultTemperature)
	if c.Temperature < 0 || c.Temperature > maxTemperature {
		return erro.New("temperature must be between 0 and %v, got %v", maxTemperature, c.Temperature)
	}
	c.MaxTokens = lang.Check(c.MaxTokens, defaultMaxTokens)
	if c.MaxTokens < minTokens || c.MaxTokens > maxTokens {
		return erro.New("max_tokens must be between %d and %d, got %d", minTokens, maxTokens, c.MaxTokens)
	}
	return nil
}

// Session holds an append-only conversation log seeded with a system
// message. Not safe for concurrent use; one session serves one user loop.
type Session struct {
	cfg     Config
	agent   Chatter
	history []model.ChatMessage
	log     logze.Logger
}

func NewSession(cfg Config, agent Chatter) (*Session, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	return &Session{
		cfg:   cfg,
		agent: agent,
		history: []model.ChatMessage{
			{Role: model.RoleSystem, Content: cfg.SystemPrompt},
		},
		log: logze.With("component", "chat"),
	}, nil
}

// Send appends the user message and the assistant reply to the history and
// returns the reply. If the model call fails, the history is left exactly
// as it was before the call.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", erro.New("message is empty")
	}
	if len(message) > maxMessageLength {
		return "", erro.New("message is too long: %d chars, limit is %d", len(message), maxMessageLength)
	}

	attempt := append(append([]model.ChatMessage{}, s.history...),
		model.ChatMessage{Role: model.RoleUser, Content: message})

	reply, err := s.agent.Chat(ctx, attempt, s.cfg.MaxTokens, s.cfg.Temperature)
	if err != nil {
		return "", errm.Wrap(err, "chat call failed")
	}

	s.history = append(attempt, model.ChatMessage{Role: model.RoleAssistant, Content: reply})
	s.log.Debug("chat turn", "history_len", len(s.history))

	return reply, nil
}

// History returns a copy of the conversation log.
func (s *Session) History() []model.ChatMessage {
	out := make([]model.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// MessageCount reports how many user and assistant messages the session
// holds, not counting the system message.
func (s *Session) MessageCount() int {
	n := 0
	for _, m := range s.history {
		if m.Role != model.RoleSystem {
			n++
		}
	}
	return n
}

// Reset drops the conversation but keeps the system message, so a fresh
// session starts from the same instructions.
func (s *Session) Reset() {
	s.history = s.history[:1]
}
