package agent

import (
	"context"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/revu/internal/agent/claude"
	"github.com/maxbolgarin/revu/internal/agent/gemini"
	"github.com/maxbolgarin/revu/internal/agent/groq"
	"github.com/maxbolgarin/revu/internal/agent/openai"
	"github.com/maxbolgarin/revu/internal/agent/prompts"
	"github.com/maxbolgarin/revu/internal/model"
	"github.com/maxbolgarin/revu/internal/model/interfaces"
)

// Agent is the model-backend facade: it owns prompt construction and the
// request parameters, and delegates the actual HTTP exchange to the
// backend selected by Config.Type.
type Agent struct {
	cfg Config
	log logze.Logger
	api interfaces.AgentAPI
}

func New(ctx context.Context, cfg Config) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	cli, err := cliex.NewWithConfig(cliex.Config{
		BaseURL:        cfg.BaseURL,
		UserAgent:      cfg.UserAgent,
		ProxyAddress:   cfg.ProxyURL,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}

	a := &Agent{
		cfg: cfg,
		log: logze.With("component", "agent", "type", string(cfg.Type)),
	}

	modelCfg := model.ModelConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		URL:      cfg.BaseURL,
		ProxyURL: cfg.ProxyURL,
		IsTest:   cfg.IsTest,
	}

	switch cfg.Type {
	case Groq:
		a.api, err = groq.New(ctx, cli, modelCfg)
	case Gemini:
		a.api, err = gemini.New(ctx, modelCfg)
	case OpenAI:
		a.api, err = openai.New(ctx, cli, modelCfg)
	case Claude:
		a.api, err = claude.New(ctx, cli, modelCfg)
	default:
		return nil, errm.Errorf("unsupported agent type: %s", cfg.Type)
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to create agent")
	}

	return a, nil
}

// NewWithAPI builds a facade around an already constructed backend.
// Used in tests and anywhere a caller wants to supply its own transport.
func NewWithAPI(cfg Config, api interfaces.AgentAPI) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	return &Agent{
		cfg: cfg,
		log: logze.With("component", "agent", "type", string(cfg.Type)),
		api: api,
	}, nil
}

// ReviewFile asks the model to review one file change and returns the raw
// response text for the caller to parse.
func (a *Agent) ReviewFile(ctx context.Context, codeCtx model.CodeContext) (string, error) {
	prompt := prompts.BuildReviewPrompt(codeCtx)
	return a.apiCall(ctx, model.APIRequest{
		Prompt:       prompt.UserPrompt,
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    a.cfg.MaxTokens,
		Temperature:  a.cfg.Temperature,
	})
}

// Chat sends a full conversation history and returns the assistant reply.
func (a *Agent) Chat(ctx context.Context, messages []model.ChatMessage, maxTokens int, temperature float32) (string, error) {
	return a.apiCall(ctx, model.APIRequest{
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}

func (a *Agent) apiCall(ctx context.Context, req model.APIRequest) (string, error) {
	response, err := a.api.CallAPI(ctx, req)
	if err != nil {
		return "", errm.Wrap(err, "failed to call API")
	}
	a.log.DebugIf(response.TotalTokens > 0, "api call",
		"prompt_tokens", response.PromptTokens, "completion_tokens", response.CompletionTokens)

	return response.Content, nil
}
