package groq

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"

	"github.com/maxbolgarin/revu/internal/model"
	"github.com/maxbolgarin/revu/internal/model/interfaces"
)

const (
	defaultModel = "llama-3.2-90b-text-preview"
	defaultURL   = "https://api.groq.com/openai/v1/chat/completions"
)

var _ interfaces.AgentAPI = (*Agent)(nil)

// Agent implements the AgentAPI interface using the Groq API, which speaks
// the OpenAI chat-completions wire format.
type Agent struct {
	cli *cliex.HTTP
	cfg model.ModelConfig
}

// New creates a new Groq agent
func New(ctx context.Context, cli *cliex.HTTP, config model.ModelConfig) (*Agent, error) {
	if config.APIKey == "" {
		return nil, errm.New("Groq API key is required")
	}
	config.Model = lang.Check(config.Model, defaultModel)
	config.URL = lang.Check(config.URL, defaultURL)

	cli.C().SetAuthToken(config.APIKey)

	agent := &Agent{
		cli: cli,
		cfg: config,
	}

	// Test connection if needed (may take tokens)
	if config.IsTest {
		if err := agent.testConnection(ctx); err != nil {
			return nil, errm.Wrap(err, "failed to connect to Groq API")
		}
	}

	return agent, nil
}

// CallAPI makes a request to the Groq API
func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	msgs := make([]message, 0, len(req.Messages)+2)
	if len(req.Messages) > 0 {
		for _, m := range req.Messages {
			msgs = append(msgs, message{Role: m.Role, Content: m.Content})
		}
	} else {
		if req.SystemPrompt != "" {
			msgs = append(msgs, message{Role: model.RoleSystem, Content: req.SystemPrompt})
		}
		msgs = append(msgs, message{Role: model.RoleUser, Content: req.Prompt})
	}

	reqBody := chatCompletionRequest{
		Model:       a.cfg.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}

	var respBody chatCompletionResponse
	requestURL := lang.Check(req.URL, a.cfg.URL)
	_, err := a.cli.Post(ctx, requestURL, reqBody, &respBody)
	if err != nil {
		return model.APIResponse{}, errm.Wrap(err, "failed to make API request")
	}

	if respBody.Error != nil {
		return model.APIResponse{}, errm.Errorf("Groq API error: %s", respBody.Error.Message)
	}

	var content string
	if len(respBody.Choices) > 0 {
		content = strings.TrimSpace(respBody.Choices[0].Message.Content)
	}

	out := model.APIResponse{
		CreateTime:       time.Unix(respBody.Created, 0),
		Content:          content,
		PromptTokens:     respBody.Usage.PromptTokens,
		CompletionTokens: respBody.Usage.CompletionTokens,
		TotalTokens:      respBody.Usage.TotalTokens,
	}

	return out, nil
}

// testConnection tests the connection to Groq API
func (a *Agent) testConnection(ctx context.Context) error {
	testPrompt := "Respond with 'OK' if you can understand this message."

	_, err := a.CallAPI(ctx, model.APIRequest{
		Prompt:      testPrompt,
		MaxTokens:   10,
		Temperature: 0.5,
		URL:         a.cfg.URL,
	})
	if err != nil {
		return errm.Wrap(err, "connection test failed")
	}
	return nil
}
