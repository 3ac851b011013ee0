package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIDefaultModel is used when Config.Model is left empty.
const OpenAIDefaultModel = "gpt-4o-mini"

// Config configures an OpenAIClient.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIClient implements Client against the OpenAI chat completions
// API, always requesting a JSON-object response format. It is the sole
// concrete Client; the question generator, DAG builder, and critic
// depend only on the Client interface.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds an OpenAIClient from cfg. cfg.APIKey must be
// non-empty: OPENAI_API_KEY or an equivalent credential is required.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llmclient: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = OpenAIDefaultModel
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Complete implements Client.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &TransportError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &TransportError{Provider: "openai", Err: fmt.Errorf("no response choices returned")}
	}

	content := resp.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return nil, &ParseError{Provider: "openai", Body: content, Err: fmt.Errorf("response is not valid JSON")}
	}
	return json.RawMessage(content), nil
}
