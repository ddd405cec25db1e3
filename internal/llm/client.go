package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/rsahil/equityscope/internal/config"
)

// Client adapts an eino chat model to the single-prompt inference call
// the pipeline stages make. The response is raw text with no format
// guarantee; stages parse it defensively.
type Client struct {
	chatModel model.BaseChatModel
}

// NewClient builds a chat model for the configured provider.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI model: %w", err)
		}
		return &Client{chatModel: cm}, nil

	case "deepseek":
		cm, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.DeepSeekModel,
			MaxTokens: 4000,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create DeepSeek model: %w", err)
		}
		return &Client{chatModel: cm}, nil

	default:
		return nil, fmt.Errorf("unsupported llm_provider: %s", cfg.LLMProvider)
	}
}

// NewClientFromModel wraps an existing chat model.
func NewClientFromModel(cm model.BaseChatModel) *Client {
	return &Client{chatModel: cm}
}

// Infer sends one prompt and returns the raw response text.
func (c *Client) Infer(ctx context.Context, prompt string) (string, error) {
	msg, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("inference failed: %w", err)
	}

	return msg.Content, nil
}
