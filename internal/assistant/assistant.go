// Package assistant answers free-text messages with a single chat
// completion. It keeps no conversation state: every question is answered
// on its own.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ziadkadry99/chatbots/internal/config"
)

// DefaultSystemPrompt is used when none is configured.
const DefaultSystemPrompt = "You are a helpful chat bot. Answer briefly. Use Markdown sparingly."

// ErrNoAnswer is returned when the model produced no text.
var ErrNoAnswer = errors.New("assistant returned no answer")

// Client answers questions through the OpenAI Chat Completions API or any
// compatible endpoint.
type Client struct {
	client       *openai.Client
	model        string
	maxTokens    int
	systemPrompt string
}

// New creates a Client from configuration. The API key is read from the
// environment variable named by cfg.APIKeyEnv.
func New(cfg config.AssistantConfig) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("assistant: %s is not set", cfg.APIKeyEnv)
	}
	return NewWithKey(cfg, apiKey), nil
}

// NewWithKey creates a Client with an explicit API key.
func NewWithKey(cfg config.AssistantConfig, apiKey string) *Client {
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	return &Client{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        cfg.Model,
		maxTokens:    cfg.MaxTokens,
		systemPrompt: prompt,
	}
}

// Answer returns the model's reply to question.
func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		MaxTokens: c.maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("assistant completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoAnswer
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrNoAnswer
	}
	return answer, nil
}
