// Package groq is the chat-completion provider on Groq's OpenAI-compatible
// API.
package groq

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	errx "github.com/motobot-ai/server/internal/core/error"
	"github.com/motobot-ai/server/internal/llm"
)

var _ llm.Generator = (*Generator)(nil)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the single fixed model identifier for this provider.
const DefaultModel = "llama3-70b-8192"

// Generator issues single chat-completion requests with a fixed model, low
// temperature and bounded output length.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// Config configures the Groq provider. Zero values fall back to the fixed
// model and a 1000-token cap; a nil Temperature falls back to 0.6 (an
// explicit zero is kept as configured).
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float32
	MaxTokens   int
}

func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: missing API key")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	} else {
		clientCfg.BaseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	temperature := float32(0.6)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Name implements llm.Generator.
func (g *Generator) Name() string { return "Groq" }

// Generate implements llm.Generator.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", errx.WrapProvider(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errx.New(fmt.Errorf("no completion choices"), errx.KindMalformed, errx.MalformedResponseMessage)
	}
	return resp.Choices[0].Message.Content, nil
}
