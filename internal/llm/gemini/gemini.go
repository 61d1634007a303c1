// Package gemini is the generative-model provider on Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/motobot-ai/server/internal/core/error"
	"github.com/motobot-ai/server/internal/llm"
	logx "github.com/motobot-ai/server/pkg/logger"
)

var _ llm.Generator = (*Generator)(nil)

// DefaultModels is the ordered candidate list; the first model that can be
// instantiated wins for the rest of the process lifetime.
var DefaultModels = []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}

// NoModelReply is returned when no candidate model can be instantiated.
const NoModelReply = "Could not connect to any Google model."

// modelBuilder instantiates one named candidate against the shared client.
type modelBuilder func(ctx context.Context, client *genai.Client, name string) (einomodel.BaseChatModel, error)

// Generator attempts an ordered list of Gemini model candidates and issues
// generation calls against the first usable one.
type Generator struct {
	apiKey      string
	baseURL     string
	candidates  []string
	temperature float32
	maxTokens   int
	buildModel  modelBuilder

	attempted bool
	model     einomodel.BaseChatModel
}

// Config configures the Gemini provider. An empty Models list falls back to
// DefaultModels; a nil Temperature falls back to 0.6 (an explicit zero is
// kept as configured).
type Config struct {
	APIKey      string
	BaseURL     string
	Models      []string
	Temperature *float32
	MaxTokens   int
}

func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}
	candidates := cfg.Models
	if len(candidates) == 0 {
		candidates = DefaultModels
	}
	temperature := float32(0.6)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	g := &Generator{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		candidates:  candidates,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
	g.buildModel = g.newChatModel
	return g, nil
}

// Name implements llm.Generator.
func (g *Generator) Name() string { return "Google" }

// Generate implements llm.Generator. When no candidate model could be
// instantiated, the fixed failure string becomes the reply; the session
// continues normally on the next turn.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.activeModel(ctx)
	if model == nil {
		return NoModelReply, nil
	}
	out, err := model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", errx.WrapProvider(err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", errx.New(fmt.Errorf("empty generation result"), errx.KindMalformed, errx.MalformedResponseMessage)
	}
	return out.Content, nil
}

// activeModel instantiates candidates in order on first use and caches the
// winner. The process is single-worker, so no locking is needed.
func (g *Generator) activeModel(ctx context.Context) einomodel.BaseChatModel {
	if g.attempted {
		return g.model
	}
	g.attempted = true

	clientCfg := &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = g.baseURL
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("error creating Gemini client")
		return nil
	}

	for _, name := range g.candidates {
		model, err := g.buildModel(ctx, client, name)
		if err != nil {
			logx.Warn().Err(err).Str("model", name).Msg("Gemini model candidate unavailable")
			continue
		}
		g.model = model
		logx.Debug().Str("model", name).Msg("Gemini model selected")
		break
	}
	return g.model
}

func (g *Generator) newChatModel(ctx context.Context, client *genai.Client, name string) (einomodel.BaseChatModel, error) {
	return gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       name,
		Temperature: &g.temperature,
		MaxTokens:   &g.maxTokens,
	})
}
