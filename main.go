package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/motobot-ai/server/internal/catalog"
	"github.com/motobot-ai/server/internal/chat"
	"github.com/motobot-ai/server/internal/config"
	"github.com/motobot-ai/server/internal/core"
	"github.com/motobot-ai/server/internal/embedding"
	openaiembed "github.com/motobot-ai/server/internal/embedding/openai"
	"github.com/motobot-ai/server/internal/embedding/tfidf"
	"github.com/motobot-ai/server/internal/llm"
	"github.com/motobot-ai/server/internal/llm/gemini"
	"github.com/motobot-ai/server/internal/llm/groq"
	"github.com/motobot-ai/server/internal/retrieval"
	"github.com/motobot-ai/server/internal/vectorstore/memory"
	"github.com/motobot-ai/server/internal/vehicle"
	logx "github.com/motobot-ai/server/pkg/logger"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	records, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logx.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("error loading catalog")
	}

	creds := cfg.Credentials()

	embedder, err := buildEmbedder(cfg, creds)
	if err != nil {
		logx.Fatal().Err(err).Msg("error building embedder")
	}
	retriever := retrieval.NewService(embedder, memory.NewStore())
	if err := retriever.BuildIndex(ctx, records); err != nil {
		logx.Fatal().Err(err).Msg("error building catalog index")
	}
	logx.Info().Int("documents", len(records)).Str("embedder", embedder.Name()).Msg("catalog index ready")

	generator, err := buildGenerator(cfg, creds)
	if err != nil {
		logx.Fatal().Err(err).Msg("error selecting LLM provider")
	}
	dispatcher := llm.NewDispatcher(generator)
	logx.Info().Str("provider", dispatcher.Provider()).Msg("LLM provider selected")

	resolver := vehicle.NewResolver(vehicle.Config{
		BaseURL: cfg.Vehicle.DecodeBaseURL,
		Timeout: cfg.Vehicle.DecodeTimeout,
	})

	controller := chat.NewController(resolver, retriever, dispatcher)
	runLoop(ctx, controller)
}

func buildEmbedder(cfg *config.AppConfig, creds config.Credentials) (embedding.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf":
		return tfidf.NewEmbedder(), nil
	case "openai":
		return openaiembed.NewEmbedder(openaiembed.Config{
			APIKey:  creds.EmbedderAPIKey,
			BaseURL: cfg.Embedder.BaseURL,
			Model:   cfg.Embedder.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}
}

func buildGenerator(cfg *config.AppConfig, creds config.Credentials) (llm.Generator, error) {
	provider, err := cfg.SelectProvider(creds)
	if err != nil {
		return nil, err
	}
	switch provider {
	case config.ProviderGroq:
		return groq.NewGenerator(groq.Config{
			APIKey:      creds.GroqAPIKey,
			BaseURL:     cfg.Groq.BaseURL,
			Model:       cfg.Groq.Model,
			Temperature: &cfg.Groq.Temperature,
			MaxTokens:   cfg.Groq.MaxTokens,
		})
	case config.ProviderGemini:
		return gemini.NewGenerator(gemini.Config{
			APIKey:      creds.GeminiAPIKey,
			BaseURL:     cfg.Gemini.BaseURL,
			Temperature: &cfg.Gemini.Temperature,
			MaxTokens:   cfg.Gemini.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// runLoop reads user turns from stdin until /quit or EOF. /reset forgets the
// identified vehicle and keeps the conversation going.
func runLoop(ctx context.Context, controller *chat.Controller) {
	session := chat.NewSession()
	fmt.Println("MotoBot: " + chat.Greeting)
	fmt.Println("(commands: /reset forgets the vehicle, /quit exits)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n[vehicle: %s]\nYou: ", vehicleStatus(session))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "/quit", "/exit":
			fmt.Println("MotoBot: Thanks for visiting, see you next time!")
			return
		case "/reset":
			session.Reset()
			fmt.Println("MotoBot: Vehicle forgotten. Give me a VIN whenever you are ready.")
			continue
		}
		reply := controller.HandleTurn(ctx, session, input)
		fmt.Println("MotoBot: " + reply)
	}
	if err := scanner.Err(); err != nil {
		logx.Error().Err(err).Msg("error reading input")
	}
}

func vehicleStatus(session *chat.Session) string {
	if session.Vehicle == "" {
		return "not identified"
	}
	return session.Vehicle
}
