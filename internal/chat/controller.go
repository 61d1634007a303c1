package chat

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	errx "github.com/motobot-ai/server/internal/core/error"
	"github.com/motobot-ai/server/internal/llm"
	"github.com/motobot-ai/server/internal/prompt"
	"github.com/motobot-ai/server/internal/retrieval"
	logx "github.com/motobot-ai/server/pkg/logger"
)

// AckTemplate is the fixed acknowledgment emitted when a VIN resolves. The
// turn short-circuits: no retrieval, no LLM call.
const AckTemplate = "✅ Great! I identified your vehicle: %s. Now I can match parts precisely. What do you need?"

// VehicleResolver turns raw user input into a vehicle description, or ""
// when the input is not a decodable VIN.
type VehicleResolver interface {
	Resolve(ctx context.Context, raw string) string
}

// Retriever returns the catalog text relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) (string, error)
}

// Responder produces the assistant's answer for a composed prompt. Failures
// are already collapsed into warning-marked reply strings.
type Responder interface {
	Provider() string
	Generate(ctx context.Context, promptText string) string
}

// Controller drives one conversation turn through the pipeline: resolve the
// vehicle, retrieve catalog context, compose the prompt, generate the answer.
type Controller struct {
	resolver  VehicleResolver
	retriever Retriever
	responder Responder
}

func NewController(resolver VehicleResolver, retriever Retriever, responder Responder) *Controller {
	return &Controller{
		resolver:  resolver,
		retriever: retriever,
		responder: responder,
	}
}

// HandleTurn processes one user message and returns the assistant's reply.
// The session history always gains exactly one user entry and one assistant
// entry per call, whatever happens in between.
func (c *Controller) HandleTurn(ctx context.Context, session *Session, input string) string {
	session.History = append(session.History, schema.UserMessage(input))

	if vehicle := c.resolver.Resolve(ctx, input); vehicle != "" {
		session.Vehicle = vehicle
		reply := fmt.Sprintf(AckTemplate, vehicle)
		session.History = append(session.History, schema.AssistantMessage(reply, nil))
		return reply
	}

	reply := c.answer(ctx, session, input)
	session.History = append(session.History, schema.AssistantMessage(reply, nil))
	return reply
}

// answer runs the retrieval path. The prompt sees the history as it was
// before this turn's user message.
func (c *Controller) answer(ctx context.Context, session *Session, input string) string {
	query := input
	if session.Vehicle != "" {
		query = fmt.Sprintf("%s Vehicle context: %s.", input, session.Vehicle)
	}

	found, err := c.retriever.Retrieve(ctx, query, retrieval.DefaultTopK)
	if err != nil {
		logx.Error().Err(err).Str("kind", errx.KindOf(err).String()).Msg("error retrieving catalog context")
		return fmt.Sprintf("%s %s: %v", llm.WarningMarker, errx.SystemErrorMessage, err)
	}

	before := session.History[:len(session.History)-1]
	promptText := prompt.Compose(found, session.Vehicle, before, query)
	return c.responder.Generate(ctx, promptText)
}
