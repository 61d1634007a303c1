package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/motobot-ai/server/internal/llm"
	"github.com/motobot-ai/server/internal/prompt"
)

type stubResolver struct {
	vehicles map[string]string
}

func (s *stubResolver) Resolve(ctx context.Context, raw string) string {
	return s.vehicles[raw]
}

type stubRetriever struct {
	found     string
	err       error
	lastQuery string
	calls     int
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, topK int) (string, error) {
	s.calls++
	s.lastQuery = query
	return s.found, s.err
}

type stubResponder struct {
	reply      string
	lastPrompt string
	calls      int
}

func (s *stubResponder) Provider() string { return "Stub" }

func (s *stubResponder) Generate(ctx context.Context, promptText string) string {
	s.calls++
	s.lastPrompt = promptText
	return s.reply
}

func newTestController(resolver *stubResolver, retriever *stubRetriever, responder *stubResponder) *Controller {
	if resolver == nil {
		resolver = &stubResolver{}
	}
	if retriever == nil {
		retriever = &stubRetriever{}
	}
	if responder == nil {
		responder = &stubResponder{reply: "ok"}
	}
	return NewController(resolver, retriever, responder)
}

func TestNewSessionStartsWithGreeting(t *testing.T) {
	s := NewSession()
	if len(s.History) != 1 {
		t.Fatalf("expected 1 seeded message, got %d", len(s.History))
	}
	if s.History[0].Role != schema.Assistant || s.History[0].Content != Greeting {
		t.Errorf("seed message = %+v", s.History[0])
	}
	if s.Vehicle != "" {
		t.Errorf("new session has vehicle %q", s.Vehicle)
	}
}

func TestHandleTurnVINShortCircuits(t *testing.T) {
	resolver := &stubResolver{vehicles: map[string]string{
		"WBA1R51050V764951": "BMW Seria 1 (E87) 2004-2011",
	}}
	retriever := &stubRetriever{}
	responder := &stubResponder{reply: "should not be used"}
	c := newTestController(resolver, retriever, responder)
	session := NewSession()

	reply := c.HandleTurn(context.Background(), session, "WBA1R51050V764951")

	want := fmt.Sprintf(AckTemplate, "BMW Seria 1 (E87) 2004-2011")
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if session.Vehicle != "BMW Seria 1 (E87) 2004-2011" {
		t.Errorf("session vehicle = %q", session.Vehicle)
	}
	if retriever.calls != 0 {
		t.Errorf("retriever called %d times on a VIN turn", retriever.calls)
	}
	if responder.calls != 0 {
		t.Errorf("responder called %d times on a VIN turn", responder.calls)
	}
	if len(session.History) != 3 {
		t.Errorf("history length = %d, want 3", len(session.History))
	}
}

func TestHandleTurnAppendsVehicleContextToQuery(t *testing.T) {
	retriever := &stubRetriever{found: "Product: Oil Filter X."}
	responder := &stubResponder{reply: "We have Oil Filter X."}
	c := newTestController(nil, retriever, responder)
	session := NewSession()
	session.Vehicle = "Volkswagen Golf IV 1.9 TDI"

	c.HandleTurn(context.Background(), session, "need an oil filter")

	want := "need an oil filter Vehicle context: Volkswagen Golf IV 1.9 TDI."
	if retriever.lastQuery != want {
		t.Errorf("effective query = %q, want %q", retriever.lastQuery, want)
	}
}

func TestHandleTurnPlainQueryWithoutVehicle(t *testing.T) {
	retriever := &stubRetriever{found: "Product: Brake Pads."}
	responder := &stubResponder{reply: "Sure."}
	c := newTestController(nil, retriever, responder)
	session := NewSession()

	reply := c.HandleTurn(context.Background(), session, "1234")

	if retriever.lastQuery != "1234" {
		t.Errorf("effective query = %q, want %q", retriever.lastQuery, "1234")
	}
	if reply != "Sure." {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(responder.lastPrompt, prompt.UnknownVehicleContext) {
		t.Error("prompt missing unknown-vehicle placeholder")
	}
}

func TestHandleTurnPromptExcludesCurrentMessage(t *testing.T) {
	retriever := &stubRetriever{found: ""}
	responder := &stubResponder{reply: "ok"}
	c := newTestController(nil, retriever, responder)
	session := NewSession()

	c.HandleTurn(context.Background(), session, "do you have wipers?")

	if strings.Contains(responder.lastPrompt, "CUSTOMER: do you have wipers?") {
		t.Error("history section contains the current turn's message")
	}
	if !strings.Contains(responder.lastPrompt, "SELLER: "+Greeting) {
		t.Error("history section missing the greeting")
	}
}

func TestHandleTurnRetrievalFailureStillAppends(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("index unavailable")}
	responder := &stubResponder{reply: "should not be used"}
	c := newTestController(nil, retriever, responder)
	session := NewSession()

	reply := c.HandleTurn(context.Background(), session, "need pads")

	if !strings.Contains(reply, llm.WarningMarker) {
		t.Errorf("reply %q missing warning marker", reply)
	}
	if responder.calls != 0 {
		t.Error("responder should not run when retrieval fails")
	}
	if len(session.History) != 3 {
		t.Errorf("history length = %d, want 3", len(session.History))
	}
	last := session.History[len(session.History)-1]
	if last.Role != schema.Assistant || last.Content != reply {
		t.Errorf("last history entry = %+v", last)
	}
}

func TestHandleTurnHistoryGrowsByTwo(t *testing.T) {
	c := newTestController(nil, nil, nil)
	session := NewSession()

	for i := 0; i < 3; i++ {
		c.HandleTurn(context.Background(), session, fmt.Sprintf("question %d", i))
	}
	if len(session.History) != 1+3*2 {
		t.Errorf("history length = %d, want 7", len(session.History))
	}
}

func TestResetClearsVehicleKeepsHistory(t *testing.T) {
	c := newTestController(nil, nil, nil)
	session := NewSession()
	c.HandleTurn(context.Background(), session, "hello there")
	session.Vehicle = "Volkswagen Golf IV 1.9 TDI"

	before := len(session.History)
	session.Reset()

	if session.Vehicle != "" {
		t.Errorf("vehicle = %q after reset", session.Vehicle)
	}
	if len(session.History) != before {
		t.Errorf("reset changed history length from %d to %d", before, len(session.History))
	}
}
