// Package chat holds the per-conversation state and the turn controller.
package chat

import (
	"github.com/cloudwego/eino/schema"
)

// Greeting seeds every new session as the first assistant message.
const Greeting = "Hello! I am MotoBot, your virtual auto parts advisor. " +
	"Give me your VIN so I can match parts to your car, or just tell me what you need."

// Session is the explicit conversation state: the full message history and
// the currently identified vehicle. One session belongs to one user loop;
// it is not safe for concurrent use.
type Session struct {
	History []*schema.Message
	Vehicle string
}

// NewSession creates a session whose history already contains the greeting.
func NewSession() *Session {
	return &Session{
		History: []*schema.Message{schema.AssistantMessage(Greeting, nil)},
	}
}

// Reset forgets the identified vehicle. History is intentionally preserved
// so the conversation can continue across a vehicle change.
func (s *Session) Reset() {
	s.Vehicle = ""
}
