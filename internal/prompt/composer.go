// Package prompt assembles the instruction block handed to the LLM. The
// template is the behavioral contract; its structure and ordering must stay
// stable so identical inputs produce identical prompts.
package prompt

import (
	_ "embed"
	"strings"

	"github.com/cloudwego/eino/schema"
)

//go:embed template/seller_prompt.txt
var sellerPrompt string

// UnknownVehicleContext is rendered when no vehicle has been identified.
const UnknownVehicleContext = "Unknown (ask for the VIN if it is necessary to match parts)"

// Compose renders the full instruction block from the retrieved catalog
// text, the vehicle context, the prior conversation and the new question.
// Pure function: no side effects, byte-identical output for identical input.
func Compose(retrievedText, vehicleContext string, history []*schema.Message, question string) string {
	if vehicleContext == "" {
		vehicleContext = UnknownVehicleContext
	}
	return strings.NewReplacer(
		"{found_text}", retrievedText,
		"{vehicle_context}", vehicleContext,
		"{history}", serializeHistory(history),
		"{question}", question,
	).Replace(sellerPrompt)
}

// serializeHistory renders the conversation as alternating CUSTOMER/SELLER
// lines in original order. Roles other than user/assistant are skipped.
func serializeHistory(history []*schema.Message) string {
	var b strings.Builder
	for _, msg := range history {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.User:
			b.WriteString("CUSTOMER: " + msg.Content + "\n")
		case schema.Assistant:
			b.WriteString("SELLER: " + msg.Content + "\n")
		}
	}
	return b.String()
}
