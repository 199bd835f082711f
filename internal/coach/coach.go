// Package coach proxies coaching conversations to the Gemini completion
// API behind a fixed advisor persona.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-scanner/internal/types"
)

// systemPrompt pins the assistant persona for every conversation.
const systemPrompt = "You are ResumeAI Coach. Provide precise, actionable guidance: " +
	"resume improvement, skill gaps, matching roles based on provided analysis, " +
	"and concrete next steps."

const (
	defaultModel    = "gemini-1.5-flash"
	maxOutputTokens = 800
	temperature     = 0.7
)

// ErrNoCredential indicates that neither the request nor the server
// environment supplied a provider API key.
var ErrNoCredential = errors.New("no API key provided and none configured on the server")

// Completer generates a coaching reply for an ordered conversation.
// apiKey, when non-empty, overrides the server-configured credential.
type Completer interface {
	Complete(ctx context.Context, apiKey string, messages []types.ChatMessage, model string) (string, error)
}

// Coach is the Gemini-backed Completer. A fresh provider client is built
// per call because the credential may differ per request.
type Coach struct {
	defaultKey string
}

// New returns a Coach using the given server-side API key as fallback
// credential. The key may be empty; requests must then carry their own.
func New(defaultKey string) *Coach {
	return &Coach{defaultKey: defaultKey}
}

// Complete sends the conversation to the provider and returns the reply
// text. Provider errors propagate to the caller; there are no retries.
func (c *Coach) Complete(ctx context.Context, apiKey string, messages []types.ChatMessage, model string) (string, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		key = strings.TrimSpace(c.defaultKey)
	}
	if key == "" {
		return "", ErrNoCredential
	}
	if model == "" {
		model = defaultModel
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("conversation is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return "", fmt.Errorf("failed to create completion client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(model)
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	gm.SetTemperature(temperature)
	gm.SetMaxOutputTokens(maxOutputTokens)

	history, last := splitConversation(messages)
	chat := gm.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("completion provider error: %w", err)
	}
	return extractText(resp)
}

// splitConversation maps all but the final message into provider history
// and returns the final message to send.
func splitConversation(messages []types.ChatMessage) ([]*genai.Content, types.ChatMessage) {
	last := messages[len(messages)-1]
	history := make([]*genai.Content, 0, len(messages)-1)
	for _, m := range messages[:len(messages)-1] {
		history = append(history, &genai.Content{
			Role:  providerRole(m.Role),
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history, last
}

// providerRole maps API roles onto the provider's two-role scheme.
func providerRole(role string) string {
	if role == "assistant" {
		return "model"
	}
	return "user"
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
