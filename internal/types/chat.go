// Package types provides request and response types for the resume
// scanner HTTP API.
package types

import "github.com/go-playground/validator/v10"

// ChatMessage is a single role-tagged turn in a coaching conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest represents the body of POST /chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	Model    string        `json:"model,omitempty"`
}

// ChatResponse carries the generated coaching reply.
type ChatResponse struct {
	Content string `json:"content"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
