// Package ai delegates ai_query messages to an assistant backend.
package ai

import (
	"context"
	"errors"

	"session-service/internal/models"
)

// AssistantID is the directory identity the assistant answers under.
const AssistantID = "assistant"

// ErrUnavailable is returned when no assistant credential is configured.
var ErrUnavailable = errors.New("assistant unavailable: no API key configured")

// Responder answers a user query with an assistant message, or nil when the
// backend produced no answer.
type Responder interface {
	Ask(ctx context.Context, query string, asking models.User) (*models.Message, error)
}

// Disabled is the Responder used when no credential is configured. Every ask
// fails with ErrUnavailable; the pipeline surfaces that as an ordinary
// failure instead of crashing.
type Disabled struct{}

// Ask always reports the assistant as unavailable.
func (Disabled) Ask(ctx context.Context, query string, asking models.User) (*models.Message, error) {
	return nil, ErrUnavailable
}
