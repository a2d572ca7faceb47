package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"session-service/internal/models"
)

const defaultModel = "gemini-2.0-flash"

const systemPrompt = "You are a helpful assistant inside a messaging " +
	"application. Answer concisely, in plain text, as a reply in a chat."

// Gemini answers queries through the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini responder. The API key must be non-empty; use
// Disabled when it is not.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Ask sends the query to the model and wraps the answer as an ai_response
// message addressed to the asking user's active conversation.
func (g *Gemini) Ask(ctx context.Context, query string, asking models.User) (*models.Message, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(query, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return nil, nil
	}

	msg := models.NewMessage("", models.User{ID: AssistantID, Name: "Assistant"}, answer, models.MessageAIResponse)
	return &msg, nil
}
