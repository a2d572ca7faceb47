package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"session-service/internal/models"
	"session-service/internal/observability"
)

// SendMessage creates a message in the active chat. A missing current user
// or active chat makes it a silent no-op. An ai_query additionally delegates
// to the assistant and appends its answer when one comes back.
func (c *Coordinator) SendMessage(ctx context.Context, content string, typ models.MessageType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked(ctx, content, typ)
}

func (c *Coordinator) sendLocked(ctx context.Context, content string, typ models.MessageType) error {
	if c.currentUser == nil || c.activeChat == nil {
		return nil
	}

	chatID := c.activeChat.ID()
	msg := models.NewMessage(chatID, *c.currentUser, content, typ)

	list, err := c.deps.Messages.AddMessage(ctx, chatID, msg)
	if err != nil {
		return fmt.Errorf("persist message: %w", err)
	}
	c.messages = list
	observability.IncMessageSent(string(typ))
	c.emitLocked()
	c.dispatchNotificationsLocked(ctx)

	if typ == models.MessageAIQuery {
		c.runAssistantLocked(ctx, content)
	}
	return nil
}

// runAssistantLocked holds the loading flag for exactly the interval between
// the query append and the optional response append. A responder failure
// must never leave the flag set.
func (c *Coordinator) runAssistantLocked(ctx context.Context, query string) {
	c.aiLoading = true
	c.emitLocked()
	defer func() {
		c.aiLoading = false
		c.emitLocked()
	}()

	asking := *c.currentUser
	resp, err := c.deps.AI.Ask(ctx, query, asking)
	if err != nil {
		c.log.Warn("assistant request failed", zap.Error(err))
		observability.IncAIRequest("error")
		return
	}
	if resp == nil {
		observability.IncAIRequest("empty")
		return
	}
	observability.IncAIRequest("ok")

	chatID := c.activeChat.ID()
	answer := *resp
	answer.ChatID = chatID

	list, err := c.deps.Messages.AddMessage(ctx, chatID, answer)
	if err != nil {
		c.log.Warn("persist assistant reply failed", zap.Error(err))
		return
	}
	c.messages = list
	observability.IncMessageSent(string(models.MessageAIResponse))
	c.emitLocked()
	c.dispatchNotificationsLocked(ctx)
}
