package session

import (
	"context"

	"go.uber.org/zap"

	"session-service/internal/models"
	"session-service/internal/notify"
	"session-service/internal/observability"
)

const notificationBodyLimit = 100

// dispatchNotificationsLocked runs after every update to the active chat's
// message list. It inspects only the most recent message and raises at most
// one notification per distinct message ID within the active chat.
func (c *Coordinator) dispatchNotificationsLocked(ctx context.Context) {
	if c.deps.Notifier == nil || c.deps.Notifier.Permission() != notify.PermissionGranted {
		return
	}
	if c.activeChat == nil || c.currentUser == nil || len(c.messages) == 0 {
		return
	}

	last := c.messages[len(c.messages)-1]
	if last.ID == c.lastNotifiedID || last.SenderID == c.currentUser.ID || c.visible {
		return
	}

	n := notify.Notification{
		Tag:   "msg-" + last.ID,
		Title: c.chatTitleLocked(*c.activeChat),
		Body:  notificationBody(last),
	}
	if err := c.deps.Notifier.Send(ctx, n); err != nil {
		c.log.Warn("notification raise failed", zap.String("message_id", last.ID), zap.Error(err))
		observability.IncNotification("error")
	} else {
		observability.IncNotification("sent")
	}
	// Recorded regardless of outcome: raises are never retried.
	c.lastNotifiedID = last.ID
}

func (c *Coordinator) chatTitleLocked(chat models.Chat) string {
	switch chat.Kind {
	case models.ChatKindUser:
		for _, u := range c.users {
			if u.ID == chat.TargetID {
				return u.Name
			}
		}
		if chat.Name != "" {
			return chat.Name
		}
		return "New message"
	default:
		for _, g := range c.groups {
			if g.ID == chat.TargetID {
				return g.Name
			}
		}
		if chat.Name != "" {
			return chat.Name
		}
		return "Group conversation"
	}
}

func notificationBody(msg models.Message) string {
	switch msg.Type {
	case models.MessageLocation:
		return "Shared their location"
	case models.MessageAIQuery:
		return "Asked the assistant a question"
	case models.MessageAIResponse:
		return "The assistant replied"
	default:
		return truncate(msg.Content, notificationBodyLimit)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
