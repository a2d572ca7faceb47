package models

import (
	"strconv"
	"time"
)

// MessageType discriminates message content handling.
type MessageType string

const (
	MessageText       MessageType = "text"
	MessageLocation   MessageType = "location"
	MessageAIQuery    MessageType = "ai_query"
	MessageAIResponse MessageType = "ai_response"
)

// Message is immutable once created. Timestamp is unix milliseconds and
// doubles as the identity seed; the per-chat list is append-only in
// timestamp order.
type Message struct {
	ID         string      `db:"id" json:"id"`
	ChatID     string      `db:"chat_id" json:"chat_id"`
	SenderID   string      `db:"sender_id" json:"sender_id"`
	SenderName string      `db:"sender_name" json:"sender_name"`
	Content    string      `db:"content" json:"content"`
	Type       MessageType `db:"type" json:"type"`
	Timestamp  int64       `db:"ts" json:"timestamp"`
}

// NewMessage builds a message with a timestamp-derived ID.
func NewMessage(chatID string, sender User, content string, typ MessageType) Message {
	now := time.Now().UnixMilli()
	return Message{
		ID:         strconv.FormatInt(now, 10) + "-" + sender.ID,
		ChatID:     chatID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Content:    content,
		Type:       typ,
		Timestamp:  now,
	}
}
