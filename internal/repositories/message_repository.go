package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"session-service/internal/models"
)

// MessageRepository is the authoritative store for chat messages. Every
// mutation returns the full updated list so callers never compute deltas
// themselves.
type MessageRepository interface {
	GetMessages(ctx context.Context, chatID string) ([]models.Message, error)
	AddMessage(ctx context.Context, chatID string, msg models.Message) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// GetMessages returns the chat's messages in timestamp order.
func (r *MessageRepo) GetMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, chat_id, sender_id, sender_name, content, type, ts
         FROM messages WHERE chat_id=$1 ORDER BY ts ASC, id ASC`, chatID)
	return msgs, err
}

// AddMessage appends a message and returns the full updated list.
func (r *MessageRepo) AddMessage(ctx context.Context, chatID string, msg models.Message) ([]models.Message, error) {
	msg.ChatID = chatID
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, chat_id, sender_id, sender_name, content, type, ts)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.ChatID, msg.SenderID, msg.SenderName, msg.Content, msg.Type, msg.Timestamp)
	if err != nil {
		return nil, err
	}
	return r.GetMessages(ctx, chatID)
}
