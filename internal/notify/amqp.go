package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const routingKey = "notifications.session"

// AMQPNotifier publishes notifications to a topic exchange. Permission is
// default until the first connection attempt, then granted or denied.
type AMQPNotifier struct {
	url      string
	exchange string
	log      *zap.Logger

	mu   sync.Mutex
	perm Permission
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPNotifier builds a notifier for the given broker. No connection is
// made until RequestPermission.
func NewAMQPNotifier(url, exchange string, log *zap.Logger) *AMQPNotifier {
	return &AMQPNotifier{url: url, exchange: exchange, log: log, perm: PermissionDefault}
}

// Permission reports the current grant state.
func (n *AMQPNotifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.perm
}

// RequestPermission dials the broker and declares the exchange. A failed
// dial denies the capability; callers may ask again while still default.
func (n *AMQPNotifier) RequestPermission(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.perm == PermissionGranted {
		return
	}

	if n.url == "" {
		n.log.Info("notifications disabled: empty amqp url")
		n.perm = PermissionDenied
		return
	}

	conn, err := amqp.Dial(n.url)
	if err != nil {
		n.log.Warn("notifications disabled", zap.Error(err))
		n.perm = PermissionDenied
		return
	}

	ch, err := conn.Channel()
	if err != nil {
		n.log.Warn("notifications disabled", zap.Error(err))
		_ = conn.Close()
		n.perm = PermissionDenied
		return
	}

	if err := ch.ExchangeDeclare(n.exchange, "topic", true, false, false, false, nil); err != nil {
		n.log.Warn("notifications disabled", zap.Error(err))
		_ = ch.Close()
		_ = conn.Close()
		n.perm = PermissionDenied
		return
	}

	n.conn = conn
	n.ch = ch
	n.perm = PermissionGranted
	n.log.Info("notifications enabled", zap.String("exchange", n.exchange))
}

// Send publishes the notification as a persistent JSON event.
func (n *AMQPNotifier) Send(ctx context.Context, notification Notification) error {
	n.mu.Lock()
	ch := n.ch
	n.mu.Unlock()
	if ch == nil {
		return errors.New("notifier not connected")
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, n.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    notification.Tag,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Close tears the broker connection down.
func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
