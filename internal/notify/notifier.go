// Package notify is the system-notification boundary. The real
// implementation publishes notification events to RabbitMQ; when the broker
// is unreachable the capability reports itself denied and the dispatcher
// degrades to a no-op.
package notify

import "context"

// Permission mirrors the platform notification permission states.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notification is a single user-facing alert. Tag is stable per message so
// duplicate raises coalesce downstream.
type Notification struct {
	Tag   string `json:"tag"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notifier raises system notifications.
type Notifier interface {
	// Permission reports the current grant state.
	Permission() Permission
	// RequestPermission attempts to move a default grant to granted or denied.
	RequestPermission(ctx context.Context)
	// Send raises a notification. Failures are the caller's to log, never fatal.
	Send(ctx context.Context, n Notification) error
}
