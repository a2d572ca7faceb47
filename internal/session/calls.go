package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"session-service/internal/models"
	"session-service/internal/observability"
)

// InitiateCall acquires local media and moves the call state machine from
// NONE to the requested kind. No-op without an active chat. The call view
// becomes visible only after media acquisition succeeds.
func (c *Coordinator) InitiateCall(ctx context.Context, kind models.CallKind) error {
	if kind != models.CallVoice && kind != models.CallVideo {
		return fmt.Errorf("invalid call kind %q", kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeChat == nil {
		return nil
	}

	stream, err := c.deps.Media.Acquire(ctx, kind == models.CallVoice)
	if err != nil {
		c.log.Warn("media acquisition failed", zap.String("kind", string(kind)), zap.Error(err))
		observability.IncCallEvent(string(kind), "failed")
		return c.sendLocked(ctx, fmt.Sprintf("Could not start %s call", callLabel(kind)), models.MessageText)
	}

	c.stream = stream
	c.callKind = kind
	c.callViewVisible = true
	observability.IncCallEvent(string(kind), "started")
	c.emitLocked()

	status := fmt.Sprintf("%s call started (simulation)", titleLabel(kind))
	return c.sendLocked(ctx, status, models.MessageText)
}

// EndCall releases media and resets the call state to NONE. Release is
// best-effort: a failing media collaborator never blocks the reset, so this
// transition cannot fail from the caller's perspective.
func (c *Coordinator) EndCall(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.deps.Media.Release(ctx, c.stream); err != nil {
		c.log.Warn("media release failed", zap.Error(err))
	}

	ended := c.callKind
	c.stream = nil
	c.callKind = models.CallNone
	c.callViewVisible = false
	if ended != models.CallNone {
		observability.IncCallEvent(string(ended), "ended")
	}
	c.emitLocked()

	if c.activeChat == nil {
		return nil
	}
	return c.sendLocked(ctx, "Call ended (simulation)", models.MessageText)
}

func callLabel(kind models.CallKind) string {
	if kind == models.CallVideo {
		return "video"
	}
	return "voice"
}

func titleLabel(kind models.CallKind) string {
	if kind == models.CallVideo {
		return "Video"
	}
	return "Voice"
}
