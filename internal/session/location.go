package session

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"session-service/internal/errmsg"
	"session-service/internal/models"
	"session-service/internal/observability"
)

// ShareLocation fetches the current coordinates and sends them as a
// location message, updating the current user's last known location in the
// session and the directory. A lookup failure is surfaced as an ordinary
// text message with a normalized explanation; it never escapes the flow.
func (c *Coordinator) ShareLocation(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentUser == nil || c.activeChat == nil {
		return nil
	}

	coords, err := c.deps.Location.CurrentLocation(ctx)
	if err != nil {
		c.log.Warn("location fetch failed", zap.Error(err))
		observability.IncLocationShare("error")
		return c.sendLocked(ctx, "Unable to share location: "+errmsg.Humanize(err), models.MessageText)
	}

	text := "Location: " + formatCoord(coords.Latitude) + ", " + formatCoord(coords.Longitude)
	if err := c.sendLocked(ctx, text, models.MessageLocation); err != nil {
		observability.IncLocationShare("error")
		return err
	}

	updated := *c.currentUser
	loc := coords
	updated.Location = &loc
	c.currentUser = &updated

	// Last-write-wins into the directory; no merge.
	users, err := c.deps.Users.UpdateUser(ctx, updated)
	if err != nil {
		c.log.Warn("directory location update failed", zap.Error(err))
	} else {
		c.users = users
	}
	observability.IncLocationShare("ok")
	c.emitLocked()
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
