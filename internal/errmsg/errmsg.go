// Package errmsg turns heterogeneous failure values into a single
// user-facing string suitable for inclusion in a chat message.
package errmsg

import (
	"fmt"
	"strings"

	"session-service/internal/location"
)

const fallback = "An unknown error occurred (no details available)"

// Humanize maps an arbitrary failure value to a readable message. It never
// panics and always returns a non-empty string.
func Humanize(v any) (msg string) {
	defer func() {
		if recover() != nil {
			msg = fallback
		}
	}()

	switch e := v.(type) {
	case *location.PositionError:
		return humanizePosition(e)
	case error:
		if e == nil {
			return fallback
		}
		if text := e.Error(); text != "" {
			return text
		}
		return fallback
	case string:
		if e != "" {
			return e
		}
		return fallback
	case nil:
		return fallback
	default:
		return coerce(v)
	}
}

func humanizePosition(e *location.PositionError) string {
	if e == nil {
		return fallback
	}
	switch e.Code {
	case location.CodePermissionDenied:
		return "Permission to access your location was denied"
	case location.CodePositionUnavailable:
		return "Your position is currently unavailable"
	case location.CodeTimeout:
		return "The location request timed out"
	default:
		return fmt.Sprintf("Location error %d: %s", e.Code, e.Message)
	}
}

// coerce stringifies anything else. Values whose textual form carries no
// detail (empty structs, empty maps, nils) degrade to the fixed fallback.
func coerce(v any) string {
	s := strings.TrimSpace(fmt.Sprint(v))
	switch s {
	case "", "{}", "&{}", "map[]", "<nil>":
		return fallback
	}
	return s
}
