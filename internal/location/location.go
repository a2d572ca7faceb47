package location

import (
	"context"
	"fmt"

	"session-service/internal/models"
)

// Position error codes, matching the geolocation failure shape.
const (
	CodePermissionDenied    = 1
	CodePositionUnavailable = 2
	CodeTimeout             = 3
)

// PositionError is the structured failure a location lookup may produce.
type PositionError struct {
	Code    int
	Message string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position error %d: %s", e.Code, e.Message)
}

// Provider resolves the device's current coordinates. Lookups may fail with
// either a *PositionError or a generic error.
type Provider interface {
	CurrentLocation(ctx context.Context) (models.Coordinates, error)
}

// Static is a Provider pinned to configured coordinates. It stands in for a
// real positioning device.
type Static struct {
	coords models.Coordinates
}

// NewStatic builds a Static provider.
func NewStatic(lat, lon, accuracy float64) *Static {
	return &Static{coords: models.Coordinates{Latitude: lat, Longitude: lon, Accuracy: accuracy}}
}

// CurrentLocation returns the configured coordinates.
func (s *Static) CurrentLocation(ctx context.Context) (models.Coordinates, error) {
	select {
	case <-ctx.Done():
		return models.Coordinates{}, &PositionError{Code: CodeTimeout, Message: ctx.Err().Error()}
	default:
	}
	return s.coords, nil
}
