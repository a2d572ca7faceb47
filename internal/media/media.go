package media

import (
	"context"

	"github.com/google/uuid"
)

// Track is a single captured media track.
type Track struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // audio or video
}

// Stream is a live local capture handle. It is exclusively owned by the
// call lifecycle; nothing else may touch it.
type Stream struct {
	ID     string  `json:"id"`
	Tracks []Track `json:"tracks"`
}

// Capture acquires and releases local media. Acquire may fail; Release is
// best-effort from the caller's perspective.
type Capture interface {
	Acquire(ctx context.Context, audioOnly bool) (*Stream, error)
	Release(ctx context.Context, stream *Stream) error
}

// LocalDevice simulates a local capture device. No real peer connection
// exists; call setup only echoes status messages.
type LocalDevice struct{}

// NewLocalDevice builds a LocalDevice.
func NewLocalDevice() *LocalDevice {
	return &LocalDevice{}
}

// Acquire returns a fresh simulated stream, audio-only or audio+video.
func (d *LocalDevice) Acquire(ctx context.Context, audioOnly bool) (*Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracks := []Track{{ID: uuid.NewString(), Kind: "audio"}}
	if !audioOnly {
		tracks = append(tracks, Track{ID: uuid.NewString(), Kind: "video"})
	}
	return &Stream{ID: uuid.NewString(), Tracks: tracks}, nil
}

// Release drops the stream handle.
func (d *LocalDevice) Release(ctx context.Context, stream *Stream) error {
	return nil
}
