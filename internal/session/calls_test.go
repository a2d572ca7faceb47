package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"session-service/internal/media"
	"session-service/internal/models"
)

func TestInitiateCallNoActiveChatIsNoop(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), nil)

	require.NoError(t, c.InitiateCall(context.Background(), models.CallVideo))

	d.media.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything)
	assert.Equal(t, models.CallNone, c.Snapshot().CallKind)
}

func TestInitiateCallInvalidKind(t *testing.T) {
	c, _ := newTestCoordinator(false)
	require.Error(t, c.InitiateCall(context.Background(), models.CallNone))
}

func TestInitiateVideoCall(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), testChat("u2", "Bob"))

	stream := &media.Stream{ID: "s1", Tracks: []media.Track{{Kind: "audio"}, {Kind: "video"}}}
	d.media.On("Acquire", mock.Anything, false).Return(stream, nil).Once()
	d.messages.On("AddMessage", mock.Anything, "user:u2", mock.MatchedBy(func(m models.Message) bool {
		return m.Content == "Video call started (simulation)" && m.Type == models.MessageText
	})).Return([]models.Message{{ID: "m1"}}, nil).Once()

	require.NoError(t, c.InitiateCall(context.Background(), models.CallVideo))

	snap := c.Snapshot()
	assert.Equal(t, models.CallVideo, snap.CallKind)
	assert.True(t, snap.CallViewVisible)
	assert.Equal(t, "s1", snap.StreamID)
	d.media.AssertExpectations(t)
	d.messages.AssertExpectations(t)
}

func TestInitiateVoiceCallRequestsAudioOnly(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), testChat("u2", "Bob"))

	stream := &media.Stream{ID: "s1", Tracks: []media.Track{{Kind: "audio"}}}
	d.media.On("Acquire", mock.Anything, true).Return(stream, nil).Once()
	d.messages.On("AddMessage", mock.Anything, "user:u2", mock.MatchedBy(func(m models.Message) bool {
		return m.Content == "Voice call started (simulation)"
	})).Return([]models.Message{{ID: "m1"}}, nil).Once()

	require.NoError(t, c.InitiateCall(context.Background(), models.CallVoice))
	assert.Equal(t, models.CallVoice, c.Snapshot().CallKind)
	d.media.AssertExpectations(t)
}

func TestInitiateCallMediaFailure(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), testChat("u2", "Bob"))

	d.media.On("Acquire", mock.Anything, false).Return(nil, assert.AnError).Once()
	d.messages.On("AddMessage", mock.Anything, "user:u2", mock.MatchedBy(func(m models.Message) bool {
		return m.Content == "Could not start video call" && m.Type == models.MessageText
	})).Return([]models.Message{{ID: "m1"}}, nil).Once()

	require.NoError(t, c.InitiateCall(context.Background(), models.CallVideo))

	snap := c.Snapshot()
	assert.Equal(t, models.CallNone, snap.CallKind)
	assert.False(t, snap.CallViewVisible)
	assert.Empty(t, snap.StreamID)
	d.messages.AssertExpectations(t)
}

func TestEndCallResetsState(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), testChat("u2", "Bob"))

	stream := &media.Stream{ID: "s1"}
	d.media.On("Acquire", mock.Anything, false).Return(stream, nil).Once()
	d.messages.On("AddMessage", mock.Anything, "user:u2", mock.Anything).Return([]models.Message{{ID: "m1"}}, nil)
	require.NoError(t, c.InitiateCall(context.Background(), models.CallVideo))

	d.media.On("Release", mock.Anything, stream).Return(nil).Once()
	require.NoError(t, c.EndCall(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, models.CallNone, snap.CallKind)
	assert.False(t, snap.CallViewVisible)
	assert.Empty(t, snap.StreamID)
	d.media.AssertExpectations(t)
}

func TestEndCallToleratesReleaseFailure(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), testChat("u2", "Bob"))

	stream := &media.Stream{ID: "s1"}
	d.media.On("Acquire", mock.Anything, false).Return(stream, nil).Once()
	d.messages.On("AddMessage", mock.Anything, "user:u2", mock.Anything).Return([]models.Message{{ID: "m1"}}, nil)
	require.NoError(t, c.InitiateCall(context.Background(), models.CallVideo))

	d.media.On("Release", mock.Anything, stream).Return(assert.AnError).Once()
	require.NoError(t, c.EndCall(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, models.CallNone, snap.CallKind)
	assert.False(t, snap.CallViewVisible)
	assert.Empty(t, snap.StreamID)
}

func TestEndCallWithoutChatSkipsStatusMessage(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), nil)

	d.media.On("Release", mock.Anything, (*media.Stream)(nil)).Return(nil).Once()
	require.NoError(t, c.EndCall(context.Background()))

	d.messages.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything, mock.Anything)
	d.media.AssertExpectations(t)
}
