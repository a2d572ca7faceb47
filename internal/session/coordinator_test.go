package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"session-service/internal/mocks"
	"session-service/internal/models"
	"session-service/internal/notify"
)

func TestStartRequestsPermissionAndLoadsDirectories(t *testing.T) {
	c, d := newTestCoordinator(true)

	d.notifier.On("Permission").Return(notify.PermissionDefault).Once()
	d.notifier.On("RequestPermission", mock.Anything).Once()
	d.users.On("GetUsers", mock.Anything).Return([]models.User{{ID: "u1", Name: "Alice"}}, nil).Once()
	d.groups.On("GetGroups", mock.Anything).Return([]models.Group{{ID: "g1", Name: "Team"}}, nil).Once()

	require.NoError(t, c.Start(context.Background()))

	snap := c.Snapshot()
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Groups, 1)
	d.notifier.AssertExpectations(t)
	d.users.AssertExpectations(t)
	d.groups.AssertExpectations(t)
}

func TestStartSkipsPermissionRequestWhenGranted(t *testing.T) {
	c, d := newTestCoordinator(true)

	d.notifier.On("Permission").Return(notify.PermissionGranted).Once()
	d.users.On("GetUsers", mock.Anything).Return(nil, nil).Once()
	d.groups.On("GetGroups", mock.Anything).Return(nil, nil).Once()

	require.NoError(t, c.Start(context.Background()))
	d.notifier.AssertNotCalled(t, "RequestPermission", mock.Anything)
}

func TestStartRunsDirectoryRepair(t *testing.T) {
	d := &testDeps{
		users:    new(mocks.UserRepositoryMock),
		groups:   new(mocks.GroupRepositoryMock),
		messages: new(mocks.MessageRepositoryMock),
	}
	c := New(Deps{
		Users:               d.users,
		Groups:              d.groups,
		Messages:            d.messages,
		MaintenanceUserName: "ghost",
	})

	d.users.On("DeleteUserByName", mock.Anything, "ghost").Return(true, nil).Once()
	d.users.On("GetUsers", mock.Anything).Return([]models.User{{ID: "u1"}}, nil).Once()
	d.groups.On("GetGroups", mock.Anything).Return(nil, nil).Once()

	require.NoError(t, c.Start(context.Background()))
	d.users.AssertExpectations(t)
}

func TestStartIsOncePerSession(t *testing.T) {
	c, d := newTestCoordinator(false)

	d.users.On("GetUsers", mock.Anything).Return(nil, nil).Once()
	d.groups.On("GetGroups", mock.Anything).Return(nil, nil).Once()

	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Start(context.Background()))

	d.users.AssertNumberOfCalls(t, "GetUsers", 1)
}

func TestSetCurrentUserMarksOnline(t *testing.T) {
	c, d := newTestCoordinator(false)

	d.users.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.ID == "u1" && u.Online
	})).Return([]models.User{{ID: "u1", Name: "Alice", Online: true}}, nil).Once()

	require.NoError(t, c.SetCurrentUser(context.Background(), testUser("u1", "Alice")))

	snap := c.Snapshot()
	require.NotNil(t, snap.CurrentUser)
	assert.True(t, snap.CurrentUser.Online)
	require.Len(t, snap.Users, 1)
	assert.True(t, snap.Users[0].Online)
	d.users.AssertExpectations(t)
}

func TestSetCurrentUserNilClearsIdentity(t *testing.T) {
	c, d := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), nil)

	require.NoError(t, c.SetCurrentUser(context.Background(), nil))
	assert.Nil(t, c.Snapshot().CurrentUser)
	d.users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestSelectChatReloadsMessages(t *testing.T) {
	c, d := newTestCoordinator(false)

	persisted := []models.Message{{ID: "m1", ChatID: "user:u2"}, {ID: "m2", ChatID: "user:u2"}}
	d.messages.On("GetMessages", mock.Anything, "user:u2").Return(persisted, nil).Twice()

	require.NoError(t, c.SelectChat(context.Background(), testChat("u2", "Bob")))
	first := c.Snapshot().Messages

	// Reloading is idempotent.
	require.NoError(t, c.SelectChat(context.Background(), testChat("u2", "Bob")))
	assert.Equal(t, first, c.Snapshot().Messages)
	require.Len(t, first, 2)
	d.messages.AssertExpectations(t)
}

func TestSelectChatClearsDedupeToken(t *testing.T) {
	c, d := newTestCoordinator(false)
	c.mu.Lock()
	c.lastNotifiedID = "stale"
	c.mu.Unlock()

	d.messages.On("GetMessages", mock.Anything, "user:u2").Return(nil, nil).Once()
	require.NoError(t, c.SelectChat(context.Background(), testChat("u2", "Bob")))

	c.mu.Lock()
	token := c.lastNotifiedID
	c.mu.Unlock()
	assert.Empty(t, token)
}

func TestSelectChatNilClearsSelection(t *testing.T) {
	c, _ := newTestCoordinator(false)
	seedSession(c, testUser("u1", "Alice"), testChat("u2", "Bob"))

	require.NoError(t, c.SelectChat(context.Background(), nil))
	snap := c.Snapshot()
	assert.Nil(t, snap.ActiveChat)
	assert.Empty(t, snap.Messages)
}

func TestSelectChatLoadFailure(t *testing.T) {
	c, d := newTestCoordinator(false)

	d.messages.On("GetMessages", mock.Anything, "user:u2").Return(nil, assert.AnError).Once()
	err := c.SelectChat(context.Background(), testChat("u2", "Bob"))
	require.Error(t, err)
	assert.Empty(t, c.Snapshot().Messages)
}

func TestChatsExcludesCurrentUser(t *testing.T) {
	c, _ := newTestCoordinator(false)
	c.mu.Lock()
	c.currentUser = testUser("u1", "Alice")
	c.users = []models.User{{ID: "u1", Name: "Alice"}, {ID: "u2", Name: "Bob"}}
	c.groups = []models.Group{{ID: "g1", Name: "Team"}}
	c.mu.Unlock()

	chats := c.Chats()
	require.Len(t, chats, 2)
	assert.Equal(t, models.ChatKindUser, chats[0].Kind)
	assert.Equal(t, "u2", chats[0].TargetID)
	assert.Equal(t, models.ChatKindGroup, chats[1].Kind)
}
