package session

import (
	"sync"

	"session-service/internal/mocks"
	"session-service/internal/models"
)

// testDeps bundles the coordinator with its mocked collaborators.
type testDeps struct {
	users    *mocks.UserRepositoryMock
	groups   *mocks.GroupRepositoryMock
	messages *mocks.MessageRepositoryMock
	ai       *mocks.ResponderMock
	media    *mocks.CaptureMock
	location *mocks.ProviderMock
	notifier *mocks.NotifierMock
}

func newTestCoordinator(withNotifier bool) (*Coordinator, *testDeps) {
	d := &testDeps{
		users:    new(mocks.UserRepositoryMock),
		groups:   new(mocks.GroupRepositoryMock),
		messages: new(mocks.MessageRepositoryMock),
		ai:       new(mocks.ResponderMock),
		media:    new(mocks.CaptureMock),
		location: new(mocks.ProviderMock),
		notifier: new(mocks.NotifierMock),
	}
	deps := Deps{
		Users:    d.users,
		Groups:   d.groups,
		Messages: d.messages,
		AI:       d.ai,
		Media:    d.media,
		Location: d.location,
	}
	if withNotifier {
		deps.Notifier = d.notifier
	}
	return New(deps), d
}

// snapshotRecorder captures the snapshot sequence a coordinator emits.
type snapshotRecorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *snapshotRecorder) record(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *snapshotRecorder) all() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snaps...)
}

func testUser(id, name string) *models.User {
	return &models.User{ID: id, Name: name}
}

func testChat(targetID, name string) *models.Chat {
	return &models.Chat{Kind: models.ChatKindUser, TargetID: targetID, Name: name}
}

// seedSession puts a current user and active chat in place without touching
// the directory repositories.
func seedSession(c *Coordinator, user *models.User, chat *models.Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentUser = user
	c.activeChat = chat
}
