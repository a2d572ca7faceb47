// Package session owns the authoritative in-memory view of the current
// user's conversation state and arbitrates message delivery, call lifecycle
// and notification raising.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"session-service/internal/ai"
	"session-service/internal/media"
	"session-service/internal/models"
	"session-service/internal/notify"
	"session-service/internal/presence"
	"session-service/internal/repositories"

	locpkg "session-service/internal/location"
)

// Snapshot is an immutable view of the session state, emitted to listeners
// on every change.
type Snapshot struct {
	CurrentUser     *models.User     `json:"current_user,omitempty"`
	Users           []models.User    `json:"users"`
	Groups          []models.Group   `json:"groups"`
	ActiveChat      *models.Chat     `json:"active_chat,omitempty"`
	Messages        []models.Message `json:"messages"`
	CallKind        models.CallKind  `json:"call_kind"`
	CallViewVisible bool             `json:"call_view_visible"`
	StreamID        string           `json:"stream_id,omitempty"`
	AILoading       bool             `json:"ai_loading"`
	Visible         bool             `json:"visible"`
}

// Listener receives snapshots synchronously while the coordinator lock is
// held; it must not call back into the coordinator.
type Listener func(Snapshot)

// Deps are the boundary collaborators the coordinator is wired with.
type Deps struct {
	Users    repositories.UserRepository
	Groups   repositories.GroupRepository
	Messages repositories.MessageRepository
	AI       ai.Responder
	Media    media.Capture
	Location locpkg.Provider
	Notifier notify.Notifier
	Presence *presence.Tracker
	Log      *zap.Logger

	// MaintenanceUserName is the startup directory-repair target; empty
	// disables the repair.
	MaintenanceUserName string
}

// Coordinator is the top-level session owner. All operations are serialized
// by one mutex, including awaited collaborator calls: the Go translation of
// the single-threaded cooperative model the session assumes.
type Coordinator struct {
	deps Deps
	log  *zap.Logger

	mu              sync.Mutex
	started         bool
	currentUser     *models.User
	users           []models.User
	groups          []models.Group
	activeChat      *models.Chat
	messages        []models.Message
	callKind        models.CallKind
	callViewVisible bool
	stream          *media.Stream
	aiLoading       bool
	visible         bool
	lastNotifiedID  string
	listeners       []Listener
}

// New builds a Coordinator. Start must be called once before use.
func New(deps Deps) *Coordinator {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{deps: deps, log: log, callKind: models.CallNone}
}

// Subscribe registers a listener for state snapshots.
func (c *Coordinator) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Start runs the once-per-session startup work: request notification
// permission if still default, run the directory-repair hook, and load the
// user and group directories.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}
	c.started = true

	if c.deps.Notifier != nil && c.deps.Notifier.Permission() == notify.PermissionDefault {
		c.deps.Notifier.RequestPermission(ctx)
	}

	if name := c.deps.MaintenanceUserName; name != "" {
		removed, err := c.deps.Users.DeleteUserByName(ctx, name)
		if err != nil {
			c.log.Warn("directory repair failed", zap.String("name", name), zap.Error(err))
		} else if removed {
			c.log.Info("directory repair removed user", zap.String("name", name))
		}
	}

	if err := c.reloadDirectoriesLocked(ctx); err != nil {
		return err
	}
	c.emitLocked()
	return nil
}

func (c *Coordinator) reloadDirectoriesLocked(ctx context.Context) error {
	users, err := c.deps.Users.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	groups, err := c.deps.Groups.GetGroups(ctx)
	if err != nil {
		return fmt.Errorf("load groups: %w", err)
	}
	c.users = users
	c.groups = groups
	return nil
}

// SetCurrentUser switches the session identity. A non-nil user is marked
// online in the directory, a local presence simulation.
func (c *Coordinator) SetCurrentUser(ctx context.Context, user *models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if user == nil {
		c.currentUser = nil
		c.emitLocked()
		return nil
	}

	u := *user
	u.Online = true
	c.currentUser = &u

	users, err := c.deps.Users.UpdateUser(ctx, u)
	if err != nil {
		c.emitLocked()
		return fmt.Errorf("mark user online: %w", err)
	}
	c.users = users
	c.deps.Presence.MarkOnline(ctx, u.ID)
	c.emitLocked()
	return nil
}

// SelectChat switches the active chat, reloads its message list from
// persistence and resets the notification dedupe token. A nil chat clears
// the selection.
func (c *Coordinator) SelectChat(ctx context.Context, chat *models.Chat) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastNotifiedID = ""
	if chat == nil {
		c.activeChat = nil
		c.messages = nil
		c.emitLocked()
		return nil
	}

	selected := *chat
	c.activeChat = &selected

	msgs, err := c.deps.Messages.GetMessages(ctx, selected.ID())
	if err != nil {
		c.messages = nil
		c.emitLocked()
		return fmt.Errorf("load messages: %w", err)
	}
	c.messages = msgs
	c.emitLocked()
	c.dispatchNotificationsLocked(ctx)
	return nil
}

// SetVisible records whether the application is foregrounded. Notifications
// are raised only while backgrounded.
func (c *Coordinator) SetVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = visible
	c.emitLocked()
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Chats derives the selectable conversation list from the directories,
// excluding the current user.
func (c *Coordinator) Chats() []models.Chat {
	c.mu.Lock()
	defer c.mu.Unlock()

	chats := make([]models.Chat, 0, len(c.users)+len(c.groups))
	for _, u := range c.users {
		if c.currentUser != nil && u.ID == c.currentUser.ID {
			continue
		}
		chats = append(chats, models.Chat{Kind: models.ChatKindUser, TargetID: u.ID, Name: u.Name})
	}
	for _, g := range c.groups {
		chats = append(chats, models.Chat{Kind: models.ChatKindGroup, TargetID: g.ID, Name: g.Name})
	}
	return chats
}

func (c *Coordinator) snapshotLocked() Snapshot {
	snap := Snapshot{
		Users:           append([]models.User(nil), c.users...),
		Groups:          append([]models.Group(nil), c.groups...),
		Messages:        append([]models.Message(nil), c.messages...),
		CallKind:        c.callKind,
		CallViewVisible: c.callViewVisible,
		AILoading:       c.aiLoading,
		Visible:         c.visible,
	}
	if c.currentUser != nil {
		u := *c.currentUser
		snap.CurrentUser = &u
	}
	if c.activeChat != nil {
		chat := *c.activeChat
		snap.ActiveChat = &chat
	}
	if c.stream != nil {
		snap.StreamID = c.stream.ID
	}
	return snap
}

func (c *Coordinator) emitLocked() {
	snap := c.snapshotLocked()
	for _, l := range c.listeners {
		l(snap)
	}
}
