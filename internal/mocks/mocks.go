package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"session-service/internal/ai"
	"session-service/internal/location"
	"session-service/internal/media"
	"session-service/internal/models"
	"session-service/internal/notify"
	"session-service/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) UpdateUser(ctx context.Context, user models.User) ([]models.User, error) {
	args := m.Called(ctx, user)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) DeleteUserByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type GroupRepositoryMock struct {
	mock.Mock
}

func (m *GroupRepositoryMock) GetGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	var groups []models.Group
	if val := args.Get(0); val != nil {
		groups = val.([]models.Group)
	}
	return groups, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) GetMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) AddMessage(ctx context.Context, chatID string, msg models.Message) ([]models.Message, error) {
	args := m.Called(ctx, chatID, msg)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type ResponderMock struct {
	mock.Mock
}

func (m *ResponderMock) Ask(ctx context.Context, query string, asking models.User) (*models.Message, error) {
	args := m.Called(ctx, query, asking)
	var msg *models.Message
	if val := args.Get(0); val != nil {
		msg = val.(*models.Message)
	}
	return msg, args.Error(1)
}

type CaptureMock struct {
	mock.Mock
}

func (m *CaptureMock) Acquire(ctx context.Context, audioOnly bool) (*media.Stream, error) {
	args := m.Called(ctx, audioOnly)
	var stream *media.Stream
	if val := args.Get(0); val != nil {
		stream = val.(*media.Stream)
	}
	return stream, args.Error(1)
}

func (m *CaptureMock) Release(ctx context.Context, stream *media.Stream) error {
	args := m.Called(ctx, stream)
	return args.Error(0)
}

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) CurrentLocation(ctx context.Context) (models.Coordinates, error) {
	args := m.Called(ctx)
	var coords models.Coordinates
	if val := args.Get(0); val != nil {
		coords = val.(models.Coordinates)
	}
	return coords, args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Permission() notify.Permission {
	args := m.Called()
	return args.Get(0).(notify.Permission)
}

func (m *NotifierMock) RequestPermission(ctx context.Context) {
	m.Called(ctx)
}

func (m *NotifierMock) Send(ctx context.Context, n notify.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.GroupRepository = (*GroupRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ ai.Responder = (*ResponderMock)(nil)
var _ media.Capture = (*CaptureMock)(nil)
var _ location.Provider = (*ProviderMock)(nil)
var _ notify.Notifier = (*NotifierMock)(nil)
