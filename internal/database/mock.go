package database

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockChatRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockChatRepository) SchemaVersion(ctx context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
func (m *MockChatRepository) ListRoles(ctx context.Context) ([]Role, error) {
	args := m.Called()
	return args.Get(0).([]Role), args.Error(1)
}
func (m *MockChatRepository) CreateRoom(ctx context.Context, name string, createdAt int64) error {
	args := m.Called(name, createdAt)
	return args.Error(0)
}
func (m *MockChatRepository) DeleteRoom(ctx context.Context, name string) error {
	args := m.Called(name)
	return args.Error(0)
}
func (m *MockChatRepository) RoomExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}
func (m *MockChatRepository) ListRooms(ctx context.Context) ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockChatRepository) RenameRoom(ctx context.Context, oldName, newName string) error {
	args := m.Called(oldName, newName)
	return args.Error(0)
}
func (m *MockChatRepository) CreateUser(ctx context.Context, params CreateUserParams) error {
	args := m.Called(params)
	return args.Error(0)
}
func (m *MockChatRepository) SetUserDeleted(ctx context.Context, login string) error {
	args := m.Called(login)
	return args.Error(0)
}
func (m *MockChatRepository) DeleteUser(ctx context.Context, login string) error {
	args := m.Called(login)
	return args.Error(0)
}
func (m *MockChatRepository) UserExists(ctx context.Context, login string) (bool, error) {
	args := m.Called(login)
	return args.Bool(0), args.Error(1)
}
func (m *MockChatRepository) IsActiveUser(ctx context.Context, login string) (bool, error) {
	args := m.Called(login)
	return args.Bool(0), args.Error(1)
}
func (m *MockChatRepository) RenameUser(ctx context.Context, login, newName string) error {
	args := m.Called(login, newName)
	return args.Error(0)
}
func (m *MockChatRepository) GetUser(ctx context.Context, login string) (User, error) {
	args := m.Called(login)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) ListAllUsers(ctx context.Context) ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockChatRepository) ListActiveUsers(ctx context.Context) ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockChatRepository) ListDeletedUsers(ctx context.Context) ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockChatRepository) SweepDeletedUsersWithoutRoom(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockChatRepository) AddUserToRoom(ctx context.Context, login, room string) error {
	args := m.Called(login, room)
	return args.Error(0)
}
func (m *MockChatRepository) RemoveUserFromRoom(ctx context.Context, login, room string) error {
	args := m.Called(login, room)
	return args.Error(0)
}
func (m *MockChatRepository) ListUserRooms(ctx context.Context, login string) ([]string, error) {
	args := m.Called(login)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockChatRepository) ListRoomActiveUsers(ctx context.Context, room string) ([]User, error) {
	args := m.Called(room)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockChatRepository) ListRoomUsers(ctx context.Context, room string) ([]User, error) {
	args := m.Called(room)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockChatRepository) RoomsWithRegisteredUsers(ctx context.Context) (RoomMembers, error) {
	args := m.Called()
	if members, ok := args.Get(0).(RoomMembers); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockChatRepository) InsertMessage(ctx context.Context, params InsertMessageParams) error {
	args := m.Called(params)
	return args.Error(0)
}
func (m *MockChatRepository) MessageRange(ctx context.Context, room string, begin, end int64) ([]Message, error) {
	args := m.Called(room, begin, end)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockChatRepository) RecentMessages(ctx context.Context, room string, limit int) ([]Message, error) {
	args := m.Called(room, limit)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockChatRepository) MessagesBefore(ctx context.Context, room string, before int64, limit int) ([]Message, error) {
	args := m.Called(room, before, limit)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockChatRepository) CountRoomMessages(ctx context.Context, room string) (int, error) {
	args := m.Called(room)
	return args.Int(0), args.Error(1)
}
