package database

import "context"

type ChatRepository interface {
	Ping(ctx context.Context) error
	Close() error
	SchemaVersion(ctx context.Context) (string, error)
	ListRoles(ctx context.Context) ([]Role, error)

	CreateRoom(ctx context.Context, name string, createdAt int64) error
	DeleteRoom(ctx context.Context, name string) error
	RoomExists(ctx context.Context, name string) (bool, error)
	ListRooms(ctx context.Context) ([]string, error)
	RenameRoom(ctx context.Context, oldName, newName string) error

	CreateUser(ctx context.Context, params CreateUserParams) error
	SetUserDeleted(ctx context.Context, login string) error
	DeleteUser(ctx context.Context, login string) error
	UserExists(ctx context.Context, login string) (bool, error)
	IsActiveUser(ctx context.Context, login string) (bool, error)
	RenameUser(ctx context.Context, login, newName string) error
	GetUser(ctx context.Context, login string) (User, error)
	ListAllUsers(ctx context.Context) ([]User, error)
	ListActiveUsers(ctx context.Context) ([]User, error)
	ListDeletedUsers(ctx context.Context) ([]User, error)
	SweepDeletedUsersWithoutRoom(ctx context.Context) (int64, error)

	AddUserToRoom(ctx context.Context, login, room string) error
	RemoveUserFromRoom(ctx context.Context, login, room string) error
	ListUserRooms(ctx context.Context, login string) ([]string, error)
	ListRoomActiveUsers(ctx context.Context, room string) ([]User, error)
	ListRoomUsers(ctx context.Context, room string) ([]User, error)
	RoomsWithRegisteredUsers(ctx context.Context) (RoomMembers, error)

	InsertMessage(ctx context.Context, params InsertMessageParams) error
	MessageRange(ctx context.Context, room string, begin, end int64) ([]Message, error)
	RecentMessages(ctx context.Context, room string, limit int) ([]Message, error)
	MessagesBefore(ctx context.Context, room string, before int64, limit int) ([]Message, error)
	CountRoomMessages(ctx context.Context, room string) (int, error)
}

var _ ChatRepository = (*ChatStore)(nil)
