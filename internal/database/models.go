package database

// Seeded role names.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	Id   int64  `db:"roles_id"`
	Name string `db:"role"`
}

type Room struct {
	Id        int64  `db:"rooms_id"`
	Name      string `db:"room"`
	CreatedAt int64  `db:"unixtime"`
}

// User is a users row with its role name joined in.
type User struct {
	Login        string `db:"login"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	IsDeleted    bool   `db:"is_deleted"`
	RegisteredAt int64  `db:"unixtime"`
}

// Message is a messages row with the author login and room name joined in.
type Message struct {
	Id        int64  `db:"messages_id"`
	Text      string `db:"message"`
	UnixTime  int64  `db:"unixtime"`
	UserLogin string `db:"user_login"`
	Room      string `db:"room"`
	Date      string `db:"date"`
	Time      string `db:"time"`
	SeqInRoom int64  `db:"number_message_in_room"`
}

type CreateUserParams struct {
	Login        string
	Name         string
	PasswordHash string
	Role         string
	IsDeleted    bool
	RegisteredAt int64
}

type InsertMessageParams struct {
	Text      string
	UnixTime  int64
	Login     string
	Room      string
	SeqInRoom int64
}

// RoomMembers maps a room name to the set of member logins.
type RoomMembers map[string]map[string]struct{}

const (
	metricRoomsCreated       = "RoomsCreated"
	metricRoomsDeleted       = "RoomsDeleted"
	metricUsersCreated       = "UsersCreated"
	metricUsersDeleted       = "UsersDeleted"
	metricUsersSwept         = "UsersSwept"
	metricMembershipsAdded   = "MembershipsAdded"
	metricMembershipsRemoved = "MembershipsRemoved"
	metricMessagesInserted   = "MessagesInserted"
	metricStoreErrors        = "StoreErrors"
)

var metricNames = []string{
	metricRoomsCreated,
	metricRoomsDeleted,
	metricUsersCreated,
	metricUsersDeleted,
	metricUsersSwept,
	metricMembershipsAdded,
	metricMembershipsRemoved,
	metricMessagesInserted,
	metricStoreErrors,
}
