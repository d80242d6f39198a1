package database

// Queries use "?" placeholders and are rebound per driver before execution.
// Both engines accept ON CONFLICT ... DO NOTHING and the TRUE/FALSE literals.
const (
	schemaVersionQuery = "SELECT value FROM metadata WHERE key = 'schema_version'"

	roleIdQuery = "SELECT roles_id FROM roles WHERE role = ?"
	userIdQuery = "SELECT users_id FROM users WHERE login = ?"
	roomIdQuery = "SELECT rooms_id FROM rooms WHERE room = ?"

	listRolesQuery = "SELECT roles_id, role FROM roles ORDER BY roles_id"

	createRoomQuery = "INSERT INTO rooms (room, unixtime) VALUES (?, ?) " +
		"ON CONFLICT (room) DO NOTHING"
	deleteRoomQuery = "DELETE FROM rooms WHERE room = ?"
	roomExistsQuery = "SELECT EXISTS (SELECT 1 FROM rooms WHERE room = ?)"
	listRoomsQuery  = "SELECT room FROM rooms ORDER BY rooms_id"
	renameRoomQuery = "UPDATE rooms SET room = ? WHERE room = ?"

	createUserQuery = "INSERT INTO users (login, name, password_hash, roles_id, is_deleted, unixtime) " +
		"VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (login) DO NOTHING"
	setUserDeletedQuery = "UPDATE users SET is_deleted = TRUE WHERE login = ?"
	userExistsQuery     = "SELECT EXISTS (SELECT 1 FROM users WHERE login = ?)"
	activeUserQuery     = "SELECT EXISTS (SELECT 1 FROM users WHERE login = ? AND is_deleted = FALSE)"
	renameUserQuery     = "UPDATE users SET name = ? WHERE login = ?"

	// A user row may only go once nothing references it: no memberships
	// and no authored messages.
	unreferencedUser = `
		NOT EXISTS (SELECT 1 FROM user_rooms WHERE user_rooms.users_id = users.users_id)
		AND NOT EXISTS (SELECT 1 FROM messages WHERE messages.users_id = users.users_id)`

	hardDeleteUserQuery = "DELETE FROM users WHERE login = ? AND is_deleted = TRUE AND" +
		unreferencedUser
	sweepDeletedUsersQuery = "DELETE FROM users WHERE is_deleted = TRUE AND" +
		unreferencedUser

	selectUsers = `
		SELECT
			u.login,
			u.name,
			u.password_hash,
			r.role,
			u.is_deleted,
			u.unixtime
		FROM users AS u
		JOIN roles AS r ON u.roles_id = r.roles_id`

	getUserQuery          = selectUsers + " WHERE u.login = ?"
	listAllUsersQuery     = selectUsers + " ORDER BY u.users_id"
	listActiveUsersQuery  = selectUsers + " WHERE u.is_deleted = FALSE ORDER BY u.users_id"
	listDeletedUsersQuery = selectUsers + " WHERE u.is_deleted = TRUE ORDER BY u.users_id"

	selectRoomUsers = selectUsers + `
		JOIN user_rooms AS ur ON u.users_id = ur.users_id
		JOIN rooms AS rm ON ur.rooms_id = rm.rooms_id
		WHERE rm.room = ?`

	listRoomUsersQuery       = selectRoomUsers + " ORDER BY ur.user_rooms_id"
	listRoomActiveUsersQuery = selectRoomUsers + " AND u.is_deleted = FALSE ORDER BY ur.user_rooms_id"

	addUserToRoomQuery = "INSERT INTO user_rooms (users_id, rooms_id) VALUES (?, ?) " +
		"ON CONFLICT (users_id, rooms_id) DO NOTHING"
	removeUserFromRoomQuery = `
		DELETE FROM user_rooms
		WHERE users_id = (SELECT users_id FROM users WHERE login = ?)
			AND rooms_id = (SELECT rooms_id FROM rooms WHERE room = ?)`
	listUserRoomsQuery = `
		SELECT r.room
		FROM rooms AS r
		JOIN user_rooms AS ur ON r.rooms_id = ur.rooms_id
		JOIN users AS u ON u.users_id = ur.users_id
		WHERE u.login = ?
		ORDER BY ur.user_rooms_id`
	roomMembershipsQuery = `
		SELECT r.room, u.login
		FROM user_rooms AS ur
		JOIN rooms AS r ON ur.rooms_id = r.rooms_id
		JOIN users AS u ON ur.users_id = u.users_id
		ORDER BY ur.user_rooms_id`

	insertMessageQuery = `
		INSERT INTO messages (message, unixtime, users_id, rooms_id, date, time, number_message_in_room)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	selectMessages = `
		SELECT
			m.messages_id,
			m.message,
			u.login AS user_login,
			r.room,
			m.unixtime,
			m.date,
			m.time,
			m.number_message_in_room
		FROM messages AS m
		JOIN users AS u ON m.users_id = u.users_id
		JOIN rooms AS r ON m.rooms_id = r.rooms_id
		WHERE r.room = ?`

	messageRangeQuery = selectMessages + `
		AND m.number_message_in_room BETWEEN ? AND ?
		ORDER BY m.number_message_in_room ASC, m.messages_id ASC`
	recentMessagesQuery = selectMessages + `
		ORDER BY m.number_message_in_room DESC, m.messages_id DESC
		LIMIT ?`
	messagesBeforeQuery = selectMessages + `
		AND m.number_message_in_room < ?
		ORDER BY m.number_message_in_room DESC, m.messages_id DESC
		LIMIT ?`
	countRoomMessagesQuery = `
		SELECT COUNT(m.messages_id)
		FROM messages AS m
		JOIN rooms AS r ON m.rooms_id = r.rooms_id
		WHERE r.room = ?`
)
