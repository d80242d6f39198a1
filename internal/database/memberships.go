package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// AddUserToRoom makes the user a member of the room. Both must exist;
// adding an existing member is a no-op.
func (s *ChatStore) AddUserToRoom(ctx context.Context, login, room string) error {
	var added bool
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		userId, err := lookupId(ctx, tx, userIdQuery, login, ErrUserNotFound)
		if err != nil {
			return err
		}

		roomId, err := lookupId(ctx, tx, roomIdQuery, room, ErrRoomNotFound)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(addUserToRoomQuery), userId, roomId)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		added = err == nil && n > 0
		return nil
	})
	if err != nil {
		return s.check("add user to room", err)
	}

	if added {
		s.stats.Incr(metricMembershipsAdded)
	}

	return nil
}

// RemoveUserFromRoom deletes the membership if there is one.
func (s *ChatStore) RemoveUserFromRoom(ctx context.Context, login, room string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(removeUserFromRoomQuery), login, room)
	if err != nil {
		return s.fail("remove user from room", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		s.stats.Incr(metricMembershipsRemoved)
	}

	return nil
}

func (s *ChatStore) ListUserRooms(ctx context.Context, login string) ([]string, error) {
	rooms := make([]string, 0)
	if err := s.db.SelectContext(ctx, &rooms, s.db.Rebind(listUserRoomsQuery), login); err != nil {
		return nil, s.fail("list user rooms", err)
	}
	return rooms, nil
}

// ListRoomActiveUsers returns the members of room that are not soft-deleted.
func (s *ChatStore) ListRoomActiveUsers(ctx context.Context, room string) ([]User, error) {
	return s.listUsers(ctx, "list room active users", listRoomActiveUsersQuery, room)
}

// ListRoomUsers returns every member of room, soft-deleted ones included.
func (s *ChatStore) ListRoomUsers(ctx context.Context, room string) ([]User, error) {
	return s.listUsers(ctx, "list room users", listRoomUsersQuery, room)
}

// RoomsWithRegisteredUsers returns the full membership snapshot. Unlike
// ListRoomActiveUsers it does not filter out soft-deleted users, and rooms
// without members are absent.
func (s *ChatStore) RoomsWithRegisteredUsers(ctx context.Context) (RoomMembers, error) {
	rows, err := s.db.QueryxContext(ctx, roomMembershipsQuery)
	if err != nil {
		return nil, s.fail("rooms with registered users", err)
	}
	defer rows.Close()

	members := make(RoomMembers)
	for rows.Next() {
		var room, login string
		if err := rows.Scan(&room, &login); err != nil {
			return nil, s.fail("rooms with registered users", err)
		}

		if _, ok := members[room]; !ok {
			members[room] = make(map[string]struct{})
		}
		members[room][login] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, s.fail("rooms with registered users", err)
	}

	return members, nil
}
