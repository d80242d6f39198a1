package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// CreateRoom inserts the room unless one with the same name exists; both
// outcomes are a success.
func (s *ChatStore) CreateRoom(ctx context.Context, name string, createdAt int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(createRoomQuery), name, createdAt)
	if err != nil {
		return s.fail("create room", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		s.stats.Incr(metricRoomsCreated)
	}

	return nil
}

// DeleteRoom removes the room together with its memberships and messages,
// then sweeps soft-deleted users left without rooms. Only the delete itself
// decides the result; a failed sweep is logged.
func (s *ChatStore) DeleteRoom(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(deleteRoomQuery), name)
	if err != nil {
		return s.fail("delete room", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		s.stats.Incr(metricRoomsDeleted)
	}

	if _, err := s.SweepDeletedUsersWithoutRoom(ctx); err != nil {
		s.log.Printf("sweep after deleting room %q: %v", name, err)
	}

	return nil
}

func (s *ChatStore) RoomExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, s.db.Rebind(roomExistsQuery), name); err != nil {
		return false, s.fail("room exists", err)
	}
	return exists, nil
}

// ListRooms returns every room name in creation order.
func (s *ChatStore) ListRooms(ctx context.Context) ([]string, error) {
	rooms := make([]string, 0)
	if err := s.db.SelectContext(ctx, &rooms, listRoomsQuery); err != nil {
		return nil, s.fail("list rooms", err)
	}
	return rooms, nil
}

// RenameRoom fails with ErrConflict when newName is taken and with
// ErrRoomNotFound when oldName does not exist.
func (s *ChatStore) RenameRoom(ctx context.Context, oldName, newName string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(renameRoomQuery), newName, oldName)
	if err != nil {
		return s.fail("rename room", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.check("rename room", ErrRoomNotFound)
	}

	return nil
}

// lookupId resolves a name to its primary key, returning notFound when no
// row matches.
func lookupId(ctx context.Context, q sqlx.ExtContext, query, name string, notFound error) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, q, &id, q.Rebind(query), name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, notFound
	}
	return id, err
}

func (s *ChatStore) ListRoles(ctx context.Context) ([]Role, error) {
	roles := make([]Role, 0, 2)
	if err := s.db.SelectContext(ctx, &roles, listRolesQuery); err != nil {
		return nil, s.fail("list roles", err)
	}
	return roles, nil
}
