package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUserToRoom(t *testing.T) {
	ctx := context.Background()
	s, su := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")

	tcases := []struct {
		name  string
		login string
		room  string
		err   error
	}{
		{name: "new membership", login: "alice", room: "lobby"},
		{name: "existing membership", login: "alice", room: "lobby"},
		{name: "unknown user", login: "nobody", room: "lobby", err: ErrUserNotFound},
		{name: "unknown room", login: "alice", room: "attic", err: ErrRoomNotFound},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.AddUserToRoom(ctx, tc.login, tc.room)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			assert.NoError(t, err)
		})
	}

	var memberships int
	require.NoError(t, s.db.GetContext(ctx, &memberships, "SELECT COUNT(*) FROM user_rooms"))
	assert.Equal(t, 1, memberships, "expected exactly one membership row")

	su.Flush()
	assert.Equal(t, int64(1), su.Value(metricMembershipsAdded))
}

func TestRemoveUserFromRoom(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")
	mustCreateRoom(t, s, "hall")
	require.NoError(t, s.AddUserToRoom(ctx, "alice", "lobby"))
	require.NoError(t, s.AddUserToRoom(ctx, "alice", "hall"))

	require.NoError(t, s.RemoveUserFromRoom(ctx, "alice", "lobby"))
	require.NoError(t, s.RemoveUserFromRoom(ctx, "alice", "lobby"), "expected repeated removal to be a no-op")
	require.NoError(t, s.RemoveUserFromRoom(ctx, "nobody", "hall"), "expected unknown user to be a no-op")

	rooms, err := s.ListUserRooms(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"hall"}, rooms)
}

func TestListUserRooms(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateUser(t, s, "alice")

	rooms, err := s.ListUserRooms(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, rooms)

	for _, room := range []string{"lobby", "hall", "dev"} {
		mustCreateRoom(t, s, room)
	}
	require.NoError(t, s.AddUserToRoom(ctx, "alice", "dev"))
	require.NoError(t, s.AddUserToRoom(ctx, "alice", "lobby"))

	rooms, err = s.ListUserRooms(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "lobby"}, rooms, "expected rooms in join order")

	rooms, err = s.ListUserRooms(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRoomRosters(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateRoom(t, s, "lobby")
	mustCreateRoom(t, s, "hall")
	mustCreateRoom(t, s, "empty")
	for _, login := range []string{"alice", "bob", "carol"} {
		mustCreateUser(t, s, login)
		require.NoError(t, s.AddUserToRoom(ctx, login, "lobby"))
	}
	require.NoError(t, s.AddUserToRoom(ctx, "carol", "hall"))
	require.NoError(t, s.SetUserDeleted(ctx, "bob"))

	t.Run("active roster skips soft-deleted users", func(t *testing.T) {
		users, err := s.ListRoomActiveUsers(ctx, "lobby")
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Login)
		assert.Equal(t, "carol", users[1].Login)
		for _, u := range users {
			assert.False(t, u.IsDeleted)
			assert.Equal(t, RoleUser, u.Role)
		}
	})

	t.Run("full roster includes soft-deleted users", func(t *testing.T) {
		users, err := s.ListRoomUsers(ctx, "lobby")
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "bob", users[1].Login)
		assert.True(t, users[1].IsDeleted)
	})

	t.Run("unknown room", func(t *testing.T) {
		users, err := s.ListRoomActiveUsers(ctx, "attic")
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("membership snapshot", func(t *testing.T) {
		members, err := s.RoomsWithRegisteredUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, RoomMembers{
			"lobby": {"alice": {}, "bob": {}, "carol": {}},
			"hall":  {"carol": {}},
		}, members, "expected deleted members included and empty rooms absent")
	})
}
