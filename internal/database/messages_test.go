package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertMessages(t *testing.T, s *ChatStore, room, login string, seqs ...int64) {
	t.Helper()
	for _, seq := range seqs {
		require.NoError(t, s.InsertMessage(context.Background(), InsertMessageParams{
			Text:      "message",
			UnixTime:  1000 + seq,
			Login:     login,
			Room:      room,
			SeqInRoom: seq,
		}))
	}
}

func seqNumbers(messages []Message) []int64 {
	seqs := make([]int64, 0, len(messages))
	for _, m := range messages {
		seqs = append(seqs, m.SeqInRoom)
	}
	return seqs
}

func TestInsertMessage(t *testing.T) {
	ctx := context.Background()
	s, su := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")

	require.NoError(t, s.InsertMessage(ctx, InsertMessageParams{
		Text:      "hello",
		UnixTime:  1700000000,
		Login:     "alice",
		Room:      "lobby",
		SeqInRoom: 7,
	}))

	messages, err := s.RecentMessages(ctx, "lobby", 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.NotZero(t, msg.Id)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, int64(1700000000), msg.UnixTime)
	assert.Equal(t, "alice", msg.UserLogin)
	assert.Equal(t, "lobby", msg.Room)
	assert.Equal(t, "2023-11-14", msg.Date, "expected date derived from unixtime")
	assert.Equal(t, "22:13:20", msg.Time, "expected time derived from unixtime")
	assert.Equal(t, int64(7), msg.SeqInRoom)

	su.Flush()
	assert.Equal(t, int64(1), su.Value(metricMessagesInserted))
}

func TestInsertMessageUnresolved(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")

	tcases := []struct {
		name  string
		login string
		room  string
		err   error
	}{
		{name: "unknown user", login: "nobody", room: "lobby", err: ErrUserNotFound},
		{name: "unknown room", login: "alice", room: "attic", err: ErrRoomNotFound},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.InsertMessage(ctx, InsertMessageParams{
				Text: "lost", UnixTime: 1000, Login: tc.login, Room: tc.room, SeqInRoom: 1,
			})
			assert.ErrorIs(t, err, tc.err)
		})
	}

	count, err := s.CountRoomMessages(ctx, "lobby")
	require.NoError(t, err)
	assert.Zero(t, count, "expected nothing to be inserted")
}

func TestInsertMessageKeepsCallerSequence(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")

	insertMessages(t, s, "lobby", "alice", 5, 5, 2)

	messages, err := s.MessageRange(ctx, "lobby", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 5}, seqNumbers(messages), "expected duplicates and gaps to be stored as given")
}

func TestCountRoomMessages(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")
	mustCreateRoom(t, s, "hall")

	count, err := s.CountRoomMessages(ctx, "nonexistent-room")
	require.NoError(t, err)
	assert.Equal(t, 0, count, "expected 0 for an unknown room")

	insertMessages(t, s, "lobby", "alice", 1, 2, 3)
	insertMessages(t, s, "hall", "alice", 1)

	count, err = s.CountRoomMessages(ctx, "lobby")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMessageRange(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")
	mustCreateRoom(t, s, "hall")

	insertMessages(t, s, "lobby", "alice", 6, 1, 9, 3, 10, 2, 7, 5, 8, 4)
	insertMessages(t, s, "hall", "alice", 4, 5)

	tcases := []struct {
		name     string
		begin    int64
		end      int64
		expected []int64
	}{
		{name: "inner range", begin: 3, end: 7, expected: []int64{3, 4, 5, 6, 7}},
		{name: "single message", begin: 10, end: 10, expected: []int64{10}},
		{name: "beyond the end", begin: 9, end: 100, expected: []int64{9, 10}},
		{name: "empty range", begin: 11, end: 20, expected: []int64{}},
		{name: "inverted bounds", begin: 7, end: 3, expected: []int64{}},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			messages, err := s.MessageRange(ctx, "lobby", tc.begin, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, seqNumbers(messages), "expected sorted inclusive range")
			for _, m := range messages {
				assert.Equal(t, "lobby", m.Room)
			}
		})
	}
}

func TestRecentMessagesAndMessagesBefore(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateUser(t, s, "alice")
	mustCreateRoom(t, s, "lobby")

	seqs := make([]int64, 0, 60)
	for i := int64(1); i <= 60; i++ {
		seqs = append(seqs, i)
	}
	insertMessages(t, s, "lobby", "alice", seqs...)

	recent, err := s.RecentMessages(ctx, "lobby", 0)
	require.NoError(t, err)
	require.Len(t, recent, defaultMessageLimit, "expected default limit")
	assert.Equal(t, int64(60), recent[0].SeqInRoom, "expected newest first")
	assert.Equal(t, int64(11), recent[len(recent)-1].SeqInRoom)

	recent, err = s.RecentMessages(ctx, "lobby", 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{60, 59, 58}, seqNumbers(recent))

	before, err := s.MessagesBefore(ctx, "lobby", 58, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{57, 56, 55}, seqNumbers(before))

	before, err = s.MessagesBefore(ctx, "lobby", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, seqNumbers(before))
}

func TestLobbyScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.CreateRoom(ctx, "lobby", 1000))
	require.NoError(t, s.CreateUser(ctx, CreateUserParams{
		Login:        "alice",
		Name:         "Alice",
		PasswordHash: "hash",
		Role:         RoleUser,
		RegisteredAt: 1000,
	}))
	require.NoError(t, s.AddUserToRoom(ctx, "alice", "lobby"))
	require.NoError(t, s.InsertMessage(ctx, InsertMessageParams{
		Text: "hi", UnixTime: 1001, Login: "alice", Room: "lobby", SeqInRoom: 1,
	}))

	count, err := s.CountRoomMessages(ctx, "lobby")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	users, err := s.ListRoomActiveUsers(ctx, "lobby")
	require.NoError(t, err)
	assert.Equal(t, []User{{
		Login:        "alice",
		Name:         "Alice",
		PasswordHash: "hash",
		Role:         RoleUser,
		IsDeleted:    false,
		RegisteredAt: 1000,
	}}, users)
}
