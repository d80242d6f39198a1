package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const defaultMessageLimit = 50

// InsertMessage stores a message authored by an existing user in an
// existing room. The display date and time are derived from UnixTime here
// and never recomputed. SeqInRoom is stored as given: ordering and
// uniqueness of sequence numbers are the caller's responsibility.
func (s *ChatStore) InsertMessage(ctx context.Context, params InsertMessageParams) error {
	date, clock := s.calendar.DateTime(params.UnixTime)

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		userId, err := lookupId(ctx, tx, userIdQuery, params.Login, ErrUserNotFound)
		if err != nil {
			return err
		}

		roomId, err := lookupId(ctx, tx, roomIdQuery, params.Room, ErrRoomNotFound)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(insertMessageQuery),
			params.Text,
			params.UnixTime,
			userId,
			roomId,
			date,
			clock,
			params.SeqInRoom,
		)
		return err
	})
	if err != nil {
		return s.check("insert message", err)
	}

	s.stats.Incr(metricMessagesInserted)

	return nil
}

// MessageRange returns the messages of room whose sequence number lies in
// [begin, end], ordered by sequence number.
func (s *ChatStore) MessageRange(ctx context.Context, room string, begin, end int64) ([]Message, error) {
	return s.listMessages(ctx, "message range", messageRangeQuery, room, begin, end)
}

// RecentMessages returns the newest limit messages of room, newest first.
// A non-positive limit means 50.
func (s *ChatStore) RecentMessages(ctx context.Context, room string, limit int) ([]Message, error) {
	return s.listMessages(ctx, "recent messages", recentMessagesQuery, room, messageLimit(limit))
}

// MessagesBefore pages backwards through room: up to limit messages with a
// sequence number below before, newest first.
func (s *ChatStore) MessagesBefore(ctx context.Context, room string, before int64, limit int) ([]Message, error) {
	return s.listMessages(ctx, "messages before", messagesBeforeQuery, room, before, messageLimit(limit))
}

func messageLimit(limit int) int {
	if limit <= 0 {
		return defaultMessageLimit
	}
	return limit
}

func (s *ChatStore) listMessages(ctx context.Context, op, query string, args ...any) ([]Message, error) {
	messages := make([]Message, 0)
	if err := s.db.SelectContext(ctx, &messages, s.db.Rebind(query), args...); err != nil {
		return nil, s.fail(op, err)
	}
	return messages, nil
}

// CountRoomMessages returns the number of messages in room, 0 for an
// unknown room. On an engine error it returns -1 alongside the error.
func (s *ChatStore) CountRoomMessages(ctx context.Context, room string) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, s.db.Rebind(countRoomMessagesQuery), room); err != nil {
		return -1, s.fail("count room messages", err)
	}
	return count, nil
}
