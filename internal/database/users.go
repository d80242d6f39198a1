package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// CreateUser inserts the user unless the login is already taken, in which
// case nothing changes and the call still succeeds. The role must exist.
func (s *ChatStore) CreateUser(ctx context.Context, params CreateUserParams) error {
	var created bool
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		roleId, err := lookupId(ctx, tx, roleIdQuery, params.Role, ErrRoleNotFound)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(createUserQuery),
			params.Login,
			params.Name,
			params.PasswordHash,
			roleId,
			params.IsDeleted,
			params.RegisteredAt,
		)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		created = err == nil && n > 0
		return nil
	})
	if err != nil {
		return s.check("create user", err)
	}

	if created {
		s.stats.Incr(metricUsersCreated)
	}

	return nil
}

// SetUserDeleted raises the soft-delete flag without removing anything.
func (s *ChatStore) SetUserDeleted(ctx context.Context, login string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(setUserDeletedQuery), login); err != nil {
		return s.fail("set user deleted", err)
	}
	return nil
}

// DeleteUser soft-deletes the user and, in the same transaction, removes
// the row if nothing references it any more. A user who still belongs to
// a room keeps its row and its login stays reserved.
func (s *ChatStore) DeleteUser(ctx context.Context, login string) error {
	var removed int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(setUserDeletedQuery), login); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(hardDeleteUserQuery), login)
		if err != nil {
			return err
		}

		removed, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return s.fail("delete user", err)
	}

	if removed > 0 {
		s.stats.Incr(metricUsersDeleted)
	}

	return nil
}

func (s *ChatStore) UserExists(ctx context.Context, login string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, s.db.Rebind(userExistsQuery), login); err != nil {
		return false, s.fail("user exists", err)
	}
	return exists, nil
}

// IsActiveUser reports whether the user exists and is not soft-deleted.
func (s *ChatStore) IsActiveUser(ctx context.Context, login string) (bool, error) {
	var active bool
	if err := s.db.GetContext(ctx, &active, s.db.Rebind(activeUserQuery), login); err != nil {
		return false, s.fail("is active user", err)
	}
	return active, nil
}

// RenameUser changes the display name. Display names need not be unique.
func (s *ChatStore) RenameUser(ctx context.Context, login, newName string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(renameUserQuery), newName, login)
	if err != nil {
		return s.fail("rename user", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.check("rename user", ErrUserNotFound)
	}

	return nil
}

func (s *ChatStore) GetUser(ctx context.Context, login string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(getUserQuery), login)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, s.check("get user", ErrUserNotFound)
	}
	if err != nil {
		return User{}, s.fail("get user", err)
	}
	return user, nil
}

func (s *ChatStore) ListAllUsers(ctx context.Context) ([]User, error) {
	return s.listUsers(ctx, "list all users", listAllUsersQuery)
}

func (s *ChatStore) ListActiveUsers(ctx context.Context) ([]User, error) {
	return s.listUsers(ctx, "list active users", listActiveUsersQuery)
}

func (s *ChatStore) ListDeletedUsers(ctx context.Context) ([]User, error) {
	return s.listUsers(ctx, "list deleted users", listDeletedUsersQuery)
}

func (s *ChatStore) listUsers(ctx context.Context, op, query string, args ...any) ([]User, error) {
	users := make([]User, 0)
	if err := s.db.SelectContext(ctx, &users, s.db.Rebind(query), args...); err != nil {
		return nil, s.fail(op, err)
	}
	return users, nil
}

// SweepDeletedUsersWithoutRoom hard-deletes every soft-deleted user that
// no longer belongs to a room or authors a message, and reports how many
// rows went. Once nothing is eligible it is a no-op.
func (s *ChatStore) SweepDeletedUsersWithoutRoom(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, sweepDeletedUsersQuery)
	if err != nil {
		return 0, s.fail("sweep deleted users", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		s.stats.Add(metricUsersSwept, n)
	}

	return n, nil
}
