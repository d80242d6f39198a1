package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/npezzotti/go-chatstore/internal/database"
)

func (a *App) version(ctx context.Context, args []string) error {
	if _, err := a.parse(newFlagSet("version"), args, 0, ""); err != nil {
		return err
	}

	v, err := a.repo.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "schema version %s\n", v)
	return err
}

func (a *App) sweep(ctx context.Context, args []string) error {
	if _, err := a.parse(newFlagSet("sweep"), args, 0, ""); err != nil {
		return err
	}

	n, err := a.repo.SweepDeletedUsersWithoutRoom(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "swept %d users\n", n)
	return err
}

func (a *App) listRoles(ctx context.Context, args []string) error {
	if _, err := a.parse(newFlagSet("roles"), args, 0, ""); err != nil {
		return err
	}

	roles, err := a.repo.ListRoles(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return a.printLines(names)
}

func (a *App) listRooms(ctx context.Context, args []string) error {
	if _, err := a.parse(newFlagSet("rooms list"), args, 0, ""); err != nil {
		return err
	}

	rooms, err := a.repo.ListRooms(ctx)
	if err != nil {
		return err
	}
	return a.printLines(rooms)
}

func (a *App) createRoom(ctx context.Context, args []string) error {
	fs := newFlagSet("rooms create")
	at := fs.Int64("at", 0, "creation time in unix seconds, defaults to now")
	rest, err := a.parse(fs, args, 1, "[-at unixtime] <room>")
	if err != nil {
		return err
	}

	createdAt := *at
	if createdAt == 0 {
		createdAt = a.now().Unix()
	}

	return a.repo.CreateRoom(ctx, rest[0], createdAt)
}

func (a *App) deleteRoom(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("rooms delete"), args, 1, "<room>")
	if err != nil {
		return err
	}
	return a.repo.DeleteRoom(ctx, rest[0])
}

func (a *App) renameRoom(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("rooms rename"), args, 2, "<room> <new-name>")
	if err != nil {
		return err
	}
	return a.repo.RenameRoom(ctx, rest[0], rest[1])
}

func (a *App) roomMembers(ctx context.Context, args []string) error {
	fs := newFlagSet("rooms members")
	all := fs.Bool("all", false, "include soft-deleted members")
	rest, err := a.parse(fs, args, 1, "[-all] <room>")
	if err != nil {
		return err
	}

	var users []database.User
	if *all {
		users, err = a.repo.ListRoomUsers(ctx, rest[0])
	} else {
		users, err = a.repo.ListRoomActiveUsers(ctx, rest[0])
	}
	if err != nil {
		return err
	}

	return a.printUsers(users)
}

func (a *App) listUsers(ctx context.Context, args []string) error {
	fs := newFlagSet("users list")
	active := fs.Bool("active", false, "only users that are not deleted")
	deleted := fs.Bool("deleted", false, "only soft-deleted users")
	if _, err := a.parse(fs, args, 0, "[-active|-deleted]"); err != nil {
		return err
	}

	var (
		users []database.User
		err   error
	)
	switch {
	case *active && *deleted:
		return a.usageError("users list: -active and -deleted are exclusive")
	case *active:
		users, err = a.repo.ListActiveUsers(ctx)
	case *deleted:
		users, err = a.repo.ListDeletedUsers(ctx)
	default:
		users, err = a.repo.ListAllUsers(ctx)
	}
	if err != nil {
		return err
	}

	return a.printUsers(users)
}

func (a *App) showUser(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("users show"), args, 1, "<login>")
	if err != nil {
		return err
	}

	user, err := a.repo.GetUser(ctx, rest[0])
	if err != nil {
		return err
	}

	return a.printUsers([]database.User{user})
}

func (a *App) createUser(ctx context.Context, args []string) error {
	fs := newFlagSet("users create")
	name := fs.String("name", "", "display name, defaults to the login")
	passwd := fs.String("password", "", "plain text password")
	role := fs.String("role", database.RoleUser, "role name")
	rest, err := a.parse(fs, args, 1, "-password <password> [-name <name>] [-role <role>] <login>")
	if err != nil {
		return err
	}

	login := rest[0]
	if *name == "" {
		*name = login
	}

	hash, err := a.hash(*passwd)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return a.repo.CreateUser(ctx, database.CreateUserParams{
		Login:        login,
		Name:         *name,
		PasswordHash: hash,
		Role:         *role,
		RegisteredAt: a.now().Unix(),
	})
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("users delete"), args, 1, "<login>")
	if err != nil {
		return err
	}
	return a.repo.DeleteUser(ctx, rest[0])
}

func (a *App) softDeleteUser(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("users soft-delete"), args, 1, "<login>")
	if err != nil {
		return err
	}
	return a.repo.SetUserDeleted(ctx, rest[0])
}

func (a *App) renameUser(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("users rename"), args, 2, "<login> <new-name>")
	if err != nil {
		return err
	}
	return a.repo.RenameUser(ctx, rest[0], rest[1])
}

func (a *App) userRooms(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("users rooms"), args, 1, "<login>")
	if err != nil {
		return err
	}

	rooms, err := a.repo.ListUserRooms(ctx, rest[0])
	if err != nil {
		return err
	}
	return a.printLines(rooms)
}

func (a *App) addMember(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("members add"), args, 2, "<login> <room>")
	if err != nil {
		return err
	}
	return a.repo.AddUserToRoom(ctx, rest[0], rest[1])
}

func (a *App) removeMember(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("members remove"), args, 2, "<login> <room>")
	if err != nil {
		return err
	}
	return a.repo.RemoveUserFromRoom(ctx, rest[0], rest[1])
}

func (a *App) membershipSnapshot(ctx context.Context, args []string) error {
	if _, err := a.parse(newFlagSet("members snapshot"), args, 0, ""); err != nil {
		return err
	}

	members, err := a.repo.RoomsWithRegisteredUsers(ctx)
	if err != nil {
		return err
	}

	rooms := make([]string, 0, len(members))
	for room := range members {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)

	lines := make([]string, 0, len(rooms))
	for _, room := range rooms {
		logins := make([]string, 0, len(members[room]))
		for login := range members[room] {
			logins = append(logins, login)
		}
		sort.Strings(logins)
		lines = append(lines, fmt.Sprintf("%s: %s", room, strings.Join(logins, ", ")))
	}

	return a.printLines(lines)
}

func (a *App) countMessages(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("messages count"), args, 1, "<room>")
	if err != nil {
		return err
	}

	count, err := a.repo.CountRoomMessages(ctx, rest[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, count)
	return err
}

func (a *App) messageRange(ctx context.Context, args []string) error {
	rest, err := a.parse(newFlagSet("messages range"), args, 3, "<room> <begin> <end>")
	if err != nil {
		return err
	}

	begin, err := parseSeq(rest[1])
	if err != nil {
		return err
	}
	end, err := parseSeq(rest[2])
	if err != nil {
		return err
	}

	messages, err := a.repo.MessageRange(ctx, rest[0], begin, end)
	if err != nil {
		return err
	}
	return a.printMessages(messages)
}

func (a *App) recentMessages(ctx context.Context, args []string) error {
	fs := newFlagSet("messages recent")
	limit := fs.Int("limit", 0, "number of messages, 50 when unset")
	rest, err := a.parse(fs, args, 1, "[-limit n] <room>")
	if err != nil {
		return err
	}

	messages, err := a.repo.RecentMessages(ctx, rest[0], *limit)
	if err != nil {
		return err
	}
	return a.printMessages(messages)
}

func (a *App) messagesBefore(ctx context.Context, args []string) error {
	fs := newFlagSet("messages before")
	limit := fs.Int("limit", 0, "number of messages, 50 when unset")
	rest, err := a.parse(fs, args, 2, "[-limit n] <room> <seq>")
	if err != nil {
		return err
	}

	before, err := parseSeq(rest[1])
	if err != nil {
		return err
	}

	messages, err := a.repo.MessagesBefore(ctx, rest[0], before, *limit)
	if err != nil {
		return err
	}
	return a.printMessages(messages)
}

// postMessage appends a message at the end of the room. Without -seq the
// next sequence number is taken from the newest stored message.
func (a *App) postMessage(ctx context.Context, args []string) error {
	fs := newFlagSet("messages post")
	login := fs.String("user", "", "author login")
	seq := fs.Int64("seq", 0, "sequence number in the room")
	at := fs.Int64("at", 0, "unix time, defaults to now")
	rest, err := a.parse(fs, args, 2, "-user <login> [-seq n] [-at unixtime] <room> <text>")
	if err != nil {
		return err
	}
	if *login == "" {
		return a.usageError("messages post: -user is required")
	}

	room := rest[0]
	if *seq == 0 {
		latest, err := a.repo.RecentMessages(ctx, room, 1)
		if err != nil {
			return err
		}
		*seq = 1
		if len(latest) > 0 {
			*seq = latest[0].SeqInRoom + 1
		}
	}

	unixtime := *at
	if unixtime == 0 {
		unixtime = a.now().Unix()
	}

	if err := a.repo.InsertMessage(ctx, database.InsertMessageParams{
		Text:      rest[1],
		UnixTime:  unixtime,
		Login:     *login,
		Room:      room,
		SeqInRoom: *seq,
	}); err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "posted message %d to %s\n", *seq, room)
	return err
}
