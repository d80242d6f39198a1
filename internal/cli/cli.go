// Package cli implements the chatstore maintenance commands on top of a
// database.ChatRepository.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/npezzotti/go-chatstore/internal/database"
	"github.com/npezzotti/go-chatstore/internal/password"
)

var ErrUsage = errors.New("usage")

type commandFunc func(ctx context.Context, args []string) error

type App struct {
	repo database.ChatRepository
	out  io.Writer
	now  func() time.Time
	hash func(string) (string, error)

	commands map[string]map[string]commandFunc
}

func NewApp(repo database.ChatRepository, out io.Writer) *App {
	a := &App{
		repo: repo,
		out:  out,
		now:  time.Now,
		hash: password.Hash,
	}

	a.commands = map[string]map[string]commandFunc{
		"version": {"": a.version},
		"sweep":   {"": a.sweep},
		"roles":   {"": a.listRoles},
		"rooms": {
			"list":    a.listRooms,
			"create":  a.createRoom,
			"delete":  a.deleteRoom,
			"rename":  a.renameRoom,
			"members": a.roomMembers,
		},
		"users": {
			"list":        a.listUsers,
			"show":        a.showUser,
			"create":      a.createUser,
			"delete":      a.deleteUser,
			"soft-delete": a.softDeleteUser,
			"rename":      a.renameUser,
			"rooms":       a.userRooms,
		},
		"members": {
			"add":      a.addMember,
			"remove":   a.removeMember,
			"snapshot": a.membershipSnapshot,
		},
		"messages": {
			"count":  a.countMessages,
			"range":  a.messageRange,
			"recent": a.recentMessages,
			"before": a.messagesBefore,
			"post":   a.postMessage,
		},
	}

	return a
}

// Run dispatches args of the form "<group> [<command>] [flags] [args]".
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usageError("missing command")
	}

	group, ok := a.commands[args[0]]
	if !ok {
		return a.usageError("unknown command %q", args[0])
	}

	if cmd, ok := group[""]; ok {
		return cmd(ctx, args[1:])
	}

	if len(args) < 2 {
		return a.usageError("%s: missing subcommand", args[0])
	}

	cmd, ok := group[args[1]]
	if !ok {
		return a.usageError("%s: unknown subcommand %q", args[0], args[1])
	}

	return cmd(ctx, args[2:])
}

// Usage lists the available commands.
func (a *App) Usage() string {
	var b strings.Builder
	b.WriteString("commands:\n")

	groups := make([]string, 0, len(a.commands))
	for name := range a.commands {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	for _, name := range groups {
		subs := make([]string, 0, len(a.commands[name]))
		for sub := range a.commands[name] {
			if sub != "" {
				subs = append(subs, sub)
			}
		}
		sort.Strings(subs)

		if len(subs) == 0 {
			fmt.Fprintf(&b, "  %s\n", name)
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", name, strings.Join(subs, "|"))
	}

	return b.String()
}

func (a *App) usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse parses flags and checks the number of remaining positional args.
func (a *App) parse(fs *flag.FlagSet, args []string, want int, names string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, a.usageError("%s: %v", fs.Name(), err)
	}
	if fs.NArg() != want {
		return nil, a.usageError("%s %s", fs.Name(), names)
	}
	return fs.Args(), nil
}

func parseSeq(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid sequence number %q", ErrUsage, s)
	}
	return n, nil
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) printUsers(users []database.User) error {
	w := a.table()
	fmt.Fprintln(w, "LOGIN\tNAME\tROLE\tDELETED\tREGISTERED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\n", u.Login, u.Name, u.Role, u.IsDeleted, u.RegisteredAt)
	}
	return w.Flush()
}

func (a *App) printMessages(messages []database.Message) error {
	w := a.table()
	fmt.Fprintln(w, "SEQ\tDATE\tTIME\tUSER\tTEXT")
	for _, m := range messages {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.SeqInRoom, m.Date, m.Time, m.UserLogin, m.Text)
	}
	return w.Flush()
}

func (a *App) printLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(a.out, line); err != nil {
			return err
		}
	}
	return nil
}
