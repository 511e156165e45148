package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error {
	return f.record("whoami")
}
func (f *fakeExec) Profile(context.Context) error {
	return f.record("profile")
}
func (f *fakeExec) NewEntry(context.Context) error {
	return f.record("new")
}
func (f *fakeExec) Diary(context.Context) error {
	return f.record("diary")
}
func (f *fakeExec) Search(context.Context) error {
	return f.record("search")
}
func (f *fakeExec) Show(_ context.Context, id string) error {
	return f.record("show", id)
}
func (f *fakeExec) Note(_ context.Context, id string) error {
	return f.record("note", id)
}
func (f *fakeExec) Delete(_ context.Context, id string) error {
	return f.record("delete", id)
}
func (f *fakeExec) Visibility(_ context.Context, id string) error {
	return f.record("visibility", id)
}
func (f *fakeExec) Chats(_ context.Context, filter string) error {
	return f.record("chats", filter)
}
func (f *fakeExec) NewChat(context.Context) error {
	return f.record("newchat")
}
func (f *fakeExec) SaveChat(_ context.Context, id string) error {
	return f.record("savechat", id)
}
func (f *fakeExec) Saved(context.Context) error {
	return f.record("saved")
}
func (f *fakeExec) Messages(_ context.Context, id string) error {
	return f.record("messages", id)
}
func (f *fakeExec) Say(_ context.Context, id string) error {
	return f.record("say", id)
}
func (f *fakeExec) Attach(context.Context) error {
	return f.record("attach")
}
func (f *fakeExec) Docs(context.Context) error {
	return f.record("docs")
}
func (f *fakeExec) DocURL(_ context.Context, key string) error {
	return f.record("url", key)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	printed := silencePrintln(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"new",
		"diary",
		"search",
		"show e1",
		"note e1",
		"delete",
		"visibility e1 extra",
		"chats",
		"chats Saka  studies",
		"newchat",
		"savechat 1",
		"saved",
		"messages 2",
		"say 2",
		"attach",
		"docs",
		"url users/u1/a.pdf",
		"whoami",
		"profile",
		"foobar",
		"logout",
		"register",
		"exit",
		"diary",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	require.Equal(t, []string{
		"login", "new", "diary", "search", "show e1", "note e1", "delete", "visibility e1",
		"chats", "chats Saka studies", "newchat", "savechat 1", "saved", "messages 2", "say 2",
		"attach", "docs", "url users/u1/a.pdf", "whoami", "profile", "logout", "register",
	}, exec.calls)

	require.Contains(t, *printed, helpLoggedOut)
	require.Contains(t, *printed, helpLoggedIn)
	require.Contains(t, *printed, "Unknown command: foobar")
	require.Contains(t, *printed, "archedata status> ")
	require.Equal(t, "Bye!", (*printed)[len(*printed)-1])
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("chats\ndiary")))

	require.Equal(t, []string{"chats", "diary"}, exec.calls)
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("diary: %w", common.ErrNotAuthenticated), "Please log in first."},
		{common.ErrAuthenticationFailed, "Invalid credentials."},
		{fmt.Errorf("save entry e1: %w", common.ErrForbidden), "You are not allowed to do that."},
		{fmt.Errorf("entry e1: %w", common.ErrNotFound), "Not found."},
		{common.ErrVersionConflict, "Data was changed by another session, please retry."},
		{errors.New("disk full"), "Error: disk full"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			printed := silencePrintln(t)
			exec := &fakeExec{err: tc.err}
			runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("diary\nquit\n")))

			require.Equal(t, []string{"diary"}, exec.calls)
			require.Contains(t, *printed, tc.want)
		})
	}
}
