package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/archedata/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error

	NewEntry(ctx context.Context) error
	Diary(ctx context.Context) error
	Search(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Note(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Visibility(ctx context.Context, id string) error

	Chats(ctx context.Context, filter string) error
	NewChat(ctx context.Context) error
	SaveChat(ctx context.Context, id string) error
	Saved(ctx context.Context) error
	Messages(ctx context.Context, id string) error
	Say(ctx context.Context, id string) error

	Attach(ctx context.Context) error
	Docs(ctx context.Context) error
	DocURL(ctx context.Context, key string) error
}

const (
	helpLoggedOut = "Available commands: register, login, search, show <id>, chats [text], messages <room>, exit"
	helpLoggedIn  = "Available commands: whoami, profile, new, diary, search, show <id>, note <id>, delete <id>, " +
		"visibility <id>, chats [text], newchat, savechat <room>, saved, messages <room>, say <room>, " +
		"attach, docs, url <key>, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the ArcheData CLI.
//
// It reads a line from reader, parses the first token as the command and
// an optional second token as its argument, and dispatches to methods on
// 'a'. The loop exits on EOF or when the user types "exit" or "quit".
//
// Handler errors are reported and the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("archedata %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)

		case "new":
			cmdErr = a.NewEntry(ctx)
		case "diary":
			cmdErr = a.Diary(ctx)
		case "search":
			cmdErr = a.Search(ctx)
		case "show":
			cmdErr = a.Show(ctx, arg)
		case "note":
			cmdErr = a.Note(ctx, arg)
		case "delete":
			cmdErr = a.Delete(ctx, arg)
		case "visibility":
			cmdErr = a.Visibility(ctx, arg)

		case "chats":
			cmdErr = a.Chats(ctx, strings.Join(parts[1:], " "))
		case "newchat":
			cmdErr = a.NewChat(ctx)
		case "savechat":
			cmdErr = a.SaveChat(ctx, arg)
		case "saved":
			cmdErr = a.Saved(ctx)
		case "messages":
			cmdErr = a.Messages(ctx, arg)
		case "say":
			cmdErr = a.Say(ctx, arg)

		case "attach":
			cmdErr = a.Attach(ctx)
		case "docs":
			cmdErr = a.Docs(ctx)
		case "url":
			cmdErr = a.DocURL(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

// describeError turns service errors into short user-facing messages.
func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		return "Please log in first."
	case errors.Is(err, common.ErrAuthenticationFailed):
		return "Invalid credentials."
	case errors.Is(err, common.ErrForbidden):
		return "You are not allowed to do that."
	case errors.Is(err, common.ErrNotFound):
		return "Not found."
	case errors.Is(err, common.ErrVersionConflict):
		return "Data was changed by another session, please retry."
	default:
		return "Error: " + err.Error()
	}
}
