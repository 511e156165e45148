package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/archedata/internal/client/client"
	"github.com/dmitrijs2005/archedata/internal/client/documents"
	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/services"
	"github.com/dmitrijs2005/archedata/internal/logging"
	"github.com/stretchr/testify/require"
)

// readerFromLines feeds one answer per line. Every line, the last one
// included, is newline terminated.
func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 {
		return bufio.NewReader(strings.NewReader(""))
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type testEnv struct {
	app *App
	out *bytes.Buffer
	us  services.UserService
	es  services.EntryService
	cs  services.ChatService
}

func newEnv(t *testing.T) *testEnv {
	return newEnvWithStore(t, nil)
}

func newEnvWithStore(t *testing.T, store documents.Store) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := client.OpenDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logging.Discard()
	us := services.NewUserService(db, services.AdminSeed{Email: "admin@archedata.local", Password: "admin-pw"}, store, logger)
	es := services.NewEntryService(db, nil, logger)
	cs := services.NewChatService(db, logger)
	require.NoError(t, us.Bootstrap(ctx))

	out := &bytes.Buffer{}
	return &testEnv{
		app: &App{
			userService:  us,
			entryService: es,
			chatService:  cs,
			logger:       logger,
			reader:       readerFromLines(),
			out:          out,
		},
		out: out,
		us:  us,
		es:  es,
		cs:  cs,
	}
}

// feed replaces the pending terminal input.
func (e *testEnv) feed(lines ...string) {
	e.app.reader = readerFromLines(lines...)
}

// register creates an account through the service and makes it the
// session user of the app.
func (e *testEnv) register(t *testing.T, nickname string, role models.Role, password string) *models.User {
	t.Helper()
	u, err := e.us.Register(context.Background(), models.User{
		Name:         strings.ToUpper(nickname[:1]) + nickname[1:],
		Nickname:     nickname,
		Email:        nickname + "@example.kz",
		Role:         role,
		Documents:    []string{},
		Works:        []string{},
		SavedChatIDs: []string{},
	}, password)
	require.NoError(t, err)
	e.app.user = u
	return u
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
