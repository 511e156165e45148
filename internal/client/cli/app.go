package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/archedata/internal/client/analysis"
	"github.com/dmitrijs2005/archedata/internal/client/client"
	"github.com/dmitrijs2005/archedata/internal/client/config"
	"github.com/dmitrijs2005/archedata/internal/client/documents"
	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/services"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/dmitrijs2005/archedata/internal/logging"
)

// App is the interactive terminal front end. It holds the services and the
// user of the current session.
type App struct {
	db           *sql.DB
	userService  services.UserService
	entryService services.EntryService
	chatService  services.ChatService
	logger       logging.Logger

	user   *models.User
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store, builds the optional analyzer and document
// store from c, and seeds the Admin account and sample chat rooms.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	db, err := client.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	analyzer := analysis.NewOpenAIAnalyzer(analysis.Config{
		Endpoint:          c.AIEndpoint,
		Model:             c.AIModel,
		APIKey:            c.AIAPIKey,
		Timeout:           c.AITimeout,
		RequestsPerMinute: c.AIRequestsPerMinute,
	}, logger)

	var store documents.Store
	if c.DocumentsEnabled() {
		s3, err := documents.NewS3Store(ctx, documents.Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3BaseEndpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		}, nil)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("document store: %w", err)
		}
		store = s3
	}

	admin := services.AdminSeed{Email: c.AdminEmail, Password: c.AdminPassword}
	us := services.NewUserService(db, admin, store, logger)
	es := services.NewEntryService(db, analyzer, logger)
	cs := services.NewChatService(db, logger)

	if err := us.Bootstrap(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &App{
		db:           db,
		userService:  us,
		entryService: es,
		chatService:  cs,
		logger:       logger.With("component", "cli"),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Run restores a persisted session, if any, and blocks in the REPL until
// the user exits or input ends. The store is closed on return.
func (a *App) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	u, err := a.userService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.user = u

	fmt.Fprintln(a.out, "Welcome to ArcheData (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) requireUser() (*models.User, error) {
	if a.user == nil {
		return nil, common.ErrNotAuthenticated
	}
	return a.user, nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	name := a.user.Nickname
	if name == "" {
		name = a.user.Email
	}
	return fmt.Sprintf("(%s %s)", name, a.user.Role)
}

// argOrPrompt returns arg when set and asks for the value otherwise.
func (a *App) argOrPrompt(arg, prompt string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
