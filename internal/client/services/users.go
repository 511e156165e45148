package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/archedata/internal/client/documents"
	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/repositories/collections"
	"github.com/dmitrijs2005/archedata/internal/client/repositories/uploads"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/dmitrijs2005/archedata/internal/cryptox"
	"github.com/dmitrijs2005/archedata/internal/dbx"
	"github.com/dmitrijs2005/archedata/internal/logging"
	"github.com/google/uuid"
)

// ErrDocumentsDisabled is returned by document operations when no object
// store is configured.
var ErrDocumentsDisabled = errors.New("document storage is not configured")

// UserService manages the user directory and the current session.
//
// Contract:
//   - Register appends a user, hashes the password and opens a session.
//   - Login matches email OR nickname. An empty password is "not supplied"
//     and skips the check; any other password must verify against the
//     stored hash. Every failure is the same common.ErrAuthenticationFailed.
//   - Logout clears the session only.
//   - CurrentUser returns nil when nobody is logged in.
//   - UpdateUser writes the session copy and the directory record together.
//   - Users returns the directory, seeding the Admin when it is missing.
//   - ToggleSavedChat only touches the session user's own saved set.
type UserService interface {
	Bootstrap(ctx context.Context) error
	Register(ctx context.Context, user models.User, password string) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	Users(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ToggleSavedChat(ctx context.Context, userID, chatID string) error

	AttachDocument(ctx context.Context, name, contentType string, body []byte) (string, error)
	Documents(ctx context.Context) ([]*models.Upload, error)
	DocumentURL(ctx context.Context, key string) (string, error)
}

type userService struct {
	db      *sql.DB
	users   *collections.Collection[models.User]
	session *collections.Value[models.User]
	chats   *collections.Collection[models.ChatRoom]
	admin   AdminSeed
	store   documents.Store
	logger  logging.Logger
	nowFn   func() time.Time
}

// NewUserService builds a UserService. store may be nil, which disables
// document uploads.
func NewUserService(db *sql.DB, admin AdminSeed, store documents.Store, logger logging.Logger) UserService {
	return &userService{
		db:      db,
		users:   collections.New[models.User](db, collections.UsersKey, logger),
		session: collections.NewValue[models.User](db, collections.SessionKey, logger),
		chats:   collections.New[models.ChatRoom](db, collections.ChatsKey, logger),
		admin:   admin,
		store:   store,
		logger:  logger.With("service", "users"),
		nowFn:   time.Now,
	}
}

// Bootstrap seeds the Admin account and the sample chat rooms. It is safe to
// run on every start.
func (s *userService) Bootstrap(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, _, err := loadUsersSeeded(ctx, tx, s.users, s.admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if _, _, err := loadChatsSeeded(ctx, tx, s.chats); err != nil {
			return fmt.Errorf("seed chats: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug(ctx, "store bootstrapped")
	return nil
}

func (s *userService) Register(ctx context.Context, user models.User, password string) (*models.User, error) {
	if user.Nickname == "" && user.Email == "" {
		return nil, fmt.Errorf("nickname or email is required: %w", common.ErrValidation)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.PasswordHash = ""
	if password != "" {
		user.PasswordHash = cryptox.HashPassword([]byte(password))
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		list, version, err := loadUsersSeeded(ctx, tx, s.users, s.admin)
		if err != nil {
			return err
		}

		for _, u := range list {
			switch {
			case u.ID == user.ID:
				return fmt.Errorf("user id %s: %w", user.ID, common.ErrAlreadyExists)
			case user.Nickname != "" && u.Nickname == user.Nickname:
				return fmt.Errorf("nickname %s: %w", user.Nickname, common.ErrAlreadyExists)
			case user.Email != "" && strings.EqualFold(u.Email, user.Email):
				return fmt.Errorf("email %s: %w", user.Email, common.ErrAlreadyExists)
			}
		}

		if _, err := s.users.SaveWith(ctx, tx, append(list, user), version); err != nil {
			return err
		}
		return s.session.PutWith(ctx, tx, user.Public())
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	out := user.Public()
	return &out, nil
}

func (s *userService) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	var found *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		list, _, err := loadUsersSeeded(ctx, tx, s.users, s.admin)
		if err != nil {
			return err
		}

		for i := range list {
			u := list[i]
			if u.Email != identifier && u.Nickname != identifier {
				continue
			}
			if password != "" {
				ok, err := cryptox.VerifyPassword(u.PasswordHash, []byte(password))
				if err != nil || !ok {
					continue
				}
			}
			found = &u
			break
		}
		if found == nil {
			return common.ErrAuthenticationFailed
		}
		return s.session.PutWith(ctx, tx, found.Public())
	})
	if errors.Is(err, common.ErrAuthenticationFailed) {
		s.logger.Info(ctx, "login failed")
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", found.ID)
	out := found.Public()
	return &out, nil
}

func (s *userService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *userService) CurrentUser(ctx context.Context) (*models.User, error) {
	u, _, err := s.session.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}

// UpdateUser replaces the session copy and the directory record with user.
// The stored password hash is kept; a user missing from the directory only
// updates the session.
func (s *userService) UpdateUser(ctx context.Context, user models.User) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.updateUserWith(ctx, tx, user)
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *userService) updateUserWith(ctx context.Context, tx dbx.DBTX, user models.User) error {
	if err := s.session.PutWith(ctx, tx, user.Public()); err != nil {
		return err
	}
	return s.users.UpdateWith(ctx, tx, func(list []models.User) ([]models.User, error) {
		i := slices.IndexFunc(list, func(u models.User) bool { return u.ID == user.ID })
		if i < 0 {
			return nil, collections.ErrUnchanged
		}
		user.PasswordHash = list[i].PasswordHash
		list[i] = user
		return list, nil
	})
}

func (s *userService) Users(ctx context.Context) ([]models.User, error) {
	var list []models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		list, _, err = loadUsersSeeded(ctx, tx, s.users, s.admin)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return list, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*models.User, error) {
	list, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(list, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	out := list[i].Public()
	return &out, nil
}

func (s *userService) ToggleSavedChat(ctx context.Context, userID, chatID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, _, err := s.session.LoadWith(ctx, tx)
		if err != nil {
			return err
		}
		if current == nil || current.ID != userID {
			return common.ErrForbidden
		}
		current.ToggleSavedChat(chatID)
		return s.updateUserWith(ctx, tx, *current)
	})
	if err != nil {
		return fmt.Errorf("toggle saved chat: %w", err)
	}
	return nil
}

// AttachDocument uploads a credential scan for the session user and records
// its key on the user. The upload is tracked in the local ledger so an
// interrupted transfer stays visible as pending.
func (s *userService) AttachDocument(ctx context.Context, name, contentType string, body []byte) (string, error) {
	if s.store == nil {
		return "", ErrDocumentsDisabled
	}
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if current == nil {
		return "", common.ErrNotAuthenticated
	}

	now := s.nowFn().UTC()
	rec := &models.Upload{
		ObjectKey:    documents.ObjectKey(current.ID, name, now),
		UserID:       current.ID,
		Name:         name,
		ContentType:  contentType,
		Size:         int64(len(body)),
		UploadStatus: models.UploadPending,
		CreatedAt:    now,
	}
	if err := uploads.NewSQLiteRepository(s.db).CreateOrUpdate(ctx, rec); err != nil {
		return "", fmt.Errorf("attach document: %w", err)
	}

	if err := s.store.Put(ctx, rec.ObjectKey, contentType, body); err != nil {
		s.logger.Error(ctx, "document upload failed", "user_id", current.ID, "key", rec.ObjectKey, "error", err)
		return "", fmt.Errorf("attach document: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := uploads.NewSQLiteRepository(tx).MarkUploaded(ctx, rec.ObjectKey); err != nil {
			return err
		}
		user, _, err := s.session.LoadWith(ctx, tx)
		if err != nil {
			return err
		}
		if user == nil || user.ID != current.ID {
			return common.ErrNotAuthenticated
		}
		user.Documents = append(slices.Clone(user.Documents), rec.ObjectKey)
		return s.updateUserWith(ctx, tx, *user)
	})
	if err != nil {
		return "", fmt.Errorf("attach document: %w", err)
	}

	s.logger.Info(ctx, "document attached", "user_id", current.ID, "key", rec.ObjectKey, "size", rec.Size)
	return rec.ObjectKey, nil
}

func (s *userService) Documents(ctx context.Context) ([]*models.Upload, error) {
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, common.ErrNotAuthenticated
	}
	list, err := uploads.NewSQLiteRepository(s.db).ListByUser(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("documents: %w", err)
	}
	return list, nil
}

// DocumentURL returns a temporary link to one of the session user's
// documents. Admins may open anyone's.
func (s *userService) DocumentURL(ctx context.Context, key string) (string, error) {
	if s.store == nil {
		return "", ErrDocumentsDisabled
	}
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if current == nil {
		return "", common.ErrNotAuthenticated
	}
	if !current.IsAdmin() && !slices.Contains(current.Documents, key) {
		return "", common.ErrForbidden
	}
	return s.store.URL(ctx, key)
}
