package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/archedata/internal/client/client"
	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/logging"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newUsers(t *testing.T, db *sql.DB) *userService {
	t.Helper()
	s := NewUserService(db, AdminSeed{Email: "admin@archedata.local", Password: "admin-pass"}, nil, logging.Discard()).(*userService)
	s.nowFn = func() time.Time { return fixedNow }
	return s
}

func newEntries(t *testing.T, db *sql.DB) *entryService {
	t.Helper()
	s := NewEntryService(db, nil, logging.Discard()).(*entryService)
	s.nowFn = func() time.Time { return fixedNow }
	return s
}

func newChats(t *testing.T, db *sql.DB) *chatService {
	t.Helper()
	s := NewChatService(db, logging.Discard()).(*chatService)
	s.nowFn = func() time.Time { return fixedNow }
	return s
}

func strPtr(s string) *string { return &s }

func worker(id string) *models.User {
	return &models.User{ID: id, Name: "Worker " + id, Nickname: "w" + id, Email: id + "@dig.kz", Role: models.RoleFieldWorker}
}

func admin() *models.User {
	return &models.User{ID: AdminID, Name: AdminName, Nickname: AdminNickname, Role: models.RoleAdmin}
}
