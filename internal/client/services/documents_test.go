package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/dmitrijs2005/archedata/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	puts   map[string][]byte
	putErr error
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[key] = body
	return nil
}

func (f *fakeStore) URL(ctx context.Context, key string) (string, error) {
	return "https://minio.local/" + key + "?sig", nil
}

func newUsersWithStore(t *testing.T, store *fakeStore) *userService {
	t.Helper()
	s := NewUserService(setupDB(t), AdminSeed{Password: "admin-pass"}, store, logging.Discard()).(*userService)
	s.nowFn = func() time.Time { return fixedNow }
	return s
}

func TestAttachDocument(t *testing.T) {
	store := &fakeStore{}
	s := newUsersWithStore(t, store)
	ctx := context.Background()

	_, err := s.Register(ctx, models.User{ID: "u1", Nickname: "n", Documents: []string{}}, "pw")
	require.NoError(t, err)

	key, err := s.AttachDocument(ctx, "diploma.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "users/u1/2024/03/05/"), key)
	assert.Equal(t, []byte("%PDF"), store.puts[key])

	current, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, current.Documents)

	found, err := s.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{key}, found.Documents)

	list, err := s.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.UploadCompleted, list[0].UploadStatus)
	assert.Equal(t, int64(4), list[0].Size)

	url, err := s.DocumentURL(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, url, key)

	_, err = s.DocumentURL(ctx, "users/someone-else/x")
	require.ErrorIs(t, err, common.ErrForbidden)
}

func TestAttachDocument_UploadFailureStaysPending(t *testing.T) {
	store := &fakeStore{putErr: errors.New("minio down")}
	s := newUsersWithStore(t, store)
	ctx := context.Background()

	_, err := s.Register(ctx, models.User{ID: "u1", Nickname: "n"}, "pw")
	require.NoError(t, err)

	_, err = s.AttachDocument(ctx, "id.png", "image/png", []byte("png"))
	require.Error(t, err)

	current, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, current.Documents)

	list, err := s.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.UploadPending, list[0].UploadStatus)
}

func TestAttachDocument_Preconditions(t *testing.T) {
	ctx := context.Background()

	disabled := newUsers(t, setupDB(t))
	_, err := disabled.AttachDocument(ctx, "x", "", []byte("x"))
	require.ErrorIs(t, err, ErrDocumentsDisabled)
	_, err = disabled.DocumentURL(ctx, "k")
	require.ErrorIs(t, err, ErrDocumentsDisabled)

	anon := newUsersWithStore(t, &fakeStore{})
	_, err = anon.AttachDocument(ctx, "x", "", []byte("x"))
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, err = anon.Documents(ctx)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestDocumentURL_AdminSeesAll(t *testing.T) {
	s := newUsersWithStore(t, &fakeStore{})
	ctx := context.Background()

	_, err := s.Login(ctx, AdminNickname, "admin-pass")
	require.NoError(t, err)

	url, err := s.DocumentURL(ctx, "users/u1/2024/01/01/x")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}
