package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/session"
)

func newTestRepo(t *testing.T) *SessionRepository {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "nested", "session.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionRepository(db, slog.Default())
}

func TestSessionRepository_SetGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	v, err := repo.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	assert.Empty(t, v, "missing key is empty")

	require.NoError(t, repo.Set(ctx, map[string]string{
		session.KeyToken: "tok-1",
		session.KeyRole:  "admin",
	}))

	v, err = repo.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", v)

	require.NoError(t, repo.Set(ctx, map[string]string{session.KeyToken: "tok-2"}))
	v, err = repo.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", v)

	v, err = repo.Get(ctx, session.KeyRole)
	require.NoError(t, err)
	assert.Equal(t, "admin", v)
}

func TestSessionRepository_Clear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, map[string]string{
		session.KeyToken:    "tok",
		session.KeyUserName: "Rina",
		"theme":             "dark",
	}))
	require.NoError(t, repo.Clear(ctx, session.Keys()...))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range session.Keys() {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, v, key)
	}

	v, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}

func TestSessionRepository_WithService(t *testing.T) {
	repo := newTestRepo(t)
	service := session.NewService(repo, nil, slog.Default())
	ctx := context.Background()

	_, err := service.Current(ctx)
	assert.ErrorIs(t, err, session.ErrUnauthenticated)

	require.NoError(t, repo.Set(ctx, map[string]string{
		session.KeyToken:  "tok",
		session.KeyUserID: "3",
	}))
	sess, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", sess.UserID)

	require.NoError(t, service.Logout(ctx))
	_, err = service.Token(ctx)
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}
