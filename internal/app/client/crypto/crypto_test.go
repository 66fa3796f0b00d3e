package crypto

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/session"
)

type memRepo map[string]string

func (m memRepo) Get(_ context.Context, key string) (string, error) {
	return m[key], nil
}

func (m memRepo) Set(_ context.Context, values map[string]string) error {
	for k, v := range values {
		m[k] = v
	}
	return nil
}

func (m memRepo) Clear(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m, k)
	}
	return nil
}

func TestSealer_RoundTrip(t *testing.T) {
	seed, err := GenerateRandomBytes(seedLength)
	require.NoError(t, err)
	s, err := NewSealer(seed)
	require.NoError(t, err)

	sealed, err := s.Seal("test-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "test-token")

	again, err := s.Seal("test-token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce is random")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "test-token", plain)
}

func TestSealer_Corrupted(t *testing.T) {
	seed, err := GenerateRandomBytes(seedLength)
	require.NoError(t, err)
	s, err := NewSealer(seed)
	require.NoError(t, err)

	other, err := GenerateRandomBytes(seedLength)
	require.NoError(t, err)
	foreign, err := NewSealer(other)
	require.NoError(t, err)

	sealed, err := foreign.Seal("secret")
	require.NoError(t, err)

	for name, input := range map[string]string{
		"not base64":  "%%%",
		"too short":   "AAAA",
		"foreign key": sealed,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Open(input)
			assert.ErrorIs(t, err, ErrCorrupted)
		})
	}

	_, err = NewSealer([]byte("short"))
	assert.Error(t, err)
}

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "session.key")

	first, err := LoadOrCreate(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keyPermissions), info.Mode().Perm())

	sealed, err := first.Seal("value")
	require.NoError(t, err)

	second, err := LoadOrCreate(path)
	require.NoError(t, err)
	plain, err := second.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "value", plain)

	require.NoError(t, os.WriteFile(path, []byte("not hex"), keyPermissions))
	_, err = LoadOrCreate(path)
	assert.Error(t, err)
}

func TestSealedRepository(t *testing.T) {
	ctx := context.Background()
	inner := memRepo{}

	seed, err := GenerateRandomBytes(seedLength)
	require.NoError(t, err)
	s, err := NewSealer(seed)
	require.NoError(t, err)
	repo := NewSealedRepository(inner, s, slog.Default())

	require.NoError(t, repo.Set(ctx, map[string]string{
		session.KeyToken: "tok",
		session.KeyRole:  "admin",
	}))
	assert.NotEqual(t, "tok", inner[session.KeyToken])

	v, err := repo.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)

	v, err = repo.Get(ctx, session.KeyUserName)
	require.NoError(t, err)
	assert.Empty(t, v)

	inner[session.KeyToken] = "garbage"
	v, err = repo.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	assert.Empty(t, v, "unreadable value means logged out")

	require.NoError(t, repo.Clear(ctx, session.Keys()...))
	assert.Empty(t, inner)
}
