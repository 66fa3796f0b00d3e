package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockMigrator - мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func mockEngine(m Migrator) MigrationEngine {
	return func(string) (Migrator, error) {
		return m, nil
	}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	err := NewMigration("sqlite3://test.db", mockEngine(mockM), slog.Default()).Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	err := NewMigration("sqlite3://test.db", mockEngine(mockM), slog.Default()).Up()

	assert.NoError(t, err)
}

func TestMigration_Up_Errors(t *testing.T) {
	t.Run("engine", func(t *testing.T) {
		engine := func(string) (Migrator, error) {
			return nil, errors.New("engine crash")
		}

		err := NewMigration("sqlite3://test.db", engine, slog.Default()).Up()
		assert.EqualError(t, err, "engine crash")
	})

	t.Run("up and close", func(t *testing.T) {
		mockM := new(MockMigrator)
		mockM.On("Up").Return(errors.New("dirty"))
		mockM.On("Close").Return(nil, errors.New("db busy"))

		err := NewMigration("sqlite3://test.db", mockEngine(mockM), slog.Default()).Up()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dirty")
		assert.Contains(t, err.Error(), "db busy")
	})
}

func TestDefaultEngine_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	url, err := SQLiteURL(path)
	require.NoError(t, err)

	mg := NewMigration(url, DefaultEngine, slog.Default())
	require.NoError(t, mg.Up())
	// Повторный запуск ничего не меняет
	require.NoError(t, mg.Up())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO session (key, value) VALUES ('token', 'abc')`)
	assert.NoError(t, err)
}
