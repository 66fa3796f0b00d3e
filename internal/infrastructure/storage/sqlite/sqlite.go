package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/session"
	"boothadmin/internal/infrastructure/migration"
)

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New открывает (или создает) файл базы и таблицы клиента.
func New(path string, log *slog.Logger) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("ошибка создания директории базы данных: %w", err)
		}
	}

	// Таблицы создаются миграциями
	url, err := migration.SQLiteURL(path)
	if err != nil {
		return nil, err
	}
	if err := migration.NewMigration(url, migration.DefaultEngine, log).Up(); err != nil {
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	return &Storage{db: db, log: log.With("component", "sqlite")}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Sessions возвращает репозиторий сессии поверх этой базы.
func (s *Storage) Sessions() session.Repository {
	return NewSessionRepository(s, s.log)
}
