package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

// SessionRepository хранит ключи сессии в таблице session.
type SessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSessionRepository(db *Storage, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
	}
}

func (r *SessionRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return value, nil
}

// Set сохраняет все значения в одной транзакции.
func (r *SessionRepository) Set(ctx context.Context, values map[string]string) error {
	tx, err := r.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	for key, value := range values {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value)
		if err != nil {
			return fmt.Errorf("ошибка сохранения ключа %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	r.log.Debug("Сессия сохранена", "keys", len(values))
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, k)
	}

	if _, err := r.db.db.ExecContext(ctx, `DELETE FROM session WHERE key IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}
