package session

import "context"

// Repository - хранилище значений сессии по ключу. Отсутствующий ключ
// возвращается как пустая строка без ошибки.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context, keys ...string) error
}
