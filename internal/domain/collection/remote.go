// Package collection реализует работу страницы со списком записей:
// загрузку коллекции с сервера, поиск, постраничный вывод и мутации
// create/update/delete с локальной синхронизацией без повторной загрузки.
package collection

import (
	"context"

	"boothadmin/internal/domain/record"
)

// Remote - удаленный REST API коллекций. Методы возвращают сырое тело
// ответа, разбор формы выполняется в record.Normalize.
type Remote interface {
	List(ctx context.Context, kind record.Kind) ([]byte, error)
	Create(ctx context.Context, kind record.Kind, payload map[string]any) ([]byte, error)
	Update(ctx context.Context, kind record.Kind, id string, payload map[string]any) ([]byte, error)
	Delete(ctx context.Context, kind record.Kind, id string) error
}

// Level - уровень уведомления
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notifier показывает пользователю короткое временное уведомление.
type Notifier interface {
	Notify(level Level, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
