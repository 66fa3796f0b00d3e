// Package storage описывает локальное хранилище клиента.
package storage

import (
	"boothadmin/internal/domain/session"
)

// Storage - локальное хранилище клиента. Сейчас хранит только сессию.
type Storage interface {
	Sessions() session.Repository
	Close() error
}
