package collection

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/record"
	"boothadmin/internal/domain/session"
)

// Status - состояние загрузки коллекции
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "idle"
	}
}

// Store хранит коллекцию одной страницы в памяти. Коллекция заполняется
// целиком через Load и дальше меняется только мостом мутаций.
type Store struct {
	remote   Remote
	schema   record.Schema
	notifier Notifier
	log      *slog.Logger

	mu      sync.RWMutex
	records []record.Record
	status  Status
	err     error
}

func NewStore(remote Remote, schema record.Schema, notifier Notifier, log *slog.Logger) *Store {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		remote:   remote,
		schema:   schema,
		notifier: notifier,
		log:      log.With("component", "collection_store", "kind", schema.Kind.String()),
	}
}

// Load запрашивает коллекцию и при успехе заменяет ее целиком. Любая
// ошибка (сеть, форма ответа, повторяющийся id) переводит хранилище в
// состояние ошибки и показывается уведомлением, коллекция не меняется.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.err = nil
	s.mu.Unlock()

	body, err := s.remote.List(ctx, s.schema.Kind)
	if err != nil {
		return s.fail(err)
	}

	records, err := record.Normalize(s.schema, body)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.records = records
	s.status = StatusReady
	s.mu.Unlock()

	s.log.Debug("коллекция загружена", "count", len(records))
	return nil
}

func (s *Store) fail(err error) error {
	status := StatusFailed
	if errors.Is(err, session.ErrUnauthenticated) {
		status = StatusUnauthenticated
	}

	s.mu.Lock()
	s.status = status
	s.err = err
	s.mu.Unlock()

	s.log.Warn("не удалось загрузить коллекцию", "error", err)
	s.notifier.Notify(LevelError, Describe(err))
	return &ActionError{Action: "load " + s.schema.Kind.String(), Err: err}
}

// State возвращает текущее состояние загрузки и последнюю ошибку.
func (s *Store) State() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.err
}

// Records возвращает копию коллекции в порядке ответа API.
func (s *Store) Records() []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]record.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len возвращает размер коллекции.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Find возвращает запись по id.
func (s *Store) Find(id string) (record.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec.Clone(), true
		}
	}
	return record.Record{}, false
}

// add дописывает запись в конец коллекции. Запись с уже существующим id
// не добавляется.
func (s *Store) add(rec record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			return &record.DuplicateIDError{ID: rec.ID, First: i, Second: len(s.records)}
		}
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *Store) replace(rec record.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return true
		}
	}
	return false
}

func (s *Store) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}
