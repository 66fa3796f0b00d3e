package collection

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/record"
	"boothadmin/internal/domain/session"
)

// ActionState - состояние пользовательского действия (кнопки)
type ActionState int

const (
	ActionIdle ActionState = iota
	ActionSubmitting
	ActionSucceeded
	ActionFailed
	ActionUnauthenticated
)

func (s ActionState) String() string {
	switch s {
	case ActionSubmitting:
		return "submitting"
	case ActionSucceeded:
		return "succeeded"
	case ActionFailed:
		return "failed"
	case ActionUnauthenticated:
		return "unauthenticated"
	default:
		return "idle"
	}
}

// ConfirmState - состояние двухшагового удаления одной записи:
// idle -> confirming -> deleting -> idle.
type ConfirmState int

const (
	ConfirmIdle ConfirmState = iota
	ConfirmArmed
	ConfirmDeleting
)

func (s ConfirmState) String() string {
	switch s {
	case ConfirmArmed:
		return "confirming"
	case ConfirmDeleting:
		return "deleting"
	default:
		return "idle"
	}
}

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Bridge выполняет create/update/delete на сервере и после успешного ответа
// обновляет Store на месте, не перезагружая коллекцию.
type Bridge struct {
	store    *Store
	remote   Remote
	schema   record.Schema
	validate *validator.Validate
	notifier Notifier
	log      *slog.Logger
	newID    func() string

	mu       sync.Mutex
	actions  map[string]ActionState
	confirms map[string]ConfirmState
}

func NewBridge(store *Store, remote Remote, notifier Notifier, log *slog.Logger) *Bridge {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{
		store:    store,
		remote:   remote,
		schema:   store.schema,
		validate: validator.New(),
		notifier: notifier,
		log:      log.With("component", "mutation_bridge", "kind", store.schema.Kind.String()),
		newID:    func() string { return "generated-" + uuid.NewString() },
		actions:  make(map[string]ActionState),
		confirms: make(map[string]ConfirmState),
	}
}

// Validate проверяет значения формы по правилам схемы.
func (b *Bridge) Validate(values map[string]any) error {
	var errs ValidationErrors
	for _, f := range b.schema.Fields {
		if f.Rules == "" {
			continue
		}
		v := record.Payload(record.Schema{Fields: []record.Field{f}}, values)[f.Name]
		if err := b.validate.Var(v, f.Rules); err != nil {
			errs = append(errs, fieldErrors(f, v, err)...)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func fieldErrors(f record.Field, v any, err error) []ValidationError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: f.Name, Message: err.Error(), Value: v}}
	}
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out = append(out, ValidationError{Field: f.Name, Message: "нарушено правило " + msg, Value: v})
	}
	return out
}

// Create отправляет новую запись и добавляет подтвержденную сервером
// запись в конец коллекции. Если сервер не вернул id, назначается
// временный id, и запись помечается как Provisional.
func (b *Bridge) Create(ctx context.Context, values map[string]any) (record.Record, error) {
	if !b.schema.Supports(ActionCreate) {
		return record.Record{}, &ActionError{Action: ActionCreate, Err: ErrUnsupported}
	}
	if err := b.Validate(values); err != nil {
		return record.Record{}, b.reject(ActionCreate, "", err)
	}
	if err := b.begin(ActionCreate, ""); err != nil {
		return record.Record{}, err
	}

	payload := record.Payload(b.schema, values)
	body, err := b.remote.Create(ctx, b.schema.Kind, payload)
	if err != nil {
		return record.Record{}, b.finish(ActionCreate, "", err)
	}

	rec := record.Record{Values: payload}
	if id, ok := record.ExtractID(b.schema, body); ok {
		rec.ID = id
	} else {
		rec.ID = b.newID()
		rec.Provisional = true
		b.log.Warn("сервер не вернул id, назначен временный", "id", rec.ID)
	}

	if err := b.store.add(rec); err != nil {
		return record.Record{}, b.finish(ActionCreate, "", err)
	}
	b.finish(ActionCreate, "", nil)
	b.notifier.Notify(LevelSuccess, fmt.Sprintf("%s: запись добавлена", b.schema.Kind.DisplayName()))
	return rec.Clone(), nil
}

// Update отправляет запись целиком (текущие значения, поверх которых
// наложены переданные) и заменяет ее в коллекции по id.
func (b *Bridge) Update(ctx context.Context, id string, values map[string]any) (record.Record, error) {
	if !b.schema.Supports(ActionUpdate) {
		return record.Record{}, &ActionError{Action: ActionUpdate, ID: id, Err: ErrUnsupported}
	}

	current, ok := b.store.Find(id)
	if !ok {
		return record.Record{}, b.reject(ActionUpdate, id, record.ErrNotFound)
	}
	if current.Provisional {
		return record.Record{}, b.reject(ActionUpdate, id, ErrProvisionalID)
	}
	if b.ConfirmState(id) == ConfirmDeleting {
		return record.Record{}, &ActionError{Action: ActionUpdate, ID: id, Err: ErrInFlight}
	}

	merged := maps.Clone(current.Values)
	maps.Copy(merged, values)
	if err := b.Validate(merged); err != nil {
		return record.Record{}, b.reject(ActionUpdate, id, err)
	}
	if err := b.begin(ActionUpdate, id); err != nil {
		return record.Record{}, err
	}

	payload := record.Payload(b.schema, merged)
	if _, err := b.remote.Update(ctx, b.schema.Kind, id, payload); err != nil {
		return record.Record{}, b.finish(ActionUpdate, id, err)
	}

	rec := record.Record{ID: id, Values: payload}
	b.store.replace(rec)
	b.finish(ActionUpdate, id, nil)
	b.notifier.Notify(LevelSuccess, fmt.Sprintf("%s: запись %s обновлена", b.schema.Kind.DisplayName(), id))
	return rec.Clone(), nil
}

// ArmDelete - первый шаг удаления: idle -> confirming.
func (b *Bridge) ArmDelete(id string) error {
	if !b.schema.Supports(ActionDelete) {
		return &ActionError{Action: ActionDelete, ID: id, Err: ErrUnsupported}
	}
	if _, ok := b.store.Find(id); !ok {
		return &ActionError{Action: ActionDelete, ID: id, Err: record.ErrNotFound}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.confirms[id] == ConfirmDeleting {
		return &ActionError{Action: ActionDelete, ID: id, Err: ErrInFlight}
	}
	b.confirms[id] = ConfirmArmed
	return nil
}

// CancelDelete снимает подтверждение: confirming -> idle. Во время
// выполнения запроса отмена игнорируется.
func (b *Bridge) CancelDelete(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.confirms[id] == ConfirmArmed {
		delete(b.confirms, id)
	}
}

// Delete - второй шаг удаления: confirming -> deleting -> idle. Без
// предварительного ArmDelete возвращает ErrNotConfirmed.
func (b *Bridge) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	switch b.confirms[id] {
	case ConfirmIdle:
		b.mu.Unlock()
		return &ActionError{Action: ActionDelete, ID: id, Err: ErrNotConfirmed}
	case ConfirmDeleting:
		b.mu.Unlock()
		return &ActionError{Action: ActionDelete, ID: id, Err: ErrInFlight}
	}
	b.confirms[id] = ConfirmDeleting
	b.actions[key(ActionDelete, id)] = ActionSubmitting
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.confirms, id)
		b.mu.Unlock()
	}()

	if current, ok := b.store.Find(id); ok && current.Provisional {
		return b.finish(ActionDelete, id, ErrProvisionalID)
	}

	if err := b.remote.Delete(ctx, b.schema.Kind, id); err != nil {
		return b.finish(ActionDelete, id, err)
	}

	b.store.remove(id)
	b.finish(ActionDelete, id, nil)
	b.notifier.Notify(LevelSuccess, fmt.Sprintf("%s: запись %s удалена", b.schema.Kind.DisplayName(), id))
	return nil
}

// ConfirmState возвращает состояние удаления записи.
func (b *Bridge) ConfirmState(id string) ConfirmState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.confirms[id]
}

// ActionState возвращает состояние последнего действия над записью.
// Для create id пустой.
func (b *Bridge) ActionState(action, id string) ActionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.actions[key(action, id)]
}

func (b *Bridge) begin(action, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := key(action, id)
	if b.actions[k] == ActionSubmitting {
		return &ActionError{Action: action, ID: id, Err: ErrInFlight}
	}
	b.actions[k] = ActionSubmitting
	return nil
}

func (b *Bridge) finish(action, id string, err error) error {
	state := ActionSucceeded
	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		state = ActionUnauthenticated
	case err != nil:
		state = ActionFailed
	}

	b.mu.Lock()
	b.actions[key(action, id)] = state
	b.mu.Unlock()

	if err == nil {
		return nil
	}
	return b.reject(action, id, err)
}

// reject логирует ошибку действия и показывает уведомление. Локальное
// состояние коллекции не меняется.
func (b *Bridge) reject(action, id string, err error) error {
	b.log.Warn("действие отклонено", "action", action, "id", id, "error", err)
	b.notifier.Notify(LevelError, Describe(err))
	return &ActionError{Action: action, ID: id, Err: err}
}

func key(action, id string) string {
	return strings.Join([]string{action, id}, ":")
}
