package collection

import (
	"errors"
	"fmt"
	"strings"

	"boothadmin/internal/domain/record"
	"boothadmin/internal/domain/session"
)

var (
	ErrTransport     = errors.New("network failure")
	ErrRejected      = errors.New("request rejected by server")
	ErrInFlight      = errors.New("action already in progress")
	ErrNotConfirmed  = errors.New("delete was not confirmed")
	ErrProvisionalID = errors.New("record has a client-generated id")
	ErrUnsupported   = errors.New("operation not supported by the API")
)

// ActionError - ошибка пользовательского действия над записью.
type ActionError struct {
	Action string
	ID     string
	Err    error
}

func (e *ActionError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %v", e.Action, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// ValidationError - ошибка одного поля формы
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationErrors - все ошибки формы.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "invalid record data: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return record.ErrInvalidData
}

// userMessager реализуют ошибки, несущие сообщение сервера для пользователя.
type userMessager interface {
	UserMessage() string
}

// Describe превращает любую ошибку загрузки или мутации в короткое
// сообщение для уведомления.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var dup *record.DuplicateIDError
	var verrs ValidationErrors
	var um userMessager

	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		return "Вы не авторизованы. Выполните вход: boothadmin auth login"
	case errors.As(err, &dup):
		return fmt.Sprintf("Данные повреждены: идентификатор %q встречается несколько раз", dup.ID)
	case errors.Is(err, record.ErrShapeMismatch):
		return "Сервер вернул данные в неожиданном формате"
	case errors.As(err, &verrs):
		parts := make([]string, 0, len(verrs))
		for _, e := range verrs {
			parts = append(parts, e.Field+" - "+e.Message)
		}
		return "Проверьте поля формы: " + strings.Join(parts, ", ")
	case errors.Is(err, ErrInFlight):
		return "Действие уже выполняется, дождитесь завершения"
	case errors.Is(err, ErrNotConfirmed):
		return "Удаление не подтверждено"
	case errors.Is(err, ErrProvisionalID):
		return "Запись еще не получила идентификатор на сервере, обновите список"
	case errors.Is(err, ErrUnsupported):
		return "Сервер не поддерживает эту операцию"
	case errors.Is(err, record.ErrNotFound):
		return "Запись не найдена"
	case errors.Is(err, ErrTransport):
		return "Нет связи с сервером, попробуйте еще раз"
	case errors.As(err, &um) && um.UserMessage() != "":
		return "Сервер отклонил запрос: " + um.UserMessage()
	case errors.Is(err, ErrRejected):
		return "Сервер отклонил запрос"
	}
	return "Непредвиденная ошибка: " + err.Error()
}
