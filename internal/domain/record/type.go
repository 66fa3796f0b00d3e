package record

import (
	"fmt"
)

// Kind - тип коллекции (ресурса) на удаленном API
type Kind string

const (
	KindUsers  Kind = "users"
	KindTools  Kind = "tools"
	KindLogs   Kind = "logs"
	KindEvents Kind = "events"
)

// Kinds возвращает все поддерживаемые коллекции в порядке меню
func Kinds() []Kind {
	return []Kind{KindUsers, KindTools, KindLogs, KindEvents}
}

// Validate проверяет, что тип коллекции известен.
func (k Kind) Validate() error {
	switch k {
	case KindUsers, KindTools, KindLogs, KindEvents:
		return nil
	}
	return fmt.Errorf("неверный тип коллекции: %s", k)
}

// String возвращает строковое представление типа.
func (k Kind) String() string {
	return string(k)
}

// DisplayName возвращает человекочитаемое название коллекции.
func (k Kind) DisplayName() string {
	switch k {
	case KindUsers:
		return "Пользователи"
	case KindTools:
		return "Оборудование"
	case KindLogs:
		return "Журнал выдачи"
	case KindEvents:
		return "Мероприятия"
	default:
		return "Неизвестная коллекция"
	}
}

// Schema возвращает описание полей и эндпоинтов коллекции.
func (k Kind) Schema() Schema {
	s, ok := schemas[k]
	if !ok {
		return Schema{Kind: k}
	}
	return s
}
