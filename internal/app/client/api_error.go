package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/session"
)

// APIError - ошибка обращения к API. Status 0 означает, что ответ не
// получен (сеть, таймаут).
type APIError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
}

// Unwrap относит ошибку к виду: транспорт, отказ сервера или
// недействительный токен (401).
func (e *APIError) Unwrap() []error {
	switch {
	case e.Status == 0:
		if e.Err != nil {
			return []error{collection.ErrTransport, e.Err}
		}
		return []error{collection.ErrTransport}
	case e.Status == http.StatusUnauthorized:
		return []error{session.ErrUnauthenticated, collection.ErrRejected}
	default:
		return []error{collection.ErrRejected}
	}
}

// UserMessage возвращает сообщение сервера для показа пользователю.
func (e *APIError) UserMessage() string {
	return e.Message
}

const maxMessageRunes = 200

// serverMessage достает текст ошибки из тела ответа.
func serverMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		text := []rune(strings.TrimSpace(string(body)))
		if len(text) > maxMessageRunes {
			text = text[:maxMessageRunes]
		}
		return string(text)
	}
	for _, key := range []string{"message", "error", "msg"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
