// Package session хранит сессию администратора: токен и сведения о
// пользователе, полученные при входе.
package session

import "errors"

// ErrUnauthenticated - в сессии нет токена. Запрос не отправляется.
var ErrUnauthenticated = errors.New("not authenticated")

// Ключи сессии в хранилище
const (
	KeyToken    = "token"
	KeyUserID   = "userId"
	KeyRole     = "role"
	KeyUserName = "userName"
)

// Keys возвращает все ключи сессии.
func Keys() []string {
	return []string{KeyToken, KeyUserID, KeyRole, KeyUserName}
}

type Session struct {
	Token    string `json:"-"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	UserName string `json:"user_name"`
}

// Authenticated сообщает, есть ли в сессии токен.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdmin проверяет роль администратора
func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

// Profile - данные пользователя, которые отдает API после входа.
type Profile struct {
	UserID   string
	Role     string
	UserName string
}
