package session

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

// Authenticator выполняет вход на сервере. Реализуется HTTP клиентом.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, token string) (Profile, error)
}

var ErrEmptyCredentials = errors.New("email and password are required")

type Service struct {
	repo Repository
	auth Authenticator
	log  *slog.Logger
}

func NewService(repo Repository, auth Authenticator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo: repo,
		auth: auth,
		log:  log.With("component", "session"),
	}
}

// Login выполняет вход, запрашивает профиль и сохраняет сессию.
// При любой ошибке сохраненная сессия не меняется.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, ErrEmptyCredentials
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}
	if token == "" {
		return Session{}, fmt.Errorf("login: empty token: %w", ErrUnauthenticated)
	}

	profile, err := s.auth.Profile(ctx, token)
	if err != nil {
		return Session{}, fmt.Errorf("profile: %w", err)
	}

	sess := Session{
		Token:    token,
		UserID:   profile.UserID,
		Role:     profile.Role,
		UserName: profile.UserName,
	}
	if err := s.repo.Set(ctx, map[string]string{
		KeyToken:    sess.Token,
		KeyUserID:   sess.UserID,
		KeyRole:     sess.Role,
		KeyUserName: sess.UserName,
	}); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	s.log.Info("Вход выполнен", "user_id", sess.UserID, "role", sess.Role)
	return sess, nil
}

// Logout удаляет все ключи сессии.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.Clear(ctx, Keys()...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info("Выход выполнен")
	return nil
}

// Current возвращает сохраненную сессию. Без токена - ErrUnauthenticated.
func (s *Service) Current(ctx context.Context) (Session, error) {
	var sess Session
	fields := []struct {
		key string
		dst *string
	}{
		{KeyToken, &sess.Token},
		{KeyUserID, &sess.UserID},
		{KeyRole, &sess.Role},
		{KeyUserName, &sess.UserName},
	}
	for _, f := range fields {
		v, err := s.repo.Get(ctx, f.key)
		if err != nil {
			return Session{}, fmt.Errorf("read session %s: %w", f.key, err)
		}
		*f.dst = v
	}

	if !sess.Authenticated() {
		return Session{}, ErrUnauthenticated
	}
	return sess, nil
}

// Token возвращает токен для заголовка Authorization.
func (s *Service) Token(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}
