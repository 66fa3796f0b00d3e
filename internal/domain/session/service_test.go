package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) Set(ctx context.Context, values map[string]string) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *MockRepository) Clear(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) Profile(ctx context.Context, token string) (Profile, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(Profile), args.Error(1)
}

func TestService_Login(t *testing.T) {
	mockRepo := new(MockRepository)
	mockAuth := new(MockAuthenticator)
	service := NewService(mockRepo, mockAuth, slog.Default())

	mockAuth.On("Login", mock.Anything, "admin@booth.id", "secret").Return("tok-1", nil)
	mockAuth.On("Profile", mock.Anything, "tok-1").Return(Profile{UserID: "4", Role: "admin", UserName: "Rina"}, nil)
	mockRepo.On("Set", mock.Anything, map[string]string{
		KeyToken:    "tok-1",
		KeyUserID:   "4",
		KeyRole:     "admin",
		KeyUserName: "Rina",
	}).Return(nil)

	sess, err := service.Login(context.Background(), "admin@booth.id", "secret")
	require.NoError(t, err)

	assert.Equal(t, Session{Token: "tok-1", UserID: "4", Role: "admin", UserName: "Rina"}, sess)
	assert.True(t, sess.IsAdmin())
	mockAuth.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestService_Login_Failures(t *testing.T) {
	t.Run("empty credentials", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAuth := new(MockAuthenticator)
		service := NewService(mockRepo, mockAuth, slog.Default())

		_, err := service.Login(context.Background(), "", "secret")
		assert.ErrorIs(t, err, ErrEmptyCredentials)
		mockAuth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejected by server", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAuth := new(MockAuthenticator)
		service := NewService(mockRepo, mockAuth, slog.Default())

		mockAuth.On("Login", mock.Anything, "a@b.c", "bad").Return("", errors.New("invalid credentials"))

		_, err := service.Login(context.Background(), "a@b.c", "bad")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
		mockRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("profile fails", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAuth := new(MockAuthenticator)
		service := NewService(mockRepo, mockAuth, slog.Default())

		mockAuth.On("Login", mock.Anything, "a@b.c", "pw").Return("tok", nil)
		mockAuth.On("Profile", mock.Anything, "tok").Return(Profile{}, errors.New("timeout"))

		_, err := service.Login(context.Background(), "a@b.c", "pw")
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("empty token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAuth := new(MockAuthenticator)
		service := NewService(mockRepo, mockAuth, slog.Default())

		mockAuth.On("Login", mock.Anything, "a@b.c", "pw").Return("", nil)

		_, err := service.Login(context.Background(), "a@b.c", "pw")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestService_Logout(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockAuthenticator), slog.Default())

	mockRepo.On("Clear", mock.Anything, []string{KeyToken, KeyUserID, KeyRole, KeyUserName}).Return(nil)

	require.NoError(t, service.Logout(context.Background()))
	mockRepo.AssertExpectations(t)
}

func TestService_Current(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockAuthenticator), slog.Default())

	mockRepo.On("Get", mock.Anything, KeyToken).Return("tok", nil)
	mockRepo.On("Get", mock.Anything, KeyUserID).Return("7", nil)
	mockRepo.On("Get", mock.Anything, KeyRole).Return("user", nil)
	mockRepo.On("Get", mock.Anything, KeyUserName).Return("Budi", nil)

	sess, err := service.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Budi", sess.UserName)
	assert.False(t, sess.IsAdmin())
}

func TestService_Current_NoToken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockAuthenticator), slog.Default())

	mockRepo.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("", nil)

	_, err := service.Current(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_Token(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		repoErr error
		wantErr error
	}{
		{name: "present", stored: "tok"},
		{name: "missing", stored: "", wantErr: ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := NewService(mockRepo, new(MockAuthenticator), slog.Default())
			mockRepo.On("Get", mock.Anything, KeyToken).Return(tt.stored, tt.repoErr)

			token, err := service.Token(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stored, token)
		})
	}

	t.Run("storage error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, new(MockAuthenticator), slog.Default())
		mockRepo.On("Get", mock.Anything, KeyToken).Return("", errors.New("database is locked"))

		_, err := service.Token(context.Background())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}
