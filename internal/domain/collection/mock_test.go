package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boothadmin/internal/domain/record"
)

// MockRemote is a mock implementation of the Remote interface for testing
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) List(ctx context.Context, kind record.Kind) ([]byte, error) {
	args := m.Called(ctx, kind)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *MockRemote) Create(ctx context.Context, kind record.Kind, payload map[string]any) ([]byte, error) {
	args := m.Called(ctx, kind, payload)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *MockRemote) Update(ctx context.Context, kind record.Kind, id string, payload map[string]any) ([]byte, error) {
	args := m.Called(ctx, kind, id, payload)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *MockRemote) Delete(ctx context.Context, kind record.Kind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

type toast struct {
	Level   Level
	Message string
}

// recordingNotifier запоминает все уведомления
type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *recordingNotifier) Notify(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{Level: level, Message: message})
}

func (n *recordingNotifier) last() toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return toast{}
	}
	return n.toasts[len(n.toasts)-1]
}

func (n *recordingNotifier) count(level Level) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	var c int
	for _, t := range n.toasts {
		if t.Level == level {
			c++
		}
	}
	return c
}

func usersJSON(t *testing.T, n int) []byte {
	t.Helper()
	users := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, map[string]any{
			"id":      fmt.Sprint(i),
			"name":    fmt.Sprintf("User %d", i),
			"phone":   fmt.Sprintf("08%02d", i),
			"address": "Jl. Merdeka",
			"role":    "user",
		})
	}
	body, err := json.Marshal(users)
	require.NoError(t, err)
	return body
}

func loadedStore(t *testing.T, remote *MockRemote, body []byte, notifier Notifier) *Store {
	t.Helper()
	remote.On("List", mock.Anything, record.KindUsers).Return(body, nil).Once()
	store := NewStore(remote, record.KindUsers.Schema(), notifier, nil)
	require.NoError(t, store.Load(context.Background()))
	return store
}
