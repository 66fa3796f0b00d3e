package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boothadmin/internal/domain/record"
	"boothadmin/internal/domain/session"
)

func mountedPage(t *testing.T, body []byte) (*MockRemote, *Page) {
	t.Helper()
	remote := new(MockRemote)
	remote.On("List", mock.Anything, record.KindUsers).Return(body, nil).Once()

	page := NewPage(remote, record.KindUsers)
	require.NoError(t, page.Mount(context.Background()))
	return remote, page
}

func TestPage_DeleteLastRecordOnLastPage(t *testing.T) {
	remote, page := mountedPage(t, usersJSON(t, 13))

	v := page.View()
	assert.Equal(t, ViewReady, v.State)
	assert.Equal(t, 3, v.TotalPages)
	assert.Len(t, v.Records, 6)

	assert.Equal(t, 3, page.Paginate(3))
	require.Len(t, page.Visible(), 1)
	assert.Equal(t, "13", page.Visible()[0].ID)

	remote.On("Delete", mock.Anything, record.KindUsers, "13").Return(nil)
	require.NoError(t, page.ArmDelete("13"))
	require.NoError(t, page.Delete(context.Background(), "13"))

	v = page.View()
	assert.Equal(t, 2, v.CurrentPage)
	assert.Equal(t, 2, v.TotalPages)
	assert.Len(t, v.Records, 6)
	assert.False(t, v.HasNext)
}

func TestPage_CreateJumpsToLastPage(t *testing.T) {
	remote, page := mountedPage(t, usersJSON(t, 12))
	remote.On("Create", mock.Anything, record.KindUsers, mock.Anything).Return([]byte(`{"id":"99"}`), nil)

	_, err := page.Create(context.Background(), validUser())
	require.NoError(t, err)

	v := page.View()
	assert.Equal(t, 3, v.CurrentPage)
	require.Len(t, v.Records, 1)
	assert.Equal(t, "99", v.Records[0].ID)
}

func TestPage_SetQueryResetsPage(t *testing.T) {
	_, page := mountedPage(t, usersJSON(t, 13))
	page.Paginate(3)

	page.SetQuery("user 1")
	assert.Equal(t, 1, page.Pager.Current())
	// User 1, User 10..User 13
	assert.Len(t, page.Filtered(), 5)
	assert.Equal(t, "user 1", page.Query())
}

func TestPage_NavigationBounds(t *testing.T) {
	_, page := mountedPage(t, usersJSON(t, 8))

	assert.Equal(t, 1, page.Prev())
	assert.Equal(t, 2, page.Next())
	assert.Equal(t, 2, page.Next())
	assert.Equal(t, []int{1, 2}, page.View().PageRange)
}

func TestPage_EmptyStates(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		_, page := mountedPage(t, []byte(`[]`))
		v := page.View()
		assert.Equal(t, ViewEmpty, v.State)
		assert.Equal(t, 1, v.TotalPages)
		assert.Contains(t, v.Message, "записей пока нет")
	})

	t.Run("nothing found", func(t *testing.T) {
		_, page := mountedPage(t, []byte(`[{"id":"1","name":"Alice","phone":"0811","address":"X","role":"user"}]`))

		page.SetQuery("ali")
		v := page.View()
		assert.Equal(t, ViewReady, v.State)
		assert.Equal(t, []string{"1"}, ids(v.Records))
		assert.Empty(t, page.EmptyMessage())

		page.SetQuery("zz")
		v = page.View()
		assert.Equal(t, ViewNotFound, v.State)
		assert.Contains(t, v.Message, "«zz»")
		assert.NotEqual(t, v.Message, "записей пока нет")
	})
}

func TestPage_FailedMount(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("List", mock.Anything, record.KindUsers).Return(nil, session.ErrUnauthenticated)

		page := NewPage(remote, record.KindUsers)
		require.Error(t, page.Mount(context.Background()))

		v := page.View()
		assert.Equal(t, ViewUnauthenticated, v.State)
		assert.Equal(t, StatusUnauthenticated, page.Status())
		assert.Contains(t, v.Message, "auth login")
	})

	t.Run("retry after transport error", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("List", mock.Anything, record.KindUsers).Return(nil, ErrTransport).Once()
		remote.On("List", mock.Anything, record.KindUsers).Return(usersJSON(t, 2), nil).Once()

		page := NewPage(remote, record.KindUsers, WithPageSize(1))
		require.Error(t, page.Mount(context.Background()))
		assert.Equal(t, ViewError, page.View().State)

		require.NoError(t, page.Retry(context.Background()))
		v := page.View()
		assert.Equal(t, ViewReady, v.State)
		assert.Equal(t, 2, v.TotalPages)
	})
}
