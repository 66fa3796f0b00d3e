package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boothadmin/internal/app/client/apitest"
	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/record"
)

func TestLoadDashboard(t *testing.T) {
	srv := apitest.New(t)
	srv.Seed(record.KindUsers, map[string]any{"id": 1, "name": "Alice"})
	srv.Seed(record.KindTools,
		map[string]any{"id": 1, "item_name": "Kamera", "stock": 0},
		map[string]any{"id": 2, "item_name": "Tripod", "stock": "4"},
		map[string]any{"id": 3, "item_name": "Printer", "stock": "-1"},
	)
	srv.Seed(record.KindLogs,
		map[string]any{"id": 1, "user_name": "Alice", "status": "borrowed"},
		map[string]any{"id": 2, "user_name": "Bob", "status": "Dikembalikan"},
		map[string]any{"id": 3, "user_name": "Sari"},
	)
	srv.Seed(record.KindEvents,
		map[string]any{"id": 1, "title": "Lama", "date": "2024-01-01"},
		map[string]any{"id": 2, "title": "Akhir tahun", "date": "2099-12-31"},
		map[string]any{"id": 3, "title": "Hari ini", "date": "2025-01-01"},
		map[string]any{"id": 4, "title": "Tanpa tanggal"},
	)

	h := newTestHTTPClient(t, srv, apitest.Token)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	sum, err := LoadDashboard(context.Background(), h, now)
	require.NoError(t, err)

	assert.Equal(t, map[record.Kind]int{
		record.KindUsers:  1,
		record.KindTools:  3,
		record.KindLogs:   3,
		record.KindEvents: 4,
	}, sum.Counts)

	assert.Equal(t, []string{"1", "3"}, ids(sum.OutOfStock))
	assert.Equal(t, []string{"1", "3"}, ids(sum.OpenLogs))
	assert.Equal(t, []string{"3", "2"}, ids(sum.UpcomingEvents))
}

func TestLoadDashboard_Failure(t *testing.T) {
	srv := apitest.New(t)
	srv.Fail("GET", "/events", 500)
	h := newTestHTTPClient(t, srv, apitest.Token)

	_, err := LoadDashboard(context.Background(), h, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, collection.ErrRejected)
}

func TestReturnValues(t *testing.T) {
	now := time.Date(2024, 8, 17, 15, 0, 0, 0, time.UTC)
	values := ReturnValues(now)

	assert.Equal(t, "returned", values["status"])
	assert.Equal(t, "2024-08-17", values["return_date"])
	assert.True(t, IsReturned(record.Record{Values: values}))
}

func ids(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID)
	}
	return out
}
