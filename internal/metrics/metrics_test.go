package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "/data1", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "/data1", 200, 30*time.Millisecond)
	m.ObserveRequest("POST", "/data1/add", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("GET", "/data1", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("POST", "/data1/add", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.APIRequestDuration))
}

func TestObserveMutation(t *testing.T) {
	m := New()

	m.ObserveMutation("users", "create", nil)
	m.ObserveMutation("users", "delete", errors.New("rejected"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("users", "create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("users", "delete", "failure")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.SetCollectionSize("tools", 12)

	require.NoError(t, m.WriteTextfile(""))

	path := filepath.Join(t.TempDir(), "boothadmin.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `boothadmin_collection_records{kind="tools"} 12`)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	assert.Error(t, err)
}
