package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/modlog/modlog/internal/storage"
	"github.com/modlog/modlog/pkg/logger"
	"github.com/modlog/modlog/pkg/types"
)

func newTestServer(t *testing.T, limiter *rate.Limiter) (*Server, http.Handler, storage.Storage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(&types.SQLiteConfig{Path: ":memory:", MaxConnections: 1})
	require.NoError(t, err)
	require.NoError(t, store.Initialize(context.Background()))
	t.Cleanup(func() { store.Close() })

	log, err := logger.New(logger.Config{Console: &bytes.Buffer{}, Level: "ERROR"})
	require.NoError(t, err)

	srv := NewServer(types.ServerConfig{Port: 0}, store, nil, "", log)
	srv.started = time.Now()
	return srv, srv.setupRouter(limiter), store
}

func seedRecords(t *testing.T, store storage.Storage) {
	t.Helper()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []*types.LogRecord{
		{Timestamp: base, Level: "INFO", Logger: "trainer", Message: "epoch 1 complete"},
		{Timestamp: base.Add(time.Minute), Level: "ERROR", Logger: "trainer", Message: "checkpoint write failed"},
		{Timestamp: base.Add(2 * time.Minute), Level: "SUCCESS", Logger: "trainer", Message: "model saved"},
	}
	_, err := store.SaveRecords(context.Background(), records)
	require.NoError(t, err)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestServer_Health(t *testing.T) {
	_, handler, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestServer_ListRecords(t *testing.T) {
	_, handler, store := newTestServer(t, nil)
	seedRecords(t, store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var list RecordList
	require.NoError(t, json.Unmarshal(payload, &list))

	require.Len(t, list.Records, 3)
	assert.Equal(t, int64(3), list.Total)
	// Newest first.
	assert.Equal(t, "model saved", list.Records[0].Message)
}

func TestServer_ListRecords_Filters(t *testing.T) {
	_, handler, store := newTestServer(t, nil)
	seedRecords(t, store)

	cases := []struct {
		query string
		want  int
	}{
		{"level=error", 1},
		{"q=epoch", 1},
		{"level=INFO&q=epoch", 1},
		{"level=DEBUG", 0},
		{"limit=2", 2},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records?"+tc.query, nil))
		require.Equal(t, http.StatusOK, rec.Code, "query %q", tc.query)

		payload, err := json.Marshal(decodeResponse(t, rec).Data)
		require.NoError(t, err)
		var list RecordList
		require.NoError(t, json.Unmarshal(payload, &list))
		assert.Len(t, list.Records, tc.want, "query %q", tc.query)
	}
}

func TestServer_ListRecords_BadParams(t *testing.T) {
	_, handler, _ := newTestServer(t, nil)

	for _, query := range []string{"level=bogus", "limit=0", "limit=99999", "offset=-1", "since=yesterday"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}

func TestServer_GetRecord(t *testing.T) {
	_, handler, store := newTestServer(t, nil)
	seedRecords(t, store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/99999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Stats(t *testing.T) {
	_, handler, store := newTestServer(t, nil)
	seedRecords(t, store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestServer_Archives(t *testing.T) {
	// A server wired to a real archiver lists its inventory.
	dir := t.TempDir()
	archiveDir := filepath.Join(dir, "archive")
	require.NoError(t, os.MkdirAll(archiveDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(archiveDir, "app.log_20240601_120000.gz"), []byte("x"), 0644))

	store, err := storage.NewSQLiteStorage(&types.SQLiteConfig{Path: ":memory:", MaxConnections: 1})
	require.NoError(t, err)
	require.NoError(t, store.Initialize(context.Background()))
	defer store.Close()

	log, err := logger.New(logger.Config{Console: &bytes.Buffer{}, Level: "ERROR"})
	require.NoError(t, err)

	srv := NewServer(types.ServerConfig{}, store, logger.NewArchiver(archiveDir, nil), "app.log", log)
	handler := srv.setupRouter(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/archives", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	payload, jErr := json.Marshal(decodeResponse(t, rec).Data)
	require.NoError(t, jErr)
	var list ArchiveList
	require.NoError(t, json.Unmarshal(payload, &list))
	assert.Equal(t, 1, list.Count)
}

func TestServer_RateLimit(t *testing.T) {
	_, handler, _ := newTestServer(t, rate.NewLimiter(rate.Limit(1), 1))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The burst is spent; the next immediate request is rejected.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	_, handler, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/records", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
