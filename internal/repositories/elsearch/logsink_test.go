package elsearch

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"communityportal/pkg/logger"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bulkServer struct {
	mu       sync.Mutex
	lines    []map[string]interface{}
	response string
}

func (b *bulkServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != "/_bulk" {
		_, _ = w.Write([]byte(`{}`))
		return
	}

	scanner := bufio.NewScanner(r.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	b.mu.Lock()
	for scanner.Scan() {
		var line map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &line); err == nil {
			b.lines = append(b.lines, line)
		}
	}
	resp := b.response
	b.mu.Unlock()

	if resp == "" {
		resp = `{"took":1,"errors":false,"items":[]}`
	}
	_, _ = w.Write([]byte(resp))
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return &Client{ES: es, config: &Config{LogIndex: "portal-api-logs"}}
}

func TestLogSinkWritesDailyIndices(t *testing.T) {
	srv := &bulkServer{}
	sink := newTestClient(t, srv).LogSink()

	ts := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	batch := []logger.LogEntry{
		{ID: "a1", Timestamp: ts, Level: logger.LevelInfo, Message: "listing served"},
		{ID: "b2", Timestamp: ts.Add(2 * time.Minute), Level: logger.LevelWarn, Message: "page size fallback"},
	}
	require.NoError(t, sink.Write(context.Background(), batch))

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Len(t, srv.lines, 4)

	action := srv.lines[0]["index"].(map[string]interface{})
	assert.Equal(t, "portal-api-logs-2025.03.09", action["_index"])
	assert.Equal(t, "a1", action["_id"])
	assert.Equal(t, "listing served", srv.lines[1]["message"])

	action = srv.lines[2]["index"].(map[string]interface{})
	assert.Equal(t, "portal-api-logs-2025.03.10", action["_index"])
	assert.Equal(t, "WARN", srv.lines[3]["level"])
}

func TestLogSinkReportsRejectedItems(t *testing.T) {
	srv := &bulkServer{response: `{"took":1,"errors":true,"items":[
		{"index":{"status":201}},
		{"index":{"status":400,"error":{"type":"mapper_parsing_exception","reason":"failed to parse"}}}
	]}`}
	sink := newTestClient(t, srv).LogSink()

	err := sink.Write(context.Background(), []logger.LogEntry{
		{ID: "1", Timestamp: time.Now()},
		{ID: "2", Timestamp: time.Now()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 log entries rejected")
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}

func TestLogSinkEmptyBatch(t *testing.T) {
	srv := &bulkServer{}
	sink := newTestClient(t, srv).LogSink()

	require.NoError(t, sink.Write(context.Background(), nil))
	assert.Empty(t, srv.lines)
}

func TestLoggerShipsThroughSink(t *testing.T) {
	srv := &bulkServer{}
	sink := newTestClient(t, srv).LogSink()

	log := logger.NewLogger(logger.Config{
		Service:       "portal-api",
		LogDir:        t.TempDir(),
		FlushInterval: time.Hour,
		Sink:          sink,
	})
	log.Info("search served", map[string]interface{}{"hits": 3})
	require.NoError(t, log.Flush())
	require.NoError(t, log.Close())

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Len(t, srv.lines, 2)
	assert.Equal(t, "search served", srv.lines[1]["message"])
	assert.Equal(t, "portal-api", srv.lines[1]["service"])
}
