package logger

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu      sync.Mutex
	batches [][]LogEntry
	err     error
}

func (c *captureSink) Write(_ context.Context, batch []LogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, append([]LogEntry(nil), batch...))
	return c.err
}

func readEntries(t *testing.T, dir string) []LogEntry {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*", "*.log"))
	require.NoError(t, err)

	var entries []LogEntry
	for _, f := range files {
		fh, err := os.Open(f)
		require.NoError(t, err)
		scanner := bufio.NewScanner(fh)
		for scanner.Scan() {
			var e LogEntry
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
			entries = append(entries, e)
		}
		require.NoError(t, fh.Close())
	}
	return entries
}

func TestLoggerWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	log := NewLogger(Config{Service: "portal-api", LogDir: dir, FlushInterval: time.Hour, EnableCaller: true})

	log.Info("listing served", map[string]interface{}{"type": "village"})
	log.Error("count failed", errors.New("timeout"))
	require.NoError(t, log.Close())

	entries := readEntries(t, dir)
	require.Len(t, entries, 2)

	assert.Equal(t, LevelInfo, entries[0].Level)
	assert.Equal(t, "listing served", entries[0].Message)
	assert.Equal(t, "village", entries[0].Fields["type"])
	assert.Equal(t, "portal-api", entries[0].Service)
	require.NotNil(t, entries[0].Caller)
	assert.Contains(t, entries[0].Caller.File, "logger_test.go")

	require.NotNil(t, entries[1].Error)
	assert.Equal(t, "timeout", entries[1].Error.Message)
}

func TestLoggerLevelFilter(t *testing.T) {
	dir := t.TempDir()
	log := NewLogger(Config{LogDir: dir, LogLevel: LevelWarn, FlushInterval: time.Hour})

	log.Debug("noise")
	log.Info("noise")
	log.Warn("kept")
	log.WithContext(LevelInfo, "noise", LogContext{})
	log.WithContext(LevelError, "kept too", LogContext{HTTP: &HTTPContext{Method: "GET", StatusCode: 500}})
	require.NoError(t, log.Close())

	entries := readEntries(t, dir)
	require.Len(t, entries, 2)
	assert.Equal(t, "kept", entries[0].Message)
	require.NotNil(t, entries[1].HTTP)
	assert.Equal(t, 500, entries[1].HTTP.StatusCode)
}

func TestLoggerFlushFeedsSink(t *testing.T) {
	sink := &captureSink{err: errors.New("cluster unavailable")}
	log := NewLogger(Config{LogDir: t.TempDir(), FlushInterval: time.Hour, Sink: sink})
	defer log.Close()

	log.Info("one")
	log.Info("two")
	require.NoError(t, log.Flush())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 2)
}

func TestLoggerBatchSizeTriggersFlush(t *testing.T) {
	sink := &captureSink{}
	log := NewLogger(Config{LogDir: t.TempDir(), FlushInterval: time.Hour, BatchSize: 2, Sink: sink})

	for i := 0; i < 5; i++ {
		log.Info("entry")
	}
	require.NoError(t, log.Close())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	total := 0
	for _, b := range sink.batches {
		assert.LessOrEqual(t, len(b), 5)
		total += len(b)
	}
	assert.Equal(t, 5, total)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() {
		log.Info("x")
		log.Warn("x")
		log.Error("x", errors.New("y"))
		log.WithContext(LevelInfo, "x", LogContext{})
		_ = log.Flush()
		_ = log.Close()
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	log := NewLogger(Config{LogDir: t.TempDir()})
	require.NoError(t, log.Close())
	assert.NoError(t, log.Close())
	assert.NoError(t, log.Flush())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}
