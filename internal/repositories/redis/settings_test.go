package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"communityportal/internal/listing"
	"communityportal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
	failSet error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memKV) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return redis.NewStringResult("", m.failGet)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memKV) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return redis.NewStatusResult("", m.failSet)
	}
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

type countingSettings struct {
	listing.StaticSettings
	calls int
	err   error
}

func (c *countingSettings) Get(ctx context.Context, key string) (string, bool, error) {
	c.calls++
	if c.err != nil {
		return "", false, c.err
	}
	return c.StaticSettings.Get(ctx, key)
}

func TestCachedSettingsReadThrough(t *testing.T) {
	kv := newMemKV()
	backing := &countingSettings{StaticSettings: listing.StaticSettings{"villages_per_page": "20"}}
	s := NewCachedSettings(kv, backing, time.Minute, nil)

	for i := 0; i < 3; i++ {
		v, ok, err := s.Get(context.Background(), "villages_per_page")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "20", v)
	}
	assert.Equal(t, 1, backing.calls)
	assert.Equal(t, time.Minute, kv.ttls["portal:settings:villages_per_page"])
}

func TestCachedSettingsCachesAbsence(t *testing.T) {
	kv := newMemKV()
	backing := &countingSettings{StaticSettings: listing.StaticSettings{}}
	s := NewCachedSettings(kv, backing, 0, nil)

	for i := 0; i < 2; i++ {
		_, ok, err := s.Get(context.Background(), "events_per_page")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 1, backing.calls)
	assert.Equal(t, DefaultSettingsTTL, kv.ttls["portal:settings:events_per_page"])
}

func TestCachedSettingsRedisDown(t *testing.T) {
	kv := newMemKV()
	kv.failGet = errors.New("dial tcp: connection refused")
	backing := &countingSettings{StaticSettings: listing.StaticSettings{"jobs_per_page": "8"}}
	s := NewCachedSettings(kv, backing, time.Minute, nil)

	v, ok, err := s.Get(context.Background(), "jobs_per_page")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "8", v)

	size, err := listing.ResolvePageSize(context.Background(), s, "jobs_per_page", 10)
	require.NoError(t, err)
	assert.Equal(t, 8, size)
}

func TestCachedSettingsBackingFailureIsNotCached(t *testing.T) {
	kv := newMemKV()
	backing := &countingSettings{err: errors.New("timeout")}
	s := NewCachedSettings(kv, backing, time.Minute, nil)

	_, _, err := s.Get(context.Background(), "news_per_page")
	assert.Error(t, err)
	assert.Empty(t, kv.data)

	size, err := listing.ResolvePageSize(context.Background(), s, "news_per_page", 9)
	assert.Error(t, err)
	assert.Equal(t, 9, size)
}

func TestCachedSettingsWithoutRedis(t *testing.T) {
	s := NewCachedSettings(nil, listing.StaticSettings{"schemes_per_page": "4"}, time.Minute, nil)
	v, ok, err := s.Get(context.Background(), "schemes_per_page")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", v)
}

type captureSink struct {
	mu      sync.Mutex
	entries []logger.LogEntry
}

func (s *captureSink) Write(_ context.Context, batch []logger.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, batch...)
	return nil
}

func TestCachedSettingsReportsCacheWriteFailure(t *testing.T) {
	kv := newMemKV()
	kv.failSet = errors.New("READONLY You can't write against a read only replica.")
	sink := &captureSink{}
	log := logger.NewLogger(logger.Config{LogDir: t.TempDir(), LogLevel: logger.LevelDebug, FlushInterval: time.Hour, Sink: sink})

	backing := &countingSettings{StaticSettings: listing.StaticSettings{"events_per_page": "6"}}
	s := NewCachedSettings(kv, backing, time.Minute, log)

	v, ok, err := s.Get(context.Background(), "events_per_page")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "6", v)
	assert.Empty(t, kv.data)
	require.NoError(t, log.Close())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.entries, 1)
	assert.Equal(t, logger.LevelDebug, sink.entries[0].Level)
	assert.Equal(t, "settings cache write failed", sink.entries[0].Message)
	assert.Equal(t, "events_per_page", sink.entries[0].Fields["key"])
	assert.Contains(t, sink.entries[0].Fields["error"], "READONLY")
}
