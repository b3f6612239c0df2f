package listing

import (
	"context"
	"strconv"
	"strings"
)

// Settings is the key-value store that holds site configuration.
// Get returns ok=false when the key is absent.
type Settings interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// ResolvePageSize reads an integer page size from settings. Any failure,
// missing key or value below 1 yields fallback. The returned error is the
// store error, if any, so the caller can log it.
func ResolvePageSize(ctx context.Context, settings Settings, key string, fallback int) (int, error) {
	if settings == nil || key == "" {
		return fallback, nil
	}
	raw, ok, err := settings.Get(ctx, key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback, nil
	}
	return n, nil
}

// StaticSettings is an in-memory Settings, handy for defaults and tests.
type StaticSettings map[string]string

func (s StaticSettings) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}
