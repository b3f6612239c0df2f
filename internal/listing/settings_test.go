package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type brokenSettings struct{ err error }

func (b brokenSettings) Get(context.Context, string) (string, bool, error) {
	return "", false, b.err
}

func TestResolvePageSize(t *testing.T) {
	ctx := context.Background()
	settings := StaticSettings{
		"villages_per_page":    "20",
		"events_per_page":      " 8 ",
		"jobs_per_page":        "ten",
		"news_per_page":        "0",
		"classifieds_per_page": "-5",
	}

	tests := []struct {
		key  string
		want int
	}{
		{"villages_per_page", 20},
		{"events_per_page", 8},
		{"jobs_per_page", 12},
		{"news_per_page", 12},
		{"classifieds_per_page", 12},
		{"businesses_per_page", 12},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ResolvePageSize(ctx, settings, tt.key, 12)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePageSizeStoreFailure(t *testing.T) {
	boom := errors.New("settings table missing")
	got, err := ResolvePageSize(context.Background(), brokenSettings{err: boom}, "villages_per_page", 15)
	assert.Equal(t, 15, got)
	assert.ErrorIs(t, err, boom)

	got, err = ResolvePageSize(context.Background(), nil, "villages_per_page", 15)
	assert.Equal(t, 15, got)
	assert.NoError(t, err)
}

func TestListerFallsBackWhenSettingsFail(t *testing.T) {
	l := NewLister[Row](Events, Rows(), brokenSettings{err: errors.New("down")}, nil)
	assert.Equal(t, Events.DefaultPageSize, l.PageSize(context.Background()))
}
