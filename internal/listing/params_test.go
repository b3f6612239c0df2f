package listing

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstParam(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "absent", values: nil, want: ""},
		{name: "empty list", values: []string{}, want: ""},
		{name: "scalar", values: []string{"temple"}, want: "temple"},
		{name: "repeated key keeps first", values: []string{"x", "y"}, want: "x"},
		{name: "no trimming", values: []string{"  spaced "}, want: "  spaced "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstParam(tt.values)
			assert.Equal(t, tt.want, got)
			// normalizing an already normalized value is a no-op
			assert.Equal(t, got, FirstParam([]string{got}))
		})
	}
}

func TestParam(t *testing.T) {
	q := url.Values{"q": {"a", "b"}}
	assert.Equal(t, "a", Param(q, "q"))
	assert.Equal(t, "", Param(q, "missing"))
	assert.Equal(t, "", Param(nil, "q"))
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-4", 1},
		{"1", 1},
		{"3", 3},
		{" 7 ", 7},
		{"+2", 2},
		{"12abc", 12},
		{"2.9", 2},
		{"-", 1},
		{"999999", 999999},
		{"9223372036854775807", math.MaxInt},
		{"99999999999999999999", math.MaxInt},
		{"-99999999999999999999", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePage(tt.in))
		})
	}
}

func TestParseBound(t *testing.T) {
	assert.Nil(t, ParseBound(""))
	assert.Nil(t, ParseBound("   "))
	assert.Nil(t, ParseBound("cheap"))
	assert.Nil(t, ParseBound("NaN"))
	assert.Nil(t, ParseBound("Inf"))

	if v := ParseBound("500"); assert.NotNil(t, v) {
		assert.Equal(t, 500.0, *v)
	}
	if v := ParseBound(" 12.5 "); assert.NotNil(t, v) {
		assert.Equal(t, 12.5, *v)
	}
	if v := ParseBound("0"); assert.NotNil(t, v) {
		assert.Equal(t, 0.0, *v)
	}
}

func TestParseFlag(t *testing.T) {
	assert.True(t, ParseFlag("true"))
	assert.True(t, ParseFlag("1"))
	assert.False(t, ParseFlag(""))
	assert.False(t, ParseFlag("yes"))
	assert.False(t, ParseFlag("false"))
}
