package listing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 12, 1},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{17, 15, 2},
		{30, 15, 2},
		{31, 15, 3},
		{5, 1, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPaginationInvariant(t *testing.T) {
	for total := int64(0); total <= 60; total++ {
		for size := 1; size <= 16; size++ {
			pages := TotalPages(total, size)

			want := int((total + int64(size) - 1) / int64(size))
			if want < 1 {
				want = 1
			}
			assert.Equal(t, want, pages)

			for requested := 1; requested <= pages+3; requested++ {
				assert.Equal(t, min(requested, pages), ClampPage(requested, pages))
			}
		}
	}
}

func TestClampPageLowerBound(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 4))
	assert.Equal(t, 1, ClampPage(-3, 4))
	assert.Equal(t, 1, ClampPage(5, 0))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 15))
	assert.Equal(t, 15, Offset(2, 15))
	assert.Equal(t, 30, Offset(3, 15))
	assert.Equal(t, 0, Offset(0, 15))
}

func TestOffsetSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 12))
	assert.Equal(t, math.MaxInt, Offset(ParsePage("9223372036854775807"), 12))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt/2, 3))
	assert.Equal(t, math.MaxInt-1, Offset(math.MaxInt, 1))
}
