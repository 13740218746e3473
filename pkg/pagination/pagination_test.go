package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, (&Params{}).Validate())
	assert.NoError(t, (&Params{Page: 2, Limit: intPtr(0)}).Validate())
	assert.ErrorIs(t, (&Params{Page: -1}).Validate(), ErrNegative)
	assert.ErrorIs(t, (&Params{Limit: intPtr(-3)}).Validate(), ErrNegative)
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, (&Params{Page: 4}).Offset())
	assert.Equal(t, 0, (&Params{Page: 4, Limit: intPtr(0)}).Offset())
	assert.Equal(t, 6, (&Params{Page: 2, Limit: intPtr(3)}).Offset())
	assert.Equal(t, 3, (&Params{Page: 2, Limit: intPtr(3)}).Size())
	assert.Equal(t, math.MaxInt, (&Params{Page: 1 << 40, Limit: intPtr(1 << 24)}).Offset())
	assert.Equal(t, math.MaxInt, (&Params{Page: math.MaxInt, Limit: intPtr(2)}).Offset())
}

func TestParams_PastEnd(t *testing.T) {
	assert.False(t, (&Params{Page: 0, Limit: intPtr(3)}).PastEnd(0))
	assert.False(t, (&Params{Page: 1, Limit: intPtr(3)}).PastEnd(4))
	assert.True(t, (&Params{Page: 2, Limit: intPtr(3)}).PastEnd(6))
	assert.True(t, (&Params{Page: 1 << 40, Limit: intPtr(1 << 24)}).PastEnd(4))
	assert.False(t, (&Params{Page: 1 << 40}).PastEnd(4))
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		params   *Params
		total    int64
		current  int
		lastPage int
	}{
		{"no limit", &Params{Page: 3}, 10, 0, 0},
		{"zero limit", &Params{Page: 3, Limit: intPtr(0)}, 10, 0, 0},
		{"nil params", nil, 10, 0, 0},
		{"no matches", &Params{Page: 0, Limit: intPtr(3)}, 0, 0, 0},
		{"exact pages", &Params{Page: 1, Limit: intPtr(3)}, 6, 1, 1},
		{"partial last page", &Params{Page: 0, Limit: intPtr(3)}, 4, 0, 1},
		{"page past the end", &Params{Page: 9, Limit: intPtr(5)}, 12, 9, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.params, tt.total)
			require.NotNil(t, p)
			assert.Equal(t, tt.current, p.CurrentPage)
			assert.Equal(t, tt.lastPage, p.LastPage)
		})
	}
}
