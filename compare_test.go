package pave

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		a, b    any
		want    int
		wantErr bool
	}{
		{"int_int", 1, 2, -1, false},
		{"int_float", 3, 2.5, 1, false},
		{"uint_int64", uint(7), int64(7), 0, false},
		{"decimal_int", decimal.RequireFromString("0.1"), 0, 1, false},
		{"text", "b", "a", 1, false},
		{"time", now, now.Add(time.Second), -1, false},
		{"text_number", "1", 1, 0, true},
		{"number_text", 1, "1", 0, true},
		{"bool", true, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(tt.a, tt.b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncomparable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEqual(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, equal(nil, nil))
	assert.False(t, equal(nil, 0))
	assert.True(t, equal(1, 1.0))
	assert.True(t, equal(decimal.NewFromInt(2), int8(2)))
	assert.False(t, equal(1, "1"))
	assert.True(t, equal(at, at.In(time.FixedZone("X", 3600))))
	assert.True(t, equal([]any{"a"}, []any{"a"}))
	assert.False(t, equal("a", "b"))
}

func TestLength(t *testing.T) {
	n, ok := length("日本")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = length(map[string]any{"a": 1})
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = length(5)
	assert.False(t, ok)
}
