package pave

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedTransforms(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    any
		wantErr bool
	}{
		{"upcase", "abc", "ABC", false},
		{"downcase", "ÀBC", "àbc", false},
		{"capitalize", "hELLO wORLD", "Hello world", false},
		{"strip", "\t x \n", "x", false},
		{"lstrip", "  x  ", "x  ", false},
		{"rstrip", "  x  ", "  x", false},
		{"abs", -4, 4, false},
		{"abs", 2.5, 2.5, false},
		{"to_s", 12, "12", false},
		{"to_s", decimal.RequireFromString("1.50"), "1.5", false},
		{"upcase", 5, nil, true},
		{"abs", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := NamedTransform(tt.name)
			require.True(t, ok)

			got, err := fn(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTransformUnsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("abs_decimal", func(t *testing.T) {
		got, err := Abs(decimal.NewFromInt(-3))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3).Equal(got.(decimal.Decimal)))
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := NamedTransform("reverse")
		assert.False(t, ok)
	})
}

func TestTransformFunc(t *testing.T) {
	double := TransformFunc(func(v any) any { return v.(int) * 2 })

	params := map[string]any{"n": "21"}
	got, err := Declare(params, "n", Integer, Options{Transform: double, Is: 42})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}
