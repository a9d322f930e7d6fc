package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeColumnWhitelist(t *testing.T) {
	for _, size := range []string{"sm", "md", "lg", "xl", "doublexl"} {
		col, err := SizeColumn(size)
		require.NoError(t, err)
		assert.Equal(t, size, col)
		assert.True(t, ValidSize(size))
	}

	// Anything outside the whitelist is rejected; column names reach SQL text.
	for _, size := range []string{"", "XL", "xxl", "md; DROP TABLE quantities"} {
		_, err := SizeColumn(size)
		assert.ErrorIs(t, err, ErrInvalidSize, size)
		assert.False(t, ValidSize(size))
	}
}

func TestAvailable(t *testing.T) {
	q := Quantity{Sm: 1, Md: 2, Lg: 3, Xl: 4, DoubleXl: 5}

	for size, want := range map[string]int{"sm": 1, "md": 2, "lg": 3, "xl": 4, "doublexl": 5} {
		got, err := q.Available(size)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := q.Available("xxl")
	assert.ErrorIs(t, err, ErrInvalidSize)
}
