package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ParseIntDefault("5", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("abc", 1))
	assert.Equal(t, -3, ParseIntDefault("-3", 1))
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	from, size := Calculate(1, 10)
	assert.Equal(t, 0, from)
	assert.Equal(t, 10, size)

	from, size = Calculate(3, 25)
	assert.Equal(t, 50, from)
	assert.Equal(t, 25, size)

	from, size = Calculate(0, 0)
	assert.Equal(t, 0, from)
	assert.Equal(t, DefaultPageSize, size)

	from, size = Calculate(2, 1000)
	assert.Equal(t, DefaultPageSize, from)
	assert.Equal(t, DefaultPageSize, size)
}
