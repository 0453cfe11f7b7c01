package iso4217

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByNumeric(t *testing.T) {
	alpha, ok := ByNumeric("643")
	assert.True(t, ok)
	assert.Equal(t, "RUB", alpha)

	alpha, ok = ByNumeric("840")
	assert.True(t, ok)
	assert.Equal(t, "USD", alpha)

	// Leading zeroes are optional
	alpha, ok = ByNumeric("36")
	assert.True(t, ok)
	assert.Equal(t, "AUD", alpha)

	_, ok = ByNumeric("000")
	assert.False(t, ok)
}

func TestByAlpha(t *testing.T) {
	num, ok := ByAlpha("EUR")
	assert.True(t, ok)
	assert.Equal(t, "978", num)

	_, ok = ByAlpha("XXX")
	assert.False(t, ok)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("643"))
	assert.False(t, IsNumeric("RUB"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("64a"))
}
