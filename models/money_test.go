package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPercent(t *testing.T) {
	assert.Equal(t, Money(900000), ApplyPercent(1000000, 10))
	assert.Equal(t, Money(1000000), ApplyPercent(1000000, 0))
	assert.Equal(t, Money(0), ApplyPercent(1000000, 100))

	// Out-of-range percentages clamp.
	assert.Equal(t, Money(500), ApplyPercent(500, -5))
	assert.Equal(t, Money(0), ApplyPercent(500, 150))

	// Integer truncation toward zero.
	assert.Equal(t, Money(66), ApplyPercent(99, 33))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, Money(50000), PercentOf(1000000, 5))
	assert.Equal(t, Money(0), PercentOf(1000000, 0))
	assert.Equal(t, Money(0), PercentOf(1000000, -1))
	assert.Equal(t, Money(33), PercentOf(99, 34))
}
