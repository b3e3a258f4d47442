package newsControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "summer-sale-2026", slugify("Summer Sale 2026"))
	assert.Equal(t, "new-arrivals", slugify("  New   Arrivals!  "))
	assert.Equal(t, "top-10-sneakers", slugify("Top 10 Sneakers"))
	assert.Equal(t, "", slugify("!!!"))
	assert.Equal(t, "hello", slugify("HELLO"))
}
