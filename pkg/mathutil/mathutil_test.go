package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(3, 1, 5))
	assert.Equal(t, 1, Clamp(-2, 1, 5))
	assert.Equal(t, 5, Clamp(9, 1, 5))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 4, Abs(-4))
	assert.Equal(t, 4, Abs(4))
	assert.Equal(t, 4, Max(Min(4, 7), 2))
}
