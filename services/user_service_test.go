package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightChanged(t *testing.T) {
	assert.True(t, weightChanged(70, 71))
	assert.True(t, weightChanged(0, 65)) // first recorded weight
	assert.True(t, weightChanged(70, 69.9))

	assert.False(t, weightChanged(70, 70))   // resave of the same value
	assert.False(t, weightChanged(70, 0))    // weight not part of the update
	assert.False(t, weightChanged(70, -5))
	assert.False(t, weightChanged(70, 70.005)) // below scale precision
}
