package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMFACodeValid(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("matching code within ttl", func(t *testing.T) {
		assert.True(t, mfaCodeValid("123456", "123456", now.Add(-5*time.Minute), now))
	})

	t.Run("expired code", func(t *testing.T) {
		assert.False(t, mfaCodeValid("123456", "123456", now.Add(-11*time.Minute), now))
	})

	t.Run("wrong code", func(t *testing.T) {
		assert.False(t, mfaCodeValid("123456", "654321", now.Add(-1*time.Minute), now))
	})

	t.Run("no pending code", func(t *testing.T) {
		assert.False(t, mfaCodeValid("", "", now.Add(-1*time.Minute), now))
		assert.False(t, mfaCodeValid("", "123456", now.Add(-1*time.Minute), now))
	})

	t.Run("missing sent timestamp", func(t *testing.T) {
		// Codes issued before the timestamp existed cannot prove freshness.
		assert.False(t, mfaCodeValid("123456", "123456", time.Time{}, now))
	})

	t.Run("exactly at ttl", func(t *testing.T) {
		assert.True(t, mfaCodeValid("123456", "123456", now.Add(-mfaCodeTTL), now))
	})
}
