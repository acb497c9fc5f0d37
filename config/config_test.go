package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStakes(t *testing.T) {
	assert.Equal(t, []int{10, 20, 50, 100}, parseStakes("10,20,50,100"))
	assert.Equal(t, []int{5, 25}, parseStakes(" 5 , 25 "))
	// Junk entries are skipped, empty input falls back to defaults.
	assert.Equal(t, []int{10}, parseStakes("10,abc,-5,0"))
	assert.Equal(t, []int{10, 20, 50, 100}, parseStakes(""))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "hello")
	t.Setenv("X_INT", "7")
	t.Setenv("X_FLOAT", "0.5")
	t.Setenv("X_BAD", "nope")

	assert.Equal(t, "hello", getEnv("X_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("X_MISSING", "fallback"))
	assert.Equal(t, 7, getInt("X_INT", 1))
	assert.Equal(t, 1, getInt("X_BAD", 1))
	assert.Equal(t, 0.5, getFloat("X_FLOAT", 0.8))
	assert.Equal(t, 0.8, getFloat("X_BAD", 0.8))
}
