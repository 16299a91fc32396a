package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUint64(t *testing.T) {
	require.NoError(t, os.Setenv("FEE_PERCENT", "5"))
	defer os.Unsetenv("FEE_PERCENT")

	assert.Equal(t, uint64(5), getUint64("FEE_PERCENT", 1))
}

func TestGetUint64_NegativeFallsBack(t *testing.T) {
	require.NoError(t, os.Setenv("FEE_PERCENT", "-5"))
	defer os.Unsetenv("FEE_PERCENT")

	// A negative value must never wrap into a huge unsigned percent.
	assert.Equal(t, uint64(1), getUint64("FEE_PERCENT", 1))
}

func TestGetUint64_Unset(t *testing.T) {
	require.NoError(t, os.Unsetenv("FEE_PERCENT"))

	assert.Equal(t, uint64(1), getUint64("FEE_PERCENT", 1))
}
