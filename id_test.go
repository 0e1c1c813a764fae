package cutil_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/cutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUID(t *testing.T) {
	t.Parallel()

	a := cutil.NewUID()
	b := cutil.NewUID()

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), a)
	assert.NotEqual(t, a, b)
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic for value and salt", func(t *testing.T) {
		t.Parallel()

		a, err := cutil.GenerateKey(42, "salt", 8)
		require.NoError(t, err)
		b, err := cutil.GenerateKey(42, "salt", 8)
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, len(a), 8)
	})

	t.Run("differs by salt", func(t *testing.T) {
		t.Parallel()

		a, err := cutil.GenerateKey(42, "one", 8)
		require.NoError(t, err)
		b, err := cutil.GenerateKey(42, "two", 8)
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("defaults size", func(t *testing.T) {
		t.Parallel()

		k, err := cutil.GenerateKey(1, "salt", 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(k), cutil.DefaultKeySize)
	})

	t.Run("returns EINVALID for negative value", func(t *testing.T) {
		t.Parallel()

		_, err := cutil.GenerateKey(-1, "salt", 8)
		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))
	})
}

func TestRandomKey(t *testing.T) {
	t.Parallel()

	k, err := cutil.RandomKey(12)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(k), 12)
}
