package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCompare(t *testing.T) {
	h := NewPasswordHasher()

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	require.NoError(t, h.Compare(hash, "secret"))
	require.Error(t, h.Compare(hash, "wrong"))
}

func TestHashesAreSalted(t *testing.T) {
	h := NewPasswordHasher()

	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}
