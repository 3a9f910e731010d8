package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaqueToken_Unique(t *testing.T) {
	a, err := NewOpaqueToken(32)
	require.NoError(t, err)
	b, err := NewOpaqueToken(0)
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.Len(t, b, 43)
	assert.NotEqual(t, a, b)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("ffffffff"), HashToken("ffffffff"))
	assert.NotEqual(t, HashToken("ffffffff"), HashToken("fffffffe"))
	assert.NotContains(t, HashToken("ffffffff"), "ffffffff")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}
