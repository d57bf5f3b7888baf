package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelHash_Deterministic(t *testing.T) {
	first := LabelHash("saving")
	second := LabelHash("saving")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex of a 32-byte SHA-256 digest
}

func TestLabelHash_DistinctLabels(t *testing.T) {
	assert.NotEqual(t, LabelHash("saving"), LabelHash("spending"))
}

func TestHashString_KeyDependent(t *testing.T) {
	signed := HashString("payload", "key-a")

	assert.Equal(t, signed, HashString("payload", "key-a"))
	assert.NotEqual(t, signed, HashString("payload", "key-b"))
	assert.NotEqual(t, signed, HashString("other", "key-a"))
}

func TestHashEqual(t *testing.T) {
	a := HashString("payload", "key")
	b := HashString("payload", "key")

	assert.True(t, HashEqual(a, b))
	assert.False(t, HashEqual(a, HashString("other", "key")))

	// non-hex input never matches
	assert.False(t, HashEqual(a, "not-hex"))
	assert.False(t, HashEqual("zz", "zz"))
}
