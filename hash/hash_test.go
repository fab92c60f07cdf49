package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafHash(t *testing.T) {
	t.Parallel()

	data, other := []byte("data"), []byte("other")

	// same preimage -> same leaf
	leaf := LeafHash(data)
	require.Equal(t, leaf, LeafHash(data))
	require.Len(t, leaf, DigestSize)

	// different preimage -> different leaf
	require.NotEqual(t, leaf, LeafHash(other))
}

func TestNodeHash(t *testing.T) {
	t.Parallel()

	a, b := LeafHash([]byte("a")), LeafHash([]byte("b"))

	// same children -> same parent
	parent := NodeHash(a, b)
	require.Equal(t, parent, NodeHash(a, b))
	require.Len(t, parent, DigestSize)

	// child order does not matter
	require.Equal(t, parent, NodeHash(b, a))

	// different children -> different parent
	require.NotEqual(t, parent, NodeHash(a, a))
}

func TestLeafAndNodeDomainsAreSeparated(t *testing.T) {
	t.Parallel()

	a, b := LeafHash([]byte("a")), LeafHash([]byte("b"))

	// hashing two digests as a node must not equal hashing
	// their concatenation as a leaf preimage
	require.NotEqual(t, NodeHash(a, b), LeafHash(append(append([]byte{}, a...), b...)))
}
