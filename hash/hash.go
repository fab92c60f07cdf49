package hash

import (
	"bytes"

	"github.com/minio/sha256-simd" // simd optimized sha256 computation
)

// DigestSize is the width of leaves, internal nodes and roots.
const DigestSize = sha256.Size

// Domain separation prefixes. Leaves and internal nodes hash under
// different prefixes, so an internal node can never be presented as a
// leaf (or vice versa) to forge a proof.
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// LeafHash computes the digest committing to one claim preimage.
// The prefixed preimage is hashed twice, so a leaf is never the direct
// sha256 image of attacker-chosen bytes.
func LeafHash(preimage []byte) []byte {
	hasher := sha256.New()
	hasher.Write([]byte{leafPrefix})
	hasher.Write(preimage)
	inner := hasher.Sum(nil)
	outer := sha256.Sum256(inner)
	return outer[:]
}

// NodeHash combines two sibling digests into their parent. The children
// are ordered by digest value before hashing, so proofs carry no
// left/right position metadata.
func NodeHash(a, b []byte) []byte {
	if bytes.Compare(b, a) < 0 {
		a, b = b, a
	}
	hasher := sha256.New()
	hasher.Write([]byte{nodePrefix})
	hasher.Write(a)
	hasher.Write(b)
	return hasher.Sum(nil)
}
