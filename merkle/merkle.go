// Package merkle verifies sorted-pair Merkle proofs against a committed
// root and builds the matching trees for off-system tooling and tests.
package merkle

import (
	"bytes"

	"github.com/vestinglabs/claimgate/hash"
)

// Verify recomputes a candidate root by folding the proof's siblings
// into the leaf with the sorted-pair node combiner, and compares it to
// root. It is stateless and never fails with an error: any malformed
// input, including an empty proof whose leaf does not equal the root,
// yields false.
func Verify(root, leaf []byte, proof Proof) bool {
	if len(root) != hash.DigestSize || len(leaf) != hash.DigestSize {
		return false
	}
	if len(proof.Siblings) > MaxProofDepth {
		return false
	}

	current := leaf
	for _, sibling := range proof.Siblings {
		if len(sibling) != hash.DigestSize {
			return false
		}
		current = hash.NodeHash(current, sibling)
	}
	return bytes.Equal(current, root)
}
