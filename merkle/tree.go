package merkle

import (
	"errors"
	"fmt"

	"github.com/vestinglabs/claimgate/hash"
)

var (
	ErrEmptyTree       = errors.New("tree has no leaves")
	ErrLeafOutOfBounds = errors.New("leaf index out of bounds")
)

// Tree accumulates leaves and computes the sorted-pair Merkle root and
// per-leaf proofs over them. Leaves keep their insertion order; an
// unpaired leaf at the end of a level is promoted unchanged to the
// level above. A single-leaf tree has the leaf itself as root and an
// empty proof.
//
// Tree is the committing counterpart of Verify. It is meant for the
// off-system tree builder and for tests, not for the claim path.
type Tree struct {
	leaves [][]byte
}

func NewTree() *Tree {
	return &Tree{}
}

// AddLeaf appends a leaf to the tree.
func (t *Tree) AddLeaf(leaf []byte) error {
	if len(leaf) != hash.DigestSize {
		return fmt.Errorf("invalid leaf size: %d", len(leaf))
	}
	t.leaves = append(t.leaves, append([]byte{}, leaf...))
	return nil
}

func (t *Tree) NumLeaves() int {
	return len(t.leaves)
}

// Root folds all leaves into the committed root.
func (t *Tree) Root() ([]byte, error) {
	if len(t.leaves) == 0 {
		return nil, ErrEmptyTree
	}
	level := t.leaves
	for len(level) > 1 {
		level = nextLevel(level)
	}
	return level[0], nil
}

// Proof collects the sibling path for the leaf at the given index.
func (t *Tree) Proof(index int) (Proof, error) {
	if index < 0 || index >= len(t.leaves) {
		return Proof{}, fmt.Errorf("%w: %d of %d", ErrLeafOutOfBounds, index, len(t.leaves))
	}

	var siblings [][]byte
	level := t.leaves
	for len(level) > 1 {
		sibling := index ^ 1
		if sibling < len(level) {
			siblings = append(siblings, level[sibling])
		}
		index /= 2
		level = nextLevel(level)
	}
	return Proof{Siblings: siblings}, nil
}

func nextLevel(level [][]byte) [][]byte {
	next := make([][]byte, 0, (len(level)+1)/2)
	for i := 0; i+1 < len(level); i += 2 {
		next = append(next, hash.NodeHash(level[i], level[i+1]))
	}
	if len(level)%2 == 1 {
		next = append(next, level[len(level)-1])
	}
	return next
}
