package merkle

import (
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// MaxProofDepth bounds the number of siblings in a proof. It caps the
// committed tree at 2^64 leaves and keeps decoding of untrusted proofs
// bounded.
const MaxProofDepth = 64

// Proof is the ordered sequence of sibling digests recomputing a root
// from a single leaf. Siblings are ordered leaf to root.
// Scale encoding is implemented by hand to limit the [][]byte slice
// (outer and inner) while decoding untrusted input.
type Proof struct {
	Siblings [][]byte `scale:"max=64"` // each sibling is exactly 32 bytes
}

func (t *Proof) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeLen(enc, uint32(len(t.Siblings)), MaxProofDepth)
		if err != nil {
			return total, fmt.Errorf("EncodeLen failed: %w", err)
		}
		total += n
		for _, byteSlice := range t.Siblings {
			n, err := scale.EncodeByteSliceWithLimit(enc, byteSlice, 32)
			if err != nil {
				return total, fmt.Errorf("EncodeByteSliceWithLimit failed: %w", err)
			}
			total += n
		}
	}
	return total, nil
}

func (t *Proof) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := decodeSliceOfByteSliceWithLimit(dec, MaxProofDepth, 32)
		if err != nil {
			return total, err
		}
		total += n
		t.Siblings = field
	}
	return total, nil
}

func decodeSliceOfByteSliceWithLimit(d *scale.Decoder, outerLimit, innerLimit uint32) ([][]byte, int, error) {
	resultLen, total, err := scale.DecodeLen(d, outerLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("DecodeLen failed: %w", err)
	}
	if resultLen == 0 {
		return nil, total, nil
	}
	result := make([][]byte, 0, resultLen)

	for i := uint32(0); i < resultLen; i++ {
		val, n, err := scale.DecodeByteSliceWithLimit(d, innerLimit)
		if err != nil {
			return nil, 0, fmt.Errorf("DecodeByteSlice failed: %w", err)
		}
		result = append(result, val)
		total += n
	}

	return result, total, nil
}
