package claims

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/vestinglabs/claimgate/hash"
)

// NodeID identifies a claiming party. On the claim path it is always the
// invoking identity; the read-only query path accepts any NodeID.
type NodeID [32]byte

func (id NodeID) Bytes() []byte {
	return id[:]
}

func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// NodeIDFromHex parses a hex-encoded 32-byte identity.
func NodeIDFromHex(s string) (NodeID, error) {
	var id NodeID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decoding node ID: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("invalid node ID length: %d", len(b))
	}
	copy(id[:], b)
	return id, nil
}

// ScheduleParams are the vesting schedule parameters committed for one
// beneficiary. Times and durations are in seconds, amounts in the
// token's indivisible base units.
type ScheduleParams struct {
	Start       uint64
	Cliff       uint64
	Duration    uint64
	SlicePeriod uint64
	Revocable   bool
	Amount      uint64
}

// Claim binds schedule parameters to a beneficiary. It is never stored;
// it exists only as the preimage of its leaf.
type Claim struct {
	Beneficiary NodeID
	ScheduleParams
}

// 32-byte beneficiary, four uint64 fields, revocable flag, uint64 amount.
const encodedClaimSize = 32 + 4*8 + 1 + 8

// Encode returns the canonical encoding of the claim. All fields are
// fixed-width and big-endian, in declaration order, so no two distinct
// claims share an encoding.
func (c *Claim) Encode() []byte {
	buf := make([]byte, encodedClaimSize)
	copy(buf, c.Beneficiary[:])
	binary.BigEndian.PutUint64(buf[32:], c.Start)
	binary.BigEndian.PutUint64(buf[40:], c.Cliff)
	binary.BigEndian.PutUint64(buf[48:], c.Duration)
	binary.BigEndian.PutUint64(buf[56:], c.SlicePeriod)
	if c.Revocable {
		buf[64] = 1
	}
	binary.BigEndian.PutUint64(buf[65:], c.Amount)
	return buf
}

// Leaf derives the digest identifying this claim in the committed tree.
func (c *Claim) Leaf() []byte {
	return hash.LeafHash(c.Encode())
}
