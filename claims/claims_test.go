package claims_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vestinglabs/claimgate/claims"
	"github.com/vestinglabs/claimgate/hash"
)

func TestLeafIsDeterministic(t *testing.T) {
	t.Parallel()

	claim := claims.Claim{Beneficiary: nodeID(1), ScheduleParams: testParams(100)}
	require.Equal(t, claim.Leaf(), claim.Leaf())
	require.Len(t, claim.Leaf(), hash.DigestSize)
}

func TestLeafCommitsToEveryField(t *testing.T) {
	t.Parallel()

	base := claims.Claim{Beneficiary: nodeID(1), ScheduleParams: testParams(100)}

	mutations := map[string]func(*claims.Claim){
		"beneficiary":  func(c *claims.Claim) { c.Beneficiary = nodeID(2) },
		"start":        func(c *claims.Claim) { c.Start++ },
		"cliff":        func(c *claims.Claim) { c.Cliff++ },
		"duration":     func(c *claims.Claim) { c.Duration++ },
		"slice period": func(c *claims.Claim) { c.SlicePeriod++ },
		"revocable":    func(c *claims.Claim) { c.Revocable = !c.Revocable },
		"amount":       func(c *claims.Claim) { c.Amount++ },
	}
	for name, mutate := range mutations {
		mutated := base
		mutate(&mutated)
		require.NotEqual(t, base.Leaf(), mutated.Leaf(), "field: %s", name)
		require.NotEqual(t, base.Encode(), mutated.Encode(), "field: %s", name)
	}
}

func TestNodeIDFromHex(t *testing.T) {
	t.Parallel()

	id := nodeID(7)
	parsed, err := claims.NodeIDFromHex(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = claims.NodeIDFromHex("abcd")
	require.Error(t, err)
	_, err = claims.NodeIDFromHex("not-hex")
	require.Error(t, err)
}
