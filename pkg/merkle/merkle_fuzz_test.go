package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzProofRoundTrip(f *testing.F) {
	f.Add(uint8(1), uint8(0), false)
	f.Add(uint8(10), uint8(5), true)
	f.Add(uint8(17), uint8(16), false)

	f.Fuzz(func(t *testing.T, numLeaves uint8, index uint8, doubleHash bool) {
		if numLeaves == 0 {
			return
		}
		idx := int(index) % int(numLeaves)

		mt := newTestTools(t)
		mt.AddLeavesBytes(randomLeaves(int(numLeaves)), false)
		mt.MakeTree(doubleHash)

		root, ok := mt.GetMerkleRoot()
		require.True(t, ok)
		leaf, ok := mt.GetLeaf(idx)
		require.True(t, ok)
		proof, ok := mt.GetProof(idx)
		require.True(t, ok)

		require.True(t, mt.ValidateProof(proof, leaf, root, doubleHash))

		// Proof length is bounded by the number of levels below the root
		require.LessOrEqual(t, len(proof), mt.GetLevelCount()-1)

		_, ok = mt.GetProof(int(numLeaves))
		require.False(t, ok)
	})
}

func FuzzValidateProofTamperedTarget(f *testing.F) {
	f.Add([]byte("leaf"), uint8(0))
	f.Add([]byte{}, uint8(3))

	f.Fuzz(func(t *testing.T, seed []byte, flip uint8) {
		mt := newTestTools(t)
		mt.AddLeafBytes(seed, true)
		mt.AddLeavesBytes(randomLeaves(4), false)
		mt.MakeTree(true)

		root, _ := mt.GetMerkleRoot()
		leaf, _ := mt.GetLeaf(0)
		proof, _ := mt.GetProof(0)

		tampered := append([]byte{}, leaf...)
		tampered[int(flip)%len(tampered)] ^= 0x01
		require.False(t, mt.ValidateProof(proof, tampered, root, true))
	})
}
