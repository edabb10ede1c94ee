package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMerkleTools_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mt, err := NewMerkleTools(HashTypeSHA256, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, mt.AddLeaves([]string{"a", "b", "c"}, true))
	mt.MakeTree(true)

	built := logs.FilterMessage("Built merkle tree").All()
	require.Len(t, built, 1)
	fields := built[0].ContextMap()
	require.Equal(t, int64(3), fields["leaves"])
	require.Equal(t, int64(3), fields["levels"])
	require.Equal(t, true, fields["double_hash"])

	mt.ResetTree()
	require.Equal(t, 1, logs.FilterMessage("Resetting merkle tree").Len())
}
