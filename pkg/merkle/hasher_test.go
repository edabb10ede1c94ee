package merkle

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHasher_KnownDigests(t *testing.T) {
	testCases := []struct {
		hashType HashType
		input    string
		expected string
	}{
		{HashTypeSHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{HashTypeSHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{HashTypeSHA3_256, "abc", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{HashTypeSHA3_256, "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{HashTypeKeccak256, "", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.hashType)+"_"+tc.input, func(t *testing.T) {
			h, err := NewHasher(tc.hashType)
			require.NoError(t, err)
			require.Equal(t, tc.hashType, h.Type())

			digest := h.Sum([]byte(tc.input))
			require.Len(t, digest, 32)
			require.Equal(t, tc.expected, hex.EncodeToString(digest))
		})
	}
}

func TestHasher_SumConcatenatesParts(t *testing.T) {
	for _, ht := range SupportedHashTypes() {
		t.Run(string(ht), func(t *testing.T) {
			h, err := NewHasher(ht)
			require.NoError(t, err)
			require.Equal(t, h.Sum([]byte("abcdef")), h.Sum([]byte("ab"), []byte("cd"), []byte("ef")))
			require.Equal(t, h.Sum([]byte("ab")), h.Sum(nil, []byte("ab"), []byte{}))
		})
	}
}

func TestHashPair(t *testing.T) {
	h, err := NewHasher(HashTypeSHA256)
	require.NoError(t, err)

	single := hashPair(h, []byte("a"), []byte("b"), false)
	require.Equal(t, h.Sum([]byte("ab")), single)

	double := hashPair(h, []byte("a"), []byte("b"), true)
	require.Equal(t, "a1ff8f1856b5e24e32e3882edd4a021f48f28a8b21854b77fdef25a97601aace", hex.EncodeToString(double))

	// Order matters
	require.NotEqual(t, single, hashPair(h, []byte("b"), []byte("a"), false))
}

func TestNewHasher_Unsupported(t *testing.T) {
	h, err := NewHasher(HashType("md5"))
	require.ErrorIs(t, err, ErrUnsupportedHashType)
	require.Nil(t, h)

	mt, err := NewMerkleTools(HashType("md5"), nil)
	require.ErrorIs(t, err, ErrUnsupportedHashType)
	require.Nil(t, mt)
}

func TestParseHashType(t *testing.T) {
	testCases := []struct {
		input    string
		expected HashType
		wantErr  bool
	}{
		{"", HashTypeSHA256, false},
		{"sha256", HashTypeSHA256, false},
		{"SHA256", HashTypeSHA256, false},
		{" keccak256 ", HashTypeKeccak256, false},
		{"SHA3-256", HashTypeSHA3_256, false},
		{"blake2b", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			ht, err := ParseHashType(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedHashType)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, ht)
		})
	}
}

func TestMerkleTools_HashTypes(t *testing.T) {
	for _, ht := range SupportedHashTypes() {
		t.Run(string(ht), func(t *testing.T) {
			mt, err := NewMerkleTools(ht, nil)
			require.NoError(t, err)
			require.Equal(t, ht, mt.HashType())
			require.Equal(t, ht, mt.Hasher().Type())

			require.NoError(t, mt.AddLeaves([]string{"a", "b", "c", "d", "e"}, true))
			mt.MakeTree(false)

			root, ok := mt.GetMerkleRoot()
			require.True(t, ok)
			require.Len(t, root, 32)

			for i := 0; i < mt.GetLeafCount(); i++ {
				proof, ok := mt.GetProof(i)
				require.True(t, ok)
				leaf, _ := mt.GetLeaf(i)
				require.True(t, ValidateProof(mt.Hasher(), proof, leaf, root, false))
			}
		})
	}
}
