package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Layr-Labs/merkletools-go/pkg/util"
)

// ErrInvalidEncoding is returned when a leaf value cannot be converted to bytes.
var ErrInvalidEncoding = errors.New("leaf value cannot be encoded")

// MerkleTools builds a binary merkle tree over an ordered list of leaves and
// produces and validates inclusion proofs against its root.
//
// Odd nodes are promoted to the next level unchanged rather than duplicated.
// A MerkleTools is not safe for concurrent use; callers sharing one must serialise
// the add -> MakeTree -> read sequence themselves.
type MerkleTools struct {
	hasher Hasher
	tree   *MerkleTree
	logger *zap.Logger
}

// NewMerkleTools creates an empty engine using the given hash type.
// A nil logger is replaced with a no-op logger.
func NewMerkleTools(hashType HashType, logger *zap.Logger) (*MerkleTools, error) {
	hasher, err := NewHasher(hashType)
	if err != nil {
		return nil, err
	}
	return NewMerkleToolsWithHasher(hasher, logger), nil
}

// NewMerkleToolsWithHasher creates an empty engine around an existing Hasher.
func NewMerkleToolsWithHasher(hasher Hasher, logger *zap.Logger) *MerkleTools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MerkleTools{
		hasher: hasher,
		tree:   &MerkleTree{},
		logger: logger,
	}
}

// HashType returns the hash type this engine was created with.
func (mt *MerkleTools) HashType() HashType {
	return mt.hasher.Type()
}

// Hasher returns the hash primitive used by this engine.
func (mt *MerkleTools) Hasher() Hasher {
	return mt.hasher
}

// ResetTree discards all leaves and levels.
func (mt *MerkleTools) ResetTree() {
	mt.logger.Sugar().Debugw("Resetting merkle tree", "leaves", len(mt.tree.Leaves))
	mt.tree = &MerkleTree{}
}

// AddLeaf appends the UTF-8 bytes of value as a new leaf, hashing them first when doHash is set.
func (mt *MerkleTools) AddLeaf(value string, doHash bool) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: value is not valid UTF-8", ErrInvalidEncoding)
	}
	mt.AddLeafBytes([]byte(value), doHash)
	return nil
}

// AddLeafHex decodes value from hex and appends it as a new leaf.
func (mt *MerkleTools) AddLeafHex(value string, doHash bool) error {
	leaf, err := util.DecodeHex(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	mt.AddLeafBytes(leaf, doHash)
	return nil
}

// AddLeafBytes appends value as a new leaf. The bytes are copied.
func (mt *MerkleTools) AddLeafBytes(value []byte, doHash bool) {
	mt.tree.isReady = false

	var leaf []byte
	if doHash {
		leaf = mt.hasher.Sum(value)
	} else {
		leaf = util.CloneBytes(value)
		if leaf == nil {
			leaf = []byte{}
		}
	}
	mt.tree.Leaves = append(mt.tree.Leaves, leaf)
}

// AddLeaves appends each value in order via AddLeaf. Every value is checked before
// any is added, so an error leaves the engine unchanged.
func (mt *MerkleTools) AddLeaves(values []string, doHash bool) error {
	for i, v := range values {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: value at position %d is not valid UTF-8", ErrInvalidEncoding, i)
		}
	}
	for _, v := range values {
		mt.AddLeafBytes([]byte(v), doHash)
	}
	return nil
}

// AddLeavesHex appends hex-encoded leaves in order. Every value is decoded before any is added.
func (mt *MerkleTools) AddLeavesHex(values []string, doHash bool) error {
	decoded := make([][]byte, len(values))
	for i, v := range values {
		leaf, err := util.DecodeHex(v)
		if err != nil {
			return fmt.Errorf("%w: value at position %d: %v", ErrInvalidEncoding, i, err)
		}
		decoded[i] = leaf
	}
	mt.AddLeavesBytes(decoded, doHash)
	return nil
}

// AddLeavesBytes appends each value in order via AddLeafBytes.
func (mt *MerkleTools) AddLeavesBytes(values [][]byte, doHash bool) {
	for _, v := range values {
		mt.AddLeafBytes(v, doHash)
	}
}

// GetLeaf returns a copy of the leaf at index, or false if index is out of range.
func (mt *MerkleTools) GetLeaf(index int) ([]byte, bool) {
	if index < 0 || index >= len(mt.tree.Leaves) {
		return nil, false
	}
	return util.CloneBytes(mt.tree.Leaves[index]), true
}

// GetLeafCount returns the number of leaves added since the last reset.
func (mt *MerkleTools) GetLeafCount() int {
	return len(mt.tree.Leaves)
}

// GetTreeReadyState reports whether MakeTree has run since the last mutation.
func (mt *MerkleTools) GetTreeReadyState() bool {
	return mt.tree.isReady
}

// GetLevelCount returns the number of levels in the last built tree, root level included.
// A ready tree built from zero leaves has no levels.
func (mt *MerkleTools) GetLevelCount() int {
	return len(mt.tree.levels)
}

// DoubleHash returns the doubleHash flag passed to the last MakeTree call.
func (mt *MerkleTools) DoubleHash() bool {
	return mt.tree.doubleHash
}

// MakeTree builds every level of the tree from the current leaves, replacing any
// previous levels. Pairs are hashed as H(left || right), or H(H(left || right)) when
// doubleHash is set, and an unpaired trailing node is promoted unchanged.
//
// With no leaves the tree is marked ready but has no levels and therefore no root.
func (mt *MerkleTools) MakeTree(doubleHash bool) {
	mt.tree.isReady = false
	mt.tree.doubleHash = doubleHash
	mt.tree.levels = nil

	if len(mt.tree.Leaves) > 0 {
		levels := make([][][]byte, 0)
		levels = append(levels, mt.tree.Leaves)

		// levels[0] is always the current top; prepend each new level
		for len(levels[0]) > 1 {
			next := mt.calculateNextLevel(levels[0], doubleHash)
			levels = append([][][]byte{next}, levels...)
		}
		mt.tree.levels = levels
	}

	mt.tree.isReady = true

	mt.logger.Sugar().Debugw("Built merkle tree",
		"leaves", len(mt.tree.Leaves),
		"levels", len(mt.tree.levels),
		"hash_type", mt.hasher.Type(),
		"double_hash", doubleHash,
	)
}

// calculateNextLevel computes the level above top.
func (mt *MerkleTools) calculateNextLevel(top [][]byte, doubleHash bool) [][]byte {
	next := make([][]byte, 0, (len(top)+1)/2)
	for i := 0; i < len(top); i += 2 {
		if _, _, promoted := pairSibling(len(top), i); promoted {
			next = append(next, top[i])
			continue
		}
		next = append(next, hashPair(mt.hasher, top[i], top[i+1], doubleHash))
	}
	return next
}

// GetMerkleRoot returns the root digest, or false if the tree is not ready or has no levels.
func (mt *MerkleTools) GetMerkleRoot() ([]byte, bool) {
	if !mt.tree.isReady || len(mt.tree.levels) == 0 {
		return nil, false
	}
	return util.CloneBytes(mt.tree.levels[0][0]), true
}

// GetProof returns the inclusion proof for the leaf at index, ordered from the leaf's
// sibling up to the level below the root. It returns false if the tree is not ready or
// index is outside the leaf level. A single-leaf tree yields an empty, non-nil proof.
func (mt *MerkleTools) GetProof(index int) (Proof, bool) {
	if !mt.tree.isReady || len(mt.tree.levels) == 0 {
		return nil, false
	}

	leafLevel := len(mt.tree.levels) - 1
	if index < 0 || index >= len(mt.tree.levels[leafLevel]) {
		return nil, false
	}

	proof := make(Proof, 0, leafLevel)
	for x := leafLevel; x > 0; x-- {
		level := mt.tree.levels[x]

		siblingIndex, side, promoted := pairSibling(len(level), index)
		if !promoted {
			proof = append(proof, ProofStep{
				Side:    side,
				Sibling: util.EncodeHex(level[siblingIndex]),
			})
		}

		index /= 2
	}

	return proof, true
}

// ValidateProof checks proof against merkleRoot using this engine's hash type.
// It does not read the engine's tree.
func (mt *MerkleTools) ValidateProof(proof Proof, targetHash, merkleRoot []byte, doubleHash bool) bool {
	return ValidateProof(mt.hasher, proof, targetHash, merkleRoot, doubleHash)
}

// ValidateProof replays proof from targetHash and reports whether the result equals
// merkleRoot byte for byte. An empty proof is valid only when targetHash is the root.
// Any step with an unknown side or a sibling that is not valid hex fails validation.
func ValidateProof(h Hasher, proof Proof, targetHash, merkleRoot []byte, doubleHash bool) bool {
	if h == nil {
		return false
	}
	if len(proof) == 0 {
		return bytes.Equal(targetHash, merkleRoot)
	}

	running := targetHash
	for _, step := range proof {
		if !step.Side.IsValid() {
			return false
		}
		sibling, err := util.DecodeHex(step.Sibling)
		if err != nil {
			return false
		}

		switch step.Side {
		case SideLeft:
			running = hashPair(h, sibling, running, doubleHash)
		case SideRight:
			running = hashPair(h, running, sibling, doubleHash)
		}
	}

	return bytes.Equal(running, merkleRoot)
}

// pairSibling describes how the node at index pairs within a level of levelLen nodes.
// The last node of an odd-length level has no sibling and is promoted. Otherwise an odd
// index pairs with index-1 on the left and an even index with index+1 on the right.
func pairSibling(levelLen, index int) (siblingIndex int, side Side, promoted bool) {
	if levelLen%2 == 1 && index == levelLen-1 {
		return -1, "", true
	}
	if index%2 == 1 {
		return index - 1, SideLeft, false
	}
	return index + 1, SideRight, false
}
