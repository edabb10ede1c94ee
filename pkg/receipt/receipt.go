// Package receipt packages an inclusion proof with everything a third party needs to
// check it: the leaf digest, the claimed root, the hash type and the double-hash flag.
package receipt

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/merkletools-go/pkg/merkle"
	"github.com/Layr-Labs/merkletools-go/pkg/util"
)

var (
	// ErrTreeNotReady is returned when a receipt is requested before MakeTree.
	ErrTreeNotReady = errors.New("merkle tree is not ready")

	// ErrEmptyTree is returned when the tree was built from zero leaves and has no levels.
	ErrEmptyTree = errors.New("merkle tree has no levels")

	// ErrLeafNotFound is returned when the requested leaf index does not exist.
	ErrLeafNotFound = errors.New("leaf not found")

	// ErrMalformedReceipt is returned when a receipt cannot be checked at all.
	ErrMalformedReceipt = errors.New("malformed receipt")
)

// Receipt is a self-contained inclusion proof for one leaf.
type Receipt struct {
	ID         string          `json:"id"`
	HashType   merkle.HashType `json:"hashType"`
	DoubleHash bool            `json:"doubleHash"`
	LeafIndex  int             `json:"leafIndex"`

	// TargetHash is the hex-encoded leaf as stored in the tree
	TargetHash string `json:"targetHash"`

	// MerkleRoot is the hex-encoded root the proof resolves to
	MerkleRoot string `json:"merkleRoot"`

	Proof merkle.Proof `json:"proof"`
}

// New builds a receipt for the leaf at index from a ready tree.
func New(tools *merkle.MerkleTools, index int) (*Receipt, error) {
	if tools == nil {
		return nil, errors.New("cannot build receipt from nil merkle tools")
	}

	if !tools.GetTreeReadyState() {
		return nil, ErrTreeNotReady
	}
	if tools.GetLevelCount() == 0 {
		return nil, ErrEmptyTree
	}

	root, ok := tools.GetMerkleRoot()
	if !ok {
		return nil, ErrTreeNotReady
	}
	leaf, ok := tools.GetLeaf(index)
	if !ok {
		return nil, errors.Wrapf(ErrLeafNotFound, "index %d (tree has %d leaves)", index, tools.GetLeafCount())
	}
	proof, ok := tools.GetProof(index)
	if !ok {
		return nil, errors.Wrapf(ErrLeafNotFound, "no proof for index %d", index)
	}

	return &Receipt{
		ID:         uuid.New().String(),
		HashType:   tools.HashType(),
		DoubleHash: tools.DoubleHash(),
		LeafIndex:  index,
		TargetHash: util.EncodeHex(leaf),
		MerkleRoot: util.EncodeHex(root),
		Proof:      proof,
	}, nil
}

// Verify recomputes the root from the receipt's proof and target.
// A tampered receipt yields (false, nil); an error means the receipt could not be checked.
func (r *Receipt) Verify() (bool, error) {
	if r == nil {
		return false, errors.Wrap(ErrMalformedReceipt, "receipt is nil")
	}

	hasher, err := merkle.NewHasher(r.HashType)
	if err != nil {
		return false, errors.Wrap(ErrMalformedReceipt, err.Error())
	}
	target, err := util.DecodeHex(r.TargetHash)
	if err != nil {
		return false, errors.Wrap(ErrMalformedReceipt, "targetHash: "+err.Error())
	}
	root, err := util.DecodeHex(r.MerkleRoot)
	if err != nil {
		return false, errors.Wrap(ErrMalformedReceipt, "merkleRoot: "+err.Error())
	}

	return merkle.ValidateProof(hasher, r.Proof, target, root, r.DoubleHash), nil
}

// Marshal serializes a Receipt to JSON bytes.
func Marshal(r *Receipt) ([]byte, error) {
	if r == nil {
		return nil, errors.New("cannot marshal nil Receipt")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal Receipt to JSON")
	}
	return data, nil
}

// Unmarshal deserializes a Receipt from JSON bytes.
func Unmarshal(data []byte) (*Receipt, error) {
	if len(data) == 0 {
		return nil, errors.New("cannot unmarshal empty data")
	}

	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal JSON to Receipt")
	}
	if r.Proof == nil {
		r.Proof = merkle.Proof{}
	}
	return &r, nil
}
