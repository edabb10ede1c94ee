package merkle

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedHashType is returned when a hash type name is not recognised.
var ErrUnsupportedHashType = errors.New("unsupported hash type")

// HashType names the hash primitive used for leaves and interior nodes.
type HashType string

const (
	HashTypeSHA256    HashType = "sha256"
	HashTypeSHA3_256  HashType = "sha3-256"
	HashTypeKeccak256 HashType = "keccak256"
)

// DefaultHashType is SHA-256.
const DefaultHashType = HashTypeSHA256

func (h HashType) String() string {
	return string(h)
}

// SupportedHashTypes lists every hash type NewHasher accepts.
func SupportedHashTypes() []HashType {
	return []HashType{HashTypeSHA256, HashTypeSHA3_256, HashTypeKeccak256}
}

// ParseHashType converts a user supplied name into a HashType. Matching is case-insensitive
// and an empty string selects the default.
func ParseHashType(name string) (HashType, error) {
	if name == "" {
		return DefaultHashType, nil
	}
	ht := HashType(strings.ToLower(strings.TrimSpace(name)))
	for _, supported := range SupportedHashTypes() {
		if ht == supported {
			return ht, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedHashType, name)
}

// Hasher is a pure hash function over the concatenation of its inputs.
// Implementations must be safe to call concurrently and must not retain the inputs.
type Hasher interface {
	Type() HashType
	Sum(parts ...[]byte) []byte
}

// NewHasher returns the Hasher for the given type.
func NewHasher(ht HashType) (Hasher, error) {
	switch ht {
	case HashTypeSHA256:
		return sha256Hasher{}, nil
	case HashTypeSHA3_256:
		return sha3Hasher{}, nil
	case HashTypeKeccak256:
		return keccak256Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHashType, ht)
	}
}

type sha256Hasher struct{}

func (sha256Hasher) Type() HashType { return HashTypeSHA256 }

func (sha256Hasher) Sum(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum(nil)
}

type sha3Hasher struct{}

func (sha3Hasher) Type() HashType { return HashTypeSHA3_256 }

func (sha3Hasher) Sum(parts ...[]byte) []byte {
	h := sha3.New256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum(nil)
}

type keccak256Hasher struct{}

func (keccak256Hasher) Type() HashType { return HashTypeKeccak256 }

func (keccak256Hasher) Sum(parts ...[]byte) []byte {
	return crypto.Keccak256(parts...)
}

// hashPair computes H(left || right), or H(H(left || right)) when doubleHash is set.
// Construction and validation both go through here so they cannot disagree.
func hashPair(h Hasher, left, right []byte, doubleHash bool) []byte {
	digest := h.Sum(left, right)
	if doubleHash {
		digest = h.Sum(digest)
	}
	return digest
}
