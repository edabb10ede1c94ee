package merkle

import (
	"encoding/json"
	"fmt"
)

// Side tells a verifier which side of the running hash a sibling sits on.
type Side string

const (
	// SideLeft means the sibling is hashed first: H(sibling || running).
	SideLeft Side = "left"

	// SideRight means the sibling is hashed second: H(running || sibling).
	SideRight Side = "right"
)

func (s Side) String() string {
	return string(s)
}

// IsValid reports whether s is one of the two recognised sides.
func (s Side) IsValid() bool {
	return s == SideLeft || s == SideRight
}

// ProofStep is a single sibling along the path from a leaf to the root.
//
// The JSON form is a single-key object keyed by side, e.g. {"left":"ab12..."}.
type ProofStep struct {
	Side Side

	// Sibling is the lowercase hex encoding of the sibling digest
	Sibling string
}

// Proof is an inclusion proof ordered from the leaf's sibling up to the level below the root.
// An empty proof means the target is the root itself.
type Proof []ProofStep

// MarshalJSON encodes the step as {"<side>":"<sibling>"}.
func (ps ProofStep) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{string(ps.Side): ps.Sibling})
}

// UnmarshalJSON decodes {"<side>":"<sibling>"}. Unknown sides are kept as-is so that
// validation, not decoding, is where they are rejected.
func (ps *ProofStep) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal proof step: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("proof step must have exactly one key, got %d", len(raw))
	}
	for side, sibling := range raw {
		ps.Side = Side(side)
		ps.Sibling = sibling
	}
	return nil
}

// MerkleTree holds the leaves and the levels computed from them.
type MerkleTree struct {
	// Leaves contains the leaf bytes in insertion order
	Leaves [][]byte

	// levels stores all tree levels for proof generation
	// levels[0] = root level, levels[len-1] = leaves
	levels [][][]byte

	// isReady is true only between a MakeTree call and the next mutation
	isReady bool

	// doubleHash records the flag used by the last MakeTree call
	doubleHash bool
}
