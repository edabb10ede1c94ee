package config

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Layr-Labs/merkletools-go/pkg/merkle"
)

// Environment variable names for merkletool configuration
const (
	EnvMerkleHashType   = "MERKLE_HASH_TYPE"
	EnvMerkleDoubleHash = "MERKLE_DOUBLE_HASH"
	EnvMerkleHashLeaves = "MERKLE_HASH_LEAVES"
	EnvMerkleHexLeaves  = "MERKLE_HEX_LEAVES"
	EnvMerkleVerbose    = "MERKLE_VERBOSE"
)

// MerkleToolConfig represents the configuration shared by all merkletool commands
type MerkleToolConfig struct {
	// Hashing
	HashType   merkle.HashType `json:"hash_type" yaml:"hashType"`
	DoubleHash bool            `json:"double_hash" yaml:"doubleHash"`

	// Leaf input handling
	HashLeaves bool `json:"hash_leaves" yaml:"hashLeaves"` // hash each leaf value before adding it
	HexLeaves  bool `json:"hex_leaves" yaml:"hexLeaves"`   // leaf values are hex, not UTF-8 text

	// Operational settings
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// Validate checks the configuration and normalises the hash type
func (c *MerkleToolConfig) Validate() error {
	var allErrors field.ErrorList

	ht, err := merkle.ParseHashType(string(c.HashType))
	if err != nil {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("hashType"), c.HashType, hashTypeStrings()))
	} else {
		c.HashType = ht
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// LeafInput describes where a command reads its leaves from
type LeafInput struct {
	Leaves     []string `json:"leaves"`
	LeavesFile string   `json:"leaves_file"`
}

// Validate requires exactly one leaf source
func (li *LeafInput) Validate() error {
	var allErrors field.ErrorList
	if len(li.Leaves) == 0 && li.LeavesFile == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("leaves"), "either leaves or leavesFile is required"))
	}
	if len(li.Leaves) > 0 && li.LeavesFile != "" {
		allErrors = append(allErrors, field.Invalid(field.NewPath("leavesFile"), li.LeavesFile, "cannot be combined with leaves"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

func hashTypeStrings() []string {
	supported := merkle.SupportedHashTypes()
	out := make([]string, len(supported))
	for i, ht := range supported {
		out[i] = ht.String()
	}
	return out
}

// GetSupportedHashTypesString returns supported hash types as a string for CLI help
func GetSupportedHashTypesString() string {
	return fmt.Sprintf("%s (default %s)", strings.Join(hashTypeStrings(), ", "), merkle.DefaultHashType)
}
