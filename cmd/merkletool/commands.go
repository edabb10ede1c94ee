package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/merkletools-go/pkg/config"
	"github.com/Layr-Labs/merkletools-go/pkg/logger"
	"github.com/Layr-Labs/merkletools-go/pkg/merkle"
	"github.com/Layr-Labs/merkletools-go/pkg/receipt"
	"github.com/Layr-Labs/merkletools-go/pkg/util"
)

type rootOutput struct {
	MerkleRoot string          `json:"merkleRoot"`
	LeafCount  int             `json:"leafCount"`
	LevelCount int             `json:"levelCount"`
	HashType   merkle.HashType `json:"hashType"`
	DoubleHash bool            `json:"doubleHash"`
}

type verifyOutput struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
}

func runRoot(c *cli.Context) error {
	l, cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	mt, err := buildTree(c, cfg, l)
	if err != nil {
		return err
	}

	root, ok := mt.GetMerkleRoot()
	if !ok {
		return errors.New("no root available: the tree has no leaves")
	}

	return writeJSON(c.App.Writer, &rootOutput{
		MerkleRoot: util.EncodeHex(root),
		LeafCount:  mt.GetLeafCount(),
		LevelCount: mt.GetLevelCount(),
		HashType:   mt.HashType(),
		DoubleHash: mt.DoubleHash(),
	})
}

func runProof(c *cli.Context) error {
	l, cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	mt, err := buildTree(c, cfg, l)
	if err != nil {
		return err
	}

	index := c.Int("index")
	r, err := receipt.New(mt, index)
	if err != nil {
		return errors.Wrapf(err, "failed to build receipt for leaf %d", index)
	}
	l.Sugar().Infow("Issued receipt", "id", r.ID, "leaf_index", index, "proof_steps", len(r.Proof))

	data, err := receipt.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}

func runVerify(c *cli.Context) error {
	l, _, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	data, err := readInput(c, c.String("receipt-file"))
	if err != nil {
		return errors.Wrap(err, "failed to read receipt")
	}
	r, err := receipt.Unmarshal(data)
	if err != nil {
		return err
	}

	valid, err := r.Verify()
	if err != nil {
		return errors.Wrap(err, "failed to verify receipt")
	}
	l.Sugar().Infow("Verified receipt", "id", r.ID, "valid", valid)

	if err := writeJSON(c.App.Writer, &verifyOutput{ID: r.ID, Valid: valid}); err != nil {
		return err
	}
	if !valid {
		return cli.Exit("receipt is invalid", 1)
	}
	return nil
}

// setup creates the logger and validated config shared by every command
func setup(c *cli.Context) (*zap.Logger, *config.MerkleToolConfig, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cfg := parseConfig(c)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Verbose {
		l.Sugar().Debugw("merkletool configuration",
			"hash_type", cfg.HashType,
			"double_hash", cfg.DoubleHash,
			"hash_leaves", cfg.HashLeaves,
			"hex_leaves", cfg.HexLeaves,
		)
	}
	return l, cfg, nil
}

func parseConfig(c *cli.Context) *config.MerkleToolConfig {
	return &config.MerkleToolConfig{
		HashType:   merkle.HashType(c.String("hash-type")),
		DoubleHash: c.Bool("double-hash"),
		HashLeaves: c.Bool("hash-leaves"),
		HexLeaves:  c.Bool("hex-leaves"),
		Verbose:    c.Bool("verbose"),
	}
}

// buildTree reads the leaves for the current command and builds a tree from them
func buildTree(c *cli.Context, cfg *config.MerkleToolConfig, l *zap.Logger) (*merkle.MerkleTools, error) {
	input := &config.LeafInput{
		Leaves:     c.StringSlice("leaf"),
		LeavesFile: c.String("leaves-file"),
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid leaf input: %w", err)
	}

	values := input.Leaves
	if input.LeavesFile != "" {
		data, err := readInput(c, input.LeavesFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read leaves file")
		}
		values = splitLines(string(data))
	}

	mt, err := merkle.NewMerkleTools(cfg.HashType, l)
	if err != nil {
		return nil, err
	}

	if cfg.HexLeaves {
		err = mt.AddLeavesHex(values, cfg.HashLeaves)
	} else {
		err = mt.AddLeaves(values, cfg.HashLeaves)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to add leaves")
	}

	mt.MakeTree(cfg.DoubleHash)
	l.Sugar().Infow("Tree ready", "leaves", mt.GetLeafCount(), "hash_type", mt.HashType())
	return mt, nil
}

// splitLines splits s into lines, removing only the line endings. The empty string left
// after a trailing newline is not a line; every other line, blank or not, is kept as-is.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	return util.Map(lines, func(line string, _ uint64) string {
		return strings.TrimSuffix(line, "\r")
	})
}

func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		reader := c.App.Reader
		if reader == nil {
			reader = os.Stdin
		}
		return io.ReadAll(reader)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
