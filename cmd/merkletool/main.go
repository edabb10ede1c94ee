package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/merkletools-go/pkg/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "merkletool",
		Usage: "Build merkle trees, issue inclusion receipts and verify them",
		Description: `Builds a binary merkle tree over an ordered list of leaves.

Unpaired nodes are promoted to the next level without rehashing. Receipts
produced by "proof" can be checked by "verify" without the original leaves.`,
		Version: "1.0.0",
		// Leaf values are committed byte for byte, so commas must not split them
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "hash-type",
				Usage:   "Hash function: " + config.GetSupportedHashTypesString(),
				Value:   "sha256",
				EnvVars: []string{config.EnvMerkleHashType},
			},
			&cli.BoolFlag{
				Name:    "double-hash",
				Usage:   "Hash every node pair twice",
				EnvVars: []string{config.EnvMerkleDoubleHash},
			},
			&cli.BoolFlag{
				Name:    "hash-leaves",
				Usage:   "Hash each leaf value before adding it to the tree",
				EnvVars: []string{config.EnvMerkleHashLeaves},
			},
			&cli.BoolFlag{
				Name:    "hex-leaves",
				Usage:   "Treat leaf values as hex-encoded bytes instead of UTF-8 text",
				EnvVars: []string{config.EnvMerkleHexLeaves},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvMerkleVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "root",
				Usage:  "Build a tree and print its root",
				Flags:  leafFlags(),
				Action: runRoot,
			},
			{
				Name:  "proof",
				Usage: "Build a tree and print an inclusion receipt for one leaf",
				Flags: append(leafFlags(), &cli.IntFlag{
					Name:     "index",
					Aliases:  []string{"i"},
					Usage:    "0-based index of the leaf to prove",
					Required: true,
				}),
				Action: runProof,
			},
			{
				Name:  "verify",
				Usage: "Verify an inclusion receipt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "receipt-file",
						Aliases: []string{"r"},
						Usage:   "Path to a JSON receipt, or - for stdin",
						Value:   "-",
					},
				},
				Action: runVerify,
			},
		},
	}
}

func leafFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "leaf",
			Aliases: []string{"l"},
			Usage:   "Leaf value; repeat for multiple leaves",
			// Surrounding whitespace is part of the leaf
			KeepSpace: true,
		},
		&cli.StringFlag{
			Name:    "leaves-file",
			Aliases: []string{"f"},
			Usage:   "File with one leaf value per line, taken verbatim apart from the line ending",
		},
	}
}
