package tests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Layr-Labs/merkletools-go/pkg/merkle"
)

// GetProjectRootPath walks up from the working directory until it finds go.mod.
func GetProjectRootPath() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	p := wd
	for iterations := 0; iterations <= 10; iterations++ {
		if _, err := os.Stat(filepath.Join(p, "go.mod")); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	panic("Could not find project root path")
}

// ProofVector is the expected proof for one leaf index.
type ProofVector struct {
	Index int          `json:"index"`
	Proof merkle.Proof `json:"proof"`
}

// TreeVector is a tree built from known inputs with its expected root and proofs.
type TreeVector struct {
	Name       string          `json:"name"`
	HashType   merkle.HashType `json:"hashType"`
	Values     []string        `json:"values"`
	DoHash     bool            `json:"doHash"`
	DoubleHash bool            `json:"doubleHash"`
	Leaves     []string        `json:"leaves"`
	Root       string          `json:"root"`
	LevelCount int             `json:"levelCount"`
	Proofs     []ProofVector   `json:"proofs"`
}

type vectorFile struct {
	Vectors []*TreeVector `json:"vectors"`
}

// ReadTreeVectors loads internal/testData/vectors.json.
func ReadTreeVectors(projectRoot string) ([]*TreeVector, error) {
	filePath := fmt.Sprintf("%s/internal/testData/vectors.json", projectRoot)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var vf vectorFile
	if err := json.Unmarshal(file, &vf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file: %w", err)
	}
	if len(vf.Vectors) == 0 {
		return nil, fmt.Errorf("no vectors found in %s", filePath)
	}
	return vf.Vectors, nil
}

// ReadTreeVector returns the vector with the given name.
func ReadTreeVector(projectRoot string, name string) (*TreeVector, error) {
	vectors, err := ReadTreeVectors(projectRoot)
	if err != nil {
		return nil, err
	}
	for _, v := range vectors {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("vector %q not found", name)
}

// TestLeafValues returns "This is a test leaf 0" ... "This is a test leaf n-1".
func TestLeafValues(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("This is a test leaf %d", i)
	}
	return values
}
