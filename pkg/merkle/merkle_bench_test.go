package merkle

import (
	"fmt"
	"testing"
)

// BenchmarkMerkleTreeBuild benchmarks merkle tree construction with various sizes
func BenchmarkMerkleTreeBuild(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Leaves_%d", size), func(b *testing.B) {
			mt := newTestTools(b)
			mt.AddLeavesBytes(randomLeaves(size), false)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				mt.MakeTree(false)
			}
		})
	}
}

// BenchmarkMerkleProofGeneration benchmarks proof generation
func BenchmarkMerkleProofGeneration(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		mt := newTestTools(b)
		mt.AddLeavesBytes(randomLeaves(size), false)
		mt.MakeTree(false)

		b.Run(fmt.Sprintf("Leaves_%d", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = mt.GetProof(i % size)
			}
		})
	}
}

// BenchmarkMerkleProofValidation benchmarks proof validation
func BenchmarkMerkleProofValidation(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		for _, doubleHash := range []bool{false, true} {
			mt := newTestTools(b)
			mt.AddLeavesBytes(randomLeaves(size), false)
			mt.MakeTree(doubleHash)

			root, _ := mt.GetMerkleRoot()
			leaf, _ := mt.GetLeaf(0)
			proof, _ := mt.GetProof(0)

			b.Run(fmt.Sprintf("Leaves_%d_double_%v", size, doubleHash), func(b *testing.B) {
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_ = mt.ValidateProof(proof, leaf, root, doubleHash)
				}
			})
		}
	}
}

// BenchmarkAddLeaf benchmarks hashing leaf ingestion
func BenchmarkAddLeaf(b *testing.B) {
	mt := newTestTools(b)
	value := []byte("This is a test leaf")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mt.AddLeafBytes(value, true)
	}
}
