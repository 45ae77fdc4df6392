package propagation

import (
	"math/rand"
)

// Network dimensions: expand the 24-dim embedding, mix, then project onto
// the 12 raw impact outputs decoded by the impact interpreter.
const (
	InputDim  = 24
	HiddenDim = 48
	OutputDim = 12
)

// DefaultSeed keeps the fixed random projection reproducible across runs
// when no seed is configured.
const DefaultSeed int64 = 42

// Network is the three-layer propagation stack. Weights are initialized
// once at construction from a deterministic seed and never updated, so a
// given seed always produces the same forward computation.
type Network struct {
	expand *Layer
	mix    *Layer
	head   *Layer
}

// NewNetwork builds the 24→48→48→12 stack from the given seed.
func NewNetwork(seed int64) *Network {
	rng := rand.New(rand.NewSource(seed))
	return &Network{
		expand: newLayer(InputDim, HiddenDim, rng),
		mix:    newLayer(HiddenDim, HiddenDim, rng),
		head:   newLayer(HiddenDim, OutputDim, rng),
	}
}

// Forward runs all three propagation rounds over every node. embeddings
// holds one InputDim vector per node; matrix is the dense adjacency
// matrix with matrix[i] the neighbor weights of node i. The result holds
// one OutputDim vector per node.
func (n *Network) Forward(embeddings [][]float64, matrix [][]float64) [][]float64 {
	h := embeddings
	for _, layer := range []*Layer{n.expand, n.mix, n.head} {
		next := make([][]float64, len(h))
		for i := range h {
			next[i] = layer.Forward(h[i], h, matrix[i])
		}
		h = next
	}
	return h
}
