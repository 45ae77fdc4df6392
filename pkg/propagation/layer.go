package propagation

import (
	"math"
	"math/rand"

	"github.com/gridsage/cascade/pkg/vector"
)

// Layer is one round of neighbor-weighted aggregation followed by a
// linear transform and ReLU.
type Layer struct {
	inDim   int
	outDim  int
	weights [][]float64 // outDim x inDim
	bias    []float64
}

// newLayer initializes a layer with Glorot-uniform weights in
// [-sqrt(6/(in+out)), +sqrt(6/(in+out))] and a constant 0.1 bias. Weights
// are fixed for the lifetime of the layer; there is no training loop.
func newLayer(inDim, outDim int, rng *rand.Rand) *Layer {
	bound := math.Sqrt(6 / float64(inDim+outDim))

	weights := make([][]float64, outDim)
	for i := range weights {
		row := make([]float64, inDim)
		for j := range row {
			row[j] = (rng.Float64()*2 - 1) * bound
		}
		weights[i] = row
	}

	bias := make([]float64, outDim)
	for i := range bias {
		bias[i] = 0.1
	}

	return &Layer{inDim: inDim, outDim: outDim, weights: weights, bias: bias}
}

// Forward computes the layer output for one node. The adjacency row
// supplies neighbor weights; zero-weight neighbors are excluded, and a
// node with no positively weighted neighbors aggregates the zero vector.
// The aggregate is averaged element-wise with the self vector before the
// linear transform and non-linearity.
func (l *Layer) Forward(self []float64, neighbors [][]float64, adjacencyRow []float64) []float64 {
	aggregate := vector.WeightedMean(neighbors, adjacencyRow, l.inDim)
	combined := vector.Mean2(self, aggregate, l.inDim)
	return vector.ReLU(vector.MatVec(l.weights, l.bias, combined))
}

// OutDim returns the layer's output dimensionality.
func (l *Layer) OutDim() int {
	return l.outDim
}
