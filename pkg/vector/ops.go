package vector

// WeightedMean computes the weighted element-wise mean of the given vectors.
// Vectors with a non-positive weight are excluded. Returns the zero vector
// of length dim when no vector carries positive weight.
func WeightedMean(vectors [][]float64, weights []float64, dim int) []float64 {
	result := make([]float64, dim)
	totalWeight := 0.0

	for i, vec := range vectors {
		w := weights[i]
		if w <= 0 {
			continue
		}
		for j := 0; j < dim && j < len(vec); j++ {
			result[j] += vec[j] * w
		}
		totalWeight += w
	}

	if totalWeight == 0 {
		return result
	}

	for j := range result {
		result[j] /= totalWeight
	}
	return result
}

// Mean2 averages two vectors element-wise. Both must have length dim.
func Mean2(a, b []float64, dim int) []float64 {
	result := make([]float64, dim)
	for i := 0; i < dim; i++ {
		result[i] = (a[i] + b[i]) / 2
	}
	return result
}

// MatVec multiplies an outDim x inDim weight matrix by a vector and adds
// the bias: result[i] = sum_j(weights[i][j] * x[j]) + bias[i].
func MatVec(weights [][]float64, bias, x []float64) []float64 {
	result := make([]float64, len(weights))
	for i, row := range weights {
		sum := bias[i]
		for j, w := range row {
			sum += w * x[j]
		}
		result[i] = sum
	}
	return result
}

// ReLU applies max(0, x) element-wise in place and returns the slice.
func ReLU(x []float64) []float64 {
	for i, v := range x {
		if v < 0 {
			x[i] = 0
		}
	}
	return x
}
