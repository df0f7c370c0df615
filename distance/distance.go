// Package distance provides vector distance calculations for feature vectors.
//
// Feature spaces here are small (one dimension per distinct category plus one
// numeric dimension), so the implementations are plain scalar loops.
package distance

import "math"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2 calculates the Euclidean distance between two vectors.
func L2(a, b []float32) float32 {
	return float32(math.Sqrt(float64(SquaredL2(a, b))))
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32
