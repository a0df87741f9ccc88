package analysis

import "math"

// MovingAverage smooths a curve with a centered window of the given width.
func MovingAverage(data []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(data))
	half := window / 2

	for i := range data {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(data) {
			hi = len(data)
		}

		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(hi-lo)
	}

	return out
}

// BestEpoch returns the index of the minimum value, -1 for an empty curve.
func BestEpoch(valLoss []float64) int {
	if len(valLoss) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(valLoss); i++ {
		if valLoss[i] < valLoss[best] {
			best = i
		}
	}
	return best
}

// ConvergenceEpoch returns the first epoch after which the relative
// improvement of the loss stays below tol, or -1 if the curve never settles.
func ConvergenceEpoch(loss []float64, tol float64) int {
	for i := 1; i < len(loss); i++ {
		prev := math.Abs(loss[i-1])
		if prev == 0 {
			return i
		}
		improvement := (loss[i-1] - loss[i]) / prev
		if improvement >= 0 && improvement < tol {
			return i
		}
	}
	return -1
}

// OverfitGap returns the final validation-minus-training loss gap. A large
// positive gap is the classic overfitting signature.
func OverfitGap(trainLoss, valLoss []float64) float64 {
	if len(trainLoss) == 0 || len(valLoss) == 0 {
		return 0
	}
	return valLoss[len(valLoss)-1] - trainLoss[len(trainLoss)-1]
}
