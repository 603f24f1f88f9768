package sim

import "github.com/simnets-ml/simnets-go/internal/tensor"

// isNaN reports whether x is an IEEE NaN without a float64 round trip.
func isNaN[T tensor.Float](x T) bool {
	return x != x
}

func absVal[T tensor.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// signVal returns -1, 0 or 1. sign(0) = 0 keeps the L1 derivative zero at
// the kink.
func signVal[T tensor.Float](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
