package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// FromSlice creates a tensor from a Go slice. The slice length must match
// the number of elements implied by the shape.
func FromSlice[T Float](data []T, shape Shape) (*RawTensor, error) {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	if len(data) != raw.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, raw.NumElements())
	}
	copy(Data[T](raw), data)
	return raw, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	// Data is already zero-initialized by make()
	return raw
}

// Full creates a tensor filled with a specific value.
func Full[T Float](shape Shape, value T) *RawTensor {
	var dummy T
	raw := Zeros(shape, inferDataType(dummy))
	data := Data[T](raw)
	for i := range data {
		data[i] = value
	}
	return raw
}

// Randn creates a tensor with random values from a normal distribution
// (mean=0, std=1) using the Box-Muller transform.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
func Randn[T Float](shape Shape) *RawTensor {
	var dummy T
	raw := Zeros(shape, inferDataType(dummy))
	data := Data[T](raw)
	for i := 0; i < len(data); i += 2 {
		u1 := rand.Float64() //nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
		u2 := rand.Float64() //nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
		z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
		z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
		data[i] = T(z0)
		if i+1 < len(data) {
			data[i+1] = T(z1)
		}
	}
	return raw
}
