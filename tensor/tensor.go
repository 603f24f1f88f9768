// Copyright 2025 SimNets-Go. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense tensors consumed and
// produced by the similarity operators.
//
// Tensors are row-major with N-C-H-W axis order and carry their element type
// (float32 or float64) as runtime information:
//
//	input, err := tensor.FromSlice(data, tensor.Shape{1, 1, 4, 4})
//	out := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
package tensor

import (
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// Float is a constraint for supported tensor element types.
type Float = tensor.Float

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{1, 3, 32, 32} is a single 3-channel 32x32 feature map.
type Shape = tensor.Shape

// RawTensor is the dense tensor representation passed to the operators.
type RawTensor = tensor.RawTensor

// NewRaw creates a new zero-initialized tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice[T Float](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	weights := tensor.Full(tensor.Shape{8, 1, 3, 3}, float32(1))
func Full[T Float](shape Shape, value T) *RawTensor {
	return tensor.Full(shape, value)
}

// Randn creates a tensor filled with random values from N(0, 1).
func Randn[T Float](shape Shape) *RawTensor {
	return tensor.Randn[T](shape)
}

// Data reinterprets a tensor's buffer as []T without copying.
func Data[T Float](r *RawTensor) []T {
	return tensor.Data[T](r)
}
