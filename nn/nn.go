// Copyright 2025 SimNets-Go. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the similarity layer: the operator wrapped with
// learnable template and weight parameters.
//
// Example:
//
//	layer, err := nn.NewSimilarity(1, 8, similarity.DefaultConfig())
//	out, err := layer.Forward(input)           // [N, 8, outH, outW]
//	inGrad, err := layer.Backward(input, grad) // accumulates parameter grads
package nn

import (
	"github.com/simnets-ml/simnets-go/internal/nn"
	"github.com/simnets-ml/simnets-go/similarity"
	"github.com/simnets-ml/simnets-go/tensor"
)

// Similarity is a layer with learnable templates and weights.
type Similarity = nn.Similarity

// Parameter is a trainable layer parameter with an accumulated gradient.
type Parameter = nn.Parameter

// NewSimilarity creates a similarity layer with float32 parameters:
// templates from N(0, 1), weights set to one.
func NewSimilarity(inChannels, outChannels int, cfg similarity.Config) (*Similarity, error) {
	return nn.NewSimilarity(inChannels, outChannels, cfg)
}

// NewParameter creates a trainable parameter from an initialized tensor.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, t)
}
