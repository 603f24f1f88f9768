// Copyright 2025 SimNets-Go. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package similarity exposes the SimNets similarity operator family.
//
// Given a batch of multi-channel 2-D feature maps and per-output-channel
// template and weight tensors, the forward operator computes, for every
// sliding spatial window, a weighted L1 or L2 distance score between the
// window contents and each template, optionally normalized into a Gaussian
// log-probability term (see https://arxiv.org/abs/1506.03059).
//
// The family consists of four operations: Similarity, SimilarityRef (the
// sequential reference variant with an identical contract), and the two
// gradient operations SimilarityInputGrad and SimilarityParametersGrad.
//
// Example:
//
//	op, err := similarity.New(similarity.Config{
//		Function: similarity.L2,
//		BlockH:   3, BlockW: 3,
//		StrideH:  1, StrideW: 1,
//	})
//	if err != nil {
//		// invalid attributes
//	}
//	output, err := op.Forward(input, templates, weights)
package similarity

import (
	"github.com/simnets-ml/simnets-go/internal/sim"
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// Function selects the per-element distance used by the kernels.
type Function = sim.Function

// Supported similarity functions.
const (
	// L2 scores an element as -(a-b)^2.
	L2 Function = sim.L2
	// L1 scores an element as -|a-b|.
	L1 Function = sim.L1
)

// Config is the configuration surface of one similarity operation, validated
// once at construction.
type Config = sim.Config

// Op is a validated, stateless operator instance.
type Op = sim.Op

// OpDef describes one registered operation.
type OpDef = sim.OpDef

// ShapeFn computes output shapes from input shapes without running a kernel.
type ShapeFn = sim.ShapeFn

// ErrInvalidArgument reports shape or attribute violations; all construction
// and shape-inference errors wrap it.
var ErrInvalidArgument = sim.ErrInvalidArgument

// Canonical operation names.
const (
	OpSimilarity           = sim.OpSimilarity
	OpSimilarityRef        = sim.OpSimilarityRef
	OpSimilarityInputGrad  = sim.OpSimilarityInputGrad
	OpSimilarityParamsGrad = sim.OpSimilarityParamsGrad
)

// New validates the configuration and returns an operator instance.
func New(cfg Config) (*Op, error) {
	return sim.New(cfg)
}

// DefaultConfig returns the documented attribute defaults:
// L2, blocks [3,3], strides [2,2], padding [0,0], no normalization term,
// fudge 0.001, NaN propagation, out-of-bounds value 0.
func DefaultConfig() Config {
	return sim.DefaultConfig()
}

// OutputSize computes one spatial output dimension:
// (in + 2*pad - block) / stride + 1 with floor division.
func OutputSize(in, block, stride, pad int) (int, error) {
	return sim.OutputSize(in, block, stride, pad)
}

// InferShapes computes the forward output shape from the input and parameter
// shapes without executing any kernel.
func InferShapes(input, templates, weights tensor.Shape, cfg Config) (tensor.Shape, error) {
	return sim.InferShapes(input, templates, weights, cfg)
}

// Lookup returns the definition of a registered operation.
func Lookup(name string) (OpDef, bool) {
	return sim.Lookup(name)
}

// Names returns the registered operation names in sorted order.
func Names() []string {
	return sim.Names()
}
