package nn

import (
	"fmt"

	"github.com/simnets-ml/simnets-go/internal/sim"
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// Similarity is a layer wrapping the similarity operator with learnable
// template and weight parameters.
//
// Input shape:     [batch, in_channels, height, width]
// Template shape:  [out_channels, in_channels, block_h, block_w]
// Weight shape:    [out_channels, in_channels, block_h, block_w]
// Output shape:    [batch, out_channels, out_h, out_w]
//
// Templates are initialized from N(0, 1); weights are initialized to ones,
// honoring the operator's non-negative weights contract.
//
// Example:
//
//	cfg := sim.DefaultConfig()
//	layer, _ := nn.NewSimilarity(1, 8, cfg)
//	out, _ := layer.Forward(input) // [N, 8, outH, outW]
type Similarity struct {
	inChannels  int
	outChannels int
	cfg         sim.Config
	op          *sim.Op

	templates *Parameter
	weights   *Parameter
}

// NewSimilarity creates a similarity layer with float32 parameters.
func NewSimilarity(inChannels, outChannels int, cfg sim.Config) (*Similarity, error) {
	if inChannels <= 0 || outChannels <= 0 {
		return nil, fmt.Errorf("%w: invalid channels in=%d, out=%d",
			sim.ErrInvalidArgument, inChannels, outChannels)
	}
	op, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}

	paramShape := tensor.Shape{outChannels, inChannels, cfg.BlockH, cfg.BlockW}
	templates := tensor.Randn[float32](paramShape)
	weights := tensor.Full[float32](paramShape, 1)

	return &Similarity{
		inChannels:  inChannels,
		outChannels: outChannels,
		cfg:         cfg,
		op:          op,
		templates:   NewParameter("similarity.templates", templates),
		weights:     NewParameter("similarity.weights", weights),
	}, nil
}

// Forward computes the layer output for a [batch, in_channels, H, W] input.
func (s *Similarity) Forward(input *tensor.RawTensor) (*tensor.RawTensor, error) {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		return nil, fmt.Errorf("%w: expected 4D input [N,C,H,W], got %dD",
			sim.ErrInvalidArgument, len(inputShape))
	}
	if inputShape[1] != s.inChannels {
		return nil, fmt.Errorf("%w: input channels %d != expected %d",
			sim.ErrInvalidArgument, inputShape[1], s.inChannels)
	}
	return s.op.Forward(input, s.templates.Tensor(), s.weights.Tensor())
}

// Backward accumulates the parameter gradients for the given upstream
// gradient and returns the gradient with respect to the input.
func (s *Similarity) Backward(input, outputGrad *tensor.RawTensor) (*tensor.RawTensor, error) {
	templatesGrad, weightsGrad, err := s.op.ParamGrad(input, s.templates.Tensor(), s.weights.Tensor(), outputGrad)
	if err != nil {
		return nil, err
	}
	s.templates.AccumulateGrad(templatesGrad)
	s.weights.AccumulateGrad(weightsGrad)

	return s.op.InputGrad(input, s.templates.Tensor(), s.weights.Tensor(), outputGrad)
}

// Parameters returns all trainable parameters.
func (s *Similarity) Parameters() []*Parameter {
	return []*Parameter{s.templates, s.weights}
}

// Templates returns the template parameter.
func (s *Similarity) Templates() *Parameter {
	return s.templates
}

// Weights returns the weight parameter.
func (s *Similarity) Weights() *Parameter {
	return s.weights
}

// OutChannels returns the number of output channels.
func (s *Similarity) OutChannels() int {
	return s.outChannels
}

// InChannels returns the number of input channels.
func (s *Similarity) InChannels() int {
	return s.inChannels
}

// ComputeOutputSize computes output spatial dimensions for a given input size.
func (s *Similarity) ComputeOutputSize(inputH, inputW int) ([2]int, error) {
	outH, err := sim.OutputSize(inputH, s.cfg.BlockH, s.cfg.StrideH, s.cfg.PadH)
	if err != nil {
		return [2]int{}, err
	}
	outW, err := sim.OutputSize(inputW, s.cfg.BlockW, s.cfg.StrideW, s.cfg.PadW)
	if err != nil {
		return [2]int{}, err
	}
	return [2]int{outH, outW}, nil
}

// String returns a string representation of the layer.
func (s *Similarity) String() string {
	return fmt.Sprintf("Similarity(in_channels=%d, out_channels=%d, function=%s, blocks=(%d, %d), strides=(%d, %d), padding=(%d, %d))",
		s.inChannels, s.outChannels, s.cfg.Function,
		s.cfg.BlockH, s.cfg.BlockW,
		s.cfg.StrideH, s.cfg.StrideW,
		s.cfg.PadH, s.cfg.PadW)
}
