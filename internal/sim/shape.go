package sim

import (
	"fmt"

	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// OutputSize computes one spatial output dimension of the sliding window:
//
//	out = (in + 2*pad - block) / stride + 1
//
// with floor division, matching valid-style convolution sizing. An error is
// returned when the block does not fit the padded extent.
func OutputSize(in, block, stride, pad int) (int, error) {
	span := in + 2*pad - block
	if span < 0 {
		return 0, fmt.Errorf("%w: block %d larger than padded input extent %d",
			ErrInvalidArgument, block, in+2*pad)
	}
	return span/stride + 1, nil
}

// InferShapes deterministically computes the forward output shape from the
// input and parameter shapes without executing any kernel. It performs all
// shape validation for the operator family:
//
//   - input and templates/weights must be rank 4
//   - templates and weights must have identical shapes
//   - the template spatial dims must equal the configured block size
//   - the input channel dim must merge with the template channel dim
//
// The result is [batch, out_channels, out_h, out_w] with out_channels taken
// from the templates' leading dimension.
func InferShapes(input, templates, weights tensor.Shape, cfg Config) (tensor.Shape, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(input) != 4 {
		return nil, fmt.Errorf("%w: input must be rank 4 [N,C,H,W], got rank %d", ErrInvalidArgument, len(input))
	}
	if len(templates) != 4 {
		return nil, fmt.Errorf("%w: templates must be rank 4 [Cout,Cin,Bh,Bw], got rank %d",
			ErrInvalidArgument, len(templates))
	}
	if !templates.Equal(weights) {
		return nil, fmt.Errorf("%w: weights shape %v must equal templates shape %v",
			ErrInvalidArgument, weights, templates)
	}
	if templates[2] != cfg.BlockH || templates[3] != cfg.BlockW {
		return nil, fmt.Errorf("%w: template spatial dims [%d,%d] do not match blocks [%d,%d]",
			ErrInvalidArgument, templates[2], templates[3], cfg.BlockH, cfg.BlockW)
	}
	if input[1] != templates[1] {
		return nil, fmt.Errorf("%w: input channels %d do not merge with template channels %d",
			ErrInvalidArgument, input[1], templates[1])
	}

	outH, err := OutputSize(input[2], cfg.BlockH, cfg.StrideH, cfg.PadH)
	if err != nil {
		return nil, err
	}
	outW, err := OutputSize(input[3], cfg.BlockW, cfg.StrideW, cfg.PadW)
	if err != nil {
		return nil, err
	}

	return tensor.Shape{input[0], templates[0], outH, outW}, nil
}
