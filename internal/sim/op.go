package sim

import (
	"fmt"

	"github.com/simnets-ml/simnets-go/internal/parallel"
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// Op is a validated instance of the similarity operator family. It holds no
// state across calls: every invocation reads the tensors it is handed and
// writes a freshly allocated result.
type Op struct {
	cfg Config
	par parallel.Config
}

// New validates the configuration once and returns an operator instance.
func New(cfg Config) (*Op, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Op{cfg: cfg, par: parallel.DefaultConfig()}, nil
}

// Config returns the operator configuration.
func (op *Op) Config() Config {
	return op.cfg
}

// SetParallelism overrides the worker configuration used by the kernels.
// Results are bitwise identical for any worker count.
func (op *Op) SetParallelism(p parallel.Config) {
	op.par = p
}

// check validates the call-level contract shared by the forward and gradient
// entry points: shapes are inferable and all operands carry the same dtype.
func (op *Op) check(input, templates, weights *tensor.RawTensor) (tensor.Shape, error) {
	outShape, err := InferShapes(input.Shape(), templates.Shape(), weights.Shape(), op.cfg)
	if err != nil {
		return nil, err
	}
	if input.DType() != templates.DType() || input.DType() != weights.DType() {
		return nil, fmt.Errorf("%w: mixed dtypes %s/%s/%s",
			ErrInvalidArgument, input.DType(), templates.DType(), weights.DType())
	}
	return outShape, nil
}

// checkGrad additionally validates the upstream gradient shape.
func (op *Op) checkGrad(input, templates, weights, outputGrad *tensor.RawTensor) error {
	outShape, err := op.check(input, templates, weights)
	if err != nil {
		return err
	}
	if !outputGrad.Shape().Equal(outShape) {
		return fmt.Errorf("%w: output gradient shape %v does not match inferred output shape %v",
			ErrInvalidArgument, outputGrad.Shape(), outShape)
	}
	if outputGrad.DType() != input.DType() {
		return fmt.Errorf("%w: output gradient dtype %s does not match input dtype %s",
			ErrInvalidArgument, outputGrad.DType(), input.DType())
	}
	return nil
}
