package nn

import (
	"fmt"

	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// Parameter represents a trainable parameter of a layer.
//
// Parameters are tensors whose gradients are accumulated during the backward
// pass. The gradient buffer is allocated lazily on first accumulation.
type Parameter struct {
	name   string
	tensor *tensor.RawTensor
	grad   *tensor.RawTensor
}

// NewParameter creates a new trainable parameter.
// The parameter tensor should be initialized before creating the Parameter.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.RawTensor {
	return p.tensor
}

// Grad returns the accumulated gradient tensor.
// Returns nil before the first backward pass.
func (p *Parameter) Grad() *tensor.RawTensor {
	return p.grad
}

// ZeroGrad clears the accumulated gradient.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}

// AccumulateGrad adds delta into the parameter's gradient buffer.
func (p *Parameter) AccumulateGrad(delta *tensor.RawTensor) {
	if !delta.Shape().Equal(p.tensor.Shape()) {
		panic(fmt.Sprintf("parameter %s: gradient shape %v does not match parameter shape %v",
			p.name, delta.Shape(), p.tensor.Shape()))
	}
	if p.grad == nil {
		p.grad = delta.Clone()
		return
	}
	switch p.grad.DType() {
	case tensor.Float32:
		dst, src := p.grad.AsFloat32(), delta.AsFloat32()
		for i := range dst {
			dst[i] += src[i]
		}
	case tensor.Float64:
		dst, src := p.grad.AsFloat64(), delta.AsFloat64()
		for i := range dst {
			dst[i] += src[i]
		}
	default:
		panic("parameter: unsupported dtype " + p.grad.DType().String())
	}
}
