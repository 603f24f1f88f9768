package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simnets-ml/simnets-go/internal/tensor"
)

func TestParameter_AccumulateGrad(t *testing.T) {
	shape := tensor.Shape{2, 3}
	p := NewParameter("w", tensor.Full[float64](shape, 0.5))
	assert.Equal(t, "w", p.Name())
	assert.Nil(t, p.Grad())

	p.AccumulateGrad(tensor.Full[float64](shape, 1))
	require.NotNil(t, p.Grad())
	p.AccumulateGrad(tensor.Full[float64](shape, 2))

	for _, g := range p.Grad().AsFloat64() {
		assert.Equal(t, 3.0, g)
	}
}

func TestParameter_AccumulateGrad_ShapeMismatch(t *testing.T) {
	p := NewParameter("w", tensor.Full[float32](tensor.Shape{2, 3}, 0))
	assert.Panics(t, func() {
		p.AccumulateGrad(tensor.Full[float32](tensor.Shape{3, 2}, 0))
	})
}
