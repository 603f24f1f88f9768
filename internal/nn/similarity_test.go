package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simnets-ml/simnets-go/internal/sim"
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

func TestNewSimilarity(t *testing.T) {
	cfg := sim.DefaultConfig()
	layer, err := NewSimilarity(3, 8, cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, layer.InChannels())
	assert.Equal(t, 8, layer.OutChannels())

	paramShape := tensor.Shape{8, 3, 3, 3}
	assert.Equal(t, paramShape, layer.Templates().Tensor().Shape())
	assert.Equal(t, paramShape, layer.Weights().Tensor().Shape())

	for _, w := range layer.Weights().Tensor().AsFloat32() {
		assert.Equal(t, float32(1), w)
	}

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "similarity.templates", params[0].Name())
	assert.Equal(t, "similarity.weights", params[1].Name())
}

func TestNewSimilarity_InvalidChannels(t *testing.T) {
	cfg := sim.DefaultConfig()

	_, err := NewSimilarity(0, 8, cfg)
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)

	_, err = NewSimilarity(3, -1, cfg)
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)
}

func TestNewSimilarity_InvalidConfig(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.StrideH = 0

	_, err := NewSimilarity(1, 4, cfg)
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)
}

func TestSimilarity_Forward(t *testing.T) {
	cfg := sim.DefaultConfig()
	layer, err := NewSimilarity(2, 4, cfg)
	require.NoError(t, err)

	input := tensor.Randn[float32](tensor.Shape{3, 2, 8, 8})
	output, err := layer.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4, 3, 3}, output.Shape())

	size, err := layer.ComputeOutputSize(8, 8)
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 3}, size)
}

func TestSimilarity_Forward_BadInput(t *testing.T) {
	cfg := sim.DefaultConfig()
	layer, err := NewSimilarity(2, 4, cfg)
	require.NoError(t, err)

	_, err = layer.Forward(tensor.Randn[float32](tensor.Shape{2, 8, 8}))
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)

	_, err = layer.Forward(tensor.Randn[float32](tensor.Shape{3, 5, 8, 8}))
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)
}

func TestSimilarity_Backward(t *testing.T) {
	cfg := sim.DefaultConfig()
	layer, err := NewSimilarity(1, 2, cfg)
	require.NoError(t, err)

	input := tensor.Randn[float32](tensor.Shape{2, 1, 7, 7})
	output, err := layer.Forward(input)
	require.NoError(t, err)

	outputGrad := tensor.Full[float32](output.Shape(), 1)
	inputGrad, err := layer.Backward(input, outputGrad)
	require.NoError(t, err)
	assert.Equal(t, input.Shape(), inputGrad.Shape())

	require.NotNil(t, layer.Templates().Grad())
	require.NotNil(t, layer.Weights().Grad())
	assert.Equal(t, layer.Templates().Tensor().Shape(), layer.Templates().Grad().Shape())
	assert.Equal(t, layer.Weights().Tensor().Shape(), layer.Weights().Grad().Shape())

	// A second backward pass doubles the accumulated gradients.
	first := append([]float32(nil), layer.Templates().Grad().AsFloat32()...)
	_, err = layer.Backward(input, outputGrad)
	require.NoError(t, err)
	second := layer.Templates().Grad().AsFloat32()
	for i := range first {
		assert.InDelta(t, 2*first[i], second[i], 1e-5)
	}

	layer.Templates().ZeroGrad()
	assert.Nil(t, layer.Templates().Grad())
}

func TestSimilarity_String(t *testing.T) {
	cfg := sim.DefaultConfig()
	layer, err := NewSimilarity(1, 4, cfg)
	require.NoError(t, err)

	assert.Equal(t,
		"Similarity(in_channels=1, out_channels=4, function=L2, blocks=(3, 3), strides=(2, 2), padding=(0, 0))",
		layer.String())
}
