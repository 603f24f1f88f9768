package sim

import (
	"github.com/simnets-ml/simnets-go/internal/parallel"
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// InputGrad computes the gradient of the forward sum with respect to the
// input tensor. The result always has exactly the input's shape.
//
// For each (output cell, offset) pair mapping to an input position the local
// derivative is accumulated, scaled by the upstream gradient:
//
//	L1: -weight * sign(patch - template)
//	L2: -2 * weight * (patch - template)
//
// When stride < block size a position is covered by several windows and all
// contributions are summed. Out-of-bounds positions have no gradient sink and
// NaN-ignored positions contribute zero. The normalization term depends on
// the input only through the piecewise-constant active count, so it has zero
// input derivative.
//
// The accumulation is parallel over the batch dimension: each batch owns a
// disjoint slice of the result and is reduced sequentially in index order,
// keeping results independent of the worker count.
func (op *Op) InputGrad(input, templates, weights, outputGrad *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := op.checkGrad(input, templates, weights, outputGrad); err != nil {
		return nil, err
	}

	grad, err := tensor.NewRaw(input.Shape(), input.DType())
	if err != nil {
		return nil, err
	}

	switch input.DType() {
	case tensor.Float32:
		inputGradKernel[float32](grad, input, templates, weights, outputGrad, op.cfg, op.par)
	case tensor.Float64:
		inputGradKernel[float64](grad, input, templates, weights, outputGrad, op.cfg, op.par)
	default:
		panic("similarity: unsupported dtype " + input.DType().String())
	}

	return grad, nil
}

func inputGradKernel[T tensor.Float](grad, input, templates, weights, outputGrad *tensor.RawTensor, cfg Config, par parallel.Config) {
	in := tensor.Data[T](input)
	tpl := tensor.Data[T](templates)
	wt := tensor.Data[T](weights)
	g := tensor.Data[T](outputGrad)
	dst := tensor.Data[T](grad)

	inShape := input.Shape()
	gShape := outputGrad.Shape()
	n, cIn, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	cOut, outH, outW := gShape[1], gShape[2], gShape[3]
	bh, bw := cfg.BlockH, cfg.BlockW
	blockSize := cIn * bh * bw
	l1 := cfg.Function == L1

	parallel.For(n, func(b int) {
		inBatch := in[b*cIn*h*w:][: cIn*h*w : cIn*h*w]
		dstBatch := dst[b*cIn*h*w:][: cIn*h*w : cIn*h*w]
		gBatch := g[b*cOut*outH*outW:][: cOut*outH*outW : cOut*outH*outW]

		for c := 0; c < cOut; c++ {
			tplBlock := tpl[c*blockSize : (c+1)*blockSize]
			wtBlock := wt[c*blockSize : (c+1)*blockSize]

			for i := 0; i < outH; i++ {
				for j := 0; j < outW; j++ {
					gVal := gBatch[c*outH*outW+i*outW+j]
					idx := 0
					for dc := 0; dc < cIn; dc++ {
						inPlane := inBatch[dc*h*w:][: h*w : h*w]
						dstPlane := dstBatch[dc*h*w:][: h*w : h*w]
						for di := 0; di < bh; di++ {
							for dj := 0; dj < bw; dj++ {
								row, col := mapPatch(i, j, di, dj, cfg.StrideH, cfg.StrideW, cfg.PadH, cfg.PadW)
								t := tplBlock[idx]
								wv := wtBlock[idx]
								idx++

								if row < 0 || row >= h || col < 0 || col >= w {
									continue
								}
								x := inPlane[row*w+col]
								if cfg.IgnoreNaN && isNaN(x) {
									continue
								}

								if l1 {
									dstPlane[row*w+col] += gVal * -wv * signVal(x-t)
								} else {
									dstPlane[row*w+col] += gVal * -2 * wv * (x - t)
								}
							}
						}
					}
				}
			}
		}
	}, par)
}
