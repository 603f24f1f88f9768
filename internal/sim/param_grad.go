package sim

import (
	"github.com/simnets-ml/simnets-go/internal/parallel"
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// ParamGrad computes the gradients of the forward sum with respect to the
// templates and the weights. The results always have exactly the shapes of
// templates and weights, independent of batch and output spatial dims.
//
// For each parameter cell (c, dc, di, dj), accumulated over all (b, i, j):
//
//	weightsGrad   += g * phi(patch, template)        [+ g/(2w+fudge) with normalization]
//	templatesGrad += g * weight * dphi/dtemplate
//
// with dphi/dtemplate = sign(patch-template) for L1 and 2*(patch-template)
// for L2. Out-of-bounds and NaN-ignored positions contribute zero to both.
//
// The accumulation is parallel over the out-channel dimension: each output
// channel owns a disjoint slice of both results and is reduced sequentially
// in (b, i, j) order, keeping results independent of the worker count.
func (op *Op) ParamGrad(input, templates, weights, outputGrad *tensor.RawTensor) (templatesGrad, weightsGrad *tensor.RawTensor, err error) {
	if err := op.checkGrad(input, templates, weights, outputGrad); err != nil {
		return nil, nil, err
	}

	templatesGrad, err = tensor.NewRaw(templates.Shape(), templates.DType())
	if err != nil {
		return nil, nil, err
	}
	weightsGrad, err = tensor.NewRaw(weights.Shape(), weights.DType())
	if err != nil {
		return nil, nil, err
	}

	switch input.DType() {
	case tensor.Float32:
		paramGradKernel[float32](templatesGrad, weightsGrad, input, templates, weights, outputGrad, op.cfg, op.par)
	case tensor.Float64:
		paramGradKernel[float64](templatesGrad, weightsGrad, input, templates, weights, outputGrad, op.cfg, op.par)
	default:
		panic("similarity: unsupported dtype " + input.DType().String())
	}

	return templatesGrad, weightsGrad, nil
}

func paramGradKernel[T tensor.Float](templatesGrad, weightsGrad, input, templates, weights, outputGrad *tensor.RawTensor, cfg Config, par parallel.Config) {
	in := tensor.Data[T](input)
	tpl := tensor.Data[T](templates)
	wt := tensor.Data[T](weights)
	g := tensor.Data[T](outputGrad)
	tplDst := tensor.Data[T](templatesGrad)
	wtDst := tensor.Data[T](weightsGrad)

	inShape := input.Shape()
	gShape := outputGrad.Shape()
	n, cIn, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	cOut, outH, outW := gShape[1], gShape[2], gShape[3]
	bh, bw := cfg.BlockH, cfg.BlockW
	blockSize := cIn * bh * bw
	l1 := cfg.Function == L1
	fudge := T(cfg.NormalizationTermFudge)

	parallel.For(cOut, func(c int) {
		tplBlock := tpl[c*blockSize : (c+1)*blockSize]
		wtBlock := wt[c*blockSize : (c+1)*blockSize]
		tplGradBlock := tplDst[c*blockSize : (c+1)*blockSize]
		wtGradBlock := wtDst[c*blockSize : (c+1)*blockSize]

		for b := 0; b < n; b++ {
			inBatch := in[b*cIn*h*w:][: cIn*h*w : cIn*h*w]
			gPlane := g[(b*cOut+c)*outH*outW:][: outH*outW : outH*outW]

			for i := 0; i < outH; i++ {
				for j := 0; j < outW; j++ {
					gVal := gPlane[i*outW+j]
					idx := 0
					for dc := 0; dc < cIn; dc++ {
						inPlane := inBatch[dc*h*w:][: h*w : h*w]
						for di := 0; di < bh; di++ {
							for dj := 0; dj < bw; dj++ {
								row, col := mapPatch(i, j, di, dj, cfg.StrideH, cfg.StrideW, cfg.PadH, cfg.PadW)
								t := tplBlock[idx]
								wv := wtBlock[idx]
								cell := idx
								idx++

								if row < 0 || row >= h || col < 0 || col >= w {
									continue
								}
								x := inPlane[row*w+col]
								if cfg.IgnoreNaN && isNaN(x) {
									continue
								}

								d := x - t
								var phi, dPhiDt T
								if l1 {
									phi = -absVal(d)
									dPhiDt = signVal(d)
								} else {
									phi = -(d * d)
									dPhiDt = 2 * d
								}

								wg := gVal * phi
								if cfg.NormalizationTerm {
									wg += gVal / (2*wv + fudge)
								}
								wtGradBlock[cell] += wg
								tplGradBlock[cell] += gVal * wv * dPhiDt
							}
						}
					}
				}
			}
		}
	}, par)
}
