package sim

import (
	"math"

	"github.com/simnets-ml/simnets-go/internal/parallel"
	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// halfLog2Pi is the per-element Gaussian normalization constant 0.5*log(2*pi).
const halfLog2Pi = 0.91893853320467274178

// Forward computes the similarity output tensor.
//
// Input shape:     [batch, in_channels, height, width]
// Template shape:  [out_channels, in_channels, block_h, block_w]
// Weight shape:    [out_channels, in_channels, block_h, block_w]
// Output shape:    [batch, out_channels, out_h, out_w]
//
// Per output element (b, c, i, j) the kernel accumulates
//
//	sum_{dc,di,dj} weights[c,dc,di,dj] * phi(patch(b,dc,i,j,di,dj), templates[c,dc,di,dj])
//
// where phi is -|a-b| (L1) or -(a-b)^2 (L2) and the patch value is read
// through the virtual padding. NaN patch values are skipped under IgnoreNaN;
// with NormalizationTerm the Gaussian log-density correction is added per
// active element.
//
// The computation is parallel over (batch, out_channel) planes; each plane is
// written by exactly one worker.
func (op *Op) Forward(input, templates, weights *tensor.RawTensor) (*tensor.RawTensor, error) {
	outShape, err := op.check(input, templates, weights)
	if err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(outShape, input.DType())
	if err != nil {
		return nil, err
	}

	switch input.DType() {
	case tensor.Float32:
		forwardKernel[float32](output, input, templates, weights, op.cfg, op.par)
	case tensor.Float64:
		forwardKernel[float64](output, input, templates, weights, op.cfg, op.par)
	default:
		panic("similarity: unsupported dtype " + input.DType().String())
	}

	return output, nil
}

func forwardKernel[T tensor.Float](output, input, templates, weights *tensor.RawTensor, cfg Config, par parallel.Config) {
	in := tensor.Data[T](input)
	tpl := tensor.Data[T](templates)
	wt := tensor.Data[T](weights)
	out := tensor.Data[T](output)

	inShape := input.Shape()
	outShape := output.Shape()
	n, cIn, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	cOut, outH, outW := outShape[1], outShape[2], outShape[3]
	bh, bw := cfg.BlockH, cfg.BlockW
	blockSize := cIn * bh * bw
	oob := T(cfg.OutOfBoundsValue)
	l1 := cfg.Function == L1

	parallel.For(n*cOut, func(k int) {
		b, c := k/cOut, k%cOut

		// Pre-slice the parameter block and the output plane for this
		// (batch, out_channel) pair.
		tplBlock := tpl[c*blockSize : (c+1)*blockSize]
		wtBlock := wt[c*blockSize : (c+1)*blockSize]
		outPlane := out[(b*cOut+c)*outH*outW:][: outH*outW : outH*outW]
		inBatch := in[b*cIn*h*w:][: cIn*h*w : cIn*h*w]

		for i := 0; i < outH; i++ {
			for j := 0; j < outW; j++ {
				var sum T
				active := 0
				idx := 0
				for dc := 0; dc < cIn; dc++ {
					smp := sampler[T]{plane: inBatch[dc*h*w:][: h*w : h*w], h: h, w: w, oob: oob}
					for di := 0; di < bh; di++ {
						for dj := 0; dj < bw; dj++ {
							row, col := mapPatch(i, j, di, dj, cfg.StrideH, cfg.StrideW, cfg.PadH, cfg.PadW)
							x, _ := smp.at(row, col)
							t := tplBlock[idx]
							wv := wtBlock[idx]
							idx++

							if cfg.IgnoreNaN && isNaN(x) {
								continue
							}
							active++

							d := x - t
							if l1 {
								sum += wv * -absVal(d)
							} else {
								sum += wv * -(d * d)
							}
							if cfg.NormalizationTerm {
								sum += T(0.5 * math.Log(2*float64(wv)+cfg.NormalizationTermFudge))
							}
						}
					}
				}
				if cfg.NormalizationTerm {
					sum -= T(float64(active) * halfLog2Pi)
				}
				outPlane[i*outW+j] = sum
			}
		}
	}, par)
}
