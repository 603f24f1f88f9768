package sim

import (
	"math"

	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// ForwardRef computes the forward pass with a direct sequential loop nest
// over (b, c, i, j, dc, di, dj). It backs the SimilarityRef operation and is
// the correctness oracle for the blocked parallel kernel: both must produce
// identical results for identical inputs.
func (op *Op) ForwardRef(input, templates, weights *tensor.RawTensor) (*tensor.RawTensor, error) {
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
		forwardRefKernel[float32](output, input, templates, weights, op.cfg)
	case tensor.Float64:
		forwardRefKernel[float64](output, input, templates, weights, op.cfg)
	default:
		panic("similarity: unsupported dtype " + input.DType().String())
	}

	return output, nil
}

func forwardRefKernel[T tensor.Float](output, input, templates, weights *tensor.RawTensor, cfg Config) {
	in := tensor.Data[T](input)
	tpl := tensor.Data[T](templates)
	wt := tensor.Data[T](weights)
	out := tensor.Data[T](output)

	inShape := input.Shape()
	outShape := output.Shape()
	n, cIn, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	cOut, outH, outW := outShape[1], outShape[2], outShape[3]
	bh, bw := cfg.BlockH, cfg.BlockW
	l1 := cfg.Function == L1

	outIdx := 0
	for b := 0; b < n; b++ {
		for c := 0; c < cOut; c++ {
			for i := 0; i < outH; i++ {
				for j := 0; j < outW; j++ {
					var sum T
					active := 0
					for dc := 0; dc < cIn; dc++ {
						smp := sampler[T]{
							plane: in[(b*cIn+dc)*h*w:][: h*w : h*w],
							h:     h, w: w,
							oob: T(cfg.OutOfBoundsValue),
						}
						for di := 0; di < bh; di++ {
							for dj := 0; dj < bw; dj++ {
								row, col := mapPatch(i, j, di, dj, cfg.StrideH, cfg.StrideW, cfg.PadH, cfg.PadW)
								x, _ := smp.at(row, col)
								pIdx := ((c*cIn+dc)*bh+di)*bw + dj
								t := tpl[pIdx]
								wv := wt[pIdx]

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
					out[outIdx] = sum
					outIdx++
				}
			}
		}
	}
}
