package sim

import "github.com/simnets-ml/simnets-go/internal/tensor"

// mapPatch converts an output cell (i, j) and in-block offset (di, dj) into
// input coordinates. Pure coordinate transform, total over its domain.
func mapPatch(i, j, di, dj, strideH, strideW, padH, padW int) (row, col int) {
	return strideH*i + di - padH, strideW*j + dj - padW
}

// sampler reads one (batch, channel) plane of the input through the virtual
// padding. Patches are never materialized: coordinates outside the plane
// yield the configured out-of-bounds value with inBounds=false.
type sampler[T tensor.Float] struct {
	plane []T // one H*W plane
	h, w  int
	oob   T
}

func (s sampler[T]) at(row, col int) (value T, inBounds bool) {
	if row < 0 || row >= s.h || col < 0 || col >= s.w {
		return s.oob, false
	}
	return s.plane[row*s.w+col], true
}
