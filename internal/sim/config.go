// Package sim implements the SimNets similarity operator family: the forward
// similarity kernel and its gradients with respect to the input and to the
// template/weight parameters.
package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a shape or attribute violation. It is detected
// before any kernel runs; no partial results are ever produced.
var ErrInvalidArgument = errors.New("invalid argument")

// Function selects the per-element distance used by the similarity kernels.
type Function int

// Supported similarity functions.
const (
	// L2 scores an element as -(a-b)^2.
	L2 Function = iota
	// L1 scores an element as -|a-b|.
	L1
)

// String returns the attribute spelling of the similarity function.
func (f Function) String() string {
	switch f {
	case L2:
		return "L2"
	case L1:
		return "L1"
	default:
		return "unknown"
	}
}

// Config is the full configuration surface of one similarity operation.
// It replaces the original string-keyed attribute bag with a strongly-typed
// structure validated once at construction, never per call.
type Config struct {
	// Function is the per-element distance, L1 or L2.
	Function Function

	// BlockH, BlockW are the spatial extent of a patch/template. The block
	// size in the channel dimension is always the number of input channels.
	BlockH, BlockW int

	// StrideH, StrideW are the sliding-window strides.
	StrideH, StrideW int

	// PadH, PadW are the virtual paddings applied to each side of the
	// height and width dimensions.
	PadH, PadW int

	// NormalizationTerm, when set with L2, adds the additive correction
	// turning the weighted distance into a Gaussian log-likelihood:
	// 0.5*log(2*w + fudge) - 0.5*log(2*pi) per active element.
	NormalizationTerm bool

	// NormalizationTermFudge is the additive epsilon guarding the log of a
	// zero weight inside the normalization term.
	NormalizationTermFudge float64

	// IgnoreNaN excludes NaN input values from the sum and from the active
	// element count, marginalizing over missing data.
	IgnoreNaN bool

	// OutOfBoundsValue is the value read for patch positions that fall
	// outside the input extent.
	OutOfBoundsValue float64
}

// DefaultConfig returns the documented attribute defaults of the operator
// family: L2, 3x3 blocks, stride 2, no padding.
func DefaultConfig() Config {
	return Config{
		Function:               L2,
		BlockH:                 3,
		BlockW:                 3,
		StrideH:                2,
		StrideW:                2,
		PadH:                   0,
		PadW:                   0,
		NormalizationTerm:      false,
		NormalizationTermFudge: 0.001,
		IgnoreNaN:              false,
		OutOfBoundsValue:       0,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.Function != L1 && c.Function != L2 {
		return fmt.Errorf("%w: unknown similarity function %d", ErrInvalidArgument, int(c.Function))
	}
	if c.BlockH < 1 || c.BlockW < 1 {
		return fmt.Errorf("%w: blocks must be >= 1, got [%d,%d]", ErrInvalidArgument, c.BlockH, c.BlockW)
	}
	if c.StrideH < 1 || c.StrideW < 1 {
		return fmt.Errorf("%w: strides must be >= 1, got [%d,%d]", ErrInvalidArgument, c.StrideH, c.StrideW)
	}
	if c.PadH < 0 || c.PadW < 0 {
		return fmt.Errorf("%w: padding must be >= 0, got [%d,%d]", ErrInvalidArgument, c.PadH, c.PadW)
	}
	if c.NormalizationTermFudge < 0 {
		return fmt.Errorf("%w: normalization term fudge must be >= 0, got %g",
			ErrInvalidArgument, c.NormalizationTermFudge)
	}
	if c.NormalizationTerm && c.Function != L2 {
		return fmt.Errorf("%w: normalization term requires the L2 similarity function", ErrInvalidArgument)
	}
	return nil
}
