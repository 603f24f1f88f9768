package sim

import (
	"fmt"
	"sort"

	"github.com/simnets-ml/simnets-go/internal/tensor"
)

// Canonical operation names exposed to a hosting graph framework.
const (
	OpSimilarity           = "Similarity"
	OpSimilarityRef        = "SimilarityRef"
	OpSimilarityInputGrad  = "SimilarityInputGrad"
	OpSimilarityParamsGrad = "SimilarityParametersGrad"
)

// ShapeFn computes an operation's output shapes from its input shapes and
// configuration without executing any kernel, for static graph validation.
type ShapeFn func(inputs []tensor.Shape, cfg Config) ([]tensor.Shape, error)

// OpDef describes one operation of the family: its name, its attribute
// defaults and its shape-inference function.
type OpDef struct {
	Name        string
	NumInputs   int
	NumOutputs  int
	Defaults    Config
	InferShapes ShapeFn
}

var registry = map[string]OpDef{}

// Register adds an operation definition. Panics on duplicate names;
// registration happens at init time only.
func Register(def OpDef) {
	if def.Name == "" || def.InferShapes == nil {
		panic("sim: Register requires a name and a shape function")
	}
	if _, dup := registry[def.Name]; dup {
		panic("sim: duplicate op registration " + def.Name)
	}
	registry[def.Name] = def
}

// Lookup returns the definition of a registered operation.
func Lookup(name string) (OpDef, bool) {
	def, ok := registry[name]
	return def, ok
}

// Names returns the registered operation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkArity(name string, inputs []tensor.Shape, want int) error {
	if len(inputs) != want {
		return fmt.Errorf("%w: %s expects %d inputs, got %d", ErrInvalidArgument, name, want, len(inputs))
	}
	return nil
}

// forwardShapes serves Similarity and SimilarityRef:
// (input, templates, weights) -> (output).
func forwardShapes(inputs []tensor.Shape, cfg Config) ([]tensor.Shape, error) {
	if err := checkArity(OpSimilarity, inputs, 3); err != nil {
		return nil, err
	}
	out, err := InferShapes(inputs[0], inputs[1], inputs[2], cfg)
	if err != nil {
		return nil, err
	}
	return []tensor.Shape{out}, nil
}

// inputGradShapes serves SimilarityInputGrad:
// (input, templates, weights, output_grad) -> (input_grad), the unchanged
// input-shape contract.
func inputGradShapes(inputs []tensor.Shape, cfg Config) ([]tensor.Shape, error) {
	if err := checkArity(OpSimilarityInputGrad, inputs, 4); err != nil {
		return nil, err
	}
	out, err := InferShapes(inputs[0], inputs[1], inputs[2], cfg)
	if err != nil {
		return nil, err
	}
	if !inputs[3].Equal(out) {
		return nil, fmt.Errorf("%w: output gradient shape %v does not match inferred output shape %v",
			ErrInvalidArgument, inputs[3], out)
	}
	return []tensor.Shape{inputs[0].Clone()}, nil
}

// paramsGradShapes serves SimilarityParametersGrad:
// (input, templates, weights, output_grad) -> (templates_grad, weights_grad),
// a direct pass-through of the parameter shapes.
func paramsGradShapes(inputs []tensor.Shape, cfg Config) ([]tensor.Shape, error) {
	if err := checkArity(OpSimilarityParamsGrad, inputs, 4); err != nil {
		return nil, err
	}
	if _, err := InferShapes(inputs[0], inputs[1], inputs[2], cfg); err != nil {
		return nil, err
	}
	return []tensor.Shape{inputs[1].Clone(), inputs[2].Clone()}, nil
}

func init() {
	Register(OpDef{Name: OpSimilarity, NumInputs: 3, NumOutputs: 1, Defaults: DefaultConfig(), InferShapes: forwardShapes})
	Register(OpDef{Name: OpSimilarityRef, NumInputs: 3, NumOutputs: 1, Defaults: DefaultConfig(), InferShapes: forwardShapes})
	Register(OpDef{Name: OpSimilarityInputGrad, NumInputs: 4, NumOutputs: 1, Defaults: DefaultConfig(), InferShapes: inputGradShapes})
	Register(OpDef{Name: OpSimilarityParamsGrad, NumInputs: 4, NumOutputs: 2, Defaults: DefaultConfig(), InferShapes: paramsGradShapes})
}
