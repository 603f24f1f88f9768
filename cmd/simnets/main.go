// Package main provides the SimNets-Go CLI.
package main

import (
	"fmt"
	"os"

	"github.com/simnets-ml/simnets-go/similarity"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("SimNets-Go %s\n", version)
			return
		case "ops":
			printOps()
			return
		}
	}

	fmt.Println("SimNets-Go - similarity operators for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  ops        List registered operations and attribute defaults")
}

func printOps() {
	for _, name := range similarity.Names() {
		def, _ := similarity.Lookup(name)
		d := def.Defaults
		fmt.Printf("%s (%d inputs, %d outputs)\n", def.Name, def.NumInputs, def.NumOutputs)
		fmt.Printf("  similarity_function: %s\n", d.Function)
		fmt.Printf("  blocks:  [%d,%d]\n", d.BlockH, d.BlockW)
		fmt.Printf("  strides: [%d,%d]\n", d.StrideH, d.StrideW)
		fmt.Printf("  padding: [%d,%d]\n", d.PadH, d.PadW)
		fmt.Printf("  normalization_term: %v (fudge %g)\n", d.NormalizationTerm, d.NormalizationTermFudge)
		fmt.Printf("  ignore_nan_input: %v\n", d.IgnoreNaN)
		fmt.Printf("  out_of_bounds_value: %g\n", d.OutOfBoundsValue)
	}
}
