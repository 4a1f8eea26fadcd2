// SPDX-License-Identifier: MIT

// Command esh learns spectral hash functions and applies them.
//
// Usage:
//
//	esh [flags] <command> [args]
//
// Commands:
//
//	train    - learn one model and save it to the configured store
//	sweep    - learn one model per bit width, in parallel
//	encode   - write the codes of a feature file as hex lines
//	search   - list the rows within a Hamming radius of a query row
//	inspect  - show model metadata, or list stored models
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/esh/cmd/esh/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
