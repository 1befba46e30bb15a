// mzEntrap - entrapment-based empirical FDR estimation
package main

import (
	"fmt"
	"os"

	"github.com/mzentrap/mzentrap/cmd/mzentrap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
