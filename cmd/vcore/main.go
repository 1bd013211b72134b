// Command vcore is a CLI over the bounds checker and constant folder,
// driven by YAML design-tree fixtures (internal/fixture) rather than a
// VHDL front end. It exists for manual exploration and CI smoke tests,
// not for compiling real source.
package main

import (
	"fmt"
	"os"

	"github.com/hdlcore/vcore/cmd/vcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
