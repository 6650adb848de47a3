// Command pipecpu is a development harness for the engine package: it
// assembles a source file and either reports diagnostics, free-runs the
// pipeline, or single-steps it with live state printed after every tick.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "pipecpu",
		Short:         "Assemble and run programs for the pipelined 8-bit teaching CPU",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAsmCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newStepCmd())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
