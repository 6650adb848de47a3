package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipecpu/engine"
)

func newAsmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "asm <file>",
		Short: "Assemble a source file and print its errors and warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			instrs, errs, warns := engine.Parse(src)
			for _, w := range warns {
				fmt.Println("warning:", w)
			}
			for _, e := range errs {
				fmt.Println("error:", e)
			}
			fmt.Printf("%d instruction(s) assembled, %d error(s), %d warning(s)\n",
				len(instrs), len(errs), len(warns))

			if len(errs) > 0 {
				return fmt.Errorf("assembly failed")
			}
			return nil
		},
	}
}
