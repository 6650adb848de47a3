package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipecpu/engine"
)

func isBubble(i engine.Instruction) bool { return i.Address == -1 }

func isDrained(st engine.Snapshot) bool {
	return isBubble(st.Fetch) && isBubble(st.Decode) && isBubble(st.Execute) && isBubble(st.Writeback)
}

func newRunCmd() *cobra.Command {
	var maxTicks int

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Assemble and free-run a program, printing the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			e := engine.New(src)
			for _, w := range e.Warnings() {
				fmt.Println("warning:", w)
			}
			if errs := e.Errors(); len(errs) > 0 {
				for _, msg := range errs {
					fmt.Println("error:", msg)
				}
				return fmt.Errorf("assembly failed")
			}

			ticks := 0
			for ; ticks < maxTicks; ticks++ {
				st := e.State()
				if st.WaitingForInput {
					fmt.Printf("stopped: waiting for input on R%d after %d tick(s)\n", st.InputRegister, ticks)
					break
				}
				if ticks > 0 && isDrained(st) {
					fmt.Printf("stopped: pipeline drained after %d tick(s)\n", ticks)
					break
				}
				e.Clock()
			}
			if ticks == maxTicks {
				fmt.Printf("stopped: tick budget of %d exhausted\n", maxTicks)
			}

			printSnapshot(e.State())
			return nil
		},
	}

	cmd.Flags().IntVar(&maxTicks, "max-ticks", 10_000, "maximum number of clock cycles to run before stopping")
	return cmd
}
