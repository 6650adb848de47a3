package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pipecpu/engine"
)

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <file>",
		Short: "Assemble a program and single-step the pipeline interactively",
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

			fmt.Println("Commands:\n\tn or next: advance one clock cycle\n\tr or run: free-run until input wait or drained\n\tq or quit: exit\n\t<number>: supply a value for a pending INP")
			printSnapshot(e.State())

			reader := bufio.NewReader(os.Stdin)
			running := false
			for {
				if running {
					st := e.State()
					if st.WaitingForInput || isDrained(st) {
						running = false
					} else {
						e.Clock()
						printSnapshot(e.State())
						continue
					}
				}

				fmt.Print("\n-> ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.ToLower(strings.TrimSpace(line))

				switch {
				case line == "n" || line == "next":
					e.Clock()
					printSnapshot(e.State())
				case line == "r" || line == "run":
					running = true
				case line == "q" || line == "quit":
					return nil
				default:
					if st := e.State(); st.WaitingForInput {
						v, err := strconv.ParseInt(line, 10, 32)
						if err != nil {
							fmt.Println("expected a number to resolve the pending input")
							continue
						}
						e.ResolveInput(int32(v))
						printSnapshot(e.State())
					} else {
						fmt.Println("unknown command")
					}
				}
			}
		},
	}
}
