package main

import (
	"fmt"

	"pipecpu/engine"
)

func printSnapshot(st engine.Snapshot) {
	fmt.Printf("  pc> %d   sp> %d\n", st.PC, st.SP)
	fmt.Println("  fetch>    ", st.Fetch)
	fmt.Println("  decode>   ", st.Decode)
	fmt.Println("  execute>  ", st.Execute)
	fmt.Println("  writeback>", st.Writeback)
	fmt.Printf("  registers> %v   acc> %d\n", st.Reg, st.Acc)
	fmt.Printf("  flags> equals=%v greater=%v less=%v overflow=%v\n",
		st.Flags.Equals, st.Flags.Greater, st.Flags.Less, st.Flags.Overflow)
	fmt.Printf("  ports> %v\n", st.Ports)
	if st.WaitingForInput {
		fmt.Printf("  waiting for input on R%d\n", st.InputRegister)
	}
}
