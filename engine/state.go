package engine

// Snapshot is a read-only, fully detached view of all visible emulator
// state, fit for a host to render without ever observing a partially
// updated tick. Taking one never mutates the emulator.
type Snapshot struct {
	PC  int32
	SP  int32
	Reg [numGeneralRegisters]byte
	Acc byte

	Ports [numPorts]byte
	RAM   [ramSize]byte

	Flags Flags

	Fetch     Instruction
	Decode    Instruction
	Execute   Instruction
	Writeback Instruction

	WaitingForInput bool
	InputRegister   int32
}

// State produces the current Snapshot. It never mutates e.
func (e *Emulator) State() Snapshot {
	return Snapshot{
		PC:  e.pc,
		SP:  e.sp,
		Reg: e.registers.All(),
		Acc: e.alu.Accumulator,

		Ports: e.ports.All(),
		RAM:   e.ram,

		Flags: e.alu.Flags,

		Fetch:     e.fetchReg,
		Decode:    e.decodeReg,
		Execute:   e.executeReg,
		Writeback: e.writebackReg,

		WaitingForInput: e.waitingForInput,
		InputRegister:   e.inputRegister,
	}
}
