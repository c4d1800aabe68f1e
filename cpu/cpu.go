package cpu

import (
	"fmt"

	"github.com/bdwalton/nescore/disasm"
	"github.com/bdwalton/nescore/instr"
)

// TargetKind tags what an addressing-mode resolution produced (spec.md
// §4.4: "the addressing-mode resolver returns an InstructionTarget
// variant: Null, Accumulator, Immediate(u8), or MemoryAddress(u16)").
type TargetKind uint8

const (
	TargetNull TargetKind = iota
	TargetAccumulator
	TargetImmediate
	TargetMemory
)

// Target is the resolved operand location for one instruction. Every
// opcode implementation reads/writes through fetch/store against a
// Target instead of switching on addressing mode itself.
type Target struct {
	Kind    TargetKind
	Literal uint8
	Address uint16
}

// CPU is the 6502 core: registers plus the bus, instruction table, and
// optional trace sink it executes against.
type CPU struct {
	Registers

	bus   Bus
	trace TraceWriter

	pageCrossed bool
}

// New constructs a CPU wired to bus. Call Reset before the first Step.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// SetTrace installs (or, with nil, disables) the debug trace sink.
func (c *CPU) SetTrace(w TraceWriter) {
	c.trace = w
}

// Reset sets PC from the reset vector, per spec.md §3/§4.4. ResetTo lets
// test harnesses pin PC to an arbitrary address instead.
func (c *CPU) Reset() {
	c.ResetTo(c.read16(vectorReset))
}

func (c *CPU) ResetTo(pc uint16) {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagUnused | FlagInterruptDisable
	c.PC = pc
	c.CyclesRemaining = 7
	c.NMIPending = false
}

// RaiseNMI latches a pending NMI for the next Step to service.
func (c *CPU) RaiseNMI() {
	c.NMIPending = true
}

// Step advances the CPU by exactly one cycle (spec.md §4.4). If an NMI is
// pending it is serviced first; otherwise a new instruction is fetched
// and executed when CyclesRemaining has reached zero. CyclesRemaining is
// decremented and ClockCount advanced on every call.
func (c *CPU) Step() {
	switch {
	case c.NMIPending:
		c.NMIPending = false
		c.serviceNMI()
	case c.CyclesRemaining == 0:
		c.fetchAndExecute()
	}
	c.CyclesRemaining--
	c.ClockCount++
}

// Stall accounts for one cycle the CPU spends halted by an external
// device (OAM DMA) rather than fetching or executing: ClockCount still
// advances, but CyclesRemaining is left untouched since no instruction is
// in flight while the bus is stolen.
func (c *CPU) Stall() {
	c.ClockCount++
}

// RunOneInstruction steps until an instruction boundary is reached, i.e.
// until CyclesRemaining returns to zero. Right after Reset/ResetTo the
// first call only drains the 7 reset cycles; no instruction is fetched.
func (c *CPU) RunOneInstruction() {
	c.Step()
	for c.CyclesRemaining > 0 {
		c.Step()
	}
}

func (c *CPU) fetchAndExecute() {
	pcAtFetch := c.PC
	opcode := c.busRead(c.PC)
	in := instr.Lookup(opcode)
	if in.Illegal() {
		panic(fmt.Sprintf("cpu: illegal opcode %02X at %04X", opcode, pcAtFetch))
	}
	c.PC++

	c.pageCrossed = false
	target := c.resolveTarget(in.Mode)

	handler := dispatch[opcode]
	if handler == nil {
		panic(fmt.Sprintf("cpu: no handler registered for opcode %02X", opcode))
	}

	pcBeforeExec := c.PC
	c.CyclesRemaining = in.BaseCycles
	if in.Penalty != instr.PenaltyNone && c.pageCrossed {
		c.CyclesRemaining++
	}
	handler(c, target)

	if c.trace != nil {
		c.emitTrace(pcAtFetch, opcode, in)
	}

	// PC already moved past the operand bytes during resolveTarget; if
	// the opcode didn't itself redirect control flow (JMP/JSR/RTS/RTI/
	// BRK/branches), nothing further to do - resolveTarget consumed
	// exactly size-1 bytes after the opcode fetch.
	_ = pcBeforeExec
}

func (c *CPU) emitTrace(pcAtFetch uint16, opcode uint8, in instr.Instruction) {
	d := disasm.DecodedInstruction{Instruction: in, PCAtFetch: pcAtFetch}
	line := fmt.Sprintf("%04X  %-8s %-3s  A:%02X X:%02X Y:%02X P:%02X SP:%02X  CYC:%d",
		pcAtFetch, disasm.OpcodeBytes(d), in.Mnemonic, c.A, c.X, c.Y, c.P, c.S, c.ClockCount)
	c.trace.WriteLine(line)
}

func (c *CPU) busRead(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) busWrite(addr uint16, v uint8) {
	c.bus.Write(addr, v)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.busRead(addr))
	hi := uint16(c.busRead(addr + 1))
	return hi<<8 | lo
}

// fetchOperandByte reads the byte at PC and advances PC by one. Used only
// while resolving an addressing mode.
func (c *CPU) fetchOperandByte() uint8 {
	v := c.busRead(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchOperandWord() uint16 {
	lo := uint16(c.fetchOperandByte())
	hi := uint16(c.fetchOperandByte())
	return hi<<8 | lo
}

// resolveTarget implements spec.md §4.4's canonical addressing-mode
// table, consuming operand bytes from the instruction stream and
// returning the Target every opcode handler reads/writes through.
func (c *CPU) resolveTarget(mode instr.AddressingMode) Target {
	switch mode {
	case instr.Implicit:
		return Target{Kind: TargetNull}
	case instr.Accumulator:
		return Target{Kind: TargetAccumulator}
	case instr.Immediate:
		return Target{Kind: TargetImmediate, Literal: c.fetchOperandByte()}
	case instr.ZeroPage:
		return Target{Kind: TargetMemory, Address: uint16(c.fetchOperandByte())}
	case instr.ZeroPageX:
		return Target{Kind: TargetMemory, Address: uint16(c.fetchOperandByte() + c.X)}
	case instr.ZeroPageY:
		return Target{Kind: TargetMemory, Address: uint16(c.fetchOperandByte() + c.Y)}
	case instr.Absolute:
		return Target{Kind: TargetMemory, Address: c.fetchOperandWord()}
	case instr.AbsoluteX:
		base := c.fetchOperandWord()
		addr := base + uint16(c.X)
		c.pageCrossed = pageCrossed(base, addr)
		return Target{Kind: TargetMemory, Address: addr}
	case instr.AbsoluteY:
		base := c.fetchOperandWord()
		addr := base + uint16(c.Y)
		c.pageCrossed = pageCrossed(base, addr)
		return Target{Kind: TargetMemory, Address: addr}
	case instr.Indirect:
		ptr := c.fetchOperandWord()
		return Target{Kind: TargetMemory, Address: c.readIndirectBug(ptr)}
	case instr.IndirectX:
		zp := c.fetchOperandByte() + c.X
		lo := uint16(c.busRead(uint16(zp)))
		hi := uint16(c.busRead(uint16(zp + 1)))
		return Target{Kind: TargetMemory, Address: hi<<8 | lo}
	case instr.IndirectY:
		zp := c.fetchOperandByte()
		lo := uint16(c.busRead(uint16(zp)))
		hi := uint16(c.busRead(uint16(zp + 1)))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		c.pageCrossed = pageCrossed(base, addr)
		return Target{Kind: TargetMemory, Address: addr}
	case instr.Relative:
		offset := int8(c.fetchOperandByte())
		return Target{Kind: TargetMemory, Address: uint16(int32(c.PC) + int32(offset))}
	default:
		panic(fmt.Sprintf("cpu: unhandled addressing mode %v", mode))
	}
}

// readIndirectBug implements the documented 6502 indirect-JMP bug: the
// high byte is read from the start of the same page as ptr, not from
// ptr+1, when ptr's low byte is 0xFF (spec.md §4.4, E5).
func (c *CPU) readIndirectBug(ptr uint16) uint16 {
	lo := uint16(c.busRead(ptr))
	hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
	hi := uint16(c.busRead(hiAddr))
	return hi<<8 | lo
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// fetch reads the operand value a Target refers to.
func (c *CPU) fetch(t Target) uint8 {
	switch t.Kind {
	case TargetAccumulator:
		return c.A
	case TargetImmediate:
		return t.Literal
	case TargetMemory:
		return c.busRead(t.Address)
	default:
		panic("cpu: fetch on Null target")
	}
}

// store writes v to the location a Target refers to.
func (c *CPU) store(t Target, v uint8) {
	switch t.Kind {
	case TargetAccumulator:
		c.A = v
	case TargetMemory:
		c.busWrite(t.Address, v)
	default:
		panic("cpu: store on non-writable target")
	}
}

func (c *CPU) push(v uint8) {
	c.busWrite(stackPage|uint16(c.S), v)
	c.S--
}

func (c *CPU) pop() uint8 {
	c.S++
	return c.busRead(stackPage | uint16(c.S))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v & 0xFF))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// serviceNMI pushes PC and P (B=0, U=1), jumps to the NMI vector, and
// sets I, absorbing the same 7 cycles a BRK/IRQ dispatch costs.
func (c *CPU) serviceNMI() {
	c.pushWord(c.PC)
	c.push((c.P &^ FlagBreak) | FlagUnused)
	c.flagsOn(FlagInterruptDisable)
	c.PC = c.read16(vectorNMI)
	c.CyclesRemaining = 7
}
