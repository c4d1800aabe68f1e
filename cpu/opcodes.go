package cpu

import (
	"math/bits"

	"github.com/bdwalton/nescore/instr"
)

// handler is the signature every opcode implementation satisfies. Because
// every addressing mode was already resolved into a Target, no handler
// ever switches on addressing mode itself (spec.md §4.4).
type handler func(c *CPU, t Target)

// dispatch is the static opcode table spec.md §9 calls for ("prefer a
// static 256-entry table of function pointers... built once at startup
// and immutable"), built from handlersByMnemonic below.
var dispatch [256]handler

func init() {
	for op := 0; op < 256; op++ {
		in := instr.Lookup(byte(op))
		if in.Illegal() {
			continue
		}
		h, ok := handlersByMnemonic[in.Mnemonic]
		if !ok {
			panic("cpu: no handler for mnemonic " + in.Mnemonic)
		}
		dispatch[op] = h
	}
}

var handlersByMnemonic = map[string]handler{
	"ADC": opADC, "AND": opAND, "ASL": opASL,
	"BCC": opBCC, "BCS": opBCS, "BEQ": opBEQ, "BIT": opBIT, "BMI": opBMI,
	"BNE": opBNE, "BPL": opBPL, "BRK": opBRK, "BVC": opBVC, "BVS": opBVS,
	"CLC": opCLC, "CLD": opCLD, "CLI": opCLI, "CLV": opCLV,
	"CMP": opCMP, "CPX": opCPX, "CPY": opCPY,
	"DEC": opDEC, "DEX": opDEX, "DEY": opDEY,
	"EOR": opEOR,
	"INC": opINC, "INX": opINX, "INY": opINY,
	"JMP": opJMP, "JSR": opJSR,
	"LDA": opLDA, "LDX": opLDX, "LDY": opLDY, "LSR": opLSR,
	"NOP": opNOP, "ORA": opORA,
	"PHA": opPHA, "PHP": opPHP, "PLA": opPLA, "PLP": opPLP,
	"ROL": opROL, "ROR": opROR, "RTI": opRTI, "RTS": opRTS,
	"SBC": opSBC, "SEC": opSEC, "SED": opSED, "SEI": opSEI,
	"STA": opSTA, "STX": opSTX, "STY": opSTY,
	"TAX": opTAX, "TAY": opTAY, "TSX": opTSX, "TXA": opTXA, "TXS": opTXS, "TYA": opTYA,
}

// addWithCarry implements ADC's add-with-carry (and, via an inverted
// operand, SBC): sum = A + M + C; C = carry out of bit 7; V = overflow
// into the sign bit (spec.md §4.4).
func (c *CPU) addWithCarry(m uint8) {
	sum := uint16(c.A) + uint16(m) + uint16(c.P&FlagCarry)
	result := uint8(sum)

	c.flagSet(FlagCarry, sum > 0xFF)
	c.flagSet(FlagOverflow, (c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.setNegativeAndZero(c.A)
}

func (c *CPU) compare(reg, m uint8) {
	c.flagSet(FlagCarry, reg >= m)
	c.setNegativeAndZero(reg - m)
}

func opADC(c *CPU, t Target) { c.addWithCarry(c.fetch(t)) }
func opSBC(c *CPU, t Target) { c.addWithCarry(^c.fetch(t)) }

func opAND(c *CPU, t Target) {
	c.A &= c.fetch(t)
	c.setNegativeAndZero(c.A)
}

func opEOR(c *CPU, t Target) {
	c.A ^= c.fetch(t)
	c.setNegativeAndZero(c.A)
}

func opORA(c *CPU, t Target) {
	c.A |= c.fetch(t)
	c.setNegativeAndZero(c.A)
}

func opASL(c *CPU, t Target) {
	v := c.fetch(t)
	result := v << 1
	c.store(t, result)
	c.flagSet(FlagCarry, v&0x80 != 0)
	c.setNegativeAndZero(result)
}

func opLSR(c *CPU, t Target) {
	v := c.fetch(t)
	result := v >> 1
	c.store(t, result)
	c.flagSet(FlagCarry, v&0x01 != 0)
	c.setNegativeAndZero(result)
}

func opROL(c *CPU, t Target) {
	v := c.fetch(t)
	result := bits.RotateLeft8(v, 1)&0xFE | (c.P & FlagCarry)
	c.store(t, result)
	c.flagSet(FlagCarry, v&0x80 != 0)
	c.setNegativeAndZero(result)
}

func opROR(c *CPU, t Target) {
	v := c.fetch(t)
	result := bits.RotateLeft8(v, -1)&0x7F | ((c.P & FlagCarry) << 7)
	c.store(t, result)
	c.flagSet(FlagCarry, v&0x01 != 0)
	c.setNegativeAndZero(result)
}

func opBIT(c *CPU, t Target) {
	m := c.fetch(t)
	c.flagSet(FlagZero, c.A&m == 0)
	c.flagSet(FlagOverflow, m&FlagOverflow != 0)
	c.flagSet(FlagNegative, m&FlagNegative != 0)
}

func opCMP(c *CPU, t Target) { c.compare(c.A, c.fetch(t)) }
func opCPX(c *CPU, t Target) { c.compare(c.X, c.fetch(t)) }
func opCPY(c *CPU, t Target) { c.compare(c.Y, c.fetch(t)) }

func opDEC(c *CPU, t Target) {
	v := c.fetch(t) - 1
	c.store(t, v)
	c.setNegativeAndZero(v)
}

func opINC(c *CPU, t Target) {
	v := c.fetch(t) + 1
	c.store(t, v)
	c.setNegativeAndZero(v)
}

func opDEX(c *CPU, _ Target) { c.X--; c.setNegativeAndZero(c.X) }
func opDEY(c *CPU, _ Target) { c.Y--; c.setNegativeAndZero(c.Y) }
func opINX(c *CPU, _ Target) { c.X++; c.setNegativeAndZero(c.X) }
func opINY(c *CPU, _ Target) { c.Y++; c.setNegativeAndZero(c.Y) }

func opLDA(c *CPU, t Target) { c.A = c.fetch(t); c.setNegativeAndZero(c.A) }
func opLDX(c *CPU, t Target) { c.X = c.fetch(t); c.setNegativeAndZero(c.X) }
func opLDY(c *CPU, t Target) { c.Y = c.fetch(t); c.setNegativeAndZero(c.Y) }

func opSTA(c *CPU, t Target) { c.store(t, c.A) }
func opSTX(c *CPU, t Target) { c.store(t, c.X) }
func opSTY(c *CPU, t Target) { c.store(t, c.Y) }

func opTAX(c *CPU, _ Target) { c.X = c.A; c.setNegativeAndZero(c.X) }
func opTAY(c *CPU, _ Target) { c.Y = c.A; c.setNegativeAndZero(c.Y) }
func opTSX(c *CPU, _ Target) { c.X = c.S; c.setNegativeAndZero(c.X) }
func opTXA(c *CPU, _ Target) { c.A = c.X; c.setNegativeAndZero(c.A) }
func opTXS(c *CPU, _ Target) { c.S = c.X }
func opTYA(c *CPU, _ Target) { c.A = c.Y; c.setNegativeAndZero(c.A) }

func opCLC(c *CPU, _ Target) { c.flagsOff(FlagCarry) }
func opCLD(c *CPU, _ Target) { c.flagsOff(FlagDecimal) }
func opCLI(c *CPU, _ Target) { c.flagsOff(FlagInterruptDisable) }
func opCLV(c *CPU, _ Target) { c.flagsOff(FlagOverflow) }
func opSEC(c *CPU, _ Target) { c.flagsOn(FlagCarry) }
func opSED(c *CPU, _ Target) { c.flagsOn(FlagDecimal) }
func opSEI(c *CPU, _ Target) { c.flagsOn(FlagInterruptDisable) }

func opNOP(c *CPU, _ Target) {}

func opPHA(c *CPU, _ Target) { c.push(c.A) }
func opPHP(c *CPU, _ Target) { c.push(c.P | FlagBreak | FlagUnused) }

func opPLA(c *CPU, _ Target) { c.A = c.pop(); c.setNegativeAndZero(c.A) }

// opPLP restores status flags but leaves B and U as they were - real
// hardware has no way to write those bits except via push (spec.md
// §4.4: "PLP ignores bits 4-5 (preserves their current values)").
func opPLP(c *CPU, _ Target) {
	preserved := c.P & (FlagBreak | FlagUnused)
	c.P = (c.pop() &^ (FlagBreak | FlagUnused)) | preserved
}

func opJMP(c *CPU, t Target) { c.PC = t.Address }

func opJSR(c *CPU, t Target) {
	c.pushWord(c.PC - 1)
	c.PC = t.Address
}

func opRTS(c *CPU, _ Target) { c.PC = c.popWord() + 1 }

func opRTI(c *CPU, _ Target) {
	preserved := c.P & (FlagBreak | FlagUnused)
	c.P = (c.pop() &^ (FlagBreak | FlagUnused)) | preserved
	c.PC = c.popWord()
}

// opBRK implements the software-interrupt path: PC+=1 before push (the
// byte after the opcode is a padding byte on real hardware), P pushed
// with B=1, vector from $FFFE/$FFFF.
func opBRK(c *CPU, _ Target) {
	c.PC++
	c.pushWord(c.PC)
	c.push(c.P | FlagBreak | FlagUnused)
	c.flagsOn(FlagInterruptDisable)
	c.PC = c.read16(vectorBRK)
}

func (c *CPU) branch(target Target, taken bool) {
	if !taken {
		return
	}
	from := c.PC
	c.PC = target.Address
	c.CyclesRemaining++
	if pageCrossed(from, target.Address) {
		c.CyclesRemaining++
	}
}

func opBCC(c *CPU, t Target) { c.branch(t, !c.flag(FlagCarry)) }
func opBCS(c *CPU, t Target) { c.branch(t, c.flag(FlagCarry)) }
func opBEQ(c *CPU, t Target) { c.branch(t, c.flag(FlagZero)) }
func opBNE(c *CPU, t Target) { c.branch(t, !c.flag(FlagZero)) }
func opBMI(c *CPU, t Target) { c.branch(t, c.flag(FlagNegative)) }
func opBPL(c *CPU, t Target) { c.branch(t, !c.flag(FlagNegative)) }
func opBVC(c *CPU, t Target) { c.branch(t, !c.flag(FlagOverflow)) }
func opBVS(c *CPU, t Target) { c.branch(t, c.flag(FlagOverflow)) }
