// Package instr holds the static 6502 instruction table: one entry per
// opcode byte giving its mnemonic, addressing mode, size, base cycle
// count, and page-cross penalty class.
// https://www.nesdev.org/obelisk-6502-guide/reference.html
package instr

import "fmt"

// AddressingMode identifies how an opcode's operand is located.
type AddressingMode uint8

const (
	Implicit AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // Indexed Indirect, (zp,X)
	IndirectY // Indirect Indexed, (zp),Y
)

var modeNames = map[AddressingMode]string{
	Implicit:    "IMPLICIT",
	Accumulator: "ACCUMULATOR",
	Immediate:   "IMMEDIATE",
	ZeroPage:    "ZERO_PAGE",
	ZeroPageX:   "ZERO_PAGE_X",
	ZeroPageY:   "ZERO_PAGE_Y",
	Relative:    "RELATIVE",
	Absolute:    "ABSOLUTE",
	AbsoluteX:   "ABSOLUTE_X",
	AbsoluteY:   "ABSOLUTE_Y",
	Indirect:    "INDIRECT",
	IndirectX:   "INDIRECT_X",
	IndirectY:   "INDIRECT_Y",
}

func (m AddressingMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// PenaltyClass categorizes whether an opcode takes an extra cycle when its
// effective address crosses a page boundary. Write-class opcodes (ASL, DEC,
// INC, LSR, ROL, ROR, STA and friends) are always PenaltyNone regardless of
// addressing mode: they pay their declared cycles unconditionally.
type PenaltyClass uint8

const (
	PenaltyNone PenaltyClass = iota
	PenaltyRead
	PenaltyIndexedRead
)

// IllegalMnemonic marks an opcode byte with no documented 6502 behavior.
// The CPU treats dispatching one as fatal, per spec.
const IllegalMnemonic = "XXX"

// Instruction is one immutable, table-indexed entry describing everything
// needed to decode and cost an opcode byte.
type Instruction struct {
	Opcode     byte
	Mnemonic   string
	Mode       AddressingMode
	Size       uint8
	BaseCycles uint8
	Penalty    PenaltyClass
}

func (i Instruction) String() string {
	return fmt.Sprintf("{%02X %s %s}", i.Opcode, i.Mnemonic, i.Mode)
}

// Illegal reports whether this entry is the XXX sentinel.
func (i Instruction) Illegal() bool {
	return i.Mnemonic == IllegalMnemonic || i.Mnemonic == ""
}

// Table is the constant 256-entry opcode table, built once at package init.
var Table [256]Instruction

// entry is shorthand used only while building Table.
type entry struct {
	mnemonic string
	mode     AddressingMode
	size     uint8
	cycles   uint8
	penalty  PenaltyClass
}

func init() {
	for op, e := range rawOpcodes {
		Table[op] = Instruction{
			Opcode:     op,
			Mnemonic:   e.mnemonic,
			Mode:       e.mode,
			Size:       e.size,
			BaseCycles: e.cycles,
			Penalty:    e.penalty,
		}
	}
	for op := range Table {
		if Table[op].Mnemonic == "" {
			Table[op] = Instruction{
				Opcode:     byte(op),
				Mnemonic:   IllegalMnemonic,
				Mode:       Implicit,
				Size:       1,
				BaseCycles: 2,
			}
		}
	}
}

// Lookup returns the table entry for opcode b.
func Lookup(b byte) Instruction {
	return Table[b]
}

const (
	r  = PenaltyRead
	ir = PenaltyIndexedRead
	n  = PenaltyNone
)

// rawOpcodes lists only the 151 documented 6502 opcodes. Every other byte
// resolves to the IllegalMnemonic sentinel via the init() pass above.
var rawOpcodes = map[byte]entry{
	// ADC
	0x69: {"ADC", Immediate, 2, 2, n}, 0x65: {"ADC", ZeroPage, 2, 3, n},
	0x75: {"ADC", ZeroPageX, 2, 4, n}, 0x6D: {"ADC", Absolute, 3, 4, n},
	0x7D: {"ADC", AbsoluteX, 3, 4, ir}, 0x79: {"ADC", AbsoluteY, 3, 4, ir},
	0x61: {"ADC", IndirectX, 2, 6, n}, 0x71: {"ADC", IndirectY, 2, 5, ir},

	// AND
	0x29: {"AND", Immediate, 2, 2, n}, 0x25: {"AND", ZeroPage, 2, 3, n},
	0x35: {"AND", ZeroPageX, 2, 4, n}, 0x2D: {"AND", Absolute, 3, 4, n},
	0x3D: {"AND", AbsoluteX, 3, 4, ir}, 0x39: {"AND", AbsoluteY, 3, 4, ir},
	0x21: {"AND", IndirectX, 2, 6, n}, 0x31: {"AND", IndirectY, 2, 5, ir},

	// ASL
	0x0A: {"ASL", Accumulator, 1, 2, n}, 0x06: {"ASL", ZeroPage, 2, 5, n},
	0x16: {"ASL", ZeroPageX, 2, 6, n}, 0x0E: {"ASL", Absolute, 3, 6, n},
	0x1E: {"ASL", AbsoluteX, 3, 7, n},

	// Branches
	0x90: {"BCC", Relative, 2, 2, n}, 0xB0: {"BCS", Relative, 2, 2, n},
	0xF0: {"BEQ", Relative, 2, 2, n}, 0x30: {"BMI", Relative, 2, 2, n},
	0xD0: {"BNE", Relative, 2, 2, n}, 0x10: {"BPL", Relative, 2, 2, n},
	0x50: {"BVC", Relative, 2, 2, n}, 0x70: {"BVS", Relative, 2, 2, n},

	// BIT
	0x24: {"BIT", ZeroPage, 2, 3, n}, 0x2C: {"BIT", Absolute, 3, 4, n},

	0x00: {"BRK", Implicit, 2, 7, n},

	0x18: {"CLC", Implicit, 1, 2, n}, 0xD8: {"CLD", Implicit, 1, 2, n},
	0x58: {"CLI", Implicit, 1, 2, n}, 0xB8: {"CLV", Implicit, 1, 2, n},

	// CMP
	0xC9: {"CMP", Immediate, 2, 2, n}, 0xC5: {"CMP", ZeroPage, 2, 3, n},
	0xD5: {"CMP", ZeroPageX, 2, 4, n}, 0xCD: {"CMP", Absolute, 3, 4, n},
	0xDD: {"CMP", AbsoluteX, 3, 4, ir}, 0xD9: {"CMP", AbsoluteY, 3, 4, ir},
	0xC1: {"CMP", IndirectX, 2, 6, n}, 0xD1: {"CMP", IndirectY, 2, 5, ir},

	0xE0: {"CPX", Immediate, 2, 2, n}, 0xE4: {"CPX", ZeroPage, 2, 3, n}, 0xEC: {"CPX", Absolute, 3, 4, n},
	0xC0: {"CPY", Immediate, 2, 2, n}, 0xC4: {"CPY", ZeroPage, 2, 3, n}, 0xCC: {"CPY", Absolute, 3, 4, n},

	// DEC
	0xC6: {"DEC", ZeroPage, 2, 5, n}, 0xD6: {"DEC", ZeroPageX, 2, 6, n},
	0xCE: {"DEC", Absolute, 3, 6, n}, 0xDE: {"DEC", AbsoluteX, 3, 7, n},
	0xCA: {"DEX", Implicit, 1, 2, n}, 0x88: {"DEY", Implicit, 1, 2, n},

	// EOR
	0x49: {"EOR", Immediate, 2, 2, n}, 0x45: {"EOR", ZeroPage, 2, 3, n},
	0x55: {"EOR", ZeroPageX, 2, 4, n}, 0x4D: {"EOR", Absolute, 3, 4, n},
	0x5D: {"EOR", AbsoluteX, 3, 4, ir}, 0x59: {"EOR", AbsoluteY, 3, 4, ir},
	0x41: {"EOR", IndirectX, 2, 6, n}, 0x51: {"EOR", IndirectY, 2, 5, ir},

	// INC
	0xE6: {"INC", ZeroPage, 2, 5, n}, 0xF6: {"INC", ZeroPageX, 2, 6, n},
	0xEE: {"INC", Absolute, 3, 6, n}, 0xFE: {"INC", AbsoluteX, 3, 7, n},
	0xE8: {"INX", Implicit, 1, 2, n}, 0xC8: {"INY", Implicit, 1, 2, n},

	0x4C: {"JMP", Absolute, 3, 3, n}, 0x6C: {"JMP", Indirect, 3, 5, n},
	0x20: {"JSR", Absolute, 3, 6, n},

	// LDA/LDX/LDY
	0xA9: {"LDA", Immediate, 2, 2, n}, 0xA5: {"LDA", ZeroPage, 2, 3, n},
	0xB5: {"LDA", ZeroPageX, 2, 4, n}, 0xAD: {"LDA", Absolute, 3, 4, n},
	0xBD: {"LDA", AbsoluteX, 3, 4, ir}, 0xB9: {"LDA", AbsoluteY, 3, 4, ir},
	0xA1: {"LDA", IndirectX, 2, 6, n}, 0xB1: {"LDA", IndirectY, 2, 5, ir},

	0xA2: {"LDX", Immediate, 2, 2, n}, 0xA6: {"LDX", ZeroPage, 2, 3, n},
	0xB6: {"LDX", ZeroPageY, 2, 4, n}, 0xAE: {"LDX", Absolute, 3, 4, n},
	0xBE: {"LDX", AbsoluteY, 3, 4, ir},

	0xA0: {"LDY", Immediate, 2, 2, n}, 0xA4: {"LDY", ZeroPage, 2, 3, n},
	0xB4: {"LDY", ZeroPageX, 2, 4, n}, 0xAC: {"LDY", Absolute, 3, 4, n},
	0xBC: {"LDY", AbsoluteX, 3, 4, ir},

	// LSR
	0x4A: {"LSR", Accumulator, 1, 2, n}, 0x46: {"LSR", ZeroPage, 2, 5, n},
	0x56: {"LSR", ZeroPageX, 2, 6, n}, 0x4E: {"LSR", Absolute, 3, 6, n},
	0x5E: {"LSR", AbsoluteX, 3, 7, n},

	0xEA: {"NOP", Implicit, 1, 2, n},

	// ORA
	0x09: {"ORA", Immediate, 2, 2, n}, 0x05: {"ORA", ZeroPage, 2, 3, n},
	0x15: {"ORA", ZeroPageX, 2, 4, n}, 0x0D: {"ORA", Absolute, 3, 4, n},
	0x1D: {"ORA", AbsoluteX, 3, 4, ir}, 0x19: {"ORA", AbsoluteY, 3, 4, ir},
	0x01: {"ORA", IndirectX, 2, 6, n}, 0x11: {"ORA", IndirectY, 2, 5, ir},

	0x48: {"PHA", Implicit, 1, 3, n}, 0x08: {"PHP", Implicit, 1, 3, n},
	0x68: {"PLA", Implicit, 1, 4, n}, 0x28: {"PLP", Implicit, 1, 4, n},

	// ROL/ROR
	0x2A: {"ROL", Accumulator, 1, 2, n}, 0x26: {"ROL", ZeroPage, 2, 5, n},
	0x36: {"ROL", ZeroPageX, 2, 6, n}, 0x2E: {"ROL", Absolute, 3, 6, n},
	0x3E: {"ROL", AbsoluteX, 3, 7, n},
	0x6A: {"ROR", Accumulator, 1, 2, n}, 0x66: {"ROR", ZeroPage, 2, 5, n},
	0x76: {"ROR", ZeroPageX, 2, 6, n}, 0x6E: {"ROR", Absolute, 3, 6, n},
	0x7E: {"ROR", AbsoluteX, 3, 7, n},

	0x40: {"RTI", Implicit, 1, 6, n}, 0x60: {"RTS", Implicit, 1, 6, n},

	// SBC
	0xE9: {"SBC", Immediate, 2, 2, n}, 0xE5: {"SBC", ZeroPage, 2, 3, n},
	0xF5: {"SBC", ZeroPageX, 2, 4, n}, 0xED: {"SBC", Absolute, 3, 4, n},
	0xFD: {"SBC", AbsoluteX, 3, 4, ir}, 0xF9: {"SBC", AbsoluteY, 3, 4, ir},
	0xE1: {"SBC", IndirectX, 2, 6, n}, 0xF1: {"SBC", IndirectY, 2, 5, ir},

	0x38: {"SEC", Implicit, 1, 2, n}, 0xF8: {"SED", Implicit, 1, 2, n}, 0x78: {"SEI", Implicit, 1, 2, n},

	// STA/STX/STY - write-class, never take a page-cross penalty
	0x85: {"STA", ZeroPage, 2, 3, n}, 0x95: {"STA", ZeroPageX, 2, 4, n},
	0x8D: {"STA", Absolute, 3, 4, n}, 0x9D: {"STA", AbsoluteX, 3, 5, n},
	0x99: {"STA", AbsoluteY, 3, 5, n}, 0x81: {"STA", IndirectX, 2, 6, n},
	0x91: {"STA", IndirectY, 2, 6, n},
	0x86: {"STX", ZeroPage, 2, 3, n}, 0x96: {"STX", ZeroPageY, 2, 4, n}, 0x8E: {"STX", Absolute, 3, 4, n},
	0x84: {"STY", ZeroPage, 2, 3, n}, 0x94: {"STY", ZeroPageX, 2, 4, n}, 0x8C: {"STY", Absolute, 3, 4, n},

	0xAA: {"TAX", Implicit, 1, 2, n}, 0xA8: {"TAY", Implicit, 1, 2, n},
	0xBA: {"TSX", Implicit, 1, 2, n}, 0x8A: {"TXA", Implicit, 1, 2, n},
	0x9A: {"TXS", Implicit, 1, 2, n}, 0x98: {"TYA", Implicit, 1, 2, n},
}
