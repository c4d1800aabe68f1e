// Package disasm decodes 6502 machine code into DecodedInstruction records
// and formats them for trace logs, independent of any running CPU.
package disasm

import (
	"fmt"

	"github.com/bdwalton/nescore/instr"
)

// ByteSource is the minimal capability the disassembler needs: read one
// byte at an absolute offset. A cartridge image, a CPU bus, or a plain byte
// slice can all satisfy it.
type ByteSource interface {
	ReadByte(offset uint16) (byte, error)
}

// Bytes adapts a plain []byte into a ByteSource, returning zero past the end
// (matches the spec's E1 scenario: "followed by zeros").
type Bytes []byte

func (b Bytes) ReadByte(offset uint16) (byte, error) {
	if int(offset) >= len(b) {
		return 0, nil
	}
	return b[offset], nil
}

// OperandKind tags what, if anything, DecodedInstruction.Operand holds.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandByte
	OperandWord
)

// Operand is the decoded operand payload: at most one of Byte/Word is
// meaningful, selected by Kind.
type Operand struct {
	Kind OperandKind
	Byte uint8
	Word uint16
}

// DecodedInstruction is one disassembled instruction: the table entry it
// decoded to, its operand, and the PC value it was fetched from.
type DecodedInstruction struct {
	Instruction instr.Instruction
	Operand     Operand
	PCAtFetch   uint16
}

// Decode reads one instruction from src starting at offset and returns it
// along with the offset of the next instruction (offset + instruction size).
func Decode(src ByteSource, offset uint16) (DecodedInstruction, uint16, error) {
	opcode, err := src.ReadByte(offset)
	if err != nil {
		return DecodedInstruction{}, offset, fmt.Errorf("disasm: reading opcode at %04X: %w", offset, err)
	}

	in := instr.Lookup(opcode)
	d := DecodedInstruction{Instruction: in, PCAtFetch: offset}

	switch in.Size {
	case 1:
		d.Operand = Operand{Kind: OperandNone}
	case 2:
		b, err := src.ReadByte(offset + 1)
		if err != nil {
			return DecodedInstruction{}, offset, fmt.Errorf("disasm: reading operand at %04X: %w", offset+1, err)
		}
		d.Operand = Operand{Kind: OperandByte, Byte: b}
	case 3:
		lo, err := src.ReadByte(offset + 1)
		if err != nil {
			return DecodedInstruction{}, offset, fmt.Errorf("disasm: reading operand low byte at %04X: %w", offset+1, err)
		}
		hi, err := src.ReadByte(offset + 2)
		if err != nil {
			return DecodedInstruction{}, offset, fmt.Errorf("disasm: reading operand high byte at %04X: %w", offset+2, err)
		}
		d.Operand = Operand{Kind: OperandWord, Word: uint16(hi)<<8 | uint16(lo)}
	default:
		return DecodedInstruction{}, offset, fmt.Errorf("disasm: opcode %02X at %04X has invalid size %d", opcode, offset, in.Size)
	}

	return d, offset + uint16(in.Size), nil
}

// Iterate calls fn once per decoded instruction starting at offset, stopping
// when fn returns false or an error occurs decoding the next instruction.
func Iterate(src ByteSource, offset uint16, fn func(DecodedInstruction) bool) error {
	for {
		d, next, err := Decode(src, offset)
		if err != nil {
			return err
		}
		if !fn(d) {
			return nil
		}
		offset = next
	}
}

// Format renders a decoded instruction as "AAAA: MNE operand_text" with
// mnemonic and addressing-mode-specific decoration, matching spec.md §4.1
// and the E1 example ("0000: LDA #$01").
func Format(d DecodedInstruction) string {
	return fmt.Sprintf("%04X: %s%s", d.PCAtFetch, d.Instruction.Mnemonic, formatOperand(d))
}

// OpcodeBytes renders the raw bytes of a decoded instruction, e.g. "A9 01",
// for use in the fixed-column CPU trace line (spec.md §6).
func OpcodeBytes(d DecodedInstruction) string {
	switch d.Operand.Kind {
	case OperandByte:
		return fmt.Sprintf("%02X %02X", d.Instruction.Opcode, d.Operand.Byte)
	case OperandWord:
		lo := byte(d.Operand.Word & 0xFF)
		hi := byte(d.Operand.Word >> 8)
		return fmt.Sprintf("%02X %02X %02X", d.Instruction.Opcode, lo, hi)
	default:
		return fmt.Sprintf("%02X", d.Instruction.Opcode)
	}
}

func formatOperand(d DecodedInstruction) string {
	in := d.Instruction
	switch in.Mode {
	case instr.Implicit:
		return ""
	case instr.Accumulator:
		return " A"
	case instr.Immediate:
		return fmt.Sprintf(" #$%02X", d.Operand.Byte)
	case instr.ZeroPage:
		return fmt.Sprintf(" $%02X", d.Operand.Byte)
	case instr.ZeroPageX:
		return fmt.Sprintf(" $%02X,X", d.Operand.Byte)
	case instr.ZeroPageY:
		return fmt.Sprintf(" $%02X,Y", d.Operand.Byte)
	case instr.Absolute:
		return fmt.Sprintf(" $%04X", d.Operand.Word)
	case instr.AbsoluteX:
		return fmt.Sprintf(" $%04X,X", d.Operand.Word)
	case instr.AbsoluteY:
		return fmt.Sprintf(" $%04X,Y", d.Operand.Word)
	case instr.Indirect:
		return fmt.Sprintf(" ($%04X)", d.Operand.Word)
	case instr.IndirectX:
		return fmt.Sprintf(" ($%02X,X)", d.Operand.Byte)
	case instr.IndirectY:
		return fmt.Sprintf(" ($%02X),Y", d.Operand.Byte)
	case instr.Relative:
		target := d.PCAtFetch + uint16(in.Size) + uint16(int16(int8(d.Operand.Byte)))
		return fmt.Sprintf(" $%04X", target)
	default:
		return ""
	}
}
