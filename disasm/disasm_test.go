package disasm

import "testing"

func TestDecodeImmediate(t *testing.T) {
	src := Bytes{0xA9, 0x01}
	d, next, err := Decode(src, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if next != 2 {
		t.Errorf("next = %d, want 2", next)
	}
	if d.Operand.Kind != OperandByte || d.Operand.Byte != 0x01 {
		t.Errorf("Operand = %+v, want OperandByte 0x01", d.Operand)
	}
}

func TestFormatMatchesCanonicalExample(t *testing.T) {
	src := Bytes{0xA9, 0x01}
	d, _, err := Decode(src, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := Format(d); got != "0000: LDA #$01" {
		t.Errorf("Format = %q, want %q", got, "0000: LDA #$01")
	}
}

func TestReadPastEndReturnsZero(t *testing.T) {
	src := Bytes{0xEA}
	d, _, err := Decode(src, 5)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Instruction.Mnemonic != "BRK" {
		t.Errorf("reading past end should decode the zero byte as BRK, got %s", d.Instruction.Mnemonic)
	}
}

func TestIterateStopsOnFalse(t *testing.T) {
	src := Bytes{0xEA, 0xEA, 0xEA}
	count := 0
	err := Iterate(src, 0, func(DecodedInstruction) bool {
		count++
		return count < 2
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestOpcodeBytesForWordOperand(t *testing.T) {
	src := Bytes{0x4C, 0x34, 0x12} // JMP $1234
	d, _, err := Decode(src, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := OpcodeBytes(d); got != "4C 34 12" {
		t.Errorf("OpcodeBytes = %q, want %q", got, "4C 34 12")
	}
}

func TestFormatRelativeComputesTarget(t *testing.T) {
	src := make(Bytes, 0x0202)
	src[0x0200], src[0x0201] = 0x90, 0x05 // BCC +5 at 0x0200
	d, _, err := Decode(src, 0x0200)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := Format(d); got != "0200: BCC $0207" {
		t.Errorf("Format = %q, want %q", got, "0200: BCC $0207")
	}
}
