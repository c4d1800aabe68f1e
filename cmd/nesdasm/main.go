// Command nesdasm disassembles the PRG-ROM of an iNES file, or a raw
// binary blob, and prints one line per instruction in disasm.Format's
// "AAAA: MNE operand" form.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/disasm"
)

var (
	romFile = flag.String("nes_rom", "", "Path to an iNES ROM. Mutually exclusive with -bin.")
	binFile = flag.String("bin", "", "Path to a raw binary blob to disassemble from offset 0.")
	start   = flag.Uint("start", 0, "Address to start disassembling from.")
	count   = flag.Int("count", -1, "Number of instructions to print (-1 for until end of input).")
)

func main() {
	flag.Parse()

	var src disasm.Bytes
	switch {
	case *romFile != "":
		f, err := os.Open(*romFile)
		if err != nil {
			log.Fatalf("nesdasm: opening ROM: %v", err)
		}
		img, err := cartridge.Load(f)
		f.Close()
		if err != nil {
			log.Fatalf("nesdasm: parsing ROM: %v", err)
		}
		src = disasm.Bytes(img.PrgROM)
	case *binFile != "":
		b, err := os.ReadFile(*binFile)
		if err != nil {
			log.Fatalf("nesdasm: reading binary: %v", err)
		}
		src = disasm.Bytes(b)
	default:
		log.Fatal("nesdasm: one of -nes_rom or -bin is required")
	}

	n := 0
	err := disasm.Iterate(src, uint16(*start), func(d disasm.DecodedInstruction) bool {
		fmt.Println(disasm.Format(d))
		n++
		if int(d.PCAtFetch)+int(d.Instruction.Size) >= len(src) {
			return false
		}
		return *count < 0 || n < *count
	})
	if err != nil {
		log.Fatalf("nesdasm: %v", err)
	}
}
