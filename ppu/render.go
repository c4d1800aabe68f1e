package ppu

// renderFrame draws one full background frame into Framebuffer. Per
// spec.md §9's accepted shortcut, the whole frame is produced here (at
// the scanline==240,dot==0 boundary) rather than fetched per scanline;
// this is correct for background-only, non-sprite-0-hit rendering.
func (p *PPU) renderFrame() {
	if p.Mask&MaskShowBg == 0 {
		for i := range p.Framebuffer {
			p.Framebuffer[i] = Pixel{A: 0xFF}
		}
		return
	}

	nametableSelect := uint16(p.Ctrl & 0x03)
	var bgTable uint16
	if p.Ctrl&CtrlBgTable != 0 {
		bgTable = 0x1000
	}

	for coarseY := uint16(0); coarseY < 30; coarseY++ {
		for coarseX := uint16(0); coarseX < 32; coarseX++ {
			nameAddr := 0x2000 + coarseX + coarseY*32 + nametableSelect*0x400
			tile := uint16(p.bus.Read(nameAddr))

			attrAddr := 0x23C0 + coarseX/4 + (coarseY/4)*8 + nametableSelect*0x400
			attrByte := p.bus.Read(attrAddr)
			quadrant := (coarseY%4&2)>>0 | (coarseX%4&2)>>1
			paletteQuadrant := (attrByte >> (quadrant * 2)) & 0x03

			for fineY := uint16(0); fineY < 8; fineY++ {
				planeLo := p.bus.Read(fineY | tile<<4 | bgTable)
				planeHi := p.bus.Read(fineY | 1<<3 | tile<<4 | bgTable)

				screenY := int(coarseY*8 + fineY)
				for bit := 0; bit < 8; bit++ {
					shift := uint(7 - bit)
					colorIndex := (planeHi>>shift)&1<<1 | (planeLo>>shift)&1
					paletteIndex := paletteQuadrant<<2 | colorIndex
					colorByte := p.bus.Read(0x3F00 + uint16(paletteIndex))
					rgb := p.palette[colorByte&0x3F]

					screenX := int(coarseX)*8 + bit
					p.Framebuffer[screenY*FrameWidth+screenX] = Pixel{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xFF}
				}
			}
		}
	}
}

// RenderPatternTables draws the two 128x128 CHR banks side by side into
// dst (must be len >= 256*128), using grayscale shading by 2bpp color
// index. This is the optional debug path spec.md §9 leaves to the
// implementer's discretion; it never substitutes for the real
// background render.
func (p *PPU) RenderPatternTables(dst []Pixel) {
	const bankPixels = 256 * 128
	if len(dst) < bankPixels {
		return
	}
	shades := [4]uint8{0x00, 0x55, 0xAA, 0xFF}

	for bank := 0; bank < 2; bank++ {
		base := uint16(bank * 0x1000)
		for tile := uint16(0); tile < 256; tile++ {
			tileX := int(tile % 16)
			tileY := int(tile / 16)
			for row := uint16(0); row < 8; row++ {
				lo := p.bus.Read(base + tile*16 + row)
				hi := p.bus.Read(base + tile*16 + row + 8)
				for bit := 0; bit < 8; bit++ {
					shift := uint(7 - bit)
					idx := (hi>>shift)&1<<1 | (lo>>shift)&1
					shade := shades[idx]

					x := bank*128 + tileX*8 + bit
					y := tileY*8 + int(row)
					dst[y*256+x] = Pixel{R: shade, G: shade, B: shade, A: 0xFF}
				}
			}
		}
	}
}
