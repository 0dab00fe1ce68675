// Package ppu provides a minimal picture processing unit sufficient to
// drive the scheduler's scanline event pipeline and produce a frame
// buffer: dot/scanline counters, VBlank/HBlank flags, and the
// memory-mapped register window at $2100-$213F. Pixel generation itself
// (backgrounds, sprites, color math) is outside the core's scope; this
// stub fills each visible line with the CGRAM backdrop color (entry 0), or
// black during forced blank, and draws nothing else.
package ppu

import "snescore/internal/framebuf"

const (
	dotsPerLine    = 340
	linesPerFrame  = 262
	visibleLines   = 224
	dotsPerUpdate  = 4 // master cycles consumed per dot, NTSC dot clock = master/4
	vblankStart    = 225
)

// PPU implements the bus.PPU and scheduler.PPU contracts.
type PPU struct {
	dot      uint16
	line     uint16
	frameBuf framebuf.Buffer

	inidisp uint8
	bgmode  uint8
	vmain   uint8
	vmaddr  uint16
	vram    [0x8000]uint16
	cgaddr  uint8
	cgram   [256]uint16
	cgLow   uint8 // low byte held until the high byte of a CGDATA pair
	cgHigh  bool  // next CGDATA write is the high byte

	frameCount uint64
}

// New returns a PPU reset to the top-left of the first frame.
func New() *PPU {
	return &PPU{}
}

// Update advances the dot/scanline counters by one dot and returns the
// master-cycle cost of doing so.
func (p *PPU) Update() uint8 {
	p.dot++
	if p.dot >= dotsPerLine {
		p.dot = 0
		p.line++
		if p.line >= linesPerFrame {
			p.line = 0
			p.frameCount++
		}
		if p.line < visibleLines {
			p.renderLine(p.line)
		}
	}
	return dotsPerUpdate
}

// renderLine fills one scanline of the frame buffer with the backdrop color
// from CGRAM entry 0, or opaque black under forced blank. Backgrounds and
// sprites are not drawn.
func (p *PPU) renderLine(line uint16) {
	if p.inidisp&0x80 != 0 { // forced blank
		for x := 0; x < framebuf.Width; x++ {
			p.frameBuf[int(line)*framebuf.Width+x] = 0xFF000000
		}
		return
	}
	base := p.cgram[0] // backdrop color, BGR555
	r := uint32(base&0x1F) * 255 / 31
	g := uint32((base>>5)&0x1F) * 255 / 31
	b := uint32((base>>10)&0x1F) * 255 / 31
	pixel := 0xFF000000 | r<<16 | g<<8 | b
	for x := 0; x < framebuf.Width; x++ {
		p.frameBuf[int(line)*framebuf.Width+x] = pixel
	}
}

// VCounter and HCounter report the current scanline/dot.
func (p *PPU) VCounter() uint16 { return p.line }
func (p *PPU) HCounter() uint16 { return p.dot }

// InVBlank reports whether the current scanline lies in the VBlank period.
func (p *PPU) InVBlank() bool { return p.line >= vblankStart }

// InHBlank reports whether the current dot lies in the HBlank period
// (dots 274-339 on real hardware).
func (p *PPU) InHBlank() bool { return p.dot >= 274 }

// CanLatchCounters reports whether software can safely latch H/V counters
// via $2137; always true for this stub since there is no lightgun input.
func (p *PPU) CanLatchCounters() bool { return true }

// FrameBuf returns the current frame's pixel buffer.
func (p *PPU) FrameBuf() *framebuf.Buffer { return &p.frameBuf }

// Load services the $2100-$213F PPU register window.
func (p *PPU) Load(addr uint16) uint8 {
	switch addr {
	case 0x2139:
		v := uint8(p.vram[p.vmaddr&0x7FFF])
		p.advanceVRAM()
		return v
	case 0x213A:
		return uint8(p.vram[p.vmaddr&0x7FFF] >> 8)
	case 0x213C:
		return uint8(p.dot)
	case 0x213D:
		return uint8(p.line)
	default:
		return 0
	}
}

// Store services the $2100-$213F PPU register window.
func (p *PPU) Store(addr uint16, value uint8) {
	switch addr {
	case 0x2100:
		p.inidisp = value
	case 0x2105:
		p.bgmode = value
	case 0x2115:
		p.vmain = value
	case 0x2116:
		p.vmaddr = (p.vmaddr &^ 0x00FF) | uint16(value)
	case 0x2117:
		p.vmaddr = (p.vmaddr &^ 0xFF00) | uint16(value)<<8
	case 0x2118:
		p.vram[p.vmaddr&0x7FFF] = (p.vram[p.vmaddr&0x7FFF] &^ 0x00FF) | uint16(value)
		p.advanceVRAM()
	case 0x2119:
		p.vram[p.vmaddr&0x7FFF] = (p.vram[p.vmaddr&0x7FFF] &^ 0xFF00) | uint16(value)<<8
	case 0x2121:
		p.cgaddr = value
		p.cgHigh = false
	case 0x2122:
		if !p.cgHigh {
			p.cgLow = value
			p.cgHigh = true
		} else {
			p.cgram[p.cgaddr] = uint16(value&0x7F)<<8 | uint16(p.cgLow)
			p.cgaddr++
			p.cgHigh = false
		}
	}
}

func (p *PPU) advanceVRAM() {
	if p.vmain&0x80 == 0 {
		p.vmaddr++
	}
}
