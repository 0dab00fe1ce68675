package ppu

import "snescore/internal/framebuf"

// Snapshot is the persisted form of PPU state.
type Snapshot struct {
	Dot, Line  uint16
	FrameBuf   framebuf.Buffer
	Inidisp    uint8
	Bgmode     uint8
	Vmain      uint8
	Vmaddr     uint16
	VRAM       [0x8000]uint16
	Cgaddr     uint8
	CGRAM      [256]uint16
	FrameCount uint64
}

// Snapshot captures the PPU's current state.
func (p *PPU) Snapshot() Snapshot {
	return Snapshot{
		Dot: p.dot, Line: p.line,
		FrameBuf: p.frameBuf,
		Inidisp:  p.inidisp, Bgmode: p.bgmode,
		Vmain: p.vmain, Vmaddr: p.vmaddr, VRAM: p.vram,
		Cgaddr: p.cgaddr, CGRAM: p.cgram,
		FrameCount: p.frameCount,
	}
}

// Restore replaces the PPU's state with a previously captured Snapshot.
func (p *PPU) Restore(s Snapshot) {
	p.dot, p.line = s.Dot, s.Line
	p.frameBuf = s.FrameBuf
	p.inidisp, p.bgmode = s.Inidisp, s.Bgmode
	p.vmain, p.vmaddr, p.vram = s.Vmain, s.Vmaddr, s.VRAM
	p.cgaddr, p.cgram = s.Cgaddr, s.CGRAM
	p.frameCount = s.FrameCount
}
