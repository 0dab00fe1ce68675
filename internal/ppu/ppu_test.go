package ppu

import "testing"

func TestUpdateAdvancesDotThenLine(t *testing.T) {
	p := New()
	for i := 0; i < dotsPerLine-1; i++ {
		p.Update()
	}
	if p.VCounter() != 0 {
		t.Fatalf("VCounter = %d before the line rolls over, want 0", p.VCounter())
	}
	p.Update() // crosses into the next line
	if p.VCounter() != 1 || p.HCounter() != 0 {
		t.Fatalf("after dotsPerLine updates: V=%d H=%d, want V=1 H=0", p.VCounter(), p.HCounter())
	}
}

func TestInVBlank(t *testing.T) {
	p := New()
	for i := 0; i < vblankStart*dotsPerLine; i++ {
		p.Update()
	}
	if !p.InVBlank() {
		t.Fatalf("InVBlank() = false at line %d, want true (vblank starts at %d)", p.VCounter(), vblankStart)
	}
}

func TestVRAMWriteReadRoundTrip(t *testing.T) {
	p := New()
	p.Store(0x2116, 0x00) // VMADDL
	p.Store(0x2117, 0x00) // VMADDH
	p.Store(0x2118, 0xCD) // VMDATAL
	p.Store(0x2119, 0xAB) // VMDATAH

	p.Store(0x2116, 0x00)
	p.Store(0x2117, 0x00)
	lo := p.Load(0x2139)
	hi := p.Load(0x213A)
	if lo != 0xCD || hi != 0xAB {
		t.Fatalf("VMDATA read back = %02X%02X, want ABCD", hi, lo)
	}
}

func TestVMAINLatchDisablesAutoIncrement(t *testing.T) {
	p := New()
	p.Store(0x2115, 0x80) // latch-on-high-byte, no auto-increment
	p.Store(0x2116, 0x00)
	p.Store(0x2117, 0x00)
	p.Store(0x2118, 0x11)
	if p.vmaddr != 0 {
		t.Fatalf("vmaddr = %d after low-byte write with VMAIN bit7 set, want 0 (no auto-increment)", p.vmaddr)
	}
}

func TestCGRAMWriteLatchesOnHighByte(t *testing.T) {
	p := New()
	p.Store(0x2121, 0x00) // CGADD = 0
	p.Store(0x2122, 0x55) // low byte
	p.Store(0x2122, 0x2A) // high byte, commits and auto-increments CGADD

	if p.cgram[0] != 0x2A55 {
		t.Fatalf("cgram[0] = %#04x, want 0x2A55", p.cgram[0])
	}
	if p.cgaddr != 1 {
		t.Fatalf("cgaddr = %d after one full write, want 1", p.cgaddr)
	}
}

func TestForcedBlankFillsBlack(t *testing.T) {
	p := New()
	p.Store(0x2100, 0x80) // INIDISP forced blank
	p.renderLine(0)
	buf := p.FrameBuf()
	if buf[0] != 0xFF000000 {
		t.Fatalf("forced-blank pixel = %#08x, want opaque black", buf[0])
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	p := New()
	p.Store(0x2100, 0x0F)
	for i := 0; i < 500; i++ {
		p.Update()
	}
	snap := p.Snapshot()

	other := New()
	other.Restore(snap)
	if other.VCounter() != p.VCounter() || other.HCounter() != p.HCounter() {
		t.Fatalf("restored counters V=%d H=%d, want V=%d H=%d", other.VCounter(), other.HCounter(), p.VCounter(), p.HCounter())
	}
	if other.inidisp != p.inidisp {
		t.Fatalf("restored inidisp = %#02x, want %#02x", other.inidisp, p.inidisp)
	}
}
