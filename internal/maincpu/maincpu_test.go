package maincpu

import (
	"testing"

	"snescore/internal/bus"
	"snescore/internal/dma"
	"snescore/internal/joypad"
	"snescore/internal/ppu"
	"snescore/internal/romio"
)

// newTestBus wires a Bus over a MockROM so tests can plant a tiny program
// directly in bank 0 and drive StubCPU against it end to end.
func newTestBus(t *testing.T) (*bus.Bus, *romio.MockROM) {
	t.Helper()
	rom := &romio.MockROM{}
	b := bus.New(ppu.New(), noopAudio{}, dma.New(), rom, joypad.New())
	return b, rom
}

type noopAudio struct{}

func (noopAudio) WritePort(uint8, uint8) {}
func (noopAudio) ReadPort(uint8) uint8   { return 0 }

func TestResetVectorLatchesPC(t *testing.T) {
	b, rom := newTestBus(t)
	rom.Bytes[0xFFFC] = 0x00
	rom.Bytes[0xFFFD] = 0x80
	c := New(b)
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.PC)
	}
}

func TestLDAImmediateThenSTAAbsolute(t *testing.T) {
	b, rom := newTestBus(t)
	rom.Bytes[0xFFFC], rom.Bytes[0xFFFD] = 0x00, 0x80
	prog := []uint8{0xA9, 0x7E, 0x8D, 0x00, 0x01} // LDA #$7E; STA $0100
	copy(rom.Bytes[0x8000:], prog)

	c := New(b)
	c.Step(b) // LDA #$7E
	if c.A != 0x7E {
		t.Fatalf("A = %#02x after LDA #$7E, want 0x7E", c.A)
	}
	c.Step(b) // STA $0100
	if got := b.Load(0x00, 0x0100); got != 0x7E {
		t.Fatalf("WRAM[$0100] = %#02x, want 0x7E", got)
	}
}

func TestJMPAbsolute(t *testing.T) {
	b, rom := newTestBus(t)
	rom.Bytes[0xFFFC], rom.Bytes[0xFFFD] = 0x00, 0x80
	rom.Bytes[0x8000] = 0x4C // JMP
	rom.Bytes[0x8001] = 0x34
	rom.Bytes[0x8002] = 0x12

	c := New(b)
	c.Step(b)
	if c.PC != 0x1234 {
		t.Fatalf("PC after JMP = %#04x, want 0x1234", c.PC)
	}
}

func TestIllegalOpcodePanics(t *testing.T) {
	b, rom := newTestBus(t)
	rom.Bytes[0xFFFC], rom.Bytes[0xFFFD] = 0x00, 0x80
	rom.Bytes[0x8000] = 0xFF // not in the stub's opcode set

	c := New(b)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Step to panic on an illegal opcode")
		}
	}()
	c.Step(b)
}

func TestNMIDispatchPushesReturnAddress(t *testing.T) {
	b, rom := newTestBus(t)
	rom.Bytes[0xFFFC], rom.Bytes[0xFFFD] = 0x00, 0x80
	rom.Bytes[0xFFEA], rom.Bytes[0xFFEB] = 0x00, 0x90 // NMI vector
	rom.Bytes[0x8000] = 0xEA                          // NOP

	c := New(b)
	c.TriggerNMI()
	c.Step(b)

	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI dispatch = %#04x, want 0x9000", c.PC)
	}
	if c.SP != 0x01FC {
		t.Fatalf("SP after pushing PC+flags = %#04x, want 0x01FC", c.SP)
	}
}

func TestWAIWaitsForInterrupt(t *testing.T) {
	b, rom := newTestBus(t)
	rom.Bytes[0xFFFC], rom.Bytes[0xFFFD] = 0x00, 0x80
	rom.Bytes[0x8000] = 0xCB // WAI
	rom.Bytes[0x8001] = 0xEA // NOP, fetched once the wait ends

	c := New(b)
	c.Step(b) // enters waiting state
	pcBefore := c.PC
	c.Step(b) // still waiting, no new fetch
	if c.PC != pcBefore {
		t.Fatalf("PC advanced while waiting: %#04x -> %#04x", pcBefore, c.PC)
	}

	c.TriggerIRQ()
	c.irqMasked = false
	c.Step(b)
	if c.waiting {
		t.Fatal("CPU should leave the waiting state once an unmasked IRQ arrives")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	b, rom := newTestBus(t)
	rom.Bytes[0xFFFC], rom.Bytes[0xFFFD] = 0x00, 0x80
	c := New(b)
	c.A, c.X, c.Y = 0x11, 0x22, 0x33
	c.PC = 0x9876

	snap := c.Snapshot()

	other := New(b)
	other.Restore(snap)
	if other.A != 0x11 || other.X != 0x22 || other.Y != 0x33 || other.PC != 0x9876 {
		t.Fatalf("restored CPU = %+v, want A=0x11 X=0x22 Y=0x33 PC=0x9876", other)
	}
}
