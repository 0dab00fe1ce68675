package dma

import (
	"testing"

	"snescore/internal/bus"
	"snescore/internal/joypad"
	"snescore/internal/ppu"
	"snescore/internal/romio"
)

type noopAudio struct{}

func (noopAudio) WritePort(uint8, uint8) {}
func (noopAudio) ReadPort(uint8) uint8   { return 0 }

func newTestBus() (*bus.Bus, *romio.MockROM) {
	rom := &romio.MockROM{}
	b := bus.New(ppu.New(), noopAudio{}, New(), rom, joypad.New())
	return b, rom
}

func TestGeneralPurposeDMACopiesWRAMToPPU(t *testing.T) {
	b, _ := newTestBus()
	b.Store(0x7E, 0x1000, 0x11)
	b.Store(0x7E, 0x1001, 0x22)

	ch := b.Channel(0)
	ch.Params = 0x00 // 1 register, B-bus write, WRAM -> PPU
	ch.DestReg = 0x18
	ch.Bank = 0x7E
	ch.AddrLo, ch.AddrHi = 0x00, 0x10
	ch.SizeLo, ch.SizeHi = 0x02, 0x00

	e := New()
	e.DoDMA(b, 0x01)

	if ch.AddrLo != 0x02 || ch.AddrHi != 0x10 {
		t.Fatalf("source address after transfer = %02X%02X, want 0x1002", ch.AddrHi, ch.AddrLo)
	}
	if ch.SizeLo != 0 || ch.SizeHi != 0 {
		t.Fatalf("size registers should read back 0 after a completed transfer")
	}
}

func TestGeneralPurposeDMAZeroSizeMeansMax(t *testing.T) {
	b, _ := newTestBus()
	ch := b.Channel(0)
	ch.Params = 0x08 // fixed address, avoid incrementing through 64KiB of WRAM writes
	ch.DestReg = 0x18
	ch.Bank = 0x00
	ch.AddrLo, ch.AddrHi = 0x00, 0x21 // PPU register space, irrelevant for this check
	ch.SizeLo, ch.SizeHi = 0x00, 0x00

	e := New()
	cycles := e.DoDMA(b, 0x01)
	// 8 cycles setup + 8 cycles/byte * 0x10000 bytes.
	want := uint32(8 + 0x10000*8)
	if cycles != want {
		t.Fatalf("DoDMA cycles = %d, want %d (size 0 means 64 KiB)", cycles, want)
	}
}

func TestInitHDMALatchesAddressAndClearsState(t *testing.T) {
	b, _ := newTestBus()
	ch := b.Channel(2)
	ch.Bank = 0x01
	ch.AddrLo, ch.AddrHi = 0x00, 0x80

	e := New()
	e.InitHDMA(b, 0x04) // channel 2

	if e.hdmaCurAddr[2] != 0x8000 {
		t.Fatalf("hdmaCurAddr[2] = %#04x, want 0x8000", e.hdmaCurAddr[2])
	}
	if e.hdmaDone[2] {
		t.Fatal("InitHDMA should clear the done flag")
	}
}

func TestDoHDMAStopsOnZeroLineCount(t *testing.T) {
	b, rom := newTestBus()
	ch := b.Channel(0)
	ch.Params = 0x00
	ch.DestReg = 0x18
	ch.Bank = 0x00
	ch.AddrLo, ch.AddrHi = 0x00, 0x90
	rom.Bytes[0x9000] = 0x00 // terminator line-count byte

	e := New()
	e.InitHDMA(b, 0x01)
	e.DoHDMA(b, 0x01)

	if !e.hdmaDone[0] {
		t.Fatal("a zero line-count byte should mark the channel done")
	}
}

func TestDoHDMATransfersOneLine(t *testing.T) {
	b, rom := newTestBus()
	ch := b.Channel(0)
	ch.Params = 0x00 // 1 register, WRAM/ROM -> PPU
	ch.DestReg = 0x18
	ch.Bank = 0x00
	ch.AddrLo, ch.AddrHi = 0x00, 0x90

	rom.Bytes[0x9000] = 0x01 // one line, no repeat
	rom.Bytes[0x9001] = 0x77 // the byte that line transfers

	e := New()
	e.InitHDMA(b, 0x01)
	e.DoHDMA(b, 0x01)

	if e.hdmaDone[0] {
		t.Fatal("a single-line transfer should not mark the channel done yet")
	}
	if e.hdmaLineCount[0] != 0 {
		t.Fatalf("hdmaLineCount[0] = %d, want 0 after its one line completes", e.hdmaLineCount[0])
	}
}
