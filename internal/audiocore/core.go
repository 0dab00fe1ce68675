// Package audiocore implements the SNES audio coprocessor: an 8-bit CPU
// with its own 64 KiB RAM, three programmable timers, a DSP address/data
// window, and a four-byte mailbox shared with the main CPU.
package audiocore

import (
	"fmt"
	"log"
)

// PSW flag bitmasks. The remaining bits are readable/writable storage the
// instruction set never touches arithmetically.
const (
	FlagNegative   = 0x80
	FlagOverflow   = 0x40
	FlagDirectPage = 0x20
	FlagHalfCarry  = 0x08
	FlagZero       = 0x02
	FlagCarry      = 0x01
)

// DSP is the contract AudioCore needs from the digital signal processor: a
// flat array of addressable registers. Mixing and playback live entirely on
// the DSP side of this boundary (see internal/dsp and internal/video).
type DSP interface {
	Load(reg uint8) uint8
	Store(reg uint8, value uint8)
}

// AudioCore is the SNES's audio coprocessor.
type AudioCore struct {
	ram [65536]byte

	A, X, Y, SP uint8
	PC          uint16
	PSW         uint8

	dspAddrLatch uint8
	dsp          DSP

	mailboxIn [4]uint8

	timers [3]Timer

	iplImage   [64]byte
	iplEnabled bool
	controlReg uint8
	testReg    uint8
	stopped    bool

	// Debug enables the fatal paths for conditions §7 marks as warnings
	// when Debug is off (open-bus-style reads of write-only registers,
	// writes to read-only registers).
	Debug bool
	warned map[string]bool
}

// New installs ipl into the top 64 bytes of the address space, latches the
// reset vector into PC, and zeroes every register.
func New(ipl [64]byte, dsp DSP) *AudioCore {
	c := &AudioCore{
		dsp:      dsp,
		iplImage: ipl,
	}
	c.iplEnabled = true
	c.timers[0] = NewTimer(128)
	c.timers[1] = NewTimer(128)
	c.timers[2] = NewTimer(16)
	lo := uint16(c.Load(0xFFFE))
	hi := uint16(c.Load(0xFFFF))
	c.PC = lo | hi<<8
	return c
}

// WritePort stores a byte the main CPU has sent to the AudioCore. The
// AudioCore observes it on its next read of $F4+port.
func (c *AudioCore) WritePort(port uint8, value uint8) {
	c.mailboxIn[port&3] = value
}

// ReadPort returns the outbound mailbox byte the AudioCore last wrote to
// $F4+port, as seen from the main CPU's side of the bus.
func (c *AudioCore) ReadPort(port uint8) uint8 {
	return c.ram[0xF4+uint16(port&3)]
}

// Step fetches, decodes, and executes one instruction, ticks every timer by
// the cycles it consumed, and returns that cycle count.
func (c *AudioCore) Step() uint8 {
	if c.stopped {
		return 2
	}
	opcode := c.fetchByte()
	info := &instructionTable[opcode]
	if info.exec == nil {
		panic(fatalf("illegal AudioCore opcode $%02X at $%04X", opcode, c.PC-1))
	}
	extra := info.exec(c, info.mode)
	total := info.cycles + extra
	for i := range c.timers {
		c.timers[i].Tick(total)
	}
	return total
}

// Load reads one byte from the AudioCore's view of its address space,
// applying the memory-mapped I/O window described in the memory map.
func (c *AudioCore) Load(addr uint16) uint8 {
	switch {
	case addr == 0x00F0:
		c.warnUndefinedRead("$F0 (test register)")
		return 0
	case addr == 0x00F1:
		c.warnUndefinedRead("$F1 (control register)")
		return 0
	case addr == 0x00F2:
		return c.dspAddrLatch
	case addr == 0x00F3:
		if c.dsp == nil {
			return 0
		}
		return c.dsp.Load(c.dspAddrLatch)
	case addr >= 0x00F4 && addr <= 0x00F7:
		return c.mailboxIn[addr-0x00F4]
	case addr >= 0x00FA && addr <= 0x00FC:
		c.warnUndefinedRead("timer divider register")
		return 0
	case addr == 0x00FD:
		return c.timers[0].ReadOut()
	case addr == 0x00FE:
		return c.timers[1].ReadOut()
	case addr == 0x00FF:
		return c.timers[2].ReadOut()
	case c.iplEnabled && addr >= 0xFFC0:
		return c.iplImage[addr-0xFFC0]
	default:
		return c.ram[addr]
	}
}

// Store writes one byte through the same memory-mapped I/O window.
func (c *AudioCore) Store(addr uint16, value uint8) {
	switch {
	case addr == 0x00F0:
		if value != 0x0A {
			panic(fatalf("illegal value $%02X written to AudioCore test register $F0 (only $0A is legal)", value))
		}
		c.testReg = value
	case addr == 0x00F1:
		c.storeControl(value)
	case addr == 0x00F2:
		c.dspAddrLatch = value
	case addr == 0x00F3:
		if c.dsp != nil {
			c.dsp.Store(c.dspAddrLatch, value)
		}
	case addr >= 0x00F4 && addr <= 0x00F7:
		c.ram[addr] = value
	case addr == 0x00FA:
		c.timers[0].SetDivider(value)
	case addr == 0x00FB:
		c.timers[1].SetDivider(value)
	case addr == 0x00FC:
		c.timers[2].SetDivider(value)
	case addr >= 0x00FD && addr <= 0x00FF:
		c.warnUndefinedWrite("timer output register")
	default:
		c.ram[addr] = value
	}
}

func (c *AudioCore) storeControl(value uint8) {
	c.controlReg = value
	c.timers[0].SetEnabled(value&0x01 != 0)
	c.timers[1].SetEnabled(value&0x02 != 0)
	c.timers[2].SetEnabled(value&0x04 != 0)
	if value&0x10 != 0 {
		c.mailboxIn[0] = 0
		c.mailboxIn[1] = 0
	}
	if value&0x20 != 0 {
		c.mailboxIn[2] = 0
		c.mailboxIn[3] = 0
	}
	c.iplEnabled = value&0x80 != 0
}

func (c *AudioCore) warnUndefinedRead(what string) {
	if c.Debug {
		panic(fatalf("read from write-only AudioCore register %s", what))
	}
	c.warnOnce("read:"+what, "read from write-only register %s returned 0", what)
}

func (c *AudioCore) warnUndefinedWrite(what string) {
	if c.Debug {
		panic(fatalf("write to read-only AudioCore register %s", what))
	}
	c.warnOnce("write:"+what, "write to read-only register %s ignored", what)
}

func (c *AudioCore) warnOnce(key, format string, args ...any) {
	if c.warned == nil {
		c.warned = make(map[string]bool)
	}
	if c.warned[key] {
		return
	}
	c.warned[key] = true
	log.Printf("[AUDIOCORE] "+format, args...)
}

func fatalf(format string, args ...any) string {
	return "audiocore: " + fmt.Sprintf(format, args...)
}
