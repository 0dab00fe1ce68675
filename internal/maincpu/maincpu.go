// Package maincpu provides a minimal stand-in for the SNES main CPU, a
// different processor family the core treats as a black box: it only
// needs to expose step/trigger/trace per the Scheduler's contract and to
// genuinely walk memory through the Bus so cycle accounting and interrupt
// dispatch have something real driving them. A cycle-accurate 65816 core
// is outside this package's job.
package maincpu

import (
	"fmt"

	"snescore/internal/bus"
)

// Interrupt vectors in the native (non-emulation) vector table.
const (
	vectorNMI = 0xFFEA
	vectorIRQ = 0xFFEE
	vectorRES = 0xFFFC
)

// StubCPU implements the scheduler.CPU contract with a tiny instruction
// set (NOP, load/store accumulator, branch-always, jump, wait-for-
// interrupt) sufficient to exercise Bus decode paths and the interrupt
// contract without reproducing 65816 semantics.
type StubCPU struct {
	A, X, Y uint8
	SP      uint16
	PC      uint16
	PB, DB  uint8

	nmiPending bool
	irqPending bool
	irqMasked  bool
	waiting    bool

	trace bool
}

// New creates a StubCPU with its program counter latched from the reset
// vector, matching a real 65816's power-on sequence.
func New(b *bus.Bus) *StubCPU {
	c := &StubCPU{SP: 0x01FF, irqMasked: true}
	lo := b.Load(0x00, vectorRES)
	hi := b.Load(0x00, vectorRES+1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	return c
}

// Step fetches and executes one instruction, returning its cycle cost in
// CPU cycles (the Scheduler multiplies this by 6 to get master cycles).
func (c *StubCPU) Step(b *bus.Bus) uint8 {
	if c.waiting {
		if c.nmiPending || (c.irqPending && !c.irqMasked) {
			c.waiting = false
		} else {
			return 2
		}
	}

	opcode := b.Load(c.PB, c.PC)
	pc := c.PC
	c.PC++

	var cycles uint8 = 2
	switch opcode {
	case 0xEA: // NOP
	case 0xA9: // LDA #imm
		c.A = b.Load(c.PB, c.PC)
		c.PC++
		cycles = 2
	case 0x8D: // STA abs
		lo := b.Load(c.PB, c.PC)
		hi := b.Load(c.PB, c.PC+1)
		c.PC += 2
		b.Store(c.DB, uint16(hi)<<8|uint16(lo), c.A)
		cycles = 4
	case 0xAD: // LDA abs
		lo := b.Load(c.PB, c.PC)
		hi := b.Load(c.PB, c.PC+1)
		c.PC += 2
		c.A = b.Load(c.DB, uint16(hi)<<8|uint16(lo))
		cycles = 4
	case 0x4C: // JMP abs
		lo := b.Load(c.PB, c.PC)
		hi := b.Load(c.PB, c.PC+1)
		c.PC = uint16(hi)<<8 | uint16(lo)
		cycles = 3
	case 0x80: // BRA rel
		off := int8(b.Load(c.PB, c.PC))
		c.PC++
		c.PC = uint16(int32(c.PC) + int32(off))
		cycles = 3
	case 0x78: // SEI
		c.irqMasked = true
	case 0x58: // CLI
		c.irqMasked = false
	case 0xCB: // WAI
		c.waiting = true
		cycles = 3
	default:
		panic(fmt.Sprintf("maincpu: illegal opcode $%02X at %02X:%04X", opcode, c.PB, pc))
	}

	if c.trace {
		fmt.Printf("[MAINCPU] %02X:%04X op=%02X A=%02X cy=%d\n", c.PB, pc, opcode, c.A, cycles)
	}

	if c.nmiPending {
		c.nmiPending = false
		c.interrupt(b, vectorNMI)
		cycles += 7
	} else if c.irqPending && !c.irqMasked {
		c.irqPending = false
		c.interrupt(b, vectorIRQ)
		cycles += 7
	}

	return cycles
}

func (c *StubCPU) interrupt(b *bus.Bus, vector uint16) {
	c.push16(b, c.PC)
	c.push(b, 0)
	c.irqMasked = true
	lo := b.Load(0x00, vector)
	hi := b.Load(0x00, vector+1)
	c.PB = 0
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *StubCPU) push(b *bus.Bus, v uint8) {
	b.Store(0x00, c.SP, v)
	c.SP--
}

func (c *StubCPU) push16(b *bus.Bus, v uint16) {
	c.push(b, uint8(v>>8))
	c.push(b, uint8(v))
}

// TriggerNMI latches a pending non-maskable interrupt, serviced by the next
// Step call after the instruction it executes.
func (c *StubCPU) TriggerNMI() { c.nmiPending = true }

// TriggerIRQ latches a pending maskable interrupt.
func (c *StubCPU) TriggerIRQ() { c.irqPending = true }

// SetTrace toggles per-instruction trace logging.
func (c *StubCPU) SetTrace(enabled bool) { c.trace = enabled }

// Trace reports whether trace logging is enabled.
func (c *StubCPU) Trace() bool { return c.trace }
