// Package joypad implements the standard SNES controller pair: the
// serial shift-register read at $4016/$4017 driven by CPU strobe/clock,
// and the latched auto-joypad-read registers at $4218-$421F the Scheduler
// populates once per frame during VBlank.
package joypad

import "log"

// Button is a single controller bit, matching the standard SNES report
// order (B,Y,Select,Start,Up,Down,Left,Right,A,X,L,R then four unused).
type Button uint16

const (
	ButtonB Button = 1 << (15 - iota)
	ButtonY
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonX
	ButtonL
	ButtonR
)

// Pad is one physical controller's button state and serial shift register.
type Pad struct {
	buttons uint16
	shift   uint16
	latched uint16
}

// SetButton updates one button's pressed state ahead of the next latch.
func (p *Pad) SetButton(b Button, pressed bool) {
	if pressed {
		p.buttons |= uint16(b)
	} else {
		p.buttons &^= uint16(b)
	}
}

// Latch snapshots the current button state into the shift register,
// mirroring the strobe-high behavior of real hardware.
func (p *Pad) Latch() {
	p.latched = p.buttons
	p.shift = p.buttons
}

// Shift returns the next bit (MSB first) and rotates in a trailing 1,
// matching the real controller's all-ones tail once 16 bits are drained.
func (p *Pad) Shift() uint8 {
	bit := uint8(p.shift>>15) & 1
	p.shift = (p.shift << 1) | 1
	return bit
}

// Set implements the joystick pair the Bus drives through the Input
// contract.
type Set struct {
	Pad1, Pad2 Pad

	strobe bool

	Debug bool
}

// New returns a controller pair with no buttons pressed.
func New() *Set {
	return &Set{}
}

// Load services $4016/$4017 (serial bit reads) and $4218-$421F (latched
// auto-read snapshot, low/high byte per controller).
func (s *Set) Load(reg uint16) uint8 {
	switch reg {
	case 0x4016:
		return s.Pad1.Shift() | 0x1C
	case 0x4017:
		return s.Pad2.Shift() | 0x1C
	case 0x4218:
		return uint8(s.Pad1.latched)
	case 0x4219:
		return uint8(s.Pad1.latched >> 8)
	case 0x421A:
		return uint8(s.Pad2.latched)
	case 0x421B:
		return uint8(s.Pad2.latched >> 8)
	default:
		return 0
	}
}

// Store handles $4016 bit0, the shared strobe line for both controllers.
func (s *Set) Store(reg uint16, value uint8) {
	if reg != 0x4016 {
		return
	}
	strobe := value&0x01 != 0
	if strobe {
		s.Pad1.Latch()
		s.Pad2.Latch()
	}
	s.strobe = strobe
}

// NewFrame is called by the Scheduler once per frame before VBlank NMI;
// real hardware has no per-frame reset here, but it gives a hook for
// input polling backends to snapshot a fresh button state.
func (s *Set) NewFrame() {
	if s.Debug {
		log.Printf("[JOYPAD] frame: pad1=%04X pad2=%04X", s.Pad1.buttons, s.Pad2.buttons)
	}
}

// PerformAutoRead latches both controllers into the $4218-$421B snapshot
// registers, matching the Scheduler's auto-joypad-read scanline event.
func (s *Set) PerformAutoRead() {
	s.Pad1.latched = s.Pad1.buttons
	s.Pad2.latched = s.Pad2.buttons
}
