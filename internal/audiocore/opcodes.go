package audiocore

// instrInfo is the per-opcode metadata the dispatch loop needs: which
// addressing mode to decode and how many base cycles the instruction costs
// before any taken-branch bonus. exec performs the operation and returns
// the +2 bonus cycle count for taken branches and taken decrement/compare
// branches, 0 otherwise.
type instrInfo struct {
	mode   mode
	cycles uint8
	exec   func(c *AudioCore, m mode) uint8
}

var instructionTable [256]instrInfo

// accModes lists the 8 addressing modes the accumulator-class instructions
// (MOV A,_, OR, AND, EOR, CMP, ADC, SBC) support, paired with the real
// SPC700 opcode-column offset and base cycle cost each one carries. Real
// hardware also defines a ninth "direct page indexed by X" form for this
// family (e.g. OR A,d+X at $14); this core doesn't decode that addressing
// mode, so those seven opcode slots are left unassigned and panic as
// illegal, the same as the TCALL/PCALL/BRK/BBS/BBC vectors the dispatch
// table also doesn't implement (see DESIGN.md).
var accModes = [8]mode{
	modeImmediate, modeDirect, modeIndirectX, modeIndirectIndexed,
	modeIndexedIndirect, modeAbs, modeAbsIndexedX, modeAbsIndexedY,
}

var accOffsets = [8]uint8{0x08, 0x04, 0x06, 0x17, 0x07, 0x05, 0x15, 0x16}
var accCycles = [8]uint8{2, 3, 3, 6, 6, 4, 5, 5}

// init wires instructionTable by real SPC700 opcode byte, not by sequential
// assignment, so the IPL boot image (the authentic SNES IPL dump in
// ipl.go) and any real SPC700 program executes as intended. Opcode values
// and per-instruction base cycle costs are grounded on the published
// 256-entry SPC700 opcode/cycle tables.
func init() {
	reg := func(opcode uint8, m mode, cycles uint8, exec func(c *AudioCore, m mode) uint8) {
		instructionTable[opcode] = instrInfo{mode: m, cycles: cycles, exec: exec}
	}
	regGroup := func(base uint8, exec func(c *AudioCore, m mode) uint8) {
		for i, m := range accModes {
			reg(base+accOffsets[i], m, accCycles[i], exec)
		}
	}

	reg(0x00, modeA, 2, opNOP)

	// MOV A,<mode> -- loads set N/Z. Real opcode column base $E0.
	regGroup(0xE0, opMovLoad(regA))
	// MOV X,#i / MOV X,d
	reg(0xCD, modeImmediate, 2, opMovLoad(regX))
	reg(0xF8, modeDirect, 3, opMovLoad(regX))
	// MOV Y,#i / MOV Y,d
	reg(0x8D, modeImmediate, 2, opMovLoad(regY))
	reg(0xEB, modeDirect, 3, opMovLoad(regY))

	// MOV <mode>,A -- stores never touch flags.
	reg(0xC4, modeDirect, 4, opMovStore(regA))
	reg(0xC6, modeIndirectX, 4, opMovStore(regA))
	reg(0xD7, modeIndirectIndexed, 7, opMovStore(regA))
	reg(0xC7, modeIndexedIndirect, 7, opMovStore(regA))
	reg(0xC5, modeAbs, 5, opMovStore(regA))
	reg(0xD5, modeAbsIndexedX, 6, opMovStore(regA))
	reg(0xD6, modeAbsIndexedY, 6, opMovStore(regA))
	reg(0xD8, modeDirect, 4, opMovStore(regX))
	reg(0xCB, modeDirect, 4, opMovStore(regY))

	reg(0x5D, modeA, 2, opTransfer(regA, regX))
	reg(0x7D, modeA, 2, opTransfer(regX, regA))
	reg(0xFD, modeA, 2, opTransfer(regA, regY))
	reg(0xDD, modeA, 2, opTransfer(regY, regA))
	reg(0x9D, modeA, 2, opTransferSP(true))
	reg(0xBD, modeA, 2, opTransferSP(false))

	reg(0xFA, modeA, 5, opMovDirectDirect)
	reg(0x8F, modeA, 5, opMovDirectImm)
	reg(0xBA, modeA, 5, opMovwLoad)
	reg(0xDA, modeA, 5, opMovwStore)

	regGroup(0x00, opAccOp(opOR))
	regGroup(0x20, opAccOp(opAND))
	regGroup(0x40, opAccOp(opEOR))
	regGroup(0x60, opCmpWith(regA))
	regGroup(0x80, opAdc)
	regGroup(0xA0, opSbc)
	reg(0x78, modeA, 5, opCmpDirectImm)

	reg(0xC8, modeImmediate, 2, opCmpWith(regX))
	reg(0x3E, modeDirect, 3, opCmpWith(regX))
	reg(0x1E, modeAbs, 4, opCmpWith(regX))
	reg(0xAD, modeImmediate, 2, opCmpWith(regY))
	reg(0x7E, modeDirect, 3, opCmpWith(regY))
	reg(0x5E, modeAbs, 4, opCmpWith(regY))

	reg(0x5A, modeA, 4, opCmpw)
	reg(0x7A, modeA, 5, opAddw)
	reg(0x9A, modeA, 5, opSubw)
	reg(0x3A, modeDirect, 6, opIncw)
	reg(0x1A, modeDirect, 6, opDecw)

	reg(0x1C, modeA, 2, opShift(shiftASL))
	reg(0x0B, modeDirect, 4, opShift(shiftASL))
	reg(0x0C, modeAbs, 5, opShift(shiftASL))
	reg(0x5C, modeA, 2, opShift(shiftLSR))
	reg(0x4B, modeDirect, 4, opShift(shiftLSR))
	reg(0x4C, modeAbs, 5, opShift(shiftLSR))
	reg(0x3C, modeA, 2, opShift(shiftROL))
	reg(0x2B, modeDirect, 4, opShift(shiftROL))
	reg(0x2C, modeAbs, 5, opShift(shiftROL))
	reg(0x7C, modeA, 2, opShift(shiftROR))
	reg(0x6B, modeDirect, 4, opShift(shiftROR))
	reg(0x6C, modeAbs, 5, opShift(shiftROR))

	reg(0xBC, modeA, 2, opIncDec(regA, +1))
	reg(0x3D, modeA, 2, opIncDec(regX, +1))
	reg(0xFC, modeA, 2, opIncDec(regY, +1))
	reg(0xAB, modeDirect, 4, opIncDec(regMem, +1))
	reg(0xAC, modeAbs, 5, opIncDec(regMem, +1))
	reg(0x9C, modeA, 2, opIncDec(regA, -1))
	reg(0x1D, modeA, 2, opIncDec(regX, -1))
	reg(0xDC, modeA, 2, opIncDec(regY, -1))
	reg(0x8B, modeDirect, 4, opIncDec(regMem, -1))
	reg(0x8C, modeAbs, 5, opIncDec(regMem, -1))

	reg(0x2F, modeRelative, 4, opBranch(func(c *AudioCore) bool { return true }))
	reg(0xF0, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagZero != 0 }))
	reg(0xD0, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagZero == 0 }))
	reg(0xB0, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagCarry != 0 }))
	reg(0x90, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagCarry == 0 }))
	reg(0x70, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagOverflow != 0 }))
	reg(0x50, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagOverflow == 0 }))
	reg(0x30, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagNegative != 0 }))
	reg(0x10, modeRelative, 2, opBranch(func(c *AudioCore) bool { return c.PSW&FlagNegative == 0 }))

	reg(0x2E, modeDirect, 5, opCbne)
	reg(0x6E, modeDirect, 6, opDbnzMem)
	reg(0xFE, modeA, 4, opDbnzY)

	reg(0x5F, modeAbs, 3, opJmp)
	reg(0x1F, modeAbsIndexedIndirect, 6, opJmp)
	reg(0x3F, modeAbs, 8, opCall)
	reg(0x6F, modeA, 5, opRet)
	reg(0x7F, modeA, 6, opReti)

	reg(0x2D, modeA, 4, opPush(regA))
	reg(0x4D, modeA, 4, opPush(regX))
	reg(0x6D, modeA, 4, opPush(regY))
	reg(0x0D, modeA, 4, opPushPSW)
	reg(0xAE, modeA, 4, opPop(regA))
	reg(0xCE, modeA, 4, opPop(regX))
	reg(0xEE, modeA, 4, opPop(regY))
	reg(0x8E, modeA, 4, opPopPSW)

	reg(0x60, modeA, 2, opSetFlag(FlagCarry, false))
	reg(0x80, modeA, 2, opSetFlag(FlagCarry, true))
	reg(0xED, modeA, 2, opNotCarry)
	reg(0xE0, modeA, 2, opSetFlag(FlagOverflow, false))
	reg(0x20, modeA, 2, opSetFlag(FlagDirectPage, false))
	reg(0x40, modeA, 2, opSetFlag(FlagDirectPage, true))
	reg(0xA0, modeA, 3, opSetControlBit(0x04, true))
	reg(0xC0, modeA, 3, opSetControlBit(0x04, false))

	reg(0xCF, modeA, 9, opMul)
	reg(0x9E, modeA, 12, opDiv)
	reg(0x9F, modeA, 5, opXcn)
	reg(0xDF, modeA, 3, opDaa)
	reg(0xBE, modeA, 3, opDas)

	reg(0x4A, modeAbs, 4, opAnd1(false))
	reg(0x6A, modeAbs, 4, opAnd1(true))
	reg(0x0A, modeAbs, 5, opOr1(false))
	reg(0x2A, modeAbs, 5, opOr1(true))
	reg(0x8A, modeAbs, 4, opEor1)
	reg(0xEA, modeAbs, 4, opNot1)
	reg(0xAA, modeAbs, 4, opMov1ToCarry)
	reg(0xCA, modeAbs, 6, opMov1FromCarry)

	for bit := uint8(0); bit < 8; bit++ {
		reg(0x02+bit*0x20, modeDirect, 4, opSetBit(bit, true))
		reg(0x12+bit*0x20, modeDirect, 4, opSetBit(bit, false))
	}
	reg(0x0E, modeAbs, 6, opTset1)
	reg(0x4E, modeAbs, 6, opTclr1)

	reg(0xEF, modeA, 2, opSleepStop)
	reg(0xFF, modeA, 2, opSleepStop)
}

// ---- register selectors ----

type regSel int

const (
	regA regSel = iota
	regX
	regY
	regMem
)

func (r regSel) get(c *AudioCore, o operand) uint8 {
	if r == regMem {
		return o.get(c)
	}
	switch r {
	case regA:
		return c.A
	case regX:
		return c.X
	default:
		return c.Y
	}
}

func (r regSel) set(c *AudioCore, o operand, v uint8) {
	if r == regMem {
		o.set(c, v)
		return
	}
	switch r {
	case regA:
		c.A = v
	case regX:
		c.X = v
	case regY:
		c.Y = v
	}
}

// ---- flag helpers ----

func (c *AudioCore) setNZ(v uint8) {
	c.PSW &^= FlagNegative | FlagZero
	if v&0x80 != 0 {
		c.PSW |= FlagNegative
	}
	if v == 0 {
		c.PSW |= FlagZero
	}
}

func (c *AudioCore) setFlag(mask uint8, v bool) {
	if v {
		c.PSW |= mask
	} else {
		c.PSW &^= mask
	}
}

func (c *AudioCore) carry() uint8 {
	if c.PSW&FlagCarry != 0 {
		return 1
	}
	return 0
}

// adc computes a+b+carry per the documented 9-bit-sum / half-carry /
// signed-overflow contract and updates PSW. It returns the 8-bit result.
func (c *AudioCore) adc(a, b uint8) uint8 {
	carryIn := c.carry()
	sum := uint16(a) + uint16(b) + uint16(carryIn)
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagHalfCarry, (uint16(a&0x0F)+uint16(b&0x0F)+uint16(carryIn))&0xF0 != 0)
	overflow := (a^b)&0x80 == 0 && (a^result)&0x80 == 0x80
	c.setFlag(FlagOverflow, overflow)
	c.setNZ(result)
	return result
}

// sbc is implemented as the conventional ADC-with-complemented-operand
// trick so that carry doubles as "not borrow", matching how this whole
// instruction family defines subtraction in terms of its adder.
func (c *AudioCore) sbc(a, b uint8) uint8 {
	return c.adc(a, ^b)
}

func (c *AudioCore) cmp(a, b uint8) {
	result := a - b
	c.setNZ(result)
	c.setFlag(FlagCarry, result&0x80 != 0)
}

// ---- stack ----

func (c *AudioCore) push(v uint8) {
	c.Store(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *AudioCore) pop() uint8 {
	c.SP++
	return c.Load(0x0100 | uint16(c.SP))
}

func (c *AudioCore) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *AudioCore) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}

// ---- opcode implementations ----

func opNOP(c *AudioCore, m mode) uint8 { return 0 }

func opMovLoad(r regSel) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		o := c.decode(m)
		v := o.get(c)
		r.set(c, operand{}, v)
		c.setNZ(v)
		return 0
	}
}

func opMovStore(r regSel) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		o := c.decode(m)
		o.set(c, r.get(c, operand{}))
		return 0
	}
}

func opTransfer(from, to regSel) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		v := from.get(c, operand{})
		to.set(c, operand{}, v)
		c.setNZ(v)
		return 0
	}
}

func opTransferSP(toX bool) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		if toX {
			c.X = c.SP
			c.setNZ(c.X)
		} else {
			c.SP = c.X
		}
		return 0
	}
}

// opMovDirectDirect implements MOV dst,src where both operands are direct
// page bytes following the opcode (dst first, matching real SPC700
// encoding order).
func opMovDirectDirect(c *AudioCore, m mode) uint8 {
	dst := c.fetchByte()
	src := c.fetchByte()
	v := c.Load(c.directAddr(src))
	c.Store(c.directAddr(dst), v)
	return 0
}

// opMovDirectImm implements MOV d,#i, which encodes the immediate byte
// before the direct page address (the opposite order from MOV dst,src).
func opMovDirectImm(c *AudioCore, m mode) uint8 {
	imm := c.fetchByte()
	d := c.fetchByte()
	c.Store(c.directAddr(d), imm)
	return 0
}

// opCmpDirectImm implements CMP dp,#i -- compares a direct page byte
// against an immediate without touching memory, operand order immediate
// then direct address as with opMovDirectImm.
func opCmpDirectImm(c *AudioCore, m mode) uint8 {
	imm := c.fetchByte()
	d := c.fetchByte()
	c.cmp(c.Load(c.directAddr(d)), imm)
	return 0
}

func opMovwLoad(c *AudioCore, m mode) uint8 {
	d := c.fetchByte()
	v := c.loadDirectWord(d)
	c.A = uint8(v)
	c.Y = uint8(v >> 8)
	c.setNZ16(v)
	return 0
}

func opMovwStore(c *AudioCore, m mode) uint8 {
	d := c.fetchByte()
	v := uint16(c.Y)<<8 | uint16(c.A)
	c.Store(c.directAddr(d), uint8(v))
	c.Store(c.directAddr(d+1), uint8(v>>8))
	return 0
}

func (c *AudioCore) setNZ16(v uint16) {
	c.PSW &^= FlagNegative | FlagZero
	if v&0x8000 != 0 {
		c.PSW |= FlagNegative
	}
	if v == 0 {
		c.PSW |= FlagZero
	}
}

func opAccOp(f func(a, b uint8) uint8) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		o := c.decode(m)
		c.A = f(c.A, o.get(c))
		return 0
	}
}

func opOR(a, b uint8) uint8  { return a | b }
func opAND(a, b uint8) uint8 { return a & b }
func opEOR(a, b uint8) uint8 { return a ^ b }

func opAdc(c *AudioCore, m mode) uint8 {
	o := c.decode(m)
	c.A = c.adc(c.A, o.get(c))
	return 0
}

func opSbc(c *AudioCore, m mode) uint8 {
	o := c.decode(m)
	c.A = c.sbc(c.A, o.get(c))
	return 0
}

func opCmpWith(r regSel) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		o := c.decode(m)
		c.cmp(r.get(c, operand{}), o.get(c))
		return 0
	}
}

func opCmpw(c *AudioCore, m mode) uint8 {
	d := c.fetchByte()
	ya := uint16(c.Y)<<8 | uint16(c.A)
	v := c.loadDirectWord(d)
	result := ya - v
	c.setNZ16(result)
	c.setFlag(FlagCarry, ya >= v)
	return 0
}

func opAddw(c *AudioCore, m mode) uint8 {
	d := c.fetchByte()
	ya := uint32(c.Y)<<8 | uint32(c.A)
	v := uint32(c.loadDirectWord(d))
	sum := ya + v
	c.setFlag(FlagCarry, sum > 0xFFFF)
	c.setFlag(FlagOverflow, (ya^v)&0x8000 == 0 && (ya^sum)&0x8000 == 0x8000)
	c.A = uint8(sum)
	c.Y = uint8(sum >> 8)
	c.setNZ16(uint16(sum))
	return 0
}

func opSubw(c *AudioCore, m mode) uint8 {
	d := c.fetchByte()
	ya := int32(uint32(c.Y)<<8 | uint32(c.A))
	v := int32(c.loadDirectWord(d))
	diff := ya - v
	c.setFlag(FlagCarry, diff >= 0)
	c.setFlag(FlagOverflow, (ya^v)&0x8000 != 0 && (ya^diff)&0x8000 != 0)
	c.A = uint8(diff)
	c.Y = uint8(diff >> 8)
	c.setNZ16(uint16(diff))
	return 0
}

func opIncw(c *AudioCore, m mode) uint8 { return incDecWord(c, +1) }
func opDecw(c *AudioCore, m mode) uint8 { return incDecWord(c, -1) }

func incDecWord(c *AudioCore, delta int16) uint8 {
	d := c.fetchByte()
	v := c.loadDirectWord(d) + uint16(delta)
	c.Store(c.directAddr(d), uint8(v))
	c.Store(c.directAddr(d+1), uint8(v>>8))
	c.setNZ16(v)
	return 0
}

type shiftKind int

const (
	shiftASL shiftKind = iota
	shiftLSR
	shiftROL
	shiftROR
)

func opShift(kind shiftKind) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		o := c.decode(m)
		v := o.get(c)
		var result uint8
		switch kind {
		case shiftASL:
			c.setFlag(FlagCarry, v&0x80 != 0)
			result = v << 1
		case shiftLSR:
			c.setFlag(FlagCarry, v&0x01 != 0)
			result = v >> 1
		case shiftROL:
			oldCarry := c.carry()
			c.setFlag(FlagCarry, v&0x80 != 0)
			result = v<<1 | oldCarry
		case shiftROR:
			oldCarry := c.carry()
			c.setFlag(FlagCarry, v&0x01 != 0)
			result = v>>1 | oldCarry<<7
		}
		c.setNZ(result)
		// ROR previously only updated flags without writing the rotated
		// value back to its operand; that was a bug. All four shift/rotate
		// forms store the result back here.
		o.set(c, result)
		return 0
	}
}

func opIncDec(r regSel, delta int) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		var o operand
		if r == regMem {
			o = c.decode(m)
		}
		v := r.get(c, o) + uint8(delta)
		r.set(c, o, v)
		c.setNZ(v)
		return 0
	}
}

func opBranch(cond func(c *AudioCore) bool) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		target := c.fetchRelTarget()
		if cond(c) {
			c.PC = target
			return 2
		}
		return 0
	}
}

func opCbne(c *AudioCore, m mode) uint8 {
	d := c.fetchByte()
	v := c.Load(c.directAddr(d))
	target := c.fetchRelTarget()
	if c.A != v {
		c.PC = target
		return 2
	}
	return 0
}

func opDbnzMem(c *AudioCore, m mode) uint8 {
	d := c.fetchByte()
	v := c.Load(c.directAddr(d)) - 1
	c.Store(c.directAddr(d), v)
	target := c.fetchRelTarget()
	if v != 0 {
		c.PC = target
		return 2
	}
	return 0
}

func opDbnzY(c *AudioCore, m mode) uint8 {
	c.Y--
	target := c.fetchRelTarget()
	if c.Y != 0 {
		c.PC = target
		return 2
	}
	return 0
}

func opJmp(c *AudioCore, m mode) uint8 {
	o := c.decode(m)
	c.PC = o.addr
	return 0
}

func opCall(c *AudioCore, m mode) uint8 {
	target := c.fetchWord()
	c.pushWord(c.PC)
	c.PC = target
	return 0
}

func opRet(c *AudioCore, m mode) uint8 {
	c.PC = c.popWord()
	return 0
}

func opReti(c *AudioCore, m mode) uint8 {
	c.PSW = c.pop()
	c.PC = c.popWord()
	return 0
}

func opPush(r regSel) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		c.push(r.get(c, operand{}))
		return 0
	}
}

func opPop(r regSel) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		r.set(c, operand{}, c.pop())
		return 0
	}
}

func opPushPSW(c *AudioCore, m mode) uint8 {
	c.push(c.PSW)
	return 0
}

func opPopPSW(c *AudioCore, m mode) uint8 {
	c.PSW = c.pop()
	return 0
}

func opSetFlag(mask uint8, v bool) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		c.setFlag(mask, v)
		return 0
	}
}

func opNotCarry(c *AudioCore, m mode) uint8 {
	c.setFlag(FlagCarry, c.PSW&FlagCarry == 0)
	return 0
}

// opSetControlBit toggles a bit in PSW storage unrelated to arithmetic
// (EI/DI conventionally flip an interrupt-enable bit that this coprocessor
// never consumes itself, per the design note on unused PSW bits).
func opSetControlBit(mask uint8, v bool) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		c.setFlag(mask, v)
		return 0
	}
}

func opMul(c *AudioCore, m mode) uint8 {
	product := uint16(c.Y) * uint16(c.A)
	c.A = uint8(product)
	c.Y = uint8(product >> 8)
	c.setNZ(c.Y)
	return 0
}

func opDiv(c *AudioCore, m mode) uint8 {
	ya := uint16(c.Y)<<8 | uint16(c.A)
	if c.X == 0 {
		c.A = 0xFF
		c.Y = uint8(ya)
		c.setFlag(FlagOverflow, true)
		return 0
	}
	quotient := ya / uint16(c.X)
	remainder := ya % uint16(c.X)
	c.setFlag(FlagOverflow, quotient > 0xFF)
	c.A = uint8(quotient)
	c.Y = uint8(remainder)
	c.setNZ(c.A)
	return 0
}

func opXcn(c *AudioCore, m mode) uint8 {
	c.A = c.A<<4 | c.A>>4
	c.setNZ(c.A)
	return 0
}

// opDaa/opDas implement the conventional BCD adjustment used to clean up
// the result of an 8-bit BCD addition/subtraction performed with ADC/SBC.
func opDaa(c *AudioCore, m mode) uint8 {
	v := uint16(c.A)
	if c.PSW&FlagCarry != 0 || v > 0x99 {
		v += 0x60
		c.setFlag(FlagCarry, true)
	}
	if c.PSW&FlagHalfCarry != 0 || v&0x0F > 0x09 {
		v += 0x06
	}
	c.A = uint8(v)
	c.setNZ(c.A)
	return 0
}

func opDas(c *AudioCore, m mode) uint8 {
	v := int16(c.A)
	if c.PSW&FlagCarry == 0 || v > 0x99 {
		v -= 0x60
		c.setFlag(FlagCarry, false)
	}
	if c.PSW&FlagHalfCarry == 0 || v&0x0F > 0x09 {
		v -= 0x06
	}
	c.A = uint8(v)
	c.setNZ(c.A)
	return 0
}

// ---- 1-bit operations ----
//
// These address a single bit inside a 16-bit operand: the low 13 bits are
// an absolute address, the top 3 bits select which bit of that byte.

func decodeBitAddr(c *AudioCore) (uint16, uint8) {
	w := c.fetchWord()
	return w & 0x1FFF, uint8(w >> 13)
}

func opAnd1(negate bool) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		addr, bit := decodeBitAddr(c)
		v := c.Load(addr)&(1<<bit) != 0
		if negate {
			v = !v
		}
		c.setFlag(FlagCarry, c.PSW&FlagCarry != 0 && v)
		return 0
	}
}

func opOr1(negate bool) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		addr, bit := decodeBitAddr(c)
		v := c.Load(addr)&(1<<bit) != 0
		if negate {
			v = !v
		}
		c.setFlag(FlagCarry, c.PSW&FlagCarry != 0 || v)
		return 0
	}
}

func opEor1(c *AudioCore, m mode) uint8 {
	addr, bit := decodeBitAddr(c)
	v := c.Load(addr)&(1<<bit) != 0
	c.setFlag(FlagCarry, (c.PSW&FlagCarry != 0) != v)
	return 0
}

func opNot1(c *AudioCore, m mode) uint8 {
	addr, bit := decodeBitAddr(c)
	c.Store(addr, c.Load(addr)^(1<<bit))
	return 0
}

func opMov1ToCarry(c *AudioCore, m mode) uint8 {
	addr, bit := decodeBitAddr(c)
	c.setFlag(FlagCarry, c.Load(addr)&(1<<bit) != 0)
	return 0
}

func opMov1FromCarry(c *AudioCore, m mode) uint8 {
	addr, bit := decodeBitAddr(c)
	v := c.Load(addr)
	if c.PSW&FlagCarry != 0 {
		v |= 1 << bit
	} else {
		v &^= 1 << bit
	}
	c.Store(addr, v)
	return 0
}

func opSetBit(bit uint8, set bool) func(c *AudioCore, m mode) uint8 {
	return func(c *AudioCore, m mode) uint8 {
		d := c.fetchByte()
		addr := c.directAddr(d)
		v := c.Load(addr)
		if set {
			v |= 1 << bit
		} else {
			v &^= 1 << bit
		}
		c.Store(addr, v)
		return 0
	}
}

func opTset1(c *AudioCore, m mode) uint8 {
	addr := c.fetchWord()
	v := c.Load(addr)
	c.setNZ(c.A - v)
	c.Store(addr, v|c.A)
	return 0
}

func opTclr1(c *AudioCore, m mode) uint8 {
	addr := c.fetchWord()
	v := c.Load(addr)
	c.setNZ(c.A - v)
	c.Store(addr, v&^c.A)
	return 0
}

func opSleepStop(c *AudioCore, m mode) uint8 {
	c.stopped = true
	return 0
}
