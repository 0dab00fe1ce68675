package audiocore

// mode tags one of the 13 addressing modes the AudioCore's opcode table
// dispatches through. Modeled as a small tagged value plus a decode routine
// per the polymorphic-addressing-mode design note: no heap allocation is
// needed, an operand is a kind tag plus up to two bytes of payload.
type mode uint8

const (
	modeA mode = iota
	modeX
	modeY
	modeImmediate
	modeDirect
	modeIndirectX
	modeIndirectIndexed
	modeIndexedIndirect
	modeAbs
	modeAbsIndexedX
	modeAbsIndexedY
	modeAbsIndexedIndirect
	modeRelative
)

// operandKind distinguishes register operands (no bus access) from
// memory-backed and immediate operands.
type operandKind uint8

const (
	operandRegA operandKind = iota
	operandRegX
	operandRegY
	operandImmediate
	operandMemory
)

// operand is the decoded result of an addressing mode: either a register
// selector, an immediate value, or a resolved 16-bit effective address.
type operand struct {
	kind operandKind
	addr uint16
	imm  uint8
}

func (c *AudioCore) fetchByte() uint8 {
	v := c.Load(c.PC)
	c.PC++
	return v
}

func (c *AudioCore) fetchWord() uint16 {
	lo := uint16(c.fetchByte())
	hi := uint16(c.fetchByte())
	return lo | hi<<8
}

// directPageBase returns 0x0000 or 0x0100 depending on the PSW DirectPage
// flag.
func (c *AudioCore) directPageBase() uint16 {
	if c.PSW&FlagDirectPage != 0 {
		return 0x0100
	}
	return 0x0000
}

func (c *AudioCore) directAddr(d uint8) uint16 {
	return c.directPageBase() | uint16(d)
}

// loadDirectWord reads a little-endian word out of the direct page starting
// at offset d. The high byte's offset wraps within the 256-byte page rather
// than spilling into the next page -- the open question in the design notes
// about direct-page word wrap is resolved this way, matching the behavior
// real SPC700 software relies on for pointer tables built at page boundaries.
func (c *AudioCore) loadDirectWord(d uint8) uint16 {
	lo := uint16(c.Load(c.directAddr(d)))
	hi := uint16(c.Load(c.directAddr(d + 1)))
	return lo | hi<<8
}

// decode consumes the operand bytes (if any) for m, advancing PC, and
// returns the decoded operand. Relative mode is handled separately by
// branch instructions since it produces a branch target, not a value.
func (c *AudioCore) decode(m mode) operand {
	switch m {
	case modeA:
		return operand{kind: operandRegA}
	case modeX:
		return operand{kind: operandRegX}
	case modeY:
		return operand{kind: operandRegY}
	case modeImmediate:
		return operand{kind: operandImmediate, imm: c.fetchByte()}
	case modeDirect:
		d := c.fetchByte()
		return operand{kind: operandMemory, addr: c.directAddr(d)}
	case modeIndirectX:
		return operand{kind: operandMemory, addr: c.directAddr(c.X)}
	case modeIndirectIndexed:
		d := c.fetchByte()
		return operand{kind: operandMemory, addr: c.loadDirectWord(d) + uint16(c.Y)}
	case modeIndexedIndirect:
		d := c.fetchByte()
		return operand{kind: operandMemory, addr: c.loadDirectWord(d + c.X)}
	case modeAbs:
		return operand{kind: operandMemory, addr: c.fetchWord()}
	case modeAbsIndexedX:
		w := c.fetchWord()
		return operand{kind: operandMemory, addr: w + uint16(c.X)}
	case modeAbsIndexedY:
		w := c.fetchWord()
		return operand{kind: operandMemory, addr: w + uint16(c.Y)}
	case modeAbsIndexedIndirect:
		w := c.fetchWord()
		ptr := w + uint16(c.X)
		lo := uint16(c.Load(ptr))
		hi := uint16(c.Load(ptr + 1))
		return operand{kind: operandMemory, addr: lo | hi<<8}
	default:
		panic("audiocore: decode called with non-operand mode")
	}
}

// fetchRelTarget decodes a Rel(i8) operand, computing the branch target
// after the operand byte has already been consumed (PC points past it).
func (c *AudioCore) fetchRelTarget() uint16 {
	offset := int8(c.fetchByte())
	return uint16(int32(c.PC) + int32(offset))
}

func (o operand) get(c *AudioCore) uint8 {
	switch o.kind {
	case operandRegA:
		return c.A
	case operandRegX:
		return c.X
	case operandRegY:
		return c.Y
	case operandImmediate:
		return o.imm
	case operandMemory:
		return c.Load(o.addr)
	}
	panic("audiocore: invalid operand kind")
}

func (o operand) set(c *AudioCore, v uint8) {
	switch o.kind {
	case operandRegA:
		c.A = v
	case operandRegX:
		c.X = v
	case operandRegY:
		c.Y = v
	case operandMemory:
		c.Store(o.addr, v)
	default:
		panic("audiocore: cannot store to an immediate operand")
	}
}
