package audiocore

// Snapshot is the persisted form of AudioCore state for save states: RAM,
// registers, timers, and the inbound mailbox. The DSP's own registers are
// snapshotted separately by its owner.
type Snapshot struct {
	RAM       [65536]byte
	A, X, Y   uint8
	SP        uint8
	PC        uint16
	PSW       uint8
	DSPAddr   uint8
	MailboxIn [4]uint8
	Timers    [3]TimerSnapshot
	IPLImage  [64]byte
	IPLOn     bool
	Control   uint8
	Test      uint8
	Stopped   bool
}

// TimerSnapshot is one Timer's persisted state.
type TimerSnapshot struct {
	Period    uint16
	Enabled   bool
	Divider   uint8
	Accum     uint16
	Increment uint8
	Out       uint8
}

// Snapshot captures the AudioCore's full state for serialization.
func (c *AudioCore) Snapshot() Snapshot {
	s := Snapshot{
		RAM:       c.ram,
		A:         c.A,
		X:         c.X,
		Y:         c.Y,
		SP:        c.SP,
		PC:        c.PC,
		PSW:       c.PSW,
		DSPAddr:   c.dspAddrLatch,
		MailboxIn: c.mailboxIn,
		IPLImage:  c.iplImage,
		IPLOn:     c.iplEnabled,
		Control:   c.controlReg,
		Test:      c.testReg,
		Stopped:   c.stopped,
	}
	for i := range c.timers {
		s.Timers[i] = c.timers[i].snapshot()
	}
	return s
}

// Restore replaces the AudioCore's state with a previously captured
// Snapshot. The DSP collaborator reference is left untouched.
func (c *AudioCore) Restore(s Snapshot) {
	c.ram = s.RAM
	c.A, c.X, c.Y, c.SP = s.A, s.X, s.Y, s.SP
	c.PC = s.PC
	c.PSW = s.PSW
	c.dspAddrLatch = s.DSPAddr
	c.mailboxIn = s.MailboxIn
	c.iplImage = s.IPLImage
	c.iplEnabled = s.IPLOn
	c.controlReg = s.Control
	c.testReg = s.Test
	c.stopped = s.Stopped
	for i := range s.Timers {
		c.timers[i].restore(s.Timers[i])
	}
}
