package maincpu

// Snapshot is the persisted form of StubCPU state.
type Snapshot struct {
	A, X, Y    uint8
	SP, PC     uint16
	PB, DB     uint8
	NMIPending bool
	IRQPending bool
	IRQMasked  bool
	Waiting    bool
}

// Snapshot captures the CPU's current state.
func (c *StubCPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, X: c.X, Y: c.Y,
		SP: c.SP, PC: c.PC, PB: c.PB, DB: c.DB,
		NMIPending: c.nmiPending, IRQPending: c.irqPending,
		IRQMasked: c.irqMasked, Waiting: c.waiting,
	}
}

// Restore replaces the CPU's state with a previously captured Snapshot.
func (c *StubCPU) Restore(s Snapshot) {
	c.A, c.X, c.Y = s.A, s.X, s.Y
	c.SP, c.PC, c.PB, c.DB = s.SP, s.PC, s.PB, s.DB
	c.nmiPending, c.irqPending = s.NMIPending, s.IRQPending
	c.irqMasked, c.waiting = s.IRQMasked, s.Waiting
}
