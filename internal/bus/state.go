package bus

// Snapshot is the persisted form of Bus state for save states: work RAM
// and every system register enumerated in the data model. Collaborator
// references (PPU, Audio, DMA, ROM, Input) are snapshotted separately by
// their owners.
type Snapshot struct {
	WRAM     [0x20000]byte
	WRAMAddr uint32

	NMITIMEN uint8

	Wrmpya, Wrmpyb uint8
	Wrdiv          uint16
	Rddiv, Rdmpy   uint16

	Htime, Vtime uint16

	NMIFlag, IRQFlag bool
	Memsel           bool

	DMAChannels [8]DMAChannel
	HDMAEnable  uint8
	AutoJoyBusy bool
}

// Snapshot captures the Bus's own state, excluding its collaborators.
func (b *Bus) Snapshot() Snapshot {
	return Snapshot{
		WRAM:        b.wram,
		WRAMAddr:    b.wramAddr,
		NMITIMEN:    b.NMITIMEN,
		Wrmpya:      b.wrmpya,
		Wrmpyb:      b.wrmpyb,
		Wrdiv:       b.wrdiv,
		Rddiv:       b.rddiv,
		Rdmpy:       b.rdmpy,
		Htime:       b.htime,
		Vtime:       b.vtime,
		NMIFlag:     b.nmiFlag,
		IRQFlag:     b.irqFlag,
		Memsel:      b.memsel,
		DMAChannels: b.dmaChannels,
		HDMAEnable:  b.hdmaEnable,
		AutoJoyBusy: b.autoJoyBusy,
	}
}

// Restore replaces the Bus's own state with a previously captured
// Snapshot.
func (b *Bus) Restore(s Snapshot) {
	b.wram = s.WRAM
	b.wramAddr = s.WRAMAddr
	b.NMITIMEN = s.NMITIMEN
	b.wrmpya = s.Wrmpya
	b.wrmpyb = s.Wrmpyb
	b.wrdiv = s.Wrdiv
	b.rddiv = s.Rddiv
	b.rdmpy = s.Rdmpy
	b.htime = s.Htime
	b.vtime = s.Vtime
	b.nmiFlag = s.NMIFlag
	b.irqFlag = s.IRQFlag
	b.memsel = s.Memsel
	b.dmaChannels = s.DMAChannels
	b.hdmaEnable = s.HDMAEnable
	b.autoJoyBusy = s.AutoJoyBusy
}
