package bus

// DoIOCycle returns the master-cycle penalty a main-CPU access to (bank,
// addr) incurs, per the bank/address decode table. It is a pure function
// of (bank, addr, memsel) -- it must never be called a second time for the
// same access once its result has already been charged.
func (b *Bus) DoIOCycle(bank uint8, addr uint16) uint8 {
	switch {
	case bank <= 0x3F:
		switch {
		case addr <= 0x1FFF, addr >= 0x6000:
			return 2
		case addr >= 0x4000 && addr <= 0x41FF:
			return 6
		default:
			return 0
		}
	case bank >= 0x40 && bank <= 0x7F:
		return 2
	case bank >= 0x80 && bank <= 0xBF:
		switch {
		case addr <= 0x1FFF, (addr >= 0x6000 && addr <= 0x7FFF):
			return 2
		case addr >= 0x4000 && addr <= 0x41FF:
			return 6
		case addr >= 0x8000:
			if b.memsel {
				return 0
			}
			return 2
		default:
			return 0
		}
	default: // 0xC0-0xFF
		if b.memsel {
			return 0
		}
		return 2
	}
}
