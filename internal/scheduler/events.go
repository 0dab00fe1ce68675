package scheduler

const (
	dotMax  = 340
	lineMax = 262

	dotDRAMRefresh = 180
	lineVBlankEnd  = 225
)

// dispatchScanlineEvents checks the current (V,H) position against the
// fixed scanline event table and performs any action it matches. It
// returns true when the caller's PPU-drain loop should break early to let
// the CPU service an interrupt immediately.
func (s *Scheduler) dispatchScanlineEvents() bool {
	v := s.PPU.VCounter()
	h := s.PPU.HCounter()

	if !s.haveLastLine || v != s.lastLine {
		s.irqArmedLine = true
		s.lastLine = v
		s.haveLastLine = true
	}

	switch {
	case v == 0 && h == 0:
		s.Bus.ClearNMI()
	case v == 0 && h == 6:
		cycles := s.Bus.DMA.InitHDMA(s.Bus, s.Bus.HDMAEnable())
		s.Bus.AccruedIOCycles += cycles
	}

	if v <= 224 && h == 278 {
		cycles := s.Bus.DMA.DoHDMA(s.Bus, s.Bus.HDMAEnable())
		s.Bus.AccruedIOCycles += cycles
	}

	if v == 224 && h == 256 {
		s.frameRendered = true
		s.FramesRendered++
		if s.Renderer != nil {
			_ = s.Renderer.RenderFrame(s.PPU.FrameBuf())
		}
	}

	if v == lineVBlankEnd && h == 0 {
		s.Bus.Input.NewFrame()
		s.Bus.RaiseNMI()
		if s.Bus.NMITIMEN&0x80 != 0 {
			s.CPU.TriggerNMI()
			return true
		}
	}

	if v == lineVBlankEnd && h == 50 {
		if s.Bus.NMITIMEN&0x01 != 0 {
			s.Bus.SetAutoJoyBusy(true)
			s.Bus.Input.PerformAutoRead()
			s.Bus.SetAutoJoyBusy(false)
		}
	}

	if h == dotDRAMRefresh {
		s.Bus.AccruedIOCycles += 40
	}

	if s.matchIRQ(v, h) {
		s.irqArmedLine = false
		s.Bus.RaiseIRQ()
		s.CPU.TriggerIRQ()
		return true
	}

	return false
}

// matchIRQ implements the H-/V-match IRQ row: when only V-IRQ is enabled it
// fires as soon as V reaches vtime (any H); when only H-IRQ is enabled it
// fires every scanline as soon as H reaches htime (any V); when both are
// enabled it requires both to match simultaneously. It fires at most once
// per scanline.
func (s *Scheduler) matchIRQ(v, h uint16) bool {
	if !s.irqArmedLine {
		return false
	}
	hEnabled := s.Bus.NMITIMEN&0x20 != 0
	vEnabled := s.Bus.NMITIMEN&0x10 != 0
	if !hEnabled && !vEnabled {
		return false
	}
	if hEnabled && !vEnabled {
		return h == s.Bus.HTime()
	}
	if v != s.Bus.VTime() {
		return false
	}
	if hEnabled && h != s.Bus.HTime() {
		return false
	}
	return true
}
