// Package scheduler implements the cycle-accurate main loop that
// interleaves the main CPU, the audio coprocessor, and the PPU on a shared
// master clock, dispatching per-scanline events along the way.
package scheduler

import (
	"log"

	"snescore/internal/bus"
	"snescore/internal/framebuf"
)

// apuDivider approximates the real ~20.94 master-cycles-per-AudioCore-cycle
// ratio; spec explicitly treats cycle-perfect sub-instruction timing as out
// of scope, so the approximation is carried verbatim.
const apuDivider = 21

// CPU is the main-CPU contract the Scheduler drives.
type CPU interface {
	Step(b *bus.Bus) uint8
	TriggerNMI()
	TriggerIRQ()
	SetTrace(enabled bool)
	Trace() bool
}

// AudioStepper is the subset of AudioCore the Scheduler needs: execute one
// instruction, report its cost.
type AudioStepper interface {
	Step() uint8
}

// PPU is the wider contract the Scheduler needs beyond what Bus uses --
// the same concrete collaborator satisfies both.
type PPU interface {
	bus.PPU
	FrameBuf() *framebuf.Buffer
}

// Renderer receives a completed frame. The concrete backends live in
// internal/video.
type Renderer interface {
	RenderFrame(buf *framebuf.Buffer) error
}

// Scheduler owns the main CPU and drives AudioCore/PPU stepping by debt.
type Scheduler struct {
	CPU      CPU
	Bus      *bus.Bus
	PPU      PPU
	Audio    AudioStepper
	Renderer Renderer

	apuDebt int32
	ppuDebt int32

	lastLine      uint16
	haveLastLine  bool
	irqArmedLine  bool
	frameRendered bool

	// FramesRendered counts completed frames, exercised by save states and
	// by callers deciding when to stop RunFrames.
	FramesRendered uint64
}

// New wires a Scheduler to its collaborators.
func New(cpu CPU, b *bus.Bus, ppu PPU, audio AudioStepper, renderer Renderer) *Scheduler {
	return &Scheduler{CPU: cpu, Bus: b, PPU: ppu, Audio: audio, Renderer: renderer}
}

// Step executes exactly one main-CPU instruction, drains the resulting APU
// and PPU cycle debt, and dispatches any scanline events the PPU drain
// crosses. It reports whether a frame completed during this call.
func (s *Scheduler) Step() bool {
	instrCycles := s.CPU.Step(s.Bus)

	cpuCy := uint32(instrCycles)*6 + s.Bus.AccruedIOCycles
	s.Bus.AccruedIOCycles = 0
	if cpuCy < 3 {
		cpuCy = 3
	}

	s.apuDebt += int32(cpuCy)
	s.ppuDebt += int32(cpuCy)

	for s.apuDebt > apuDivider {
		audioCy := s.Audio.Step()
		s.apuDebt -= int32(audioCy) * apuDivider
	}

	s.frameRendered = false
	for s.ppuDebt > 0 {
		ppuCy := s.PPU.Update()
		s.ppuDebt -= int32(ppuCy)
		if s.dispatchScanlineEvents() {
			break
		}
	}

	if s.Bus.Debug && s.CPU.Trace() {
		log.Printf("[SCHEDULER] cpu_cy=%d apu_debt=%d ppu_debt=%d", cpuCy, s.apuDebt, s.ppuDebt)
	}

	return s.frameRendered
}

// RunFrames steps the Scheduler until n additional frames have completed.
func (s *Scheduler) RunFrames(n int) {
	target := s.FramesRendered + uint64(n)
	for s.FramesRendered < target {
		s.Step()
	}
}
