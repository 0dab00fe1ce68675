// Command snescore runs the SNES core: main CPU, audio coprocessor, and
// picture processing unit interleaved by the scheduler, with an
// Ebitengine window and audio output or a headless frame-dump mode for
// automation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"snescore/internal/audiocore"
	"snescore/internal/bus"
	"snescore/internal/dma"
	"snescore/internal/dsp"
	"snescore/internal/framebuf"
	"snescore/internal/joypad"
	"snescore/internal/maincpu"
	"snescore/internal/ppu"
	"snescore/internal/romio"
	"snescore/internal/savestate"
	"snescore/internal/scheduler"
	"snescore/internal/video"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to SNES ROM image")
		headless   = flag.Bool("headless", false, "Run without a window, dumping frame counts to stdout")
		frames     = flag.Int("frames", 0, "In headless mode, stop after this many frames (0 = run until interrupted)")
		debug      = flag.Bool("debug", false, "Enable debug logging and fatal-on-undefined-access checks")
		saveDir    = flag.String("savedir", "saves", "Directory for save state files")
		sampleRate = flag.Int("samplerate", 32000, "Audio output sample rate in Hz")
		version    = flag.Bool("version", false, "Print version information and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("snescore 0.1.0")
		os.Exit(0)
	}

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "snescore: -rom is required")
		flag.Usage()
		os.Exit(1)
	}

	setupGracefulShutdown()

	rom, err := romio.LoadFromFile(*romFile)
	if err != nil {
		log.Fatalf("snescore: failed to load ROM: %v", err)
	}

	ipl := audiocore.DefaultIPL
	d := dsp.New()
	audio := audiocore.New(ipl, d)
	audio.Debug = *debug

	pad := joypad.New()
	pad.Debug = *debug

	dmaEngine := dma.New()
	p := ppu.New()

	b := bus.New(p, audio, dmaEngine, rom, pad)
	b.Debug = *debug

	cpu := maincpu.New(b)

	stateDir := *saveDir
	mgr, err := savestate.NewManager(stateDir)
	if err != nil {
		log.Fatalf("snescore: failed to initialize save states: %v", err)
	}

	backendType := video.BackendEbitengine
	if *headless {
		backendType = video.BackendHeadless
	}
	backend, err := video.NewBackend(backendType)
	if err != nil {
		log.Fatalf("snescore: %v", err)
	}
	if err := backend.Initialize(video.Config{
		WindowTitle: "snescore",
		Headless:    *headless,
		SampleRate:  *sampleRate,
	}); err != nil {
		log.Fatalf("snescore: failed to initialize video backend: %v", err)
	}
	defer backend.Cleanup()

	window, err := backend.CreateWindow("snescore", 512, 448)
	if err != nil {
		log.Fatalf("snescore: failed to create window: %v", err)
	}

	if attacher, ok := backend.(interface {
		AttachMixer(video.Window, video.Mixer) error
	}); ok {
		if err := attacher.AttachMixer(window, d); err != nil {
			log.Printf("snescore: audio output disabled: %v", err)
		}
	}

	sched := scheduler.New(cpu, b, p, audio, mixerAdapter{window})

	sources := savestate.Sources{AudioCore: audio, Bus: b, CPU: cpu, PPU: p, DSP: d}

	if *headless {
		runHeadless(sched, *frames)
		return
	}

	runGUI(sched, window, pad, mgr, sources, *romFile)
}

// mixerAdapter satisfies scheduler.Renderer by forwarding completed frames
// to a video.Window.
type mixerAdapter struct {
	window video.Window
}

func (m mixerAdapter) RenderFrame(buf *framebuf.Buffer) error {
	return m.window.RenderFrame(buf)
}

func runHeadless(sched *scheduler.Scheduler, frames int) {
	fmt.Println("snescore: running headless")
	for frames == 0 || sched.FramesRendered < uint64(frames) {
		sched.Step()
	}
	fmt.Printf("snescore: rendered %d frames\n", sched.FramesRendered)
}

var videoToJoypad = map[video.Button]joypad.Button{
	video.ButtonA:      joypad.ButtonA,
	video.ButtonB:      joypad.ButtonB,
	video.ButtonX:      joypad.ButtonX,
	video.ButtonY:      joypad.ButtonY,
	video.ButtonL:      joypad.ButtonL,
	video.ButtonR:      joypad.ButtonR,
	video.ButtonSelect: joypad.ButtonSelect,
	video.ButtonStart:  joypad.ButtonStart,
	video.ButtonUp:     joypad.ButtonUp,
	video.ButtonDown:   joypad.ButtonDown,
	video.ButtonLeft:   joypad.ButtonLeft,
	video.ButtonRight:  joypad.ButtonRight,
}

func runGUI(sched *scheduler.Scheduler, window video.Window, pad *joypad.Set, mgr *savestate.Manager, sources savestate.Sources, romFile string) {
	type emulatorDriver interface {
		SetEmulatorUpdateFunc(func() error)
	}
	if drv, ok := window.(emulatorDriver); ok {
		drv.SetEmulatorUpdateFunc(func() error {
			for _, ev := range window.PollEvents() {
				switch ev.Type {
				case video.InputEventQuit:
					os.Exit(0)
				case video.InputEventButton:
					if b, ok := videoToJoypad[ev.Button]; ok {
						pad.Pad1.SetButton(b, ev.Pressed)
					}
				case video.InputEventSaveState:
					if err := mgr.Save(sources, romFile, ev.Slot, sched.FramesRendered); err != nil {
						log.Printf("snescore: save state failed: %v", err)
					}
				case video.InputEventLoadState:
					if _, err := mgr.Load(sources, romFile, ev.Slot); err != nil {
						log.Printf("snescore: load state failed: %v", err)
					}
				}
			}
			sched.Step()
			return nil
		})
	}

	if err := window.Run(); err != nil {
		log.Fatalf("snescore: window run failed: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nsnescore: interrupt received, shutting down")
		os.Exit(0)
	}()
}
