//go:build !headless
// +build !headless

package video

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"snescore/internal/framebuf"
)

// Mixer is the sample source an ebitengineWindow plays through the audio
// package; internal/dsp.DSP implements it.
type Mixer interface {
	Mix(out []int16, sampleRate int)
}

// ebitengineBackend implements Backend using Ebitengine for both video and
// audio output.
type ebitengineBackend struct {
	cfg         Config
	audioCtx    *audio.Context
}

func newEbitengineBackend() Backend { return &ebitengineBackend{} }

func (b *ebitengineBackend) Initialize(cfg Config) error {
	b.cfg = cfg
	if cfg.SampleRate == 0 {
		b.cfg.SampleRate = 32000
	}
	b.audioCtx = audio.NewContext(b.cfg.SampleRate)
	return nil
}

func (b *ebitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if b.cfg.Headless {
		return nil, fmt.Errorf("video: cannot create window in headless mode")
	}

	game := &ebitengineGame{
		frameImage:  ebiten.NewImage(framebuf.Width, framebuf.Height),
		imageBuffer: image.NewRGBA(image.Rect(0, 0, framebuf.Width, framebuf.Height)),
	}
	w := &ebitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
	}
	game.window = w

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.cfg.VSync)
	if b.cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return w, nil
}

func (b *ebitengineBackend) Cleanup() error  { return nil }
func (b *ebitengineBackend) IsHeadless() bool { return b.cfg.Headless }
func (b *ebitengineBackend) GetName() string  { return "ebitengine" }

// AttachMixer wires a DSP-backed mixer into the window's streaming audio
// player. Called by cmd/snescore after the AudioCore/DSP pair exists.
func (b *ebitengineBackend) AttachMixer(w Window, m Mixer) error {
	ew, ok := w.(*ebitengineWindow)
	if !ok {
		return fmt.Errorf("video: AttachMixer requires an ebitengine window")
	}
	stream := &mixerStream{mixer: m, sampleRate: b.cfg.SampleRate}
	player, err := b.audioCtx.NewPlayer(stream)
	if err != nil {
		return err
	}
	player.Play()
	ew.player = player
	return nil
}

// mixerStream adapts a Mixer into the io.Reader the audio package pulls
// 16-bit little-endian stereo PCM bytes from on demand.
type mixerStream struct {
	mixer      Mixer
	sampleRate int
}

func (s *mixerStream) Read(p []byte) (int, error) {
	n := len(p) / 4 * 4 // whole stereo sample pairs only
	samples := make([]int16, n/2)
	s.mixer.Mix(samples, s.sampleRate)
	for i, v := range samples {
		p[i*2] = byte(v)
		p[i*2+1] = byte(v >> 8)
	}
	return n, nil
}

var _ io.Reader = (*mixerStream)(nil)

type ebitengineWindow struct {
	backend *ebitengineBackend
	title   string
	width   int
	height  int
	game    *ebitengineGame
	running bool
	player  *audio.Player

	updateFunc func() error
}

func (w *ebitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

func (w *ebitengineWindow) GetSize() (int, int) { return w.width, w.height }
func (w *ebitengineWindow) ShouldClose() bool   { return !w.running }
func (w *ebitengineWindow) Cleanup() error      { w.running = false; return nil }

func (w *ebitengineWindow) PollEvents() []InputEvent {
	events := w.game.events
	w.game.events = nil
	return events
}

func (w *ebitengineWindow) RenderFrame(buf *framebuf.Buffer) error {
	img := w.game.imageBuffer
	for y := 0; y < framebuf.Height; y++ {
		for x := 0; x < framebuf.Width; x++ {
			pixel := buf[y*framebuf.Width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(pixel >> 16),
				G: uint8(pixel >> 8),
				B: uint8(pixel),
				A: 255,
			})
		}
	}
	w.game.frameImage.WritePixels(img.Pix)
	return nil
}

// SetEmulatorUpdateFunc wires the per-frame emulator driver into Ebitengine's
// update loop.
func (w *ebitengineWindow) SetEmulatorUpdateFunc(f func() error) {
	w.updateFunc = f
}

func (w *ebitengineWindow) Run() error {
	w.running = true
	return ebiten.RunGame(w.game)
}

// ebitengineGame implements ebiten.Game.
type ebitengineGame struct {
	window      *ebitengineWindow
	frameImage  *ebiten.Image
	imageBuffer *image.RGBA
	events      []InputEvent
}

func (g *ebitengineGame) Update() error {
	g.pollInput()
	if g.window.updateFunc != nil {
		if err := g.window.updateFunc(); err != nil {
			log.Printf("[VIDEO] emulator update error: %v", err)
		}
	}
	return nil
}

func (g *ebitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 255})
	op := &ebiten.DrawImageOptions{}
	sx := float64(g.window.width) / float64(framebuf.Width)
	sy := float64(g.window.height) / float64(framebuf.Height)
	scale := sx
	if sy < sx {
		scale = sy
	}
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(g.frameImage, op)
}

func (g *ebitengineGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.window.width = outsideWidth
	g.window.height = outsideHeight
	return outsideWidth, outsideHeight
}

var keyButtonMap = map[ebiten.Key]Button{
	ebiten.KeyArrowUp:    ButtonUp,
	ebiten.KeyArrowDown:  ButtonDown,
	ebiten.KeyArrowLeft:  ButtonLeft,
	ebiten.KeyArrowRight: ButtonRight,
	ebiten.KeyZ:          ButtonB,
	ebiten.KeyX:          ButtonA,
	ebiten.KeyA:          ButtonY,
	ebiten.KeyS:          ButtonX,
	ebiten.KeyQ:          ButtonL,
	ebiten.KeyW:          ButtonR,
	ebiten.KeyEnter:      ButtonStart,
	ebiten.KeyShift:      ButtonSelect,
}

func (g *ebitengineGame) pollInput() {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.events = append(g.events, InputEvent{Type: InputEventQuit})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.events = append(g.events, InputEvent{Type: InputEventSaveState, Slot: 0})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.events = append(g.events, InputEvent{Type: InputEventLoadState, Slot: 0})
	}
	for key, button := range keyButtonMap {
		if inpututil.IsKeyJustPressed(key) {
			g.events = append(g.events, InputEvent{Type: InputEventButton, Button: button, Pressed: true})
		} else if inpututil.IsKeyJustReleased(key) {
			g.events = append(g.events, InputEvent{Type: InputEventButton, Button: button, Pressed: false})
		}
	}
}
