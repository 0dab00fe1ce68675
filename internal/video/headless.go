package video

import "snescore/internal/framebuf"

// headlessBackend discards frames, used for automated runs and tests.
type headlessBackend struct {
	cfg Config
}

func newHeadlessBackend() Backend { return &headlessBackend{} }

func (b *headlessBackend) Initialize(cfg Config) error {
	b.cfg = cfg
	return nil
}

func (b *headlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	return &headlessWindow{title: title, width: width, height: height}, nil
}

func (b *headlessBackend) Cleanup() error  { return nil }
func (b *headlessBackend) IsHeadless() bool { return true }
func (b *headlessBackend) GetName() string  { return "headless" }

type headlessWindow struct {
	title         string
	width, height int
	frames        uint64
}

func (w *headlessWindow) SetTitle(title string)        { w.title = title }
func (w *headlessWindow) GetSize() (int, int)           { return w.width, w.height }
func (w *headlessWindow) ShouldClose() bool             { return false }
func (w *headlessWindow) PollEvents() []InputEvent      { return nil }
func (w *headlessWindow) Cleanup() error                { return nil }
func (w *headlessWindow) Run() error                    { return nil }

func (w *headlessWindow) RenderFrame(buf *framebuf.Buffer) error {
	w.frames++
	return nil
}
