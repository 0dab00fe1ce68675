// Package video provides rendering backend abstractions for the
// Scheduler's per-frame handoff: a headless backend for tests and
// automation, and an Ebitengine-backed backend for interactive play with
// audio output driven by the DSP mixer.
package video

import "snescore/internal/framebuf"

// Backend represents a windowing/rendering backend.
type Backend interface {
	Initialize(cfg Config) error
	CreateWindow(title string, width, height int) (Window, error)
	Cleanup() error
	IsHeadless() bool
	GetName() string
}

// Window receives frame buffers and reports input events.
type Window interface {
	SetTitle(title string)
	GetSize() (width, height int)
	ShouldClose() bool
	PollEvents() []InputEvent
	RenderFrame(buf *framebuf.Buffer) error
	Cleanup() error
	Run() error
}

// Config configures a Backend.
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	VSync        bool
	Headless     bool
	SampleRate   int
}

// InputEventType distinguishes the kinds of InputEvent.
type InputEventType int

const (
	InputEventButton InputEventType = iota
	InputEventQuit
	InputEventSaveState
	InputEventLoadState
)

// InputEvent reports a button transition, a quit request, or a save/load
// state request for the given slot.
type InputEvent struct {
	Type    InputEventType
	Button  Button
	Pressed bool
	Slot    int
}

// Button names the SNES controller buttons a backend can report.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonL
	ButtonR
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// BackendType selects a concrete Backend implementation.
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
)

// NewBackend constructs the named backend.
func NewBackend(t BackendType) (Backend, error) {
	switch t {
	case BackendEbitengine:
		return newEbitengineBackend(), nil
	case BackendHeadless, "":
		return newHeadlessBackend(), nil
	default:
		return nil, errUnknownBackend(t)
	}
}

type errUnknownBackend BackendType

func (e errUnknownBackend) Error() string {
	return "video: unknown backend " + string(e)
}
